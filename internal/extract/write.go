package extract

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// destination resolves name below root and re-checks the result against the
// filesystem, so a symlink already present under root cannot redirect a
// write. A mismatch is rejected, never corrected.
func destination(root, name string) (string, error) {
	lexical, err := Resolve(root, name)
	if err != nil {
		return "", err
	}

	cleanRoot := filepath.Clean(root)
	rel, err := filepath.Rel(cleanRoot, lexical)
	if err != nil {
		return "", &TraversalError{Root: root, Name: name, Reason: "parent traversal"}
	}

	resolved, err := securejoin.SecureJoin(cleanRoot, rel)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", name, err)
	}
	if filepath.Clean(resolved) != lexical {
		return "", &TraversalError{Root: root, Name: name, Reason: "symlink in path"}
	}

	return lexical, nil
}

// filePerm keeps the recorded permission bits but always lets the owner
// write, so a later run can overwrite the file.
func filePerm(mode fs.FileMode) fs.FileMode {
	perm := mode.Perm()
	if perm == 0 {
		perm = 0o644
	}
	return perm | 0o200
}

// writeFile copies the entry content to dest, truncating any previous file.
// Errors raised while reading the entry are returned unwrapped so their
// classification survives; a destination left half-written by such an
// error is removed.
func writeFile(dest string, entry *Entry) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("create parent directory: %w", err)
	}

	src, err := entry.Open()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm(entry.Mode))
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}

	rt := &readTracker{r: src}
	n, err := io.Copy(out, rt)
	if err != nil {
		out.Close()
		if rt.err != nil {
			if rmErr := os.Remove(dest); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				return n, errors.Join(err, fmt.Errorf("remove partial file: %w", rmErr))
			}
			return n, err
		}
		return n, fmt.Errorf("write file: %w", err)
	}

	if err := out.Close(); err != nil {
		return n, fmt.Errorf("close file: %w", err)
	}

	return n, nil
}

// readTracker remembers the first error coming from the source side of a copy.
type readTracker struct {
	r   io.Reader
	err error
}

func (t *readTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && t.err == nil {
		t.err = err
	}
	return n, err
}
