package extract

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// WithScratchFile creates an empty, uniquely named file in dir (the system
// temp directory when dir is empty), passes its path to body and deletes it
// once body returns or panics. A failed deletion is logged, not returned.
func WithScratchFile[T any](dir, suffix string, log Logger, body func(path string) (T, error)) (T, error) {
	var zero T
	if log == nil {
		log = NopLogger()
	}

	f, err := os.CreateTemp(dir, "payload-*"+suffix)
	if err != nil {
		return zero, fmt.Errorf("create scratch file: %w", err)
	}
	path := f.Name()
	log.Debug("created scratch file", "path", path)

	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn("failed to delete scratch file", "path", path, "error", err)
			return
		}
		log.Debug("deleted scratch file", "path", path)
	}()

	if err := f.Close(); err != nil {
		return zero, fmt.Errorf("close scratch file: %w", err)
	}

	return body(path)
}

// copyPayload copies everything from loc.Offset to the end of loc.Source into dst.
func copyPayload(loc PayloadLocation, dst string) (int64, error) {
	in, err := os.Open(loc.Source)
	if err != nil {
		return 0, fmt.Errorf("open stub: %w", err)
	}
	defer in.Close()

	if _, err := in.Seek(loc.Offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("seek to payload offset %d: %w", loc.Offset, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return 0, fmt.Errorf("open scratch file: %w", err)
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, fmt.Errorf("copy payload: %w", err)
	}

	if err := out.Close(); err != nil {
		return n, fmt.Errorf("close scratch file: %w", err)
	}

	return n, nil
}
