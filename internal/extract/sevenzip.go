package extract

import (
	"errors"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"io/fs"
	"os"

	"github.com/bodgit/sevenzip"
)

// sevenZipIterator walks the entries of an opened 7z container in header order.
type sevenZipIterator struct {
	f    *os.File
	zr   *sevenzip.Reader
	next int
}

// openSevenZip reads the container header. The header is untrusted, and the
// reader panics on some inconsistent ones, so a panic is reported as
// ErrCorruptContainer.
func openSevenZip(path string) (it *sevenZipIterator, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open 7z: %w", ErrCorruptContainer, err)
	}
	defer func() {
		if r := recover(); r != nil {
			it, err = nil, fmt.Errorf("%w: open 7z: malformed header: %v", ErrCorruptContainer, r)
		}
		if err != nil {
			f.Close()
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: open 7z: %w", ErrCorruptContainer, err)
	}
	zr, err := sevenzip.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: open 7z: %w", ErrCorruptContainer, err)
	}
	return &sevenZipIterator{f: f, zr: zr}, nil
}

func (it *sevenZipIterator) Next() (*Entry, error) {
	if it.next >= len(it.zr.File) {
		return nil, io.EOF
	}
	f := it.zr.File[it.next]
	it.next++

	info := f.FileInfo()
	entry := &Entry{
		Name: f.Name,
		Mode: info.Mode(),
		Size: info.Size(),
	}

	switch {
	case info.IsDir():
		entry.Type = EntryDir
	case info.Mode()&fs.ModeType != 0:
		entry.Type = EntryOther
	default:
		entry.Type = EntryFile
		entry.open = func() (rc io.ReadCloser, err error) {
			defer func() {
				if r := recover(); r != nil {
					rc, err = nil, fmt.Errorf("%w: open entry: %v", ErrUnsupportedEntryCodec, r)
				}
			}()

			r, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrUnsupportedEntryCodec, err)
			}
			return &checkedReader{rc: r, crc: crc32.NewIEEE(), want: f.CRC32}, nil
		}
	}

	return entry, nil
}

func (it *sevenZipIterator) Close() error {
	return it.f.Close()
}

// checkedReader turns decoder failures, including decoder panics, into
// ErrUnsupportedEntryCodec and verifies the recorded CRC once the entry has
// been read to the end.
type checkedReader struct {
	rc   io.ReadCloser
	crc  hash.Hash32
	want uint32
}

func (c *checkedReader) Read(p []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("%w: decode: %v", ErrUnsupportedEntryCodec, r)
		}
	}()

	n, err = c.rc.Read(p)
	c.crc.Write(p[:n])

	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF):
		if c.want != 0 && c.crc.Sum32() != c.want {
			return n, fmt.Errorf("%w: crc mismatch: got %08x, want %08x", ErrUnsupportedEntryCodec, c.crc.Sum32(), c.want)
		}
		return n, io.EOF
	default:
		return n, fmt.Errorf("%w: %w", ErrUnsupportedEntryCodec, err)
	}
}

func (c *checkedReader) Close() error {
	return c.rc.Close()
}

// ExtractContainer unpacks a 7z container below target.Root().
//
// A ".7z" file is read directly. Anything else is treated as a
// self-extracting stub: the payload behind the 7z signature is copied to a
// scratch file first, and the scratch file is removed afterwards whatever
// the outcome.
func (x *Extractor) ExtractContainer(src string, target Target) Outcome {
	return x.extractContainer(src, target, 0)
}

func (x *Extractor) extractContainer(src string, target Target, depth int) Outcome {
	if depth > x.maxDepth {
		return x.abort(src, &tally{}, fmt.Errorf("%w: %d > %d", ErrDepthExceeded, depth, x.maxDepth))
	}

	if Classify(src) == KindSevenZip {
		return x.extractSevenZip(src, src, target, depth)
	}

	loc, err := ScanFile(src)
	if err != nil {
		return x.abort(src, &tally{}, err)
	}
	x.log.Info("found 7z signature", "stub", src, "offset", loc.Offset)

	out, err := WithScratchFile(x.tempDir, ".7z", x.log, func(scratch string) (Outcome, error) {
		n, err := copyPayload(loc, scratch)
		if err != nil {
			return Outcome{}, err
		}
		x.log.Info("copied embedded 7z payload", "stub", src, "bytes", n, "scratch", scratch)

		return x.extractSevenZip(scratch, src, target, depth), nil
	})
	if err != nil {
		return x.abort(src, &tally{}, err)
	}

	return out
}

// extractSevenZip reads the container at path. label names it in logs and
// failures, which matters when path is a scratch copy.
func (x *Extractor) extractSevenZip(path, label string, target Target, depth int) Outcome {
	x.log.Info("extracting 7z archive", "archive", label, "root", target.Root())

	it, err := openSevenZip(path)
	if err != nil {
		return x.abort(label, &tally{}, err)
	}
	defer func() {
		if err := it.Close(); err != nil {
			x.log.Warn("failed to close archive", "archive", label, "error", err)
		}
	}()

	return x.extractEntries(it, label, target, depth)
}
