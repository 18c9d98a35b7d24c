package extract

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/pgzip"
)

// tarIterator walks a gzip-compressed tar stream entry by entry.
type tarIterator struct {
	f  *os.File
	gz *pgzip.Reader
	tr *tar.Reader
}

func openTarGz(path string) (*tarIterator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	gz, err := pgzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: gzip header: %w", ErrCorruptContainer, err)
	}

	return &tarIterator{f: f, gz: gz, tr: tar.NewReader(gz)}, nil
}

func (it *tarIterator) Next() (*Entry, error) {
	hdr, err := it.tr.Next()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read tar header: %w", ErrCorruptContainer, err)
	}

	entry := &Entry{
		Name: hdr.Name,
		Mode: hdr.FileInfo().Mode(),
		Size: hdr.Size,
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		entry.Type = EntryDir
	case tar.TypeReg:
		entry.Type = EntryFile
		entry.open = func() (io.ReadCloser, error) {
			return io.NopCloser(corruptOnError{it.tr}), nil
		}
	default:
		entry.Type = EntryOther
	}

	return entry, nil
}

func (it *tarIterator) Close() error {
	gzErr := it.gz.Close()
	fErr := it.f.Close()
	return errors.Join(gzErr, fErr)
}

// corruptOnError classifies failures of the underlying stream as container
// corruption.
type corruptOnError struct {
	r io.Reader
}

func (c corruptOnError) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("%w: %w", ErrCorruptContainer, err)
	}
	return n, err
}

// ExtractTarGz unpacks the gzip-compressed tar archive src below
// target.Root(). Entries whose name matches SfxPattern are unpacked again
// through ExtractContainer once written.
func (x *Extractor) ExtractTarGz(src string, target Target) Outcome {
	return x.extractTarGz(src, target, 0)
}

func (x *Extractor) extractTarGz(src string, target Target, depth int) Outcome {
	x.log.Info("extracting tar.gz archive", "archive", src, "root", target.Root())

	it, err := openTarGz(src)
	if err != nil {
		return x.abort(src, &tally{}, err)
	}
	defer func() {
		if err := it.Close(); err != nil {
			x.log.Warn("failed to close archive", "archive", src, "error", err)
		}
	}()

	return x.extractEntries(it, src, target, depth)
}
