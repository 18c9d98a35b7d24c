package extract

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
)

// Target is where a product is unpacked: every entry lands below
// BaseDir/Product.
type Target struct {
	BaseDir string
	Product string
}

// Root returns the install root, BaseDir/Product.
func (t Target) Root() string {
	return filepath.Join(t.BaseDir, t.Product)
}

// EntryType is the kind of record an archive entry represents.
type EntryType int

const (
	// EntryFile is a regular file with content.
	EntryFile EntryType = iota
	// EntryDir is a directory.
	EntryDir
	// EntryOther covers links, devices and metadata records. They are skipped.
	EntryOther
)

// Entry is one record of a container, valid only until the next one is
// requested from the same reader.
type Entry struct {
	Name string // untrusted, as recorded in the archive
	Type EntryType
	Mode fs.FileMode
	Size int64 // -1 when unknown

	open func() (io.ReadCloser, error)
}

// Open returns the entry content.
func (e *Entry) Open() (io.ReadCloser, error) {
	if e.open == nil {
		return io.NopCloser(strings.NewReader("")), nil
	}
	return e.open()
}

// entryIterator yields entries lazily and returns io.EOF when exhausted.
type entryIterator interface {
	Next() (*Entry, error)
	Close() error
}

// Status is the terminal state of an extraction call.
type Status int

const (
	// StatusCompleted means every entry was extracted.
	StatusCompleted Status = iota
	// StatusPartiallyFailed means some entries or nested archives failed while
	// the rest were extracted.
	StatusPartiallyFailed
	// StatusAborted means extraction stopped early.
	StatusAborted
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusPartiallyFailed:
		return "partially failed"
	case StatusAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Failure is a recoverable problem recorded against a single entry.
type Failure struct {
	Archive string // container the entry belongs to
	Entry   string
	Err     error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %s: %v", filepath.Base(f.Archive), f.Entry, f.Err)
}

// Outcome is the result of an extraction call. Nothing is changed after it
// is returned.
type Outcome struct {
	Status   Status
	Reason   string
	Err      error // set when Status is StatusAborted
	Failures []Failure

	Files   int
	Dirs    int
	Skipped int
}

// OK reports whether the extraction completed without failures.
func (o Outcome) OK() bool {
	return o.Status == StatusCompleted
}

func (o Outcome) String() string {
	if o.Reason == "" {
		return o.Status.String()
	}
	return fmt.Sprintf("%s: %s", o.Status, o.Reason)
}
