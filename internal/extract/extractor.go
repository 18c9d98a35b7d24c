package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultMaxDepth bounds how many self-extracting archives may be nested
// inside one another.
const DefaultMaxDepth = 4

// Extractor unpacks tar.gz and 7z containers below an install root.
// An Extractor holds no per-call state and may be reused.
type Extractor struct {
	log      Logger
	maxDepth int
	tempDir  string
}

// NewExtractor creates an Extractor with a no-op logger, DefaultMaxDepth and
// the system temp directory for scratch files.
func NewExtractor() *Extractor {
	return &Extractor{
		log:      NopLogger(),
		maxDepth: DefaultMaxDepth,
	}
}

// WithLogger sets a custom logger for the extractor.
// Returns the extractor for method chaining.
func (x *Extractor) WithLogger(log Logger) *Extractor {
	if log == nil {
		log = NopLogger()
	}
	x.log = log
	return x
}

// WithMaxDepth sets the nesting limit for self-extracting archives.
// Values below 1 keep the current limit.
func (x *Extractor) WithMaxDepth(depth int) *Extractor {
	if depth > 0 {
		x.maxDepth = depth
	}
	return x
}

// WithTempDir sets where payload scratch files are created.
func (x *Extractor) WithTempDir(dir string) *Extractor {
	x.tempDir = dir
	return x
}

// Extract unpacks src with the route chosen by Classify.
func (x *Extractor) Extract(src string, target Target) Outcome {
	switch kind := Classify(src); kind {
	case KindTarGz:
		return x.ExtractTarGz(src, target)
	case KindSevenZip, KindSfxStub:
		return x.ExtractContainer(src, target)
	default:
		return x.abort(src, &tally{}, fmt.Errorf("%s: %w", src, ErrUnsupportedArchive))
	}
}

// extractEntries is the loop shared by every container format. Entries are
// consumed one at a time: guarded, materialized, and handed to
// extractContainer when they are self-extracting stubs.
func (x *Extractor) extractEntries(it entryIterator, archive string, target Target, depth int) Outcome {
	root := target.Root()
	t := &tally{}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return x.abort(archive, t, fmt.Errorf("create install root: %w", err))
	}

	for {
		entry, err := it.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return x.abort(archive, t, err)
		}

		dest, err := destination(root, entry.Name)
		if err != nil {
			return x.abort(archive, t, err)
		}
		x.log.Debug("found path", "entry", entry.Name, "path", dest)

		switch entry.Type {
		case EntryDir:
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return x.abort(archive, t, fmt.Errorf("create directory %s: %w", dest, err))
			}
			x.log.Debug("created directory", "path", dest)
			t.dirs++

		case EntryOther:
			x.log.Warn("skipping unsupported entry", "archive", archive, "entry", entry.Name)
			t.skipped++

		case EntryFile:
			n, err := writeFile(dest, entry)
			if err != nil {
				if errors.Is(err, ErrUnsupportedEntryCodec) {
					x.log.Warn("failed to decode entry", "archive", archive, "entry", entry.Name, "error", err)
					t.fail(Failure{Archive: archive, Entry: entry.Name, Err: err})
					continue
				}
				return x.abort(archive, t, fmt.Errorf("%s: %w", entry.Name, err))
			}
			x.log.Debug("wrote file", "path", dest, "bytes", n)
			t.files++

			if Classify(entry.Name) == KindSfxStub {
				x.log.Info("found self-extracting archive", "entry", entry.Name, "depth", depth+1)
				t.nested(archive, entry.Name, x.extractContainer(dest, target, depth+1))
			}
		}
	}

	out := t.outcome()
	if out.Status == StatusPartiallyFailed {
		x.log.Warn("extraction partially failed", "archive", archive, "reason", out.Reason)
	} else {
		x.log.Info("extraction completed", "archive", archive, "files", out.Files, "dirs", out.Dirs)
	}
	return out
}

// abort ends the current container. Counters and failures collected so far
// are kept in the outcome.
func (x *Extractor) abort(archive string, t *tally, err error) Outcome {
	x.log.Error("extraction aborted", "archive", archive, "error", err)
	out := t.outcome()
	out.Status = StatusAborted
	out.Reason = err.Error()
	out.Err = err
	return out
}

// tally accumulates what one container call did, including nested calls.
type tally struct {
	files, dirs, skipped int
	failures             []Failure
}

func (t *tally) fail(f Failure) {
	t.failures = append(t.failures, f)
}

// nested folds the outcome of a nested container into t.
func (t *tally) nested(archive, entry string, o Outcome) {
	t.files += o.Files
	t.dirs += o.Dirs
	t.skipped += o.Skipped
	t.failures = append(t.failures, o.Failures...)

	if o.Status == StatusAborted {
		t.fail(Failure{Archive: archive, Entry: entry, Err: o.Err})
	}
}

func (t *tally) outcome() Outcome {
	out := Outcome{
		Status:   StatusCompleted,
		Failures: t.failures,
		Files:    t.files,
		Dirs:     t.dirs,
		Skipped:  t.skipped,
	}
	if len(t.failures) > 0 {
		out.Status = StatusPartiallyFailed
		out.Reason = summarize(t.failures)
	}
	return out
}

func summarize(failures []Failure) string {
	names := make([]string, 0, len(failures))
	codec := false
	for _, f := range failures {
		names = append(names, f.Entry)
		if errors.Is(f.Err, ErrUnsupportedEntryCodec) {
			codec = true
		}
	}

	reason := fmt.Sprintf("%d entries failed: %s", len(failures), strings.Join(names, ", "))
	if codec {
		reason += "; extract them with an external 7-Zip tool"
	}
	return reason
}
