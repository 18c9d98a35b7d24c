package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrTraversal indicates an entry path that resolves outside the install root.
	ErrTraversal = errors.New("entry escapes install root")

	// ErrCorruptContainer indicates that decompression or container header
	// parsing failed. The current container cannot be read any further.
	ErrCorruptContainer = errors.New("corrupt container")

	// ErrUnsupportedEntryCodec indicates that a single entry of an otherwise
	// readable container could not be decoded.
	ErrUnsupportedEntryCodec = errors.New("unsupported entry codec")

	// ErrSignatureNotFound indicates that an SFX stub has no embedded 7z payload.
	ErrSignatureNotFound = errors.New("7z signature not found")

	// ErrDepthExceeded indicates nested self-extracting archives deeper than
	// the configured limit.
	ErrDepthExceeded = errors.New("nested archive depth exceeded")

	// ErrUnsupportedArchive indicates a source whose name matches no known
	// container format.
	ErrUnsupportedArchive = errors.New("unsupported archive type")
)

// TraversalError reports an archive entry rejected by Resolve.
type TraversalError struct {
	Root   string
	Name   string
	Reason string
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("illegal entry path %q (%s): resolves outside %s", e.Name, e.Reason, e.Root)
}

// Is lets errors.Is(err, ErrTraversal) match.
func (e *TraversalError) Is(target error) bool {
	return target == ErrTraversal
}
