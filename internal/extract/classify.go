package extract

import (
	"path"
	"strings"
)

// SfxPattern identifies self-extracting 7z executables, e.g. PortableGit-2.37.0.1-64-bit.7z.exe.
const SfxPattern = "7z.exe"

// Kind is the extraction route for a file, decided once from its name.
type Kind int

const (
	// KindPlain is written to disk and left alone.
	KindPlain Kind = iota
	// KindTarGz is a gzip-compressed tar stream.
	KindTarGz
	// KindSevenZip is a standalone 7z container.
	KindSevenZip
	// KindSfxStub is an executable with an embedded 7z payload.
	KindSfxStub
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindTarGz:
		return "tar.gz"
	case KindSevenZip:
		return "7z"
	case KindSfxStub:
		return "sfx"
	default:
		return "unknown"
	}
}

// Classify decides how a file should be treated from the final segment of
// its name. Matching is case-insensitive.
func Classify(name string) Kind {
	base := strings.ToLower(path.Base(strings.ReplaceAll(name, `\`, "/")))

	switch {
	case strings.Contains(base, SfxPattern):
		return KindSfxStub
	case strings.HasSuffix(base, ".7z"):
		return KindSevenZip
	case strings.HasSuffix(base, ".tar.gz"), strings.HasSuffix(base, ".tgz"):
		return KindTarGz
	default:
		return KindPlain
	}
}
