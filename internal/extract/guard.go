package extract

import (
	"path/filepath"
	"strings"
)

// Resolve maps an untrusted archive entry name onto root.
//
// Both '/' and '\' are treated as separators since 7z archives produced on
// Windows record backslashes. The check is purely lexical: nothing on disk
// is consulted, so symlinks are handled separately when the entry is written.
// The returned path is root itself or a descendant of it.
func Resolve(root, name string) (string, error) {
	if name == "" {
		return "", &TraversalError{Root: root, Name: name, Reason: "empty name"}
	}

	slashed := strings.ReplaceAll(name, `\`, "/")
	if hasDriveLetter(slashed) {
		return "", &TraversalError{Root: root, Name: name, Reason: "volume prefix"}
	}
	if strings.HasPrefix(slashed, "/") || filepath.IsAbs(name) {
		return "", &TraversalError{Root: root, Name: name, Reason: "absolute path"}
	}

	cleanRoot := filepath.Clean(root)
	target := filepath.Join(cleanRoot, filepath.FromSlash(slashed))

	rel, err := filepath.Rel(cleanRoot, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &TraversalError{Root: root, Name: name, Reason: "parent traversal"}
	}

	return target, nil
}

// hasDriveLetter reports names like "C:evil" or "c:/evil".
func hasDriveLetter(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
