package install

import (
	"strings"

	"github.com/portable-tools/ptinstall/internal/platform"
)

// PrependPath returns a copy of environ ("KEY=value" pairs) with binDir in
// front of the executable search path, so child processes find the
// installed tools first.
//
// On Windows the "Path" spelling used by cmd and PowerShell wins. When only
// "PATH" exists (bash on Windows) "Program Files" is quoted, since that
// shell splits unquoted entries at the space. Elsewhere PATH is used. A
// missing variable is created.
func PrependPath(environ []string, binDir string, info *platform.Info) []string {
	out := make([]string, len(environ))
	copy(out, environ)

	sep := info.ListSeparator()
	if !info.IsWindows() {
		return prepend(out, "PATH", binDir, sep, nil)
	}

	if lookup(out, "Path") >= 0 {
		return prepend(out, "Path", binDir, sep, nil)
	}
	if lookup(out, "PATH") >= 0 {
		return prepend(out, "PATH", binDir, sep, quoteProgramFiles)
	}
	return prepend(out, info.PathKey(), binDir, sep, nil)
}

func prepend(environ []string, key, dir, sep string, rewrite func(string) string) []string {
	i := lookup(environ, key)
	if i < 0 {
		return append(environ, key+"="+dir)
	}

	current := environ[i][len(key)+1:]
	if rewrite != nil {
		current = rewrite(current)
	}
	if current == "" {
		environ[i] = key + "=" + dir
	} else {
		environ[i] = key + "=" + dir + sep + current
	}
	return environ
}

// lookup finds key with exact case; Windows spellings differ only in case.
func lookup(environ []string, key string) int {
	prefix := key + "="
	for i, kv := range environ {
		if strings.HasPrefix(kv, prefix) {
			return i
		}
	}
	return -1
}

func quoteProgramFiles(path string) string {
	return strings.ReplaceAll(path, "Program Files", `"Program Files"`)
}
