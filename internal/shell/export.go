package shell

import (
	"fmt"
	"strings"
)

// ExportPath returns a statement for shell s that prepends dir to the
// search path variable key. sep is the platform list separator; fish
// ignores it because it keeps PATH as a list.
func ExportPath(s ShellType, key, dir, sep string) (string, error) {
	switch s {
	case ShellBash, ShellZsh:
		return fmt.Sprintf(`export %s="%s%s$%s"`, key, posixEscape(dir), sep, key), nil
	case ShellFish:
		return fmt.Sprintf(`set -gx %s "%s" $%s`, key, fishEscape(dir), key), nil
	case ShellPowerShell:
		return fmt.Sprintf(`$env:%s = "%s%s" + $env:%s`, key, powerShellEscape(dir), sep, key), nil
	case ShellCmd:
		return fmt.Sprintf(`set "%s=%s%s%%%s%%"`, key, dir, sep, key), nil
	default:
		return "", &UnsupportedShellError{Shell: s.String()}
	}
}

// posixEscape escapes the characters that stay special inside double quotes.
func posixEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")
	return r.Replace(s)
}

func fishEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)
	return r.Replace(s)
}

func powerShellEscape(s string) string {
	r := strings.NewReplacer("`", "``", `"`, "`\"", `$`, "`$")
	return r.Replace(s)
}
