// Package shell detects the user's shell and renders statements that put a
// directory in front of its executable search path.
package shell

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ShellType represents a supported shell
type ShellType string

const (
	ShellBash       ShellType = "bash"
	ShellZsh        ShellType = "zsh"
	ShellFish       ShellType = "fish"
	ShellPowerShell ShellType = "powershell"
	ShellCmd        ShellType = "cmd"
	ShellUnknown    ShellType = "unknown"
)

// Supported lists the shells ExportPath can render, in display order.
var Supported = []ShellType{ShellBash, ShellZsh, ShellFish, ShellPowerShell, ShellCmd}

// String returns the string representation of the shell type
func (s ShellType) String() string {
	return string(s)
}

// IsValid returns true if the shell type is supported
func (s ShellType) IsValid() bool {
	switch s {
	case ShellBash, ShellZsh, ShellFish, ShellPowerShell, ShellCmd:
		return true
	default:
		return false
	}
}

// Parse maps a shell name or binary path ("/bin/zsh", "pwsh.exe") to its
// type. Unrecognized names yield an *UnsupportedShellError.
func Parse(name string) (ShellType, error) {
	if s := parseShellFromPath(name); s.IsValid() {
		return s, nil
	}
	return ShellUnknown, &UnsupportedShellError{Shell: name}
}

// parseShellFromPath extracts the shell type from a shell binary path.
func parseShellFromPath(shellPath string) ShellType {
	base := strings.ToLower(filepath.Base(strings.ReplaceAll(shellPath, `\`, "/")))
	base = strings.TrimSuffix(base, ".exe")

	switch base {
	case "bash", "sh":
		return ShellBash
	case "zsh":
		return ShellZsh
	case "fish":
		return ShellFish
	case "pwsh", "powershell":
		return ShellPowerShell
	case "cmd":
		return ShellCmd
	default:
		return ShellUnknown
	}
}

// DetectionResult contains the result of shell detection
type DetectionResult struct {
	Shell ShellType
	// Method describes how the shell was detected
	Method    string
	ShellPath string
}

// UnsupportedShellError represents an unsupported shell error
type UnsupportedShellError struct {
	Shell string
}

func (e *UnsupportedShellError) Error() string {
	names := make([]string, len(Supported))
	for i, s := range Supported {
		names[i] = s.String()
	}
	return fmt.Sprintf("unsupported shell: %s (supported: %s)", e.Shell, strings.Join(names, ", "))
}
