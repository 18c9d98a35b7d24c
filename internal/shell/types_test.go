package shell

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want ShellType
	}{
		{"bash", ShellBash},
		{"/bin/bash", ShellBash},
		{"/bin/sh", ShellBash},
		{"/usr/bin/zsh", ShellZsh},
		{"/usr/local/bin/fish", ShellFish},
		{"pwsh", ShellPowerShell},
		{`C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`, ShellPowerShell},
		{`C:\Windows\system32\cmd.exe`, ShellCmd},
		{"CMD.EXE", ShellCmd},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Unsupported(t *testing.T) {
	for _, in := range []string{"", "/bin/ksh", "tcsh", "unknown"} {
		got, err := Parse(in)
		var unsupported *UnsupportedShellError
		if !errors.As(err, &unsupported) {
			t.Errorf("Parse(%q) error = %v, want *UnsupportedShellError", in, err)
		}
		if got != ShellUnknown {
			t.Errorf("Parse(%q) = %v, want unknown", in, got)
		}
	}

	err := &UnsupportedShellError{Shell: "ksh"}
	if got := err.Error(); got != "unsupported shell: ksh (supported: bash, zsh, fish, powershell, cmd)" {
		t.Errorf("Error() = %q", got)
	}
}
