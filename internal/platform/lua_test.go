package platform

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func windowsInfo() *Info {
	return &Info{
		OS:       "windows",
		Arch:     "amd64",
		ArchRaw:  "amd64",
		Bits:     64,
		Platform: "microsoft windows 11 pro",
		Family:   FamilyWindows,
		Version:  "10.0.22631",
	}
}

func TestInjectPlatformTable(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, windowsInfo()); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	tests := []struct {
		name string
		code string
		want lua.LValue
	}{
		{"os", `return platform.os`, lua.LString("windows")},
		{"arch", `return platform.arch`, lua.LString("amd64")},
		{"bits", `return platform.bits`, lua.LNumber(64)},
		{"family", `return platform.family`, lua.LString("windows")},
		{"version", `return platform.version`, lua.LString("10.0.22631")},
		{"is_windows", `return platform.is_windows`, lua.LTrue},
		{"is_linux", `return platform.is_linux`, lua.LFalse},
		{"is_macos", `return platform.is_macos`, lua.LFalse},
		{"is_64bit", `return platform.is_64bit`, lua.LTrue},
		{"path_key", `return platform.path_key`, lua.LString("Path")},
		{"path_separator", `return platform.path_separator`, lua.LString(";")},
		{"exe_suffix", `return platform.exe_suffix`, lua.LString(".exe")},
		{"when true", `return platform.when(platform.is_windows, "usr/bin")`, lua.LString("usr/bin")},
		{"when false", `return platform.when(platform.is_linux, "bin")`, lua.LNil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := L.DoString(tt.code); err != nil {
				t.Fatalf("failed to execute code: %v", err)
			}
			got := L.Get(-1)
			L.Pop(1)

			if got.Type() != tt.want.Type() {
				t.Errorf("type mismatch: got %v, want %v", got.Type(), tt.want.Type())
				return
			}
			if got.String() != tt.want.String() {
				t.Errorf("value mismatch: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInjectPlatformTable_ReadOnly(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, windowsInfo()); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	tests := []struct {
		name string
		code string
	}{
		{"modify existing field", `platform.os = "linux"`},
		{"add new field", `platform.custom = true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := L.DoString(tt.code)
			if err == nil {
				t.Fatal("expected error when modifying platform table")
			}
		})
	}

	if err := L.DoString(`return platform.os`); err != nil {
		t.Fatal(err)
	}
	if got := L.Get(-1).String(); got != "windows" {
		t.Errorf("platform.os = %q after failed writes", got)
	}
	L.Pop(1)
}

func TestInjectPlatformTable_ErrorMessage(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, &Info{OS: "linux", Arch: "arm64", Bits: 64}); err != nil {
		t.Fatal(err)
	}

	err := L.DoString(`platform.os = "windows"`)
	if err == nil || !strings.Contains(err.Error(), "read-only") {
		t.Errorf("expected read-only error, got %v", err)
	}
}
