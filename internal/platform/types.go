// Package platform describes the host an installation runs on.
//
// The installer needs little more than the operating system and word size:
// they decide which variable carries the executable search path, how its
// entries are separated, and whether a 64-bit distribution is appropriate.
// Host details come from gopsutil and are exposed read-only to Lua
// configuration files as the global "platform" table.
package platform

import "context"

// Operating system families. Linux distributions map onto the first group.
const (
	FamilyDebian  = "debian"
	FamilyRHEL    = "rhel"
	FamilyFedora  = "fedora"
	FamilySUSE    = "suse"
	FamilyArch    = "arch"
	FamilyAlpine  = "alpine"
	FamilyWindows = "windows"
	FamilyDarwin  = "darwin"
	FamilyUnknown = "unknown"
)

// Info contains platform detection information.
type Info struct {
	OS       string // "linux", "darwin", "windows"
	Arch     string // normalized: "amd64", "arm64", "386", "arm"
	ArchRaw  string // original GOARCH
	Bits     int    // 64 or 32, 0 when unknown
	Platform string // lowercased host platform, e.g. "ubuntu" or "microsoft windows 11 pro"
	Family   string // one of the Family constants
	Version  string // platform version, e.g. "22.04" or "10.0.22631"
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// Is64Bit reports a 64-bit architecture.
func (i *Info) Is64Bit() bool {
	return i.Bits == 64
}

// PathKey is the environment variable holding the executable search path.
// Windows spells it "Path"; lookups there are case-insensitive but
// environment slices handed to child processes are not.
func (i *Info) PathKey() string {
	if i.IsWindows() {
		return "Path"
	}
	return "PATH"
}

// ListSeparator separates entries of the search path.
func (i *Info) ListSeparator() string {
	if i.IsWindows() {
		return ";"
	}
	return ":"
}

// ExeSuffix is appended to executable names.
func (i *Info) ExeSuffix() string {
	if i.IsWindows() {
		return ".exe"
	}
	return ""
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
