package platform

import (
	"fmt"
	"strings"
)

// familyMap maps gopsutil family strings to canonical family names.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian,
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
}

// normalizeArch converts GOARCH or uname style names and reports the word size.
func normalizeArch(arch string) (string, int, error) {
	switch strings.ToLower(strings.TrimSpace(arch)) {
	case "amd64", "x86_64", "x64":
		return "amd64", 64, nil
	case "arm64", "aarch64":
		return "arm64", 64, nil
	case "386", "i386", "i686", "x86":
		return "386", 32, nil
	case "arm", "armv7l", "armv6l":
		return "arm", 32, nil
	default:
		return "", 0, fmt.Errorf("unsupported architecture: %s", arch)
	}
}

// normalizePlatform converts platform IDs to lowercase for consistency.
func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

// mapFamily resolves the canonical family. Only Linux consults the reported
// family; other systems are their own family.
func mapFamily(goos, family string) string {
	switch goos {
	case "windows":
		return FamilyWindows
	case "darwin":
		return FamilyDarwin
	}

	if canonical, ok := familyMap[normalizePlatform(family)]; ok {
		return canonical
	}
	return FamilyUnknown
}
