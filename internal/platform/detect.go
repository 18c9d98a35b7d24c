package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect reports the running host. OS and architecture come from the Go
// runtime; platform, family and version from gopsutil.
//
// A gopsutil failure is not fatal: the platform fields stay empty and
// Family falls back to the OS family. A cancelled context is.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info, err := Static(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}

	platform, family, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		return info, nil
	}

	if platform = normalizePlatform(platform); platform != "" {
		info.Platform = platform
		info.Family = mapFamily(info.OS, family)
		info.Version = normalizePlatform(version)
	}

	return info, nil
}

// Static builds Info for goos and goarch without probing the host, e.g. to
// compute paths for another target.
func Static(goos, goarch string) (*Info, error) {
	arch, bits, err := normalizeArch(goarch)
	if err != nil {
		return nil, err
	}

	info := &Info{
		OS:      goos,
		Arch:    arch,
		ArchRaw: goarch,
		Bits:    bits,
	}
	if goos != "linux" {
		info.Family = mapFamily(goos, "")
	}
	return info, nil
}

// staticDetector always returns the same Info.
type staticDetector struct {
	info *Info
}

// Fixed returns a Detector that reports info unchanged.
func Fixed(info *Info) Detector {
	return &staticDetector{info: info}
}

func (s *staticDetector) Detect(ctx context.Context) (*Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	copied := *s.info
	return &copied, nil
}
