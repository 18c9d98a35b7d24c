package install

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/portable-tools/ptinstall/internal/platform"
)

func TestPrependPath(t *testing.T) {
	linux := &platform.Info{OS: "linux"}
	windows := &platform.Info{OS: "windows"}

	tests := []struct {
		name    string
		environ []string
		binDir  string
		info    *platform.Info
		want    []string
	}{
		{
			name:    "unix PATH",
			environ: []string{"HOME=/home/me", "PATH=/usr/bin:/bin"},
			binDir:  "/opt/PortableGit/usr/bin",
			info:    linux,
			want:    []string{"HOME=/home/me", "PATH=/opt/PortableGit/usr/bin:/usr/bin:/bin"},
		},
		{
			name:    "unix without PATH",
			environ: []string{"HOME=/home/me"},
			binDir:  "/opt/bin",
			info:    linux,
			want:    []string{"HOME=/home/me", "PATH=/opt/bin"},
		},
		{
			name:    "unix empty PATH",
			environ: []string{"PATH="},
			binDir:  "/opt/bin",
			info:    linux,
			want:    []string{"PATH=/opt/bin"},
		},
		{
			name:    "windows Path",
			environ: []string{`Path=C:\Windows;C:\Program Files\Java\bin`},
			binDir:  `C:\m2\PortableGit\usr\bin`,
			info:    windows,
			want:    []string{`Path=C:\m2\PortableGit\usr\bin;C:\Windows;C:\Program Files\Java\bin`},
		},
		{
			name:    "windows Path preferred over PATH",
			environ: []string{`PATH=C:\other`, `Path=C:\Windows`},
			binDir:  `C:\git`,
			info:    windows,
			want:    []string{`PATH=C:\other`, `Path=C:\git;C:\Windows`},
		},
		{
			name:    "windows bash PATH quotes Program Files",
			environ: []string{`PATH=C:\Program Files\Java\bin;C:\Windows`},
			binDir:  `C:\git`,
			info:    windows,
			want:    []string{`PATH=C:\git;C:\"Program Files"\Java\bin;C:\Windows`},
		},
		{
			name:    "windows without any path",
			environ: nil,
			binDir:  `C:\git`,
			info:    windows,
			want:    []string{`Path=C:\git`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := append([]string(nil), tt.environ...)

			got := PrependPath(tt.environ, tt.binDir, tt.info)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, orig, tt.environ, "input must not be modified")
		})
	}
}
