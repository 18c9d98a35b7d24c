package extract

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"PortableGit-2.37.0.1-64-bit.7z.exe", KindSfxStub},
		{"PortableGit-64-bit.7Z.EXE", KindSfxStub},
		{`tools\PortableGit-64-bit.7z.exe`, KindSfxStub},
		{"nested/dir/setup.7z.exe", KindSfxStub},
		{"7z.exe.d/readme.txt", KindPlain},
		{"payload.7z", KindSevenZip},
		{"git-for-windows-2.37.0.1-portable.tar.gz", KindTarGz},
		{"archive.TGZ", KindTarGz},
		{"git.exe", KindPlain},
		{"README", KindPlain},
		{"", KindPlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.name); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindPlain, "plain"},
		{KindTarGz, "tar.gz"},
		{KindSevenZip, "7z"},
		{KindSfxStub, "sfx"},
		{Kind(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
