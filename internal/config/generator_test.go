package config

import (
	"context"
	"strings"
	"testing"
	"time"
)

func fixedGenerator() *Generator {
	g := NewGenerator()
	g.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return g
}

func TestGenerate_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.BaseDir = `C:\Users\me\tools "portable"`
	cfg.TempDir = "/var/tmp"
	cfg.MaxDepth = 3
	cfg.Product.Version = "2.45.0.1"

	code, err := fixedGenerator().Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	got, err := NewParser(nil).ParseString(context.Background(), code)
	if err != nil {
		t.Fatalf("generated config does not parse: %v\n%s", err, code)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestGenerate_Output(t *testing.T) {
	cfg := Default()
	cfg.BaseDir = "/opt/tools"
	cfg.Repository = "/opt/m2"
	cfg.Product.Artifact = Artifact{}

	code, err := fixedGenerator().Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := `-- ptinstall configuration
-- Generated: 2024-05-01T12:00:00Z

ptinstall = {
  base_dir = "/opt/tools",
  repository = "/opt/m2",
  max_depth = 4,
  log_level = "info",

  product = {
    name = "PortableGit",
    version = "2.37.0.1",
    bin_dir = "usr/bin",
  },
}
`
	if code != want {
		t.Errorf("Generate() =\n%s\nwant\n%s", code, want)
	}
}

func TestGenerate_Invalid(t *testing.T) {
	if _, err := NewGenerator().Generate(nil); err == nil {
		t.Error("expected error for nil config")
	}

	cfg := Default()
	cfg.Product.Name = ""
	if _, err := NewGenerator().Generate(cfg); err == nil {
		t.Error("expected validation error")
	}
}

func TestQuoteLuaString(t *testing.T) {
	g := NewGenerator()
	tests := map[string]string{
		`plain`:      `"plain"`,
		`C:\tools`:   `"C:\\tools"`,
		`say "hi"`:   `"say \"hi\""`,
		"a\nb\tc\rd": `"a\nb\tc\rd"`,
	}
	for in, want := range tests {
		if got := g.quoteLuaString(in); got != want {
			t.Errorf("quoteLuaString(%q) = %s, want %s", in, got, want)
		}
	}
	if !strings.HasPrefix(g.quoteLuaString(""), `"`) {
		t.Error("empty string must still be quoted")
	}
}
