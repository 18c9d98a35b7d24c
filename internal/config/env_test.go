package config

import (
	"testing"
)

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	environ := map[string]string{
		"PTINSTALL_BASE_DIR":   "/env/base",
		"PTINSTALL_REPOSITORY": "/env/repo",
		"PTINSTALL_TEMP_DIR":   "/env/tmp",
		"PTINSTALL_MAX_DEPTH":  "7",
		"PTINSTALL_LOG_LEVEL":  "warn",
		"UNRELATED":            "x",
	}

	if err := ApplyEnv(cfg, environ); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.BaseDir != "/env/base" || cfg.Repository != "/env/repo" || cfg.TempDir != "/env/tmp" {
		t.Errorf("dirs not applied: %+v", cfg)
	}
	if cfg.MaxDepth != 7 || cfg.LogLevel != "warn" {
		t.Errorf("MaxDepth/LogLevel = %d/%q", cfg.MaxDepth, cfg.LogLevel)
	}
	if cfg.Product != Default().Product {
		t.Errorf("product changed: %+v", cfg.Product)
	}
}

func TestApplyEnv_UnsetKeepsValues(t *testing.T) {
	cfg := Default()
	cfg.BaseDir = "/from/file"

	if err := ApplyEnv(cfg, map[string]string{}); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.BaseDir != "/from/file" {
		t.Errorf("BaseDir = %q", cfg.BaseDir)
	}
}

func TestApplyEnv_BadNumber(t *testing.T) {
	if err := ApplyEnv(Default(), map[string]string{"PTINSTALL_MAX_DEPTH": "deep"}); err == nil {
		t.Fatal("expected error for non-numeric PTINSTALL_MAX_DEPTH")
	}
}
