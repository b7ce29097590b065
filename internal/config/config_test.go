package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"aslsp/internal/logger"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir(), "", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxDiagnostics != DefaultMaxDiagnostics || cfg.ProbeCache != DefaultProbeCache {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.LogLevel != "info" || cfg.FrameworkLib != "" || cfg.FileUsed != "" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "framework_lib: sdk/frameworks\nlog_level: warn\nprobe_cache: 2\ntimings: true\n")

	cfg, err := LoadFrom(dir, "", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FileUsed != path {
		t.Fatalf("expected %s to be used, got %q", path, cfg.FileUsed)
	}
	if cfg.FrameworkLib != filepath.Join(dir, "sdk", "frameworks") {
		t.Fatalf("relative framework path must resolve against %s, got %s", dir, cfg.FrameworkLib)
	}
	if cfg.LogLevel != "warn" || cfg.ProbeCache != 2 || !cfg.Timings {
		t.Fatalf("file values not applied: %+v", cfg)
	}

	t.Setenv("ASLSP_LOG_LEVEL", "debug")
	t.Setenv("ASLSP_PROBE_CACHE", "8")
	cfg, err = LoadFrom(dir, "", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.ProbeCache != 8 {
		t.Fatalf("env must override file: %+v", cfg)
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(flags)
	if err := flags.Parse([]string{"--log-level=error", "--framework-lib=/opt/royale/frameworks"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err = LoadFrom(dir, "", flags)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "error" || cfg.FrameworkLib != "/opt/royale/frameworks" {
		t.Fatalf("flags must override env: %+v", cfg)
	}
	if cfg.ProbeCache != 8 {
		t.Fatalf("unset flags must not override env, got %d", cfg.ProbeCache)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(other, []byte("max_diagnostics: 5\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	writeConfig(t, dir, "max_diagnostics: 50\n")

	cfg, err := LoadFrom(dir, other, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxDiagnostics != 5 || cfg.FileUsed != other {
		t.Fatalf("explicit file must win: %+v", cfg)
	}

	if _, err := LoadFrom(dir, filepath.Join(dir, "missing.yaml"), nil); err == nil {
		t.Fatalf("expected error for missing explicit file")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "log_level: chatty\n")
	if _, err := LoadFrom(dir, "", nil); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected invalid log level, got %v", err)
	}

	cfg := &Config{LogLevel: "info", ProbeCache: -1}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected invalid probe cache, got %v", err)
	}
}

func TestLoggerConfig(t *testing.T) {
	cfg := &Config{LogLevel: "debug", LogJSON: true}
	lc := cfg.LoggerConfig()
	if lc.Level != logger.DebugLevel || !lc.JSON {
		t.Fatalf("unexpected logger config %+v", lc)
	}
}

func TestFrameworkLibRelativeToConfigFile(t *testing.T) {
	cwd := t.TempDir()
	etc := t.TempDir()
	path := filepath.Join(etc, "aslsp.yaml")
	if err := os.WriteFile(path, []byte("framework_lib: royale/frameworks\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFrom(cwd, path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if want := filepath.Join(etc, "royale", "frameworks"); cfg.FrameworkLib != want {
		t.Fatalf("file value must resolve against %s, got %s", etc, cfg.FrameworkLib)
	}

	t.Setenv("ASLSP_FRAMEWORK_LIB", "sdk")
	cfg, err = LoadFrom(cwd, path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if want := filepath.Join(cwd, "sdk"); cfg.FrameworkLib != want {
		t.Fatalf("env value must resolve against %s, got %s", cwd, cfg.FrameworkLib)
	}
}
