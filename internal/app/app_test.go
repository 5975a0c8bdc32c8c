package app

import (
	"os"
	"path/filepath"
	"testing"

	"growfortress/simcore/internal/telemetry"
)

func TestLoadServiceConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadServiceConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if len(cfg.LogSinks) != 1 || cfg.LogSinks[0] != "console" {
		t.Fatalf("expected console sink default, got %v", cfg.LogSinks)
	}
}

func TestLoadServiceConfigReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simd.yaml")
	body := "addr: \":9090\"\nmaxStoredBattles: 16\nlogSinks: [console, json]\nlogJsonPath: events.ndjson\nenablePprofTrace: true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadServiceConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("unexpected addr %q", cfg.Addr)
	}
	if cfg.MaxStoredBattles != 16 {
		t.Fatalf("unexpected maxStoredBattles %d", cfg.MaxStoredBattles)
	}
	if len(cfg.LogSinks) != 2 || cfg.LogSinks[1] != "json" {
		t.Fatalf("unexpected sinks %v", cfg.LogSinks)
	}
	if cfg.LogJSONPath != "events.ndjson" || !cfg.EnablePprofTrace {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadServiceConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simd.yaml")
	if err := os.WriteFile(path, []byte("addr: [\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadServiceConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SIMD_ADDR", ":7070")
	t.Setenv("SIMD_MAX_STORED", "32")
	t.Setenv("ENABLE_PPROF_TRACE", "true")

	var warnings []string
	logger := telemetry.LoggerFunc(func(format string, args ...any) {
		warnings = append(warnings, format)
	})

	cfg := applyEnvOverrides(ServiceConfig{}.normalized(), logger)
	if cfg.Addr != ":7070" {
		t.Fatalf("expected env addr, got %q", cfg.Addr)
	}
	if cfg.MaxStoredBattles != 32 {
		t.Fatalf("expected env max stored, got %d", cfg.MaxStoredBattles)
	}
	if !cfg.EnablePprofTrace {
		t.Fatalf("expected pprof trace enabled")
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
}

func TestApplyEnvOverridesWarnsOnBadValues(t *testing.T) {
	t.Setenv("SIMD_MAX_STORED", "lots")
	t.Setenv("ENABLE_PPROF_TRACE", "maybe")

	var warnings int
	logger := telemetry.LoggerFunc(func(format string, args ...any) {
		warnings++
	})

	cfg := applyEnvOverrides(ServiceConfig{MaxStoredBattles: 8}.normalized(), logger)
	if cfg.MaxStoredBattles != 8 {
		t.Fatalf("bad env value should keep the file setting, got %d", cfg.MaxStoredBattles)
	}
	if cfg.EnablePprofTrace {
		t.Fatalf("bad env value should keep pprof disabled")
	}
	if warnings != 2 {
		t.Fatalf("expected 2 warnings, got %d", warnings)
	}
}
