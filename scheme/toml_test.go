package scheme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/keybind"
	"github.com/dshills/keybind/key"
)

func TestLoadTOMLConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keybind.toml")
	content := `
platform = "mac"
sequence_timeout_ms = 750
log_level = "debug"
scheme = "bindings.json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadTOMLConfig(path)
	if err != nil {
		t.Fatalf("LoadTOMLConfig() error = %v", err)
	}
	if cfg.Platform != "mac" {
		t.Errorf("Platform = %q, want %q", cfg.Platform, "mac")
	}
	if cfg.SequenceTimeoutMS != 750 {
		t.Errorf("SequenceTimeoutMS = %d, want 750", cfg.SequenceTimeoutMS)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Scheme != "bindings.json" {
		t.Errorf("Scheme = %q, want %q", cfg.Scheme, "bindings.json")
	}
}

func TestLoadTOMLConfig_Missing(t *testing.T) {
	cfg, err := LoadTOMLConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadTOMLConfig(missing) error = %v, want nil", err)
	}
	if cfg != (Config{}) {
		t.Errorf("LoadTOMLConfig(missing) = %+v, want zero config", cfg)
	}
}

func TestLoadTOMLConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("platform = [unclosed"), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	_, err := LoadTOMLConfig(path)
	if err == nil {
		t.Fatal("LoadTOMLConfig(malformed) expected error")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("error = %T, want *ParseError", err)
	}
	if parseErr.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", parseErr.Path, path)
	}
}

func TestConfig_EngineOptions(t *testing.T) {
	if opts := (Config{}).EngineOptions(); len(opts) != 0 {
		t.Errorf("zero config produced %d options, want 0", len(opts))
	}

	cfg := Config{Platform: "darwin", SequenceTimeoutMS: 250, LogLevel: "error"}
	opts := cfg.EngineOptions()
	if len(opts) != 3 {
		t.Fatalf("EngineOptions() = %d options, want 3", len(opts))
	}

	e := keybind.New(opts...)
	defer e.Close()
	if e.Platform() != key.PlatformMac {
		t.Errorf("engine Platform = %q, want %q", e.Platform(), key.PlatformMac)
	}
	if e.SequenceTimeout() != 250*time.Millisecond {
		t.Errorf("engine SequenceTimeout = %v, want 250ms", e.SequenceTimeout())
	}
}
