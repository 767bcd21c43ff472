package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if cfg.Redux.Count != 100 || cfg.Redux.MaxCost != 0 {
		t.Errorf("unexpected redux defaults %+v", cfg.Redux)
	}
	if cfg.Subdivide.Steps != 1 {
		t.Errorf("expected 1 subdivision step, got %d", cfg.Subdivide.Steps)
	}
	if cfg.Physics.Density != 1 {
		t.Errorf("expected density 1, got %f", cfg.Physics.Density)
	}
	if cfg.Output.Dir != "." || !cfg.Output.Binary {
		t.Errorf("unexpected output defaults %+v", cfg.Output)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
logging:
  level: "debug"
  log_file: "meshtool.log"

redux:
  count: 40
  max_cost: 0.25

subdivide:
  steps: 3
  smooth: 0.5

physics:
  density: 7.8

output:
  dir: "out"
  binary: false
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "meshtool.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
	if cfg.Redux.Count != 40 || cfg.Redux.MaxCost != 0.25 {
		t.Errorf("unexpected redux %+v", cfg.Redux)
	}
	if cfg.Subdivide.Steps != 3 || cfg.Subdivide.Smooth != 0.5 {
		t.Errorf("unexpected subdivide %+v", cfg.Subdivide)
	}
	if cfg.Physics.Density != 7.8 {
		t.Errorf("expected density 7.8, got %f", cfg.Physics.Density)
	}
	if cfg.Output.Dir != "out" || cfg.Output.Binary {
		t.Errorf("unexpected output %+v", cfg.Output)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("physics:\n  density: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Physics.Density != 2 {
		t.Errorf("expected density 2, got %f", cfg.Physics.Density)
	}
	if cfg.Redux.Count != 100 {
		t.Errorf("expected default redux count to survive, got %d", cfg.Redux.Count)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad syntax", "redux:\n  count: not a number\n  invalid syntax here\n"},
		{"unknown key", "redux:\n  cuont: 10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Errorf("empty file should keep defaults, got %v", err)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("meshtool.yaml", []byte("redux:\n  count: 5\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path != "./meshtool.yaml" {
		t.Errorf("expected ./meshtool.yaml, got %q", path)
	}
}

func TestBindFlags(t *testing.T) {
	fs := pflag.NewFlagSet("meshtool", pflag.ContinueOnError)
	BindFlags(fs)
	t.Cleanup(resetFlags)

	err := fs.Parse([]string{"--debug", "--log-file", "run.log", "-o", "meshes", "--text"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg := Default()
	applyFlags(cfg)
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "run.log" {
		t.Errorf("expected log file run.log, got %s", cfg.Logging.LogFile)
	}
	if cfg.Output.Dir != "meshes" {
		t.Errorf("expected output dir meshes, got %s", cfg.Output.Dir)
	}
	if cfg.Output.Binary {
		t.Error("expected text output with --text")
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
logging:
  level: "warn"
output:
  dir: "from-file"
physics:
  density: 3
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	flagConfig = configPath
	flagOutput = "from-flag"
	t.Cleanup(resetFlags)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Output.Dir != "from-flag" {
		t.Errorf("expected output dir from flag, got %s", cfg.Output.Dir)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level from file, got %s", cfg.Logging.Level)
	}
	if cfg.Physics.Density != 3 {
		t.Errorf("expected density 3 from file, got %f", cfg.Physics.Density)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Redux.MaxCost = 0.5
	cfg.Output.Binary = false
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, cfg)
	}
}

func TestSave(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir ignores XDG_CONFIG_HOME on this OS")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := Default().Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved config missing: %v", err)
	}
}

func resetFlags() {
	flagConfig = ""
	flagDebug = false
	flagLogFile = ""
	flagOutput = ""
	flagText = false
}
