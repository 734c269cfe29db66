package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simulation.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeTemp(t, `
defaults:
  initial_speed: 80
  launch_angle_deg: 30
constants:
  sample_cap: 500
planets:
  - name: Titan
    gravity: 1.35
`)
	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Defaults.InitialSpeed != 80 || cfg.Defaults.LaunchAngleDeg != 30 {
		t.Errorf("unexpected defaults: %+v", cfg.Defaults)
	}
	if cfg.Defaults.Gravity != 9.8 || cfg.Defaults.DragCoefficient != 0.47 {
		t.Errorf("unset fields should keep built-in defaults: %+v", cfg.Defaults)
	}
	if cfg.Constants.SampleCap != 500 || cfg.Constants.NumericStep != 0.01 {
		t.Errorf("unexpected constants: %+v", cfg.Constants)
	}
	if len(cfg.Planets) != 1 || cfg.Planets[0].Name != "Titan" {
		t.Errorf("unexpected planets: %+v", cfg.Planets)
	}
}

func TestLoadConfig_RepoFile(t *testing.T) {
	cfg, err := Load("../../config/simulation.yaml", "schema/simulation.cue")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(cfg.Planets) != 5 || cfg.Planets[3].Name != "Jupiter" {
		t.Fatalf("unexpected planets: %+v", cfg.Planets)
	}
	if cfg.Canvas.Width != 80 || cfg.Canvas.Height != 25 {
		t.Fatalf("unexpected canvas: %+v", cfg.Canvas)
	}
}

func TestLoadConfig_SchemaRejects(t *testing.T) {
	cases := map[string]string{
		"negative gravity": "defaults:\n  gravity: -1\n",
		"zero sample cap":  "constants:\n  sample_cap: 0\n",
		"unknown field":    "bogus: 1\n",
		"bad log level":    "log_level: loud\n",
		"unnamed planet":   "planets:\n  - gravity: 3\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeTemp(t, body), ""); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "127.0.0.1")
	t.Setenv("PROJECTILE_LOG_LEVEL", "debug")
	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Greptime.Endpoint != "127.0.0.1" || cfg.LogLevel != "debug" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.Sweep.FromDeg != 15 || cfg.Sweep.ToDeg != 75 || cfg.Sweep.StepDeg != 5 {
		t.Fatalf("unexpected sweep defaults: %+v", cfg.Sweep)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	if err == nil || !strings.Contains(err.Error(), "cannot read YAML config") {
		t.Fatalf("expected read error, got %v", err)
	}
}
