// YAML config loader with CUE validation integration
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"projectile-sim/internal/trajectory"
)

//go:embed schema/simulation.cue
var defaultSchema []byte

// Planet is a named surface gravity used by the planetary comparison.
type Planet struct {
	Name    string  `yaml:"name" json:"name"`
	Gravity float64 `yaml:"gravity" json:"gravity"`
}

// Sweep bounds the launch angles tried by the angle comparison.
type Sweep struct {
	FromDeg float64 `yaml:"from_deg"`
	ToDeg   float64 `yaml:"to_deg"`
	StepDeg float64 `yaml:"step_deg"`
}

// Canvas sizes the text-art trajectory plot.
type Canvas struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Server configures the HTTP service.
type Server struct {
	Addr string `yaml:"addr"`
}

// Greptime configures the optional GreptimeDB sample export.
type Greptime struct {
	Endpoint string `yaml:"endpoint"`
	Database string `yaml:"database"`
	Table    string `yaml:"table"`
}

// SimulationConfig is the root configuration.
type SimulationConfig struct {
	LogLevel  string               `yaml:"log_level"`
	Defaults  trajectory.Params    `yaml:"defaults"`
	Constants trajectory.Constants `yaml:"constants"`
	Sweep     Sweep                `yaml:"sweep"`
	Planets   []Planet             `yaml:"planets"`
	Canvas    Canvas               `yaml:"canvas"`
	Server    Server               `yaml:"server"`
	Greptime  Greptime             `yaml:"greptime"`
}

// DefaultPlanets lists Earth, Moon, Mars, Jupiter and Venus in that order.
func DefaultPlanets() []Planet {
	return []Planet{
		{Name: "Earth", Gravity: 9.8},
		{Name: "Moon", Gravity: 1.62},
		{Name: "Mars", Gravity: 3.71},
		{Name: "Jupiter", Gravity: 24.79},
		{Name: "Venus", Gravity: 8.87},
	}
}

// Default returns the built-in configuration used when no file is given.
func Default() *SimulationConfig {
	return &SimulationConfig{
		LogLevel:  "info",
		Defaults:  trajectory.DefaultParams(),
		Constants: trajectory.DefaultConstants(),
		Sweep:     Sweep{FromDeg: 15, ToDeg: 75, StepDeg: 5},
		Planets:   DefaultPlanets(),
		Canvas:    Canvas{Width: 80, Height: 25},
		Server:    Server{Addr: ":8080"},
		Greptime:  Greptime{Database: "public", Table: "projectile_samples"},
	}
}

// Load reads a YAML config, validates it against a CUE schema and overlays it
// on Default. An empty configPath returns Default with env overrides. An empty
// cueSchemaPath uses the embedded schema.
func Load(configPath, cueSchemaPath string) (*SimulationConfig, error) {
	cfg := Default()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("cannot read YAML config: %w", err)
		}
		schema := defaultSchema
		if cueSchemaPath != "" {
			schema, err = os.ReadFile(cueSchemaPath)
			if err != nil {
				return nil, fmt.Errorf("cannot read CUE schema: %w", err)
			}
		}
		if err := Validate(configPath, data, schema); err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("cannot unmarshal YAML config: %w", err)
		}
		slog.Debug("loaded configuration", "path", configPath, "planets", len(cfg.Planets))
	}
	ApplyEnv(cfg)
	return cfg, nil
}

// Validate checks YAML bytes against the #Simulation definition of a CUE schema.
func Validate(filename string, yamlBytes, schemaBytes []byte) error {
	if len(bytes.TrimSpace(yamlBytes)) == 0 {
		return nil
	}
	ctx := cuecontext.New()

	schemaVal := ctx.CompileBytes(schemaBytes, cue.Filename("simulation.cue"))
	if err := schemaVal.Err(); err != nil {
		return fmt.Errorf("cannot compile CUE schema: %w", err)
	}
	def := schemaVal.LookupPath(cue.ParsePath("#Simulation"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("schema has no #Simulation definition: %w", err)
	}

	file, err := cueyaml.Extract(filename, yamlBytes)
	if err != nil {
		return fmt.Errorf("cannot parse YAML config: %w", err)
	}
	configVal := ctx.BuildFile(file)
	if err := configVal.Err(); err != nil {
		return fmt.Errorf("cannot build YAML config: %w", err)
	}

	if err := def.Unify(configVal).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// ApplyEnv overlays PROJECTILE_LOG_LEVEL, GREPTIMEDB_ENDPOINT, GREPTIMEDB_DATABASE
// and GREPTIMEDB_TABLE when set.
func ApplyEnv(cfg *SimulationConfig) {
	if v := os.Getenv("PROJECTILE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GREPTIMEDB_ENDPOINT"); v != "" {
		cfg.Greptime.Endpoint = v
	}
	if v := os.Getenv("GREPTIMEDB_DATABASE"); v != "" {
		cfg.Greptime.Database = v
	}
	if v := os.Getenv("GREPTIMEDB_TABLE"); v != "" {
		cfg.Greptime.Table = v
	}
}
