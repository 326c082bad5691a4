// Package config loads simulator settings from YAML and validates them against
// an embedded CUE schema that also supplies the defaults.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/qsim/internal/qerr"
)

//go:embed schema.cue
var schemaSource string

// Representation selects which applicator family the simulator uses.
type Representation string

const (
	// RepresentationTensor keeps the state as a rank-n tensor and applies
	// gates by contraction.
	RepresentationTensor Representation = "tensor"

	// RepresentationDense keeps a flat vector and builds full operators.
	RepresentationDense Representation = "dense"
)

// ParseRepresentation accepts "tensor" or "dense", case-insensitively.
func ParseRepresentation(s string) (Representation, error) {
	switch r := Representation(strings.ToLower(strings.TrimSpace(s))); r {
	case RepresentationTensor, RepresentationDense:
		return r, nil
	default:
		return "", qerr.InvalidArgument("config.ParseRepresentation", "unknown representation %q (want tensor or dense)", s)
	}
}

// Config is the resolved simulator configuration.
type Config struct {
	Representation Representation `yaml:"representation" json:"representation"`
	MemoryLimitMB  int64          `yaml:"memory_limit_mb" json:"memory_limit_mb"`
	MaxQubits      int            `yaml:"max_qubits" json:"max_qubits"`
	Tolerance      float64        `yaml:"tolerance" json:"tolerance"`
	Seed           int64          `yaml:"seed" json:"seed"`
}

// fileConfig mirrors Config with optional fields so that absent keys fall
// through to the schema defaults.
type fileConfig struct {
	Representation *string  `yaml:"representation"`
	MemoryLimitMB  *int64   `yaml:"memory_limit_mb"`
	MaxQubits      *int     `yaml:"max_qubits"`
	Tolerance      *float64 `yaml:"tolerance"`
	Seed           *int64   `yaml:"seed"`
}

// Budget converts the memory limit into an allocation budget.
func (c Config) Budget() qerr.Budget {
	return qerr.MegaBytes(c.MemoryLimitMB)
}

// Default returns the schema defaults.
func Default() Config {
	cfg, err := evaluate(map[string]any{})
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema is invalid: %v", err))
	}
	return cfg
}

// Load reads a YAML config file. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data. An empty document yields Default().
func Parse(data []byte) (Config, error) {
	var fc fileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	input := map[string]any{}
	if fc.Representation != nil {
		input["representation"] = *fc.Representation
	}
	if fc.MemoryLimitMB != nil {
		input["memory_limit_mb"] = *fc.MemoryLimitMB
	}
	if fc.MaxQubits != nil {
		input["max_qubits"] = *fc.MaxQubits
	}
	if fc.Tolerance != nil {
		input["tolerance"] = *fc.Tolerance
	}
	if fc.Seed != nil {
		input["seed"] = *fc.Seed
	}
	return evaluate(input)
}

// Validate re-checks a Config against the schema, typically after command
// line overrides have been applied.
func (c Config) Validate() error {
	_, err := evaluate(map[string]any{
		"representation":  string(c.Representation),
		"memory_limit_mb": c.MemoryLimitMB,
		"max_qubits":      c.MaxQubits,
		"tolerance":       c.Tolerance,
		"seed":            c.Seed,
	})
	return err
}

// evaluate unifies input with #Config and reads back the resolved fields.
func evaluate(input map[string]any) (Config, error) {
	const op = "config.evaluate"
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compiling schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	value := def.Unify(ctx.Encode(input))
	if err := value.Validate(); err != nil {
		return Config{}, qerr.InvalidArgument(op, "invalid configuration: %v", err)
	}

	var cfg Config
	rep, err := field(value, "representation").String()
	if err != nil {
		return Config{}, qerr.InvalidArgument(op, "representation: %v", err)
	}
	cfg.Representation = Representation(rep)
	if cfg.MemoryLimitMB, err = field(value, "memory_limit_mb").Int64(); err != nil {
		return Config{}, qerr.InvalidArgument(op, "memory_limit_mb: %v", err)
	}
	maxQubits, err := field(value, "max_qubits").Int64()
	if err != nil {
		return Config{}, qerr.InvalidArgument(op, "max_qubits: %v", err)
	}
	cfg.MaxQubits = int(maxQubits)
	if cfg.Tolerance, err = field(value, "tolerance").Float64(); err != nil {
		return Config{}, qerr.InvalidArgument(op, "tolerance: %v", err)
	}
	if cfg.Seed, err = field(value, "seed").Int64(); err != nil {
		return Config{}, qerr.InvalidArgument(op, "seed: %v", err)
	}
	return cfg, nil
}

// field looks up name and resolves a default disjunction to its default.
func field(v cue.Value, name string) cue.Value {
	f := v.LookupPath(cue.ParsePath(name))
	if d, ok := f.Default(); ok {
		return d
	}
	return f
}
