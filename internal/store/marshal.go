package store

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/roach88/qsim/internal/config"
	"github.com/roach88/qsim/internal/ir"
)

// marshalParams converts a Config to canonical JSON TEXT. Canonical JSON has
// no floats, so the tolerance is stored as its shortest decimal string.
func marshalParams(cfg config.Config) (string, error) {
	data, err := ir.MarshalCanonical(map[string]any{
		"representation":  string(cfg.Representation),
		"memory_limit_mb": cfg.MemoryLimitMB,
		"max_qubits":      cfg.MaxQubits,
		"tolerance":       strconv.FormatFloat(cfg.Tolerance, 'g', -1, 64),
		"seed":            cfg.Seed,
	})
	if err != nil {
		return "", fmt.Errorf("marshal params: %w", err)
	}
	return string(data), nil
}

type storedParams struct {
	Representation string `json:"representation"`
	MemoryLimitMB  int64  `json:"memory_limit_mb"`
	MaxQubits      int    `json:"max_qubits"`
	Tolerance      string `json:"tolerance"`
	Seed           int64  `json:"seed"`
}

// unmarshalParams parses canonical JSON TEXT back into a Config.
func unmarshalParams(data string) (config.Config, error) {
	var p storedParams
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return config.Config{}, fmt.Errorf("unmarshal params: %w", err)
	}
	tol, err := strconv.ParseFloat(p.Tolerance, 64)
	if err != nil {
		return config.Config{}, fmt.Errorf("unmarshal params: tolerance: %w", err)
	}
	return config.Config{
		Representation: config.Representation(p.Representation),
		MemoryLimitMB:  p.MemoryLimitMB,
		MaxQubits:      p.MaxQubits,
		Tolerance:      tol,
		Seed:           p.Seed,
	}, nil
}
