package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix leaves
// room for a future algorithm change.
const (
	DomainCircuit = "qsim/circuit/v1"
	DomainResult  = "qsim/result/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// CircuitID computes the content-addressed ID of a circuit. Two circuits with
// the same qubit count and op sequence share an ID; gate-name spelling does
// not matter because ops are normalized first.
func CircuitID(c Circuit) (string, error) {
	obj, err := c.Canonical()
	if err != nil {
		return "", fmt.Errorf("CircuitID: %w", err)
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("CircuitID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainCircuit, canonical), nil
}

// ResultHash fingerprints a flattened result at a fixed decimal precision.
// Representations that agree to that precision hash identically.
func ResultHash(circuitID string, amplitudes []string) (string, error) {
	obj := map[string]any{
		"circuit_id": circuitID,
		"amplitudes": amplitudes,
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("ResultHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainResult, canonical), nil
}

// MustCircuitID is like CircuitID but panics on error.
// Use only in tests or when the circuit is known to be valid.
func MustCircuitID(c Circuit) string {
	id, err := CircuitID(c)
	if err != nil {
		panic(err)
	}
	return id
}
