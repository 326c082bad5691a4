package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitIDDeterminism(t *testing.T) {
	c, err := ReferenceCircuit(3)
	require.NoError(t, err)

	id1, err := CircuitID(c)
	require.NoError(t, err)
	id2, err := CircuitID(c)
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Len(t, id1, 64, "SHA-256 hex is 64 characters")
}

func TestCircuitIDIgnoresGateSpelling(t *testing.T) {
	a := Circuit{Qubits: 2, Ops: []Op{{Gate: "cx", Qubits: []int{0, 1}}}}
	b := Circuit{Qubits: 2, Ops: []Op{{Gate: "CNOT", Qubits: []int{0, 1}}}}
	assert.Equal(t, MustCircuitID(a), MustCircuitID(b))
}

func TestCircuitIDChangesWithInput(t *testing.T) {
	base := Circuit{Qubits: 2, Ops: []Op{{Gate: "CNOT", Qubits: []int{0, 1}}}}
	reversed := Circuit{Qubits: 2, Ops: []Op{{Gate: "CNOT", Qubits: []int{1, 0}}}}
	wider := Circuit{Qubits: 3, Ops: []Op{{Gate: "CNOT", Qubits: []int{0, 1}}}}

	assert.NotEqual(t, MustCircuitID(base), MustCircuitID(reversed))
	assert.NotEqual(t, MustCircuitID(base), MustCircuitID(wider))
}

func TestCircuitIDRejectsUnknownGate(t *testing.T) {
	_, err := CircuitID(Circuit{Qubits: 1, Ops: []Op{{Gate: "T", Qubits: []int{0}}}})
	require.Error(t, err)
	assert.Panics(t, func() {
		MustCircuitID(Circuit{Qubits: 1, Ops: []Op{{Gate: "T", Qubits: []int{0}}}})
	})
}

func TestHashDomainSeparation(t *testing.T) {
	data := []byte(`{"qubits":2}`)
	assert.NotEqual(t, hashWithDomain(DomainCircuit, data), hashWithDomain(DomainResult, data))
}

func TestResultHash(t *testing.T) {
	amps := FormatAmplitudes([]complex128{0, 0.7071067811865476, 0.7071067811865475, 0}, AmplitudePrecision)
	h1, err := ResultHash("abc", amps)
	require.NoError(t, err)

	// Differences below the rendered precision do not change the hash.
	amps2 := FormatAmplitudes([]complex128{1e-15, 0.7071067811865475, 0.7071067811865476, -1e-16}, AmplitudePrecision)
	h2, err := ResultHash("abc", amps2)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	h3, err := ResultHash("def", amps)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}
