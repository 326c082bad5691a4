package harness

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: test_scenario
description: "Test scenario for validation"
qubits: 2
ops:
  - H:0
  - CNOT:0,1
representations: [tensor]
tolerance: 1e-10
assertions:
  - type: normalized
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	assert.Equal(t, 2, scenario.Qubits)
	assert.Equal(t, []string{"H:0", "CNOT:0,1"}, scenario.Ops)
	assert.Equal(t, []string{"tensor"}, scenario.Representations)
	assert.Equal(t, 1e-10, scenario.Tolerance)
	require.Len(t, scenario.Assertions, 1)
	assert.Equal(t, AssertNormalized, scenario.Assertions[0].Type)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/path/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_MalformedYAML(t *testing.T) {
	path := writeScenario(t, "name: [unclosed\n")
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_UnknownFieldsRejected(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: typo
description: "misspelled assertions key"
qubits: 1
assertion:
  - type: normalized
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assertion")
}

func TestParseScenario_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
description: "d"
qubits: 1
assertions: [{type: normalized}]
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: n
qubits: 1
assertions: [{type: normalized}]
`,
			wantErr: "description is required",
		},
		{
			name: "zero qubits",
			content: `
name: n
description: "d"
assertions: [{type: normalized}]
`,
			wantErr: "qubits must be at least 1",
		},
		{
			name: "negative tolerance",
			content: `
name: n
description: "d"
qubits: 1
tolerance: -1
assertions: [{type: normalized}]
`,
			wantErr: "tolerance must be non-negative",
		},
		{
			name: "no assertions",
			content: `
name: n
description: "d"
qubits: 1
`,
			wantErr: "assertions list is required",
		},
		{
			name: "unknown representation",
			content: `
name: n
description: "d"
qubits: 1
representations: [sparse]
assertions: [{type: normalized}]
`,
			wantErr: "representations[0]",
		},
		{
			name: "duplicate representation",
			content: `
name: n
description: "d"
qubits: 1
representations: [dense, Dense]
assertions: [{type: normalized}]
`,
			wantErr: "duplicate",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_AssertionValidation(t *testing.T) {
	header := `
name: n
description: "d"
qubits: 2
assertions:
`
	tests := []struct {
		name      string
		assertion string
		wantErr   string
	}{
		{"missing type", "  - index: 0\n", "type is required"},
		{"unknown type", "  - type: trace_contains\n", `unknown type "trace_contains"`},
		{"amplitudes wrong length", "  - type: amplitudes\n    amplitudes: [1, 0]\n", "needs 4 entries, got 2"},
		{"probabilities wrong length", "  - type: probabilities\n    probabilities: [1]\n", "needs 4 entries, got 1"},
		{"amplitude index out of range", "  - type: amplitude\n    index: 4\n    value: 1\n", "index 4 out of range"},
		{"amplitude without value", "  - type: amplitude\n    index: 1\n", "value is required"},
		{"unknown observable", "  - type: expectation\n    observable: Y\n    qubit: 0\n    value: 0\n", "observable"},
		{"two-qubit observable", "  - type: expectation\n    observable: CNOT\n    qubit: 0\n    value: 0\n", "must act on one qubit"},
		{"observable qubit out of range", "  - type: expectation\n    observable: X\n    qubit: 2\n    value: 0\n", "qubit 2 out of range"},
		{"expectation without value", "  - type: expectation\n    observable: X\n    qubit: 0\n", "value is required"},
		{"no shots", "  - type: sample_support\n    outcomes: [0]\n", "shots must be positive"},
		{"no outcomes", "  - type: sample_support\n    shots: 10\n", "outcomes is required"},
		{"outcome out of range", "  - type: sample_support\n    shots: 10\n    outcomes: [0, 9]\n", "outcome 9 out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(header + tt.assertion))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "assertions[0]")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAmplitude_UnmarshalYAML(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: amps
description: "scalar and pair forms"
qubits: 1
assertions:
  - type: amplitudes
    amplitudes: [0.5, [0, -0.25]]
  - type: amplitude
    index: 1
    value: [1, 2]
`))
	require.NoError(t, err)

	amps := scenario.Assertions[0].Amplitudes
	require.Len(t, amps, 2)
	assert.Equal(t, Amplitude(complex(0.5, 0)), amps[0])
	assert.Equal(t, Amplitude(complex(0, -0.25)), amps[1])
	assert.Equal(t, Amplitude(complex(1, 2)), *scenario.Assertions[1].Value)
}

func TestAmplitude_UnmarshalYAMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr string
	}{
		{"text", "abc", "must be a number or [re, im]"},
		{"triple", "[1, 2, 3]", "must have 2 elements, got 3"},
		{"mapping", "{re: 1}", "must be a number or [re, im]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(`
name: amps
description: "bad value"
qubits: 1
assertions:
  - type: amplitude
    index: 0
    value: ` + tt.value + "\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAssertionConstants(t *testing.T) {
	assert.Equal(t, "amplitudes", AssertAmplitudes)
	assert.Equal(t, "amplitude", AssertAmplitude)
	assert.Equal(t, "probabilities", AssertProbabilities)
	assert.Equal(t, "normalized", AssertNormalized)
	assert.Equal(t, "expectation", AssertExpectation)
	assert.Equal(t, "sample_support", AssertSampleSupport)
}

// TestLoadExampleScenarios validates the scenario files in testdata/scenarios.
// These serve as documentation and regression tests.
func TestLoadExampleScenarios(t *testing.T) {
	projectRoot := "../../"

	tests := []struct {
		scenarioFile   string
		wantName       string
		wantQubits     int
		wantOps        int
		wantAssertions int
	}{
		{"bell_pair.yaml", "bell_pair", 2, 2, 6},
		{"reference_circuit.yaml", "reference_circuit", 2, 3, 3},
		{"ghz_four.yaml", "ghz_four", 4, 4, 4},
		{"reversed_cnot.yaml", "reversed_cnot", 3, 3, 3},
		{"interference.yaml", "interference", 1, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			path := filepath.Join(projectRoot, "testdata", "scenarios", tt.scenarioFile)
			scenario, err := LoadScenario(path)
			require.NoError(t, err, "Failed to load example scenario %s", tt.scenarioFile)

			assert.Equal(t, tt.wantName, scenario.Name)
			assert.Equal(t, tt.wantQubits, scenario.Qubits)
			assert.Len(t, scenario.Ops, tt.wantOps)
			assert.Len(t, scenario.Assertions, tt.wantAssertions)
		})
	}
}

func TestLoadExampleScenarios_ExpectationValue(t *testing.T) {
	scenario, err := LoadScenario("../../testdata/scenarios/reversed_cnot.yaml")
	require.NoError(t, err)
	require.NotNil(t, scenario.Assertions[2].Value)
	assert.InDelta(t, -1/math.Sqrt2, real(complex128(*scenario.Assertions[2].Value)), 1e-15)
}
