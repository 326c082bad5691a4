package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/qsim/internal/config"
	"github.com/roach88/qsim/internal/gates"
)

// Scenario defines a circuit conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Qubits is the register width.
	Qubits int `yaml:"qubits"`

	// Ops lists gate applications as "GATE:q" or "GATE:control,target".
	Ops []string `yaml:"ops"`

	// Representations to run. Empty means both dense and tensor.
	Representations []string `yaml:"representations,omitempty"`

	// Tolerance for amplitude comparisons. Zero means the configured default.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Assertions validate the flattened result of every representation.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates a flattened result.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Amplitudes is the full expected vector (amplitudes).
	Amplitudes []Amplitude `yaml:"amplitudes,omitempty"`

	// Probabilities is the full expected |a|² vector (probabilities).
	Probabilities []float64 `yaml:"probabilities,omitempty"`

	// Index selects one basis state (amplitude).
	Index int `yaml:"index,omitempty"`

	// Value is the expected amplitude (amplitude) or real expectation
	// value (expectation).
	Value *Amplitude `yaml:"value,omitempty"`

	// Observable is a single-qubit Hermitian catalogue gate (expectation).
	Observable string `yaml:"observable,omitempty"`

	// Qubit is the qubit the observable acts on (expectation).
	Qubit int `yaml:"qubit,omitempty"`

	// Shots is the number of draws (sample_support).
	Shots int `yaml:"shots,omitempty"`

	// Seed fixes the sampling source (sample_support).
	Seed uint64 `yaml:"seed,omitempty"`

	// Outcomes is the set of basis indices draws may produce (sample_support).
	Outcomes []int `yaml:"outcomes,omitempty"`
}

// Assertion type constants.
const (
	AssertAmplitudes    = "amplitudes"
	AssertAmplitude     = "amplitude"
	AssertProbabilities = "probabilities"
	AssertNormalized    = "normalized"
	AssertExpectation   = "expectation"
	AssertSampleSupport = "sample_support"
)

// Amplitude is a complex amplitude in scenario files. It decodes from a bare
// number or from a [re, im] pair.
type Amplitude complex128

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Amplitude) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var re float64
		if err := node.Decode(&re); err != nil {
			return fmt.Errorf("line %d: amplitude must be a number or [re, im]: %w", node.Line, err)
		}
		*a = Amplitude(complex(re, 0))
		return nil
	case yaml.SequenceNode:
		var parts []float64
		if err := node.Decode(&parts); err != nil {
			return fmt.Errorf("line %d: amplitude must be a number or [re, im]: %w", node.Line, err)
		}
		if len(parts) != 2 {
			return fmt.Errorf("line %d: amplitude pair must have 2 elements, got %d", node.Line, len(parts))
		}
		*a = Amplitude(complex(parts[0], parts[1]))
		return nil
	default:
		return fmt.Errorf("line %d: amplitude must be a number or [re, im]", node.Line)
	}
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches typos like "assertion:" vs "assertions:"
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid. Gate
// names and indices are checked when the circuit is built.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Qubits < 1 {
		return fmt.Errorf("qubits must be at least 1")
	}
	if s.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	seen := make(map[config.Representation]bool)
	for i, r := range s.Representations {
		rep, err := config.ParseRepresentation(r)
		if err != nil {
			return fmt.Errorf("representations[%d]: %w", i, err)
		}
		if seen[rep] {
			return fmt.Errorf("representations[%d]: duplicate %q", i, rep)
		}
		seen[rep] = true
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i], s.Qubits); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, qubits int) error {
	dim := 1 << qubits
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)

	case AssertAmplitudes:
		if len(a.Amplitudes) != dim {
			return fmt.Errorf("assertions[%d]: amplitudes needs %d entries, got %d", index, dim, len(a.Amplitudes))
		}

	case AssertProbabilities:
		if len(a.Probabilities) != dim {
			return fmt.Errorf("assertions[%d]: probabilities needs %d entries, got %d", index, dim, len(a.Probabilities))
		}

	case AssertAmplitude:
		if a.Index < 0 || a.Index >= dim {
			return fmt.Errorf("assertions[%d]: index %d out of range [0, %d)", index, a.Index, dim)
		}
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for amplitude", index)
		}

	case AssertNormalized:

	case AssertExpectation:
		g, err := gates.Lookup(a.Observable)
		if err != nil {
			return fmt.Errorf("assertions[%d]: observable: %w", index, err)
		}
		if g.Arity != 1 {
			return fmt.Errorf("assertions[%d]: observable %s must act on one qubit", index, g.Name)
		}
		if a.Qubit < 0 || a.Qubit >= qubits {
			return fmt.Errorf("assertions[%d]: qubit %d out of range [0, %d)", index, a.Qubit, qubits)
		}
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for expectation", index)
		}

	case AssertSampleSupport:
		if a.Shots <= 0 {
			return fmt.Errorf("assertions[%d]: shots must be positive", index)
		}
		if len(a.Outcomes) == 0 {
			return fmt.Errorf("assertions[%d]: outcomes is required for sample_support", index)
		}
		for _, o := range a.Outcomes {
			if o < 0 || o >= dim {
				return fmt.Errorf("assertions[%d]: outcome %d out of range [0, %d)", index, o, dim)
			}
		}

	default:
		return fmt.Errorf("assertions[%d]: unknown type %q", index, a.Type)
	}
	return nil
}
