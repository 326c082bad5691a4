package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/qsim/internal/ir"
	"github.com/roach88/qsim/internal/measure"
)

// Snapshot renders the result as canonical JSON for golden comparison.
// Amplitudes and probabilities come from the first representation and are
// rendered at ir.AmplitudePrecision decimals.
func (r *Result) Snapshot() ([]byte, error) {
	amps := r.Amplitudes()
	probs := measure.Probabilities(amps)
	renderedProbs := make([]string, len(probs))
	for i, p := range probs {
		renderedProbs[i] = ir.FormatProbability(p, ir.AmplitudePrecision)
	}
	reps := make([]string, len(r.Outcomes))
	for i, o := range r.Outcomes {
		reps[i] = string(o.Representation)
	}

	snapshot := map[string]any{
		"scenario_name":   r.Scenario,
		"circuit_id":      r.CircuitID,
		"qubits":          r.Qubits,
		"ops":             r.Ops,
		"representations": reps,
		"amplitudes":      ir.FormatAmplitudes(amps, ir.AmplitudePrecision),
		"probabilities":   renderedProbs,
		"pass":            r.Pass,
	}
	return ir.MarshalCanonical(snapshot)
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) (*Result, error) {
	t.Helper()

	result, err := Run(scenario, opts...)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := result.Snapshot()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
