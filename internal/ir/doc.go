// Package ir holds the circuit intermediate representation shared by the
// harness, the benchmark sweep and the CLI, plus its canonical JSON encoding.
//
// ir imports nothing internal except gates, so every other layer can depend on
// it without cycles.
//
// Constraints:
//   - No floats in canonical form; amplitudes are formatted as strings
//   - Only catalogue gate names are accepted
//   - All JSON and YAML tags use snake_case
package ir
