// Package harness runs circuit conformance scenarios.
//
// A scenario names a register width, an op sequence and a list of assertions.
// The harness runs the circuit on every requested representation, checks that
// the flattened results agree within the scenario tolerance, evaluates the
// assertions against each result, and can snapshot the outcome to a golden
// file.
//
// # Scenario Format
//
//	name: bell_pair
//	description: "H then CNOT entangles two qubits"
//	qubits: 2
//	ops:
//	  - H:0
//	  - CNOT:0,1
//	representations: [dense, tensor]   # optional, default both
//	tolerance: 1e-9                    # optional
//	assertions:
//	  - type: amplitudes
//	    amplitudes: [0.7071067811865476, 0, 0, 0.7071067811865476]
//	  - type: amplitude
//	    index: 3
//	    value: [0.7071067811865476, 0]
//	  - type: probabilities
//	    probabilities: [0.5, 0, 0, 0.5]
//	  - type: normalized
//	  - type: expectation
//	    observable: X
//	    qubit: 0
//	    value: 0
//	  - type: sample_support
//	    shots: 1000
//	    seed: 7
//	    outcomes: [0, 3]
//
// Amplitudes are either a bare real number or a [re, im] pair.
//
// # Golden Files
//
// Snapshots are canonical JSON with amplitudes rendered as fixed-precision
// strings, so they compare byte for byte:
//
//	go test ./internal/harness -update
package harness
