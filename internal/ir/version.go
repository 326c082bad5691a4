package ir

// Version constants for the circuit IR and the simulator.
const (
	// IRVersion is the circuit IR schema version.
	IRVersion = "1"

	// SimulatorVersion is the qsim release version.
	SimulatorVersion = "0.1.0"
)
