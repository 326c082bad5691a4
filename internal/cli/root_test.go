package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qsim/internal/config"
)

// executeRoot runs the full command tree and returns stdout, stderr and the
// command error.
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "qsim", cmd.Use)
	assert.Contains(t, cmd.Long, "tensor")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"run", "sample", "bench", "report", "test", "validate", "gates"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)

	for _, name := range []string{"representation", "memory-limit-mb", "max-qubits", "tolerance", "seed"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRunCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	runCmd, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)

	qubitsFlag := runCmd.Flags().Lookup("qubits")
	require.NotNil(t, qubitsFlag)
	assert.Equal(t, "n", qubitsFlag.Shorthand)
	assert.NotNil(t, runCmd.Flags().Lookup("reference"))
}

func TestBenchCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	benchCmd, _, err := cmd.Find([]string{"bench"})
	require.NoError(t, err)

	assert.Equal(t, "2", benchCmd.Flags().Lookup("from").DefValue)
	assert.Equal(t, "20", benchCmd.Flags().Lookup("to").DefValue)
	assert.Equal(t, "", benchCmd.Flags().Lookup("db").DefValue)
	assert.Equal(t, "false", benchCmd.Flags().Lookup("both").DefValue)
}

func TestTestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)

	updateFlag := testCmd.Flags().Lookup("update")
	require.NotNil(t, updateFlag)
	assert.Equal(t, "false", updateFlag.DefValue)

	filterFlag := testCmd.Flags().Lookup("filter")
	require.NotNil(t, filterFlag)
}

func TestFormatValidation(t *testing.T) {
	// Test valid formats
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	// Test invalid formats
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	_, _, err := executeRoot(t, "--format", "invalid", "gates")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

// resolveFromArgs parses args on the real root command with a probe
// subcommand and returns the config it resolves.
func resolveFromArgs(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	opts := &RootOptions{}
	root := newRootCommand(opts)

	var cfg config.Config
	var resolveErr error
	root.AddCommand(&cobra.Command{
		Use:           "probe",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, resolveErr = opts.resolveConfig(cmd)
			return nil
		},
	})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"probe"}, args...))
	require.NoError(t, root.Execute())
	return cfg, resolveErr
}

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := resolveFromArgs(t)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("representation: dense\nseed: 5\nmemory_limit_mb: 64\n"), 0644))

	cfg, err := resolveFromArgs(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, config.RepresentationDense, cfg.Representation)
	assert.Equal(t, int64(5), cfg.Seed)

	cfg, err = resolveFromArgs(t, "--config", path, "--seed", "0", "--representation", "TENSOR", "--max-qubits", "12")
	require.NoError(t, err)
	assert.Equal(t, config.RepresentationTensor, cfg.Representation)
	assert.Equal(t, int64(0), cfg.Seed, "an explicit zero seed still overrides")
	assert.Equal(t, int64(64), cfg.MemoryLimitMB)
	assert.Equal(t, 12, cfg.MaxQubits)
}

func TestResolveConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown representation", []string{"--representation", "sparse"}},
		{"max qubits above limit", []string{"--max-qubits", "31"}},
		{"non-positive tolerance", []string{"--tolerance", "-1"}},
		{"non-positive memory limit", []string{"--memory-limit-mb", "0"}},
		{"missing config file", []string{"--config", "/nonexistent/qsim.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveFromArgs(t, tt.args...)
			require.Error(t, err)
		})
	}
}

func TestVerboseInstallsDebugLogger(t *testing.T) {
	_, stderr, err := executeRoot(t, "-v", "run", "-n", "1", "H:0")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "apply gate")

	_, stderr, err = executeRoot(t, "run", "-n", "1", "H:0")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "apply gate")
}
