package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/qsim/internal/config"
	"github.com/roach88/qsim/internal/harness"
	"github.com/roach88/qsim/internal/ir"
)

// Kinds of file the validate command understands.
const (
	KindScenario = "scenario"
	KindConfig   = "config"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Kind string
}

// FileValidation is the validation outcome for one file.
type FileValidation struct {
	Path  string `json:"path"`
	Valid bool   `json:"valid"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate scenario or config files without running them",
		Long: `Validate scenario or config YAML files without executing anything.

Scenario files are checked for unknown fields, required fields and assertion
shapes, and their ops are parsed into a circuit and checked against the
register width. Config files are checked against the config schema.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", KindScenario, "file kind (scenario|config)")
	return cmd
}

func runValidate(opts *ValidateOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	var check func(string) error
	switch opts.Kind {
	case KindScenario:
		check = validateScenarioFile
	case KindConfig:
		check = validateConfigFile
	default:
		_ = formatter.Error(ErrCodeInvalid, fmt.Sprintf("unknown kind %q (want scenario or config)", opts.Kind), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown kind %q", opts.Kind))
	}

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(paths))}
	for _, path := range paths {
		formatter.VerboseLog("Validating %s: %s", opts.Kind, path)
		fv := FileValidation{Path: path, Valid: true}
		if err := check(path); err != nil {
			fv.Valid = false
			fv.Code = errorCode(err)
			if fv.Code == ErrCodeGeneric {
				fv.Code = ErrCodeInvalid
			}
			fv.Error = err.Error()
			result.Valid = false
		}
		result.Files = append(result.Files, fv)
	}

	if result.Valid {
		return outputValidateSuccess(formatter, result)
	}
	return outputValidationErrors(formatter, result)
}

// validateScenarioFile loads a scenario and builds its circuit.
func validateScenarioFile(path string) error {
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return err
	}
	ops, err := ir.ParseOps(scenario.Ops)
	if err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}
	c := ir.Circuit{Qubits: scenario.Qubits, Ops: ops}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}
	return nil
}

func validateConfigFile(path string) error {
	_, err := config.Load(path)
	return err
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ All %d file(s) valid\n", len(result.Files))
	return nil
}

// outputValidationErrors outputs every failed file.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	var failed []FileValidation
	for _, f := range result.Files {
		if !f.Valid {
			failed = append(failed, f)
		}
	}

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    failed[0].Code,
				Message: failed[0].Error,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(failed)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, f := range failed {
		fmt.Fprintln(formatter.Writer, f.Path)
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", f.Code, f.Error)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(failed)))
}
