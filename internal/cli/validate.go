package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/scalediv/internal/config"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                     `json:"valid"`
	Axes   int                      `json:"axes"`
	Errors []config.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <axes-file>",
		Short: "Validate an axes file",
		Long: `Validate a YAML or CUE axes file without computing any division.

Checks the file against the axes schema, then checks names, bounds,
engines and time zones. All problems are reported, not just the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	f, err := loadAxesFile(formatter, path)
	if err != nil {
		return err
	}

	for _, a := range f.Axes {
		kind, _ := a.Kind()
		formatter.VerboseLog("Axis %s: %s [%s, %s]", a.Name, kind, a.Min, a.Max)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Axes: len(f.Axes)})
	}
	fmt.Fprintf(formatter.Writer, "✓ All axes valid (%d)\n", len(f.Axes))
	return nil
}

// loadAxesFile loads path and reports failures. A missing or unreadable
// file is a command error; an invalid file is a validation failure.
func loadAxesFile(formatter *OutputFormatter, path string) (*config.File, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("axes file not found: %s", path), nil)
	}

	f, err := config.Load(path)
	if err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, outputValidationErrors(formatter, verrs)
		}
		return nil, formatter.Fail(ExitCommandError, ErrCodeGeneric, "cannot read axes file", err)
	}
	return f, nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []config.ValidationError) error {
	failed := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))

	if formatter.Format == "json" {
		if err := formatter.encodeIndented(CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:  false,
				Errors: errs,
			},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}); err != nil {
			return err
		}
		return failed
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}

	return failed
}
