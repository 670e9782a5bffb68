package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool `json:"valid"`
	Documents int  `json:"documents"`
	Programs  int  `json:"programs"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <document>...",
		Short: "Check traversal documents without printing programs",
		Long: `Check YAML or CUE traversal documents without printing programs.

Every document is compiled and every error is reported, so one run lists all
problems across the given documents.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	ctx := commandContext(cmd)

	results, errs := LoadDocuments(ctx, paths, 0, LoadModeCollectAll)
	if len(errs) > 0 {
		return outputValidationErrors(formatter, errs)
	}

	result := ValidationResult{Valid: true, Documents: len(results)}
	for _, doc := range results {
		formatter.VerboseLog("Validated %s: %d program(s)", doc.Path, len(doc.Programs))
		result.Programs += len(doc.Programs)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ %d program(s) in %d document(s) valid\n", result.Programs, result.Documents)
	return nil
}

// outputValidationErrors reports every error. Document errors are
// validation failures (exit code 1); missing paths are command errors
// (exit code 2).
func outputValidationErrors(formatter *OutputFormatter, errs []error) error {
	if err := formatter.Errors("Validation failed", errs); err != nil {
		return err
	}

	for _, err := range errs {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", loadErr.Code, loadErr.Message))
		}
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
