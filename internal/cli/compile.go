package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwoodland/CuriousGremlin/internal/catalog"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
	Jobs   int    // documents compiled at once
	Store  string // catalog database path
}

// CompiledProgram is one program in the compile output.
type CompiledProgram struct {
	File    string `json:"file"`
	Name    string `json:"name"`
	Program string `json:"program"`
	Hash    string `json:"hash"`
	Steps   int    `json:"steps"`
	Kind    string `json:"kind"`

	// Stored is "new" or "existing" when --store is given.
	Stored string `json:"stored,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <document>...",
		Short: "Compile traversal documents to program text",
		Long: `Compile YAML or CUE traversal documents to Gremlin program text.

Each argument is a .yaml/.yml file, a .cue file, or a directory. A directory
contributes every YAML file below it, and every directory below it holding
.cue files as one CUE package. Programs are printed one per line as
name<TAB>program.

Example:
  gremlinc compile social.yaml
  gremlinc compile --store programs.db --jobs 4 ./documents`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write compiled programs as JSON to this file")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "documents compiled at once (0 = one per CPU)")
	cmd.Flags().StringVar(&opts.Store, "store", "", "store compiled programs in this catalog database")

	return cmd
}

func runCompile(opts *CompileOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	if opts.Jobs < 0 {
		return outputCompileError(formatter, ErrCodeInvalidFlag, fmt.Sprintf("--jobs must be non-negative, got %d", opts.Jobs))
	}

	ctx := commandContext(cmd)

	results, errs := LoadDocuments(ctx, paths, opts.Jobs, LoadModeCollectAll)
	if len(errs) > 0 {
		_ = formatter.Errors("Compilation failed", errs)
		// Compilation errors are command-level errors (exit code 2)
		return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
	}

	programs := []CompiledProgram{}
	for _, doc := range results {
		formatter.VerboseLog("Compiled %d program(s) from %s", len(doc.Programs), doc.Path)
		for _, c := range doc.Programs {
			programs = append(programs, CompiledProgram{
				File:    doc.Path,
				Name:    c.Name,
				Program: c.Program,
				Hash:    c.Hash,
				Steps:   c.Steps,
				Kind:    c.Kind.String(),
			})
		}
	}

	if opts.Store != "" {
		added, err := storePrograms(ctx, opts.Store, programs)
		if err != nil {
			return outputCompileError(formatter, ErrCodeStoreFailed, fmt.Sprintf("storing programs: %v", err))
		}
		formatter.VerboseLog("Stored %d new program(s) in %s", added, opts.Store)
	}

	if opts.Output != "" {
		if err := writeProgramsToFile(programs, opts.Output); err != nil {
			return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
		formatter.VerboseLog("Wrote %d program(s) to %s", len(programs), opts.Output)
	}

	if formatter.Format == "json" {
		return formatter.Success(programs)
	}
	for _, p := range programs {
		fmt.Fprintf(formatter.Writer, "%s\t%s\n", p.Name, p.Program)
	}
	return nil
}

// storePrograms puts every program in the catalog, marking each as new or
// existing. It returns the number of new entries.
func storePrograms(ctx context.Context, path string, programs []CompiledProgram) (int, error) {
	cat, err := catalog.Open(path)
	if err != nil {
		return 0, err
	}
	defer cat.Close()

	added := 0
	for i := range programs {
		p := &programs[i]
		_, inserted, err := cat.Put(ctx, catalog.Entry{
			Hash:    p.Hash,
			Name:    p.Name,
			Program: p.Program,
			Steps:   p.Steps,
			Kind:    p.Kind,
			Source:  p.File,
		})
		if err != nil {
			return added, err
		}
		p.Stored = "existing"
		if inserted {
			p.Stored = "new"
			added++
		}
	}
	return added, nil
}

// outputCompileError outputs a single command error.
func outputCompileError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// writeProgramsToFile writes the compiled programs as indented JSON.
func writeProgramsToFile(programs []CompiledProgram, filename string) error {
	data, err := json.MarshalIndent(programs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling programs: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
