package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwoodland/CuriousGremlin/internal/catalog"
)

// CatalogOptions holds flags for the catalog commands.
type CatalogOptions struct {
	*RootOptions
	Store string
}

// NewCatalogCommand creates the catalog command and its subcommands.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect stored programs",
		Long: `Inspect programs stored with "gremlinc compile --store".

Examples:
  gremlinc catalog list --store programs.db
  gremlinc catalog show --store programs.db 3f1c...`,
	}

	cmd.PersistentFlags().StringVar(&opts.Store, "store", "", "path to catalog database (required)")
	_ = cmd.MarkPersistentFlagRequired("store")

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List stored programs in insertion order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogList(opts, cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "show <hash>",
		Short:         "Show one stored program",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogShow(opts, args[0], cmd)
		},
	})

	return cmd
}

func runCatalogList(opts *CatalogOptions, cmd *cobra.Command) error {
	formatter := newCatalogFormatter(opts, cmd)

	cat, err := openCatalog(formatter, opts.Store)
	if err != nil {
		return err
	}
	defer cat.Close()

	entries, err := cat.List(commandContext(cmd))
	if err != nil {
		return outputCatalogError(formatter, ErrCodeStoreFailed, fmt.Sprintf("listing programs: %v", err))
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "No programs stored")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%d\t%s\t%s\t%s\n", e.Seq, e.Hash, e.Name, e.Program)
	}
	return nil
}

func runCatalogShow(opts *CatalogOptions, hash string, cmd *cobra.Command) error {
	formatter := newCatalogFormatter(opts, cmd)

	cat, err := openCatalog(formatter, opts.Store)
	if err != nil {
		return err
	}
	defer cat.Close()

	e, err := cat.Get(commandContext(cmd), hash)
	if errors.Is(err, catalog.ErrNotFound) {
		return outputCatalogError(formatter, ErrCodeNotFound, fmt.Sprintf("no program with hash %s", hash))
	}
	if err != nil {
		return outputCatalogError(formatter, ErrCodeStoreFailed, fmt.Sprintf("reading program: %v", err))
	}

	if formatter.Format == "json" {
		return formatter.Success(e)
	}
	w := formatter.Writer
	fmt.Fprintf(w, "Name:    %s\n", e.Name)
	fmt.Fprintf(w, "Hash:    %s\n", e.Hash)
	fmt.Fprintf(w, "ID:      %s\n", e.ID)
	fmt.Fprintf(w, "Seq:     %d\n", e.Seq)
	fmt.Fprintf(w, "Steps:   %d\n", e.Steps)
	fmt.Fprintf(w, "Kind:    %s\n", e.Kind)
	if e.Source != "" {
		fmt.Fprintf(w, "Source:  %s\n", e.Source)
	}
	fmt.Fprintf(w, "Program: %s\n", e.Program)
	return nil
}

func newCatalogFormatter(opts *CatalogOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// openCatalog opens an existing catalog. Reading commands never create one.
func openCatalog(formatter *OutputFormatter, path string) (*catalog.Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, outputCatalogError(formatter, ErrCodeNotFound, fmt.Sprintf("catalog not found: %s", path))
	}
	cat, err := catalog.Open(path)
	if err != nil {
		return nil, outputCatalogError(formatter, ErrCodeStoreFailed, fmt.Sprintf("opening catalog: %v", err))
	}
	return cat, nil
}

func outputCatalogError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
