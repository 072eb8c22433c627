package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/capreport/pkg/output"
	"github.com/ccollicutt/capreport/pkg/result"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var showLib bool

	cmd := &cobra.Command{
		Use:   "validate <document>...",
		Short: "Validate match result documents",
		Long: `Validate capability match result documents without printing a report.

Checks:
  - JSON or YAML syntax
  - Known statement and feature types
  - Well-formed locations and feature values
  - That every matched rule renders (even-length bytes, one match per
    file scope rule)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, showLib)
		},
	}

	cmd.Flags().BoolVar(&showLib, "show-lib", true, "Also check library and subscope rules")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, showLib bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	files, err := result.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding documents: %w", err)
	}

	sel := result.SelectOptions{IncludeLibrary: showLib}
	formatter := output.NewTextFormatter(output.FormatOptions{})

	failed := 0
	for _, path := range files {
		report, err := validateDocument(ctx, path, sel, formatter)
		if err != nil {
			failed++
			_, _ = fmt.Fprintf(w, "%s: invalid: %v\n", path, err)
			continue
		}

		_, _ = fmt.Fprintf(w, "%s: ok (%d rules, %d matched)\n",
			path, report.Summary.RulesTotal, report.Summary.CapabilitiesMatched)
	}

	if failed > 0 {
		return fmt.Errorf("validation failed for %d of %d document(s)", failed, len(files))
	}
	return nil
}

// validateDocument decodes a document and renders it into the void.
func validateDocument(ctx context.Context, path string, sel result.SelectOptions, f output.Formatter) (*output.Report, error) {
	doc, err := result.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	report := output.NewReport(doc, path, sel)
	if err := f.Format(ctx, report, io.Discard); err != nil {
		return nil, err
	}
	return report, nil
}
