package output

import (
	"context"
	"fmt"
	"io"

	"github.com/ccollicutt/capreport/pkg/render"
)

// TextFormatter formats reports as the verbose, indented match tree listing.
type TextFormatter struct {
	opts     FormatOptions
	renderer *render.Renderer
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{
		opts: opts,
		renderer: render.New(render.Options{
			IndentWidth:   opts.IndentWidth,
			LocationLimit: opts.LocationLimit,
			Color:         opts.Color,
		}),
	}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "vverbose"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}

	// the renderer returns nothing on error, so a failed document never
	// leaves a truncated report behind
	text, err := f.renderer.Report(report.Document, report.Selection)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, text)
	return err
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "capreport: %d of %d rules matched at %d locations\n",
		report.Summary.CapabilitiesMatched,
		report.Summary.RulesTotal,
		report.Summary.LocationsMatched)
	return err
}
