package output

import (
	"context"
	"io"
)

// Formatter renders a report in a specific format.
type Formatter interface {
	// Format renders the report to the given writer. Nothing is written when
	// rendering fails.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (vverbose, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Quiet enables minimal summary-only output.
	Quiet bool

	// Color enables ANSI emphasis in text output.
	Color bool

	// IndentWidth is the number of spaces per match tree level (0 = default).
	IndentWidth int

	// LocationLimit is how many locations a feature line lists (0 = default).
	LocationLimit int
}
