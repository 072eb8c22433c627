// Package render turns evaluated match trees into the verbose, indented text
// report. A Renderer holds no per-document state: each call reads only its
// arguments and writes only to the Ostream it is given.
package render

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
)

const (
	DefaultIndentWidth   = 2
	DefaultLocationLimit = 4
)

// Options controls rendering behavior.
type Options struct {
	// IndentWidth is the number of spaces per nesting level.
	// Default: 2
	IndentWidth int

	// LocationLimit is how many locations a feature line lists before
	// summarising the rest as "and N more...".
	// Default: 4
	LocationLimit int

	// Color wraps emphasized values in ANSI colour codes.
	// Default: false
	Color bool
}

// DefaultOptions returns the options used by the verbose report.
func DefaultOptions() Options {
	return Options{
		IndentWidth:   DefaultIndentWidth,
		LocationLimit: DefaultLocationLimit,
	}
}

// Renderer renders match trees. It is safe for concurrent use.
type Renderer struct {
	opts       Options
	ruleStyle  *color.Color
	valueStyle *color.Color
}

// New creates a Renderer. Zero-valued numeric options fall back to defaults.
func New(opts Options) *Renderer {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = DefaultIndentWidth
	}
	if opts.LocationLimit <= 0 {
		opts.LocationLimit = DefaultLocationLimit
	}

	r := &Renderer{
		opts:       opts,
		ruleStyle:  color.New(color.FgBlue),
		valueStyle: color.New(color.FgGreen),
	}

	// colour is decided here, never by the package-level color.NoColor
	for _, c := range []*color.Color{r.ruleStyle, r.valueStyle} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Ostream accumulates rendered text.
type Ostream struct {
	b strings.Builder
}

// Write appends s.
func (o *Ostream) Write(s string) {
	o.b.WriteString(s)
}

// WriteLine appends s and a newline.
func (o *Ostream) WriteLine(s string) {
	o.b.WriteString(s)
	o.b.WriteByte('\n')
}

// String returns everything written so far.
func (o *Ostream) String() string {
	return o.b.String()
}

func (r *Renderer) emphasize(s string) string {
	return r.valueStyle.Sprint(s)
}

func (r *Renderer) writeIndent(out *Ostream, depth int) {
	out.Write(strings.Repeat(" ", depth*r.opts.IndentWidth))
}

func hex(n uint64) string {
	return "0x" + strconv.FormatUint(n, 16)
}
