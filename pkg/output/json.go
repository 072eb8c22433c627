package output

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter formats report summaries as JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the report as JSON.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")

	var v any = report
	if f.opts.Quiet {
		v = report.Summary
	}
	if err := encoder.Encode(v); err != nil {
		return err
	}

	_, err := buf.WriteTo(w)
	return err
}
