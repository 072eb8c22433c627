package render

import (
	"fmt"
	"strconv"

	"github.com/ccollicutt/capreport/pkg/result"
)

// Statement writes the label line of a statement. Children are left to Walk.
func (r *Renderer) Statement(out *Ostream, s result.Statement, indent int) error {
	line, err := r.describeStatement(s)
	if err != nil {
		return err
	}

	r.writeIndent(out, indent)
	out.WriteLine(line)
	return nil
}

func (r *Renderer) describeStatement(s result.Statement) (string, error) {
	switch s := s.(type) {
	case result.And, result.Or, result.Optional:
		return string(s.StatementKind()) + ":", nil
	case result.Not:
		// the children of a successful not never succeed
		return "not: ...", nil
	case result.Some:
		return strconv.Itoa(s.Count) + " or more:", nil
	case result.Range:
		return r.describeRange(s)
	case result.Subscope:
		return s.Scope + ":", nil
	case result.Regex:
		return "string: " + s.Match, nil
	default:
		return "", fmt.Errorf("%w: %T", result.ErrUnknownStatement, s)
	}
}

func (r *Renderer) describeRange(s result.Range) (string, error) {
	feature, err := r.inlineFeature(s.Child)
	if err != nil {
		return "", fmt.Errorf("range: %w", err)
	}

	var bound string
	switch {
	case s.Min == s.Max:
		bound = strconv.FormatInt(s.Min, 10)
	case s.Max == result.RangeUnbounded:
		bound = fmt.Sprintf("%d or more", s.Min)
	case s.Min == 0:
		bound = fmt.Sprintf("%d or fewer", s.Max)
	default:
		bound = fmt.Sprintf("between %d and %d", s.Min, s.Max)
	}

	return "count(" + feature + "): " + bound, nil
}
