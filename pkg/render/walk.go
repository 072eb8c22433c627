package render

import (
	"fmt"
	"slices"

	"github.com/ccollicutt/capreport/pkg/result"
)

// ShouldRender reports whether a match contributes anything to the report.
// Failed matches never do, and neither does an optional block none of whose
// children matched.
func ShouldRender(m *result.Match) bool {
	if m == nil || !m.Success {
		return false
	}

	if _, ok := m.Node.(result.Optional); ok {
		return slices.ContainsFunc(m.Children, func(c *result.Match) bool {
			return c != nil && c.Success
		})
	}
	return true
}

// Node writes the line for a single match node, without its children.
func (r *Renderer) Node(out *Ostream, m *result.Match, indent int) error {
	switch n := m.Node.(type) {
	case result.Statement:
		return r.Statement(out, n, indent)
	case result.Feature:
		return r.Feature(out, n, m.Locations, indent)
	default:
		return fmt.Errorf("%w: %T", result.ErrUnknownNode, m.Node)
	}
}

// Walk renders a match tree depth-first, one nesting level per tree level.
func (r *Renderer) Walk(out *Ostream, m *result.Match, indent int) error {
	if !ShouldRender(m) {
		return nil
	}

	if err := r.Node(out, m, indent); err != nil {
		return err
	}

	switch m.Node.(type) {
	case result.Not, result.Regex:
		return nil
	}

	for _, child := range m.Children {
		if err := r.Walk(out, child, indent+1); err != nil {
			return err
		}
	}
	return nil
}
