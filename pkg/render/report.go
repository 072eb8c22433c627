package render

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ccollicutt/capreport/pkg/result"
)

// Report renders every capability rule in doc. On error no text is returned.
func (r *Renderer) Report(doc result.Document, sel result.SelectOptions) (string, error) {
	out := &Ostream{}

	for _, rule := range result.CapabilityRules(doc, sel) {
		if err := r.Rule(out, rule); err != nil {
			return "", fmt.Errorf("rendering rule %q: %w", rule.Meta.Name(), err)
		}
	}

	return out.String(), nil
}

// Rule writes the name, metadata table and matches of one rule, followed by a
// blank line.
func (r *Renderer) Rule(out *Ostream, rule *result.RuleMatches) error {
	out.WriteLine(r.ruleStyle.Sprint(rule.Meta.Name()))
	out.Write(metadataTable(rule.Meta))

	scope := rule.Meta.Scope()
	if scope == result.ScopeFile {
		if len(rule.Matches) != 1 {
			return fmt.Errorf("%w: got %d", result.ErrFileScopeMatch, len(rule.Matches))
		}
		if err := r.Walk(out, rule.Matches[0].Match, 0); err != nil {
			return err
		}
	} else {
		for _, lm := range rule.Matches {
			if lm.Match == nil || !lm.Match.Success {
				continue
			}

			out.WriteLine(string(scope) + " @ " + hex(lm.Location))
			if err := r.Walk(out, lm.Match, 1); err != nil {
				return fmt.Errorf("%s @ %s: %w", scope, hex(lm.Location), err)
			}
		}
	}

	out.Write("\n")
	return nil
}

// metadataTable lays out every recognized key except the name as a plain
// two-column table.
func metadataTable(meta result.Meta) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	for _, key := range result.MetaKeys {
		if key == result.MetaName {
			continue
		}
		v, ok := meta[key]
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", key, v)
	}

	_ = tw.Flush()
	return b.String()
}
