package result

import (
	"cmp"
	"slices"
)

// SelectOptions controls which rules CapabilityRules yields.
type SelectOptions struct {
	// IncludeLibrary keeps library rules and matcher-generated subscope rules.
	IncludeLibrary bool

	// Only restricts the selection to the named rules. Empty means all rules.
	Only []string
}

// CapabilityRules returns the rules worth reporting, ordered by namespace then
// name. Rules without a successful match are never returned.
func CapabilityRules(doc Document, opts SelectOptions) []*RuleMatches {
	var only map[string]bool
	if len(opts.Only) > 0 {
		only = make(map[string]bool, len(opts.Only))
		for _, name := range opts.Only {
			only[name] = true
		}
	}

	rules := make([]*RuleMatches, 0, len(doc))
	for _, rule := range doc {
		if !opts.IncludeLibrary && (rule.Meta.IsLibrary() || rule.Meta.IsSubscope()) {
			continue
		}
		if only != nil && !only[rule.Meta.Name()] {
			continue
		}
		if !rule.HasSuccess() {
			continue
		}
		rules = append(rules, rule)
	}

	slices.SortFunc(rules, func(a, b *RuleMatches) int {
		return cmp.Or(
			cmp.Compare(a.Meta.Namespace(), b.Meta.Namespace()),
			cmp.Compare(a.Meta.Name(), b.Meta.Name()),
		)
	})
	return rules
}
