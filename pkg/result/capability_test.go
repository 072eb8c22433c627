package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rule(name, namespace string, success bool, extra Meta) *RuleMatches {
	meta := Meta{MetaName: {name}, MetaScope: {"function"}}
	if namespace != "" {
		meta[MetaNamespace] = MetaValue{namespace}
	}
	for k, v := range extra {
		meta[k] = v
	}
	return &RuleMatches{
		Meta: meta,
		Matches: []LocatedMatch{
			{Location: 0x1000, Match: &Match{Success: success, Node: And{}}},
		},
	}
}

func names(rules []*RuleMatches) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.Meta.Name())
	}
	return out
}

func TestCapabilityRules(t *testing.T) {
	doc := Document{
		"write file":       rule("write file", "host-interaction/file-system/write", true, nil),
		"create file":      rule("create file", "host-interaction/file-system/create", true, nil),
		"no namespace":     rule("no namespace", "", true, nil),
		"unmatched":        rule("unmatched", "anti-analysis", false, nil),
		"contain loop":     rule("contain loop", "", true, Meta{MetaLib: {"true"}}),
		"create file/0x10": rule("create file/0x10", "", true, Meta{MetaSubscope: {"true"}}),
	}

	t.Run("default", func(t *testing.T) {
		got := names(CapabilityRules(doc, SelectOptions{}))
		assert.Equal(t, []string{"no namespace", "create file", "write file"}, got)
	})

	t.Run("include library", func(t *testing.T) {
		got := names(CapabilityRules(doc, SelectOptions{IncludeLibrary: true}))
		assert.Equal(t, []string{"contain loop", "create file/0x10", "no namespace", "create file", "write file"}, got)
	})

	t.Run("only", func(t *testing.T) {
		got := names(CapabilityRules(doc, SelectOptions{Only: []string{"write file", "unmatched"}}))
		assert.Equal(t, []string{"write file"}, got)
	})
}

func TestMetaValue_String(t *testing.T) {
	assert.Equal(t, "", MetaValue{}.String())
	assert.Equal(t, "a", MetaValue{"a"}.String())
	assert.Equal(t, "a, b, c", MetaValue{"a", "b", "c"}.String())
}

func TestMeta_Accessors(t *testing.T) {
	m := Meta{
		MetaName:     {"x"},
		MetaScope:    {"file"},
		MetaLib:      {"true"},
		MetaSubscope: {"false"},
	}
	assert.Equal(t, "x", m.Name())
	assert.Equal(t, "", m.Namespace())
	assert.Equal(t, ScopeFile, m.Scope())
	assert.True(t, m.IsLibrary())
	assert.False(t, m.IsSubscope())
}
