package result

import "strings"

// Scope is the granularity a rule is evaluated at.
type Scope string

const (
	ScopeFile       Scope = "file"
	ScopeFunction   Scope = "function"
	ScopeBasicBlock Scope = "basic block"
)

// Well-known metadata keys.
const (
	MetaName      = "name"
	MetaNamespace = "namespace"
	MetaScope     = "scope"
	MetaLib       = "lib"
	MetaSubscope  = "capa/subscope"
)

// MetaKeys lists the recognized metadata keys in display order.
var MetaKeys = []string{
	MetaName,
	MetaNamespace,
	"rule-category",
	"maec/analysis-conclusion",
	"maec/analysis-conclusion-ov",
	"maec/malware-category",
	"maec/malware-category-ov",
	"author",
	"description",
	MetaLib,
	MetaScope,
	"att&ck",
	"mbc",
	"references",
	"examples",
}

// MetaValue is a metadata value. Scalars are stored as a single item.
type MetaValue []string

// String renders a single item as-is and several items comma-joined.
func (v MetaValue) String() string {
	if len(v) == 1 {
		return v[0]
	}
	return strings.Join(v, ", ")
}

// Meta is the metadata block of a rule.
type Meta map[string]MetaValue

func (m Meta) first(key string) string {
	if v := m[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Name returns the rule name.
func (m Meta) Name() string { return m.first(MetaName) }

// Namespace returns the rule namespace, or "" when the rule has none.
func (m Meta) Namespace() string { return m.first(MetaNamespace) }

// Scope returns the scope the rule was evaluated at.
func (m Meta) Scope() Scope { return Scope(m.first(MetaScope)) }

// IsLibrary reports whether the rule is a library rule that only exists to be
// referenced by other rules.
func (m Meta) IsLibrary() bool { return m.first(MetaLib) == "true" }

// IsSubscope reports whether the rule was generated by the matcher for a subscope.
func (m Meta) IsSubscope() bool {
	v := m.first(MetaSubscope)
	return v != "" && v != "false"
}
