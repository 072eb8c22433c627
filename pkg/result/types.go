// Package result defines the evaluated match trees produced by the rule matcher
// and decodes them from result documents.
package result

import "math"

// RangeUnbounded is the Range.Max value meaning "no upper bound".
const RangeUnbounded int64 = math.MaxInt64

// Document maps a rule name to that rule's metadata and matches.
type Document map[string]*RuleMatches

// RuleMatches holds everything the matcher reported for a single rule.
type RuleMatches struct {
	Meta    Meta
	Source  string
	Matches []LocatedMatch
}

// LocatedMatch is the match tree evaluated at one location.
// File-scope rules carry a single LocatedMatch whose Location has no meaning.
type LocatedMatch struct {
	Location uint64
	Match    *Match
}

// HasSuccess reports whether any match of the rule succeeded.
func (r *RuleMatches) HasSuccess() bool {
	for _, m := range r.Matches {
		if m.Match != nil && m.Match.Success {
			return true
		}
	}
	return false
}

// Match pairs a rule node with the result of evaluating it.
type Match struct {
	Success   bool
	Node      Node
	Children  []*Match
	Locations []uint64
}

// Node is either a Statement or a Feature.
type Node interface {
	node()
}

// StatementKind names a statement type as it appears in result documents.
type StatementKind string

const (
	KindAnd      StatementKind = "and"
	KindOr       StatementKind = "or"
	KindOptional StatementKind = "optional"
	KindNot      StatementKind = "not"
	KindSome     StatementKind = "some"
	KindRange    StatementKind = "range"
	KindSubscope StatementKind = "subscope"
	KindRegex    StatementKind = "regex"
)

// Statement is a logical, quantified or structural node of a rule.
type Statement interface {
	Node
	StatementKind() StatementKind
}

// And requires all children to match.
type And struct{}

// Or requires at least one child to match.
type Or struct{}

// Optional never affects the result of its parent.
type Optional struct{}

// Not inverts its single child.
type Not struct{}

// Some requires at least Count children to match.
type Some struct {
	Count int
}

// Range requires Child to be present between Min and Max times, inclusive.
type Range struct {
	Child Feature
	Min   int64
	Max   int64
}

// Subscope evaluates its children at a narrower scope.
type Subscope struct {
	Scope string
}

// Regex matches any string in scope against the pattern in Match.
type Regex struct {
	Match string
}

func (And) node()      {}
func (Or) node()       {}
func (Optional) node() {}
func (Not) node()      {}
func (Some) node()     {}
func (Range) node()    {}
func (Subscope) node() {}
func (Regex) node()    {}

func (And) StatementKind() StatementKind      { return KindAnd }
func (Or) StatementKind() StatementKind       { return KindOr }
func (Optional) StatementKind() StatementKind { return KindOptional }
func (Not) StatementKind() StatementKind      { return KindNot }
func (Some) StatementKind() StatementKind     { return KindSome }
func (Range) StatementKind() StatementKind    { return KindRange }
func (Subscope) StatementKind() StatementKind { return KindSubscope }
func (Regex) StatementKind() StatementKind    { return KindRegex }

// FeatureKind names a feature type as it appears in result documents.
type FeatureKind string

const (
	FeatureString         FeatureKind = "string"
	FeatureAPI            FeatureKind = "api"
	FeatureMnemonic       FeatureKind = "mnemonic"
	FeatureBasicBlock     FeatureKind = "basic block"
	FeatureExport         FeatureKind = "export"
	FeatureImport         FeatureKind = "import"
	FeatureSection        FeatureKind = "section"
	FeatureMatch          FeatureKind = "match"
	FeatureNumber         FeatureKind = "number"
	FeatureOffset         FeatureKind = "offset"
	FeatureBytes          FeatureKind = "bytes"
	FeatureCharacteristic FeatureKind = "characteristic"
)

// IsText reports whether values of this kind are plain strings.
func (k FeatureKind) IsText() bool {
	switch k {
	case FeatureString, FeatureAPI, FeatureMnemonic, FeatureBasicBlock,
		FeatureExport, FeatureImport, FeatureSection, FeatureMatch:
		return true
	}
	return false
}

// IsInteger reports whether values of this kind are unsigned integers.
func (k FeatureKind) IsInteger() bool {
	return k == FeatureNumber || k == FeatureOffset
}

// Feature is a leaf observation extracted from the analysed artifact.
type Feature interface {
	Node
	FeatureKind() FeatureKind
}

// Text is a feature whose value is a string: api names, strings, sections, ...
type Text struct {
	Kind  FeatureKind
	Value string
}

// Integer is a feature whose value is an unsigned integer: numbers and offsets.
type Integer struct {
	Kind  FeatureKind
	Value uint64
}

// Bytes is a byte pattern stored as upper-case hex digits.
type Bytes struct {
	Hex string
}

// Characteristic is a named property of the code, such as "nzxor".
type Characteristic struct {
	Name  string
	Value bool
}

func (Text) node()           {}
func (Integer) node()        {}
func (Bytes) node()          {}
func (Characteristic) node() {}

func (f Text) FeatureKind() FeatureKind         { return f.Kind }
func (f Integer) FeatureKind() FeatureKind      { return f.Kind }
func (Bytes) FeatureKind() FeatureKind          { return FeatureBytes }
func (Characteristic) FeatureKind() FeatureKind { return FeatureCharacteristic }

// API returns an api feature.
func API(name string) Text { return Text{Kind: FeatureAPI, Value: name} }

// String returns a string feature.
func String(s string) Text { return Text{Kind: FeatureString, Value: s} }

// Number returns a number feature.
func Number(n uint64) Integer { return Integer{Kind: FeatureNumber, Value: n} }

// Offset returns an offset feature.
func Offset(n uint64) Integer { return Integer{Kind: FeatureOffset, Value: n} }
