package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// wireRule mirrors one entry of a result document. Nodes are kept as generic
// maps because a feature stores its value under a key named after its kind.
type wireRule struct {
	Meta    map[string]any `json:"meta" yaml:"meta"`
	Source  string         `json:"source" yaml:"source"`
	Matches wireMatches    `json:"matches" yaml:"matches"`
}

type wireMatch struct {
	Success   bool        `json:"success" yaml:"success"`
	Node      wireNode    `json:"node" yaml:"node"`
	Children  []wireMatch `json:"children" yaml:"children"`
	Locations []uint64    `json:"locations" yaml:"locations"`
}

type wireNode struct {
	Type      string         `json:"type" yaml:"type"`
	Statement map[string]any `json:"statement,omitempty" yaml:"statement,omitempty"`
	Feature   map[string]any `json:"feature,omitempty" yaml:"feature,omitempty"`
}

type wireLocated struct {
	key   string
	match wireMatch
}

// wireMatches keeps the location -> match object in document order.
type wireMatches []wireLocated

func (w *wireMatches) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("matches must be an object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var m wireMatch
		if err := dec.Decode(&m); err != nil {
			return fmt.Errorf("matches[%s]: %w", key, err)
		}
		*w = append(*w, wireLocated{key: key, match: m})
	}

	_, err = dec.Token()
	return err
}

func (w *wireMatches) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: matches must be a mapping", value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value

		var m wireMatch
		if err := value.Content[i+1].Decode(&m); err != nil {
			return fmt.Errorf("matches[%s]: %w", key, err)
		}
		*w = append(*w, wireLocated{key: key, match: m})
	}
	return nil
}

// DecodeJSON reads a result document in JSON form.
func DecodeJSON(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var rules map[string]wireRule
	if err := dec.Decode(&rules); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	return toDocument(rules)
}

// DecodeYAML reads a result document in YAML form.
func DecodeYAML(r io.Reader) (Document, error) {
	var rules map[string]wireRule
	if err := yaml.NewDecoder(r).Decode(&rules); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	return toDocument(rules)
}

func toDocument(rules map[string]wireRule) (Document, error) {
	doc := make(Document, len(rules))
	for _, name := range slices.Sorted(maps.Keys(rules)) {
		rm, err := rules[name].toRuleMatches(name)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", name, err)
		}
		doc[name] = rm
	}
	return doc, nil
}

func (w wireRule) toRuleMatches(name string) (*RuleMatches, error) {
	meta := make(Meta, len(w.Meta))
	for k, v := range w.Meta {
		meta[k] = toMetaValue(v)
	}
	if meta.Name() == "" {
		meta[MetaName] = MetaValue{name}
	}

	rm := &RuleMatches{
		Meta:    meta,
		Source:  w.Source,
		Matches: make([]LocatedMatch, 0, len(w.Matches)),
	}

	for _, wl := range w.Matches {
		loc, err := strconv.ParseUint(wl.key, 0, 64)
		if err != nil {
			// the file scope key is implicit and carries no address
			if meta.Scope() != ScopeFile {
				return nil, fmt.Errorf("invalid location %q: %w", wl.key, err)
			}
			loc = 0
		}

		m, err := wl.match.toMatch()
		if err != nil {
			return nil, fmt.Errorf("match @ %s: %w", wl.key, err)
		}
		rm.Matches = append(rm.Matches, LocatedMatch{Location: loc, Match: m})
	}

	return rm, nil
}

func toMetaValue(v any) MetaValue {
	switch v := v.(type) {
	case nil:
		return MetaValue{}
	case []any:
		items := make(MetaValue, 0, len(v))
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
		return items
	default:
		return MetaValue{fmt.Sprint(v)}
	}
}

func (w wireMatch) toMatch() (*Match, error) {
	node, err := w.Node.decode()
	if err != nil {
		return nil, err
	}

	m := &Match{
		Success:   w.Success,
		Node:      node,
		Children:  make([]*Match, 0, len(w.Children)),
		Locations: w.Locations,
	}
	for i, c := range w.Children {
		child, err := c.toMatch()
		if err != nil {
			return nil, fmt.Errorf("children[%d]: %w", i, err)
		}
		m.Children = append(m.Children, child)
	}
	return m, nil
}

func (w wireNode) decode() (Node, error) {
	switch w.Type {
	case "statement":
		return decodeStatement(w.Statement)
	case "feature":
		return decodeFeature(w.Feature)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, w.Type)
	}
}

func decodeStatement(m map[string]any) (Statement, error) {
	kind, _ := m["type"].(string)

	switch StatementKind(kind) {
	case KindAnd:
		return And{}, nil
	case KindOr:
		return Or{}, nil
	case KindOptional:
		return Optional{}, nil
	case KindNot:
		return Not{}, nil
	case KindSome:
		n, err := toInt64(m["count"])
		if err != nil {
			return nil, fmt.Errorf("some: count: %w", err)
		}
		return Some{Count: int(n)}, nil
	case KindRange:
		return decodeRange(m)
	case KindSubscope:
		s, ok := m["subscope"].(string)
		if !ok {
			return nil, fmt.Errorf("subscope: missing scope name")
		}
		return Subscope{Scope: s}, nil
	case KindRegex:
		s, ok := m["match"].(string)
		if !ok {
			return nil, fmt.Errorf("regex: missing match")
		}
		return Regex{Match: s}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatement, kind)
	}
}

func decodeRange(m map[string]any) (Statement, error) {
	cm, ok := m["child"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("range: missing child feature")
	}
	child, err := decodeFeature(cm)
	if err != nil {
		return nil, fmt.Errorf("range: %w", err)
	}

	lo, err := toInt64(m["min"])
	if err != nil {
		return nil, fmt.Errorf("range: min: %w", err)
	}
	hi, err := toUint64(m["max"])
	if err != nil {
		return nil, fmt.Errorf("range: max: %w", err)
	}

	// matchers disagree on the width of the "unbounded" marker; anything at or
	// beyond the int64 range means no upper bound.
	r := Range{Child: child, Min: lo, Max: RangeUnbounded}
	if hi < uint64(RangeUnbounded) {
		r.Max = int64(hi)
	}
	return r, nil
}

func decodeFeature(m map[string]any) (Feature, error) {
	t, _ := m["type"].(string)
	kind := FeatureKind(t)

	switch {
	case kind.IsText():
		v, ok := m[t].(string)
		if !ok {
			return nil, fmt.Errorf("%s: value must be a string", kind)
		}
		return Text{Kind: kind, Value: v}, nil
	case kind.IsInteger():
		n, err := toUint64(m[t])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		return Integer{Kind: kind, Value: n}, nil
	case kind == FeatureBytes:
		v, ok := m[t].(string)
		if !ok {
			return nil, fmt.Errorf("bytes: value must be a hex string")
		}
		return Bytes{Hex: v}, nil
	case kind == FeatureCharacteristic:
		return decodeCharacteristic(m[t])
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, t)
	}
}

func decodeCharacteristic(v any) (Feature, error) {
	switch v := v.(type) {
	case string:
		return Characteristic{Name: v, Value: true}, nil
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("characteristic: empty value")
		}
		c := Characteristic{Name: fmt.Sprint(v[0]), Value: true}
		if len(v) > 1 {
			if b, ok := v[1].(bool); ok {
				c.Value = b
			}
		}
		return c, nil
	default:
		return nil, fmt.Errorf("characteristic: unexpected value %v", v)
	}
}

func toUint64(v any) (uint64, error) {
	switch n := v.(type) {
	case json.Number:
		return strconv.ParseUint(n.String(), 0, 64)
	case string:
		return strconv.ParseUint(n, 0, 64)
	case int:
		if n < 0 {
			return 0, fmt.Errorf("negative value %d", n)
		}
		return uint64(n), nil
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("negative value %d", n)
		}
		return uint64(n), nil
	case uint64:
		return n, nil
	case float64:
		if n < 0 {
			return 0, fmt.Errorf("negative value %v", n)
		}
		if n >= math.MaxUint64 {
			return math.MaxUint64, nil
		}
		return uint64(n), nil
	default:
		return 0, fmt.Errorf("not an integer: %v", v)
	}
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Int64()
	case string:
		return strconv.ParseInt(n, 0, 64)
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("value %d out of range", n)
		}
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("not an integer: %v", v)
	}
}
