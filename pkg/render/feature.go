package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ccollicutt/capreport/pkg/result"
)

// Feature writes a feature line followed by the locations the feature was
// found at.
func (r *Renderer) Feature(out *Ostream, f result.Feature, locations []uint64, indent int) error {
	desc, err := r.describeFeature(f)
	if err != nil {
		return err
	}

	r.writeIndent(out, indent)
	out.Write(desc)
	out.WriteLine(r.locationSuffix(locations))
	return nil
}

func (r *Renderer) describeFeature(f result.Feature) (string, error) {
	switch f := f.(type) {
	case result.Text:
		if !f.Kind.IsText() {
			return "", fmt.Errorf("%w: %q", result.ErrUnknownFeature, f.Kind)
		}
		return string(f.Kind) + ": " + r.emphasize(f.Value), nil
	case result.Integer:
		if !f.Kind.IsInteger() {
			return "", fmt.Errorf("%w: %q", result.ErrUnknownFeature, f.Kind)
		}
		return string(f.Kind) + ": " + r.emphasize(hex(f.Value)), nil
	case result.Bytes:
		groups, err := r.byteGroups(f.Hex)
		if err != nil {
			return "", err
		}
		return "bytes: " + groups, nil
	case result.Characteristic:
		return "characteristic(" + r.emphasize(f.Name) + ")", nil
	default:
		return "", fmt.Errorf("%w: %T", result.ErrUnknownFeature, f)
	}
}

// byteGroups splits upper-case hex into emphasized byte pairs.
func (r *Renderer) byteGroups(hexDigits string) (string, error) {
	if len(hexDigits)%2 != 0 {
		return "", fmt.Errorf("%w: %q", result.ErrOddBytes, hexDigits)
	}

	groups := make([]string, 0, len(hexDigits)/2)
	for i := 0; i < len(hexDigits); i += 2 {
		groups = append(groups, r.emphasize(hexDigits[i:i+2]))
	}
	return strings.Join(groups, " "), nil
}

// inlineFeature describes a feature as kind(value), the form used inside a
// count(...) statement.
func (r *Renderer) inlineFeature(f result.Feature) (string, error) {
	switch f := f.(type) {
	case result.Text:
		if !f.Kind.IsText() {
			return "", fmt.Errorf("%w: %q", result.ErrUnknownFeature, f.Kind)
		}
		return fmt.Sprintf("%s(%s)", f.Kind, r.emphasize(f.Value)), nil
	case result.Integer:
		if !f.Kind.IsInteger() {
			return "", fmt.Errorf("%w: %q", result.ErrUnknownFeature, f.Kind)
		}
		return fmt.Sprintf("%s(%s)", f.Kind, r.emphasize(hex(f.Value))), nil
	case result.Bytes:
		return "bytes(" + r.emphasize(f.Hex) + ")", nil
	case result.Characteristic:
		return "characteristic(" + r.emphasize(f.Name) + ")", nil
	default:
		return "", fmt.Errorf("%w: %T", result.ErrUnknownFeature, f)
	}
}

// locationSuffix lists locations in ascending order, eliding all but the
// first LocationLimit of them.
func (r *Renderer) locationSuffix(locations []uint64) string {
	switch len(locations) {
	case 0:
		return ""
	case 1:
		return " @ " + hex(locations[0])
	}

	sorted := slices.Clone(locations)
	slices.Sort(sorted)

	shown := sorted
	if len(shown) > r.opts.LocationLimit {
		shown = shown[:r.opts.LocationLimit]
	}

	parts := make([]string, len(shown))
	for i, loc := range shown {
		parts[i] = hex(loc)
	}

	suffix := " @ " + strings.Join(parts, ", ")
	if hidden := len(sorted) - len(shown); hidden > 0 {
		suffix += fmt.Sprintf(", and %d more...", hidden)
	}
	return suffix
}
