package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/capreport/pkg/result"
)

func feat(f result.Feature, locations ...uint64) *result.Match {
	return &result.Match{Success: true, Node: f, Locations: locations}
}

func stmt(s result.Statement, children ...*result.Match) *result.Match {
	return &result.Match{Success: true, Node: s, Children: children}
}

func failed(m *result.Match) *result.Match {
	m.Success = false
	return m
}

func renderFeature(t *testing.T, f result.Feature, locations ...uint64) string {
	t.Helper()
	out := &Ostream{}
	require.NoError(t, New(DefaultOptions()).Feature(out, f, locations, 0))
	return out.String()
}

func TestFeature_Kinds(t *testing.T) {
	tests := []struct {
		name    string
		feature result.Feature
		want    string
	}{
		{"api", result.API("CreateFileA"), "api: CreateFileA\n"},
		{"string", result.String("cmd.exe /c"), "string: cmd.exe /c\n"},
		{"mnemonic", result.Text{Kind: result.FeatureMnemonic, Value: "xor"}, "mnemonic: xor\n"},
		{"basic block", result.Text{Kind: result.FeatureBasicBlock, Value: "bb"}, "basic block: bb\n"},
		{"export", result.Text{Kind: result.FeatureExport, Value: "DllMain"}, "export: DllMain\n"},
		{"import", result.Text{Kind: result.FeatureImport, Value: "kernel32.Sleep"}, "import: kernel32.Sleep\n"},
		{"section", result.Text{Kind: result.FeatureSection, Value: ".text"}, "section: .text\n"},
		{"match", result.Text{Kind: result.FeatureMatch, Value: "create file"}, "match: create file\n"},
		{"number", result.Number(0x40000000), "number: 0x40000000\n"},
		{"number zero", result.Number(0), "number: 0x0\n"},
		{"offset", result.Offset(0x3C), "offset: 0x3c\n"},
		{"bytes", result.Bytes{Hex: "DEADBEEF"}, "bytes: DE AD BE EF\n"},
		{"characteristic", result.Characteristic{Name: "nzxor", Value: true}, "characteristic(nzxor)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderFeature(t, tt.feature))
		})
	}
}

func TestFeature_Locations(t *testing.T) {
	tests := []struct {
		name      string
		locations []uint64
		want      string
	}{
		{"none", nil, "api: Sleep\n"},
		{"one", []uint64{0x401000}, "api: Sleep @ 0x401000\n"},
		{"sorted", []uint64{0x10, 0x30, 0x20}, "api: Sleep @ 0x10, 0x20, 0x30\n"},
		{"exactly four", []uint64{4, 3, 2, 1}, "api: Sleep @ 0x1, 0x2, 0x3, 0x4\n"},
		{"truncated", []uint64{0x60, 0x50, 0x40, 0x30, 0x20, 0x10}, "api: Sleep @ 0x10, 0x20, 0x30, 0x40, and 2 more...\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderFeature(t, result.API("Sleep"), tt.locations...))
		})
	}
}

func TestFeature_LocationsNotMutated(t *testing.T) {
	locations := []uint64{3, 1, 2}
	renderFeature(t, result.API("Sleep"), locations...)
	assert.Equal(t, []uint64{3, 1, 2}, locations)
}

func TestFeature_LocationLimitOption(t *testing.T) {
	out := &Ostream{}
	r := New(Options{LocationLimit: 2})
	require.NoError(t, r.Feature(out, result.Number(1), []uint64{1, 2, 3}, 0))
	assert.Equal(t, "number: 0x1 @ 0x1, 0x2, and 1 more...\n", out.String())
}

func TestFeature_Errors(t *testing.T) {
	tests := []struct {
		name    string
		feature result.Feature
		wantErr error
	}{
		{"odd bytes", result.Bytes{Hex: "DEADBEE"}, result.ErrOddBytes},
		{"text with integer kind", result.Text{Kind: result.FeatureNumber, Value: "1"}, result.ErrUnknownFeature},
		{"integer with text kind", result.Integer{Kind: result.FeatureAPI, Value: 1}, result.ErrUnknownFeature},
		{"unknown kind", result.Text{Kind: "os", Value: "windows"}, result.ErrUnknownFeature},
		{"nil", nil, result.ErrUnknownFeature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &Ostream{}
			err := New(DefaultOptions()).Feature(out, tt.feature, []uint64{1}, 2)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, out.String(), "nothing is written for an invalid feature")
		})
	}
}

func TestFeature_Color(t *testing.T) {
	out := &Ostream{}
	require.NoError(t, New(Options{Color: true}).Feature(out, result.API("Sleep"), nil, 0))

	assert.Contains(t, out.String(), "\x1b[32mSleep\x1b[")
	assert.True(t, strings.HasPrefix(out.String(), "api: "))
}

func TestStatement(t *testing.T) {
	tests := []struct {
		name      string
		statement result.Statement
		want      string
	}{
		{"and", result.And{}, "and:\n"},
		{"or", result.Or{}, "or:\n"},
		{"optional", result.Optional{}, "optional:\n"},
		{"not", result.Not{}, "not: ...\n"},
		{"some", result.Some{Count: 2}, "2 or more:\n"},
		{"subscope", result.Subscope{Scope: "basic block"}, "basic block:\n"},
		{"regex", result.Regex{Match: "/VirtualAlloc(Ex)?/"}, "string: /VirtualAlloc(Ex)?/\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &Ostream{}
			require.NoError(t, New(DefaultOptions()).Statement(out, tt.statement, 0))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestStatement_Range(t *testing.T) {
	api := result.API("Sleep")

	tests := []struct {
		name  string
		child result.Feature
		min   int64
		max   int64
		want  string
	}{
		{"exact", api, 3, 3, "count(api(Sleep)): 3\n"},
		{"or fewer", api, 0, 5, "count(api(Sleep)): 5 or fewer\n"},
		{"or more", api, 2, result.RangeUnbounded, "count(api(Sleep)): 2 or more\n"},
		{"between", api, 2, 5, "count(api(Sleep)): between 2 and 5\n"},
		{"zero or more", api, 0, result.RangeUnbounded, "count(api(Sleep)): 0 or more\n"},
		{"number child", result.Number(0x10), 1, 1, "count(number(0x10)): 1\n"},
		{"bytes child", result.Bytes{Hex: "9090"}, 2, 2, "count(bytes(9090)): 2\n"},
		{"characteristic child", result.Characteristic{Name: "nzxor"}, 4, 4, "count(characteristic(nzxor)): 4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &Ostream{}
			s := result.Range{Child: tt.child, Min: tt.min, Max: tt.max}
			require.NoError(t, New(DefaultOptions()).Statement(out, s, 0))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestStatement_Errors(t *testing.T) {
	r := New(DefaultOptions())

	var unknown result.Statement
	err := r.Statement(&Ostream{}, unknown, 0)
	require.ErrorIs(t, err, result.ErrUnknownStatement)

	err = r.Statement(&Ostream{}, result.Range{Child: result.Text{Kind: "os"}, Min: 1, Max: 1}, 0)
	require.ErrorIs(t, err, result.ErrUnknownFeature)
}
