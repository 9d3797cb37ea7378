package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/scratchbook/catalog"
	"github.com/blackwell-systems/scratchbook/classify"
	"github.com/blackwell-systems/scratchbook/codebook"
	"github.com/blackwell-systems/scratchbook/grammar"
	"github.com/blackwell-systems/scratchbook/resolve"
)

func assertUnique(t *testing.T, names []string) {
	t.Helper()
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		assert.False(t, seen[n], "duplicate %q", n)
		seen[n] = true
	}
}

// TestElementNames enumerates the element library without synonyms.
func TestElementNames(t *testing.T) {
	names := catalog.ElementNames(3, 4)
	assert.Len(t, names, 171)
	assert.Equal(t, []string{"h", "gh", "g", "b", "bEx", "bLog"}, names[:6])
	assert.Contains(t, names, "tr4QLog")
	assert.Contains(t, names, "of3SEx")
	for _, syn := range []string{"f1S", "f1Q", "if1SEx", "of1QLog", "tr2S", "tr2QEx"} {
		assert.NotContains(t, names, syn)
	}
	assertUnique(t, names)
}

// TestElementNames_Classify checks that every element is classified by the
// long form of its own name.
func TestElementNames_Classify(t *testing.T) {
	for _, name := range catalog.ElementNames(3, 4) {
		spec, err := grammar.DecodeElementary(name)
		require.NoError(t, err, name)
		assert.Equal(t, spec.LongName(), classify.Name(spec.Element()), name)
	}
}

// TestTearNames only produces decodable tears.
func TestTearNames(t *testing.T) {
	names := catalog.TearNames(3)
	assert.Len(t, names, 42)
	for _, name := range names {
		assert.True(t, grammar.IsTear(name), name)
	}
	assertUnique(t, names)
}

// TestOrbitNames only produces decodable orbits.
func TestOrbitNames(t *testing.T) {
	names := catalog.OrbitNames(3, 4)
	assert.Len(t, names, 66*9)
	for _, want := range []string{"d_g", "b_f2_13", "of1_i_21", "f1_f2_23", "f3_f3", "g_tr3_13", "tr4_b_41", "tr2_tr3_23", "tr2Ex_tr2Log", "bLog_b"} {
		assert.Contains(t, names, want)
	}
	for _, name := range names {
		_, err := grammar.DecodeOrbit(name)
		assert.NoError(t, err, name)
	}
	assertUnique(t, names)
}

// TestComboNames keeps only entries that are expressions.
func TestComboNames(t *testing.T) {
	cb := codebook.New(map[string]string{
		"bo":       "b_b",
		"sc":       "bo * 2 / 1",
		"scribble": "sc",
	})
	assert.Equal(t, []string{"sc"}, catalog.ComboNames(cb))
	assert.Empty(t, catalog.ComboNames(nil))
}

// TestBuild_Elements classifies the element library.
func TestBuild_Elements(t *testing.T) {
	r := resolve.New(codebook.New(map[string]string{"wobble": "b"}))
	rows, err := catalog.Build(context.Background(), r, catalog.Elements, catalog.DefaultLimits)
	require.NoError(t, err)
	require.Len(t, rows, 171)

	byName := make(map[string]catalog.Row, len(rows))
	for _, row := range rows {
		byName[row.Name] = row
	}
	b := byName["b"]
	assert.Equal(t, "b", b.Formula)
	assert.Equal(t, []string{"wobble", "baby"}, b.Aliases)
	assert.Equal(t, []string{"baby"}, b.Record.Elements)
	assert.Equal(t, "rtqTmUVjsuY", b.Tutorial)

	assert.Equal(t, []string{"ghosthold", "ghosth", "ghold"}, byName["gh"].Aliases)
	assert.Equal(t, []string{"transformer3S"}, byName["tr3S"].Record.Elements)
}

// TestBuild_OrbitsAndCombos resolves orbit expansions and codebook formulas.
func TestBuild_OrbitsAndCombos(t *testing.T) {
	r := resolve.New(codebook.New(map[string]string{
		"bo":       "b_b",
		"sc":       "bo * 2 / 1",
		"scribble": "sc",
	}))
	ctx := context.Background()

	rows, err := catalog.Build(ctx, r, catalog.Orbits, catalog.Limits{MaxFlare: 1, MaxTransformer: 2, MaxTear: 2})
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	for _, row := range rows {
		if row.Name == "b_b" {
			assert.Equal(t, []string{"bo"}, row.Aliases)
			assert.Equal(t, "(b + -b) / 1 // 0.5", row.Formula)
			assert.Equal(t, []string{"babyorbit"}, row.Record.Combos)
		}
	}

	rows, err = catalog.Build(ctx, r, catalog.Combos, catalog.Limits{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "sc", rows[0].Name)
	assert.Equal(t, []string{"scribble"}, rows[0].Aliases)
	assert.Equal(t, []string{"babyorbit"}, rows[0].Record.Combos)
	assert.Equal(t, 4, rows[0].Record.Sounds)
}

// TestBuild_Limits rejects digits that would not decode.
func TestBuild_Limits(t *testing.T) {
	_, err := catalog.Build(context.Background(), resolve.New(nil), catalog.Elements, catalog.Limits{MaxFlare: 9, MaxTransformer: 4, MaxTear: 3})
	assert.Error(t, err)
	assert.NoError(t, catalog.DefaultLimits.Validate())
}

// TestParseLibrary accepts library names in any case.
func TestParseLibrary(t *testing.T) {
	lib, err := catalog.ParseLibrary("Orbits")
	require.NoError(t, err)
	assert.Equal(t, catalog.Orbits, lib)
	assert.Equal(t, "orbits", lib.String())

	_, err = catalog.ParseLibrary("bogus")
	assert.ErrorIs(t, err, catalog.ErrUnknownLibrary)
}

// TestTutorial follows renames and falls back to the family video.
func TestTutorial(t *testing.T) {
	cb := codebook.New(map[string]string{"scribble": "sc", "boomy": "b + b"})
	tests := []struct {
		name string
		want string
	}{
		{"boom", "c2IrbYGs0eU"},
		{"scribble", "rtqTmUVjsuY"},
		{"b_bEx", "rtqTmUVjsuY"},
		{"f1D", "irNJitl6xpc"},
		{"f3_f3", "x-GqD3eH36g"},
		{"tr2_tr3_23", "XdkNAePjM7o"},
		{"dEx_gLog", "Fl-JlMxQlxc"},
		{"t3Ex", "WN8ity9B35U"},
		{"of1_i_21", "V1owPZNNMPI"},
		{"boomy", ""},
		{"zz", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Tutorial(tt.name, cb))
		})
	}
}
