package classify_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/scratchbook/classify"
	"github.com/blackwell-systems/scratchbook/grammar"
	"github.com/blackwell-systems/scratchbook/resolve"
)

func classifyFormula(t *testing.T, formula string) classify.Record {
	t.Helper()
	s, err := resolve.New(nil).Resolve(context.Background(), formula)
	require.NoError(t, err, formula)
	return classify.Classify(s)
}

// TestClassify_Baby covers the simplest scratch.
func TestClassify_Baby(t *testing.T) {
	rec := classifyFormula(t, "b")
	assert.Equal(t, []string{"baby"}, rec.Elements)
	assert.Empty(t, rec.Combos)
	assert.Equal(t, 1, rec.Sounds)
	assert.Equal(t, 0, rec.F)
	assert.Equal(t, 1, rec.P)
	assert.False(t, rec.Variations)
	assert.InDelta(t, 1.0, rec.Length, 1e-9)
}

// TestClassify_Variations flags distribution and curve modifiers.
func TestClassify_Variations(t *testing.T) {
	rec := classifyFormula(t, "f2S")
	assert.Equal(t, []string{"flare2S"}, rec.Elements)
	assert.True(t, rec.Variations)
	assert.Equal(t, 3, rec.Sounds)

	assert.True(t, classifyFormula(t, "gLog").Variations)
	assert.False(t, classifyFormula(t, "b + d + f2").Variations)
}

// TestClassify_Counters checks click and phrase counting.
func TestClassify_Counters(t *testing.T) {
	rec := classifyFormula(t, "d + f2 + b")
	assert.Equal(t, []string{"baby", "dice", "flare2"}, rec.Elements)
	assert.Equal(t, []string{"dice", "flare2", "baby"}, rec.Sequence)
	assert.Equal(t, 5, rec.Sounds)
	assert.Equal(t, 3, rec.FO)
	assert.Equal(t, 3, rec.FC)
	assert.Equal(t, 2, rec.PO)
	assert.Equal(t, 2, rec.PC)
	assert.Equal(t, 3, rec.F)
	assert.Equal(t, 2, rec.P)

	rec = classifyFormula(t, "i + i + o")
	assert.Equal(t, 2, rec.FO)
	assert.Equal(t, 1, rec.FC)
	assert.Equal(t, 1, rec.PO)
	assert.Equal(t, 2, rec.PC)
	assert.Equal(t, 2, rec.P)
	assert.Equal(t, []string{"in", "out"}, rec.Elements)

	assert.Equal(t, 0, classifyFormula(t, "h + gh + g").Sounds)
}

// TestClassify_Combos names every orbit pair.
func TestClassify_Combos(t *testing.T) {
	tests := []struct {
		formula string
		combos  []string
	}{
		{"b_b", []string{"babyorbit"}},
		{"d_g", []string{"stab"}},
		{"g_d", []string{"stab"}},
		{"d_d", []string{"diceorbit"}},
		{"o_i", []string{"chirp"}},
		{"i_o", []string{"slice"}},
		{"of1_i", []string{"ogflare"}},
		{"tr2_tr3", []string{"tr2_tr3"}},
		{"f1_f2", []string{"f1_f2"}},
		{"b_b + b_b", []string{"babyorbit"}},
		{"b_b + d_d", []string{"babyorbit", "diceorbit"}},
		// Same direction.
		{"b + b", []string{}},
		// Holds never orbit.
		{"h + -h", []string{}},
		// Different placement.
		{"b + -b // 0.5", []string{}},
		// Clicks not mirrored at the turn.
		{"i + -i", []string{}},
		// Pair with no name.
		{"b_d", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			assert.Equal(t, tt.combos, classifyFormula(t, tt.formula).Combos)
		})
	}
}

// TestClassify_FlipSymmetry flips orbits both ways at once. The pair is still
// detected, with its two sides swapped.
func TestClassify_FlipSymmetry(t *testing.T) {
	tests := []struct {
		formula string
		combos  []string
		flipped []string
	}{
		{"b_b", []string{"babyorbit"}, []string{"babyorbit"}},
		{"b_b_21", []string{"babyorbit"}, []string{"babyorbit"}},
		{"d_g", []string{"stab"}, []string{"stab"}},
		{"d_d", []string{"diceorbit"}, []string{"diceorbit"}},
		{"o_i", []string{"chirp"}, []string{"chirp"}},
		{"i_o", []string{"slice"}, []string{"slice"}},
		{"tr2_tr3", []string{"tr2_tr3"}, []string{"tr3_tr2"}},
		{"f1_f2", []string{"f1_f2"}, []string{"f2_f1"}},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			assert.Equal(t, tt.combos, classifyFormula(t, tt.formula).Combos)
			for _, f := range []string{"-~(%s)", "~-(%s)"} {
				flipped := fmt.Sprintf(f, tt.formula)
				rec := classifyFormula(t, flipped)
				assert.Equal(t, tt.flipped, rec.Combos, flipped)
				assert.Len(t, rec.Sequence, 2, flipped)
			}
		})
	}
}

// TestName names every elementary spelling by its canonical long name.
func TestName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"b", "baby"},
		{"bEx", "babyEx"},
		{"g", "ghost"},
		{"gLog", "ghostLog"},
		{"h", "hold"},
		{"gh", "ghosthold"},
		{"i", "in"},
		{"oLog", "outLog"},
		{"d", "dice"},
		{"dEx", "diceEx"},
		{"f1", "flare1"},
		{"f1D", "flare1D"},
		{"f1A", "flare1A"},
		{"f1S", "flare1"},
		{"f2S", "flare2S"},
		{"f3Q", "flare3Q"},
		{"if2A", "iflare2A"},
		{"of1Q", "oflare1"},
		{"tr2", "transformer2"},
		{"tr3QLog", "transformer3QLog"},
		{"df2", "transformer3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := grammar.DecodeElementary(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, classify.Name(spec.Element()))
		})
	}
}

// TestName_Flipped reads the distribution after a horizontal flip.
func TestName_Flipped(t *testing.T) {
	spec, err := grammar.DecodeElementary("f2D")
	require.NoError(t, err)
	assert.Equal(t, "flare2A", classify.Name(spec.Element().FlipX()))

	spec, err = grammar.DecodeElementary("i")
	require.NoError(t, err)
	assert.Equal(t, "out", classify.Name(spec.Element().FlipX()))
}

// TestDescribe returns a spec that spells the element again.
func TestDescribe(t *testing.T) {
	spec, err := grammar.DecodeElementary("transformer4DEx")
	require.NoError(t, err)
	got := classify.Describe(spec.Element())
	assert.Equal(t, "tr4DEx", got.Name())
	assert.True(t, spec.Element().Equal(got.Element()))
}
