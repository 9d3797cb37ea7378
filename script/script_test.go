package script_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"

	"github.com/blackwell-systems/scratchbook/codebook"
	"github.com/blackwell-systems/scratchbook/resolve"
	"github.com/blackwell-systems/scratchbook/script"
)

func newResolver() *resolve.Resolver {
	return resolve.New(codebook.New(map[string]string{
		"boom":      "b + b",
		"boom_roll": "boom * 2 % 1",
	}))
}

// TestRun_Builtins exercises every builtin and routes print to out.
func TestRun_Builtins(t *testing.T) {
	src := `
rec = classify("b_b")
print(rec["combos"])
s = resolve("f2S")
print(s["elements"][0]["clicks"])
print(s["elements"][0]["name"])
print(names("boom_roll + b"))
d = define("ft2")
print(d["kind"], d["refs"])
total = len(resolve("boom_roll")["elements"])
`
	var out bytes.Buffer
	globals, err := script.Run(context.Background(), newResolver(), "builtins.star", src, &out)
	require.NoError(t, err)
	assert.Equal(t, `["babyorbit"]
["1/4", "3/4"]
flare2S
["boom_roll", "b"]
tear ["o", "d", "i"]
`, out.String())
	assert.Equal(t, starlark.MakeInt(4), globals["total"])
}

// TestRun_Errors surfaces resolution failures as script errors.
func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unrecognized", `resolve("xyz123")`, `unintelligible name: "xyz123"`},
		{"missing", `classify("boom + ghostly")`, `unintelligible name: "ghostly"`},
		{"bad formula", `resolve("b +")`, "evaluation error"},
		{"arity", `names()`, "missing argument for formula"},
		{"syntax", `resolve(`, "builtins.star"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := script.Run(context.Background(), newResolver(), "builtins.star", tt.src, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// TestRun_Cancelled stops a script when its context ends.
func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := `
def spin():
    for i in range(100000000):
        pass
spin()
`
	_, err := script.Run(ctx, newResolver(), "spin.star", src, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")
}

// TestView keeps placement and names of each element.
func TestView(t *testing.T) {
	s, err := newResolver().Resolve(context.Background(), "b_b")
	require.NoError(t, err)
	v := script.View(s)
	require.Len(t, v.Elements, 2)
	assert.Equal(t, "baby", v.Elements[1].Name)
	assert.True(t, v.Elements[1].YFlip)
	assert.InDelta(t, 0.5, v.Height, 1e-9)
	assert.Equal(t, "S", v.Elements[0].Curve)
	assert.Equal(t, "audible", v.Elements[0].Tone)
}
