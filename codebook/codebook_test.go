package codebook_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/scratchbook/codebook"
)

const yamlBook = `
boom: b + b
boom_roll: boom * 2 % 1
chirp_flare: o + if1
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestParse_Formats loads the same codebook in every supported format.
func TestParse_Formats(t *testing.T) {
	want := map[string]string{
		"boom":        "b + b",
		"boom_roll":   "boom * 2 % 1",
		"chirp_flare": "o + if1",
	}
	tests := []struct {
		name   string
		format codebook.Format
		data   string
	}{
		{"yaml", codebook.FormatYAML, yamlBook},
		{"json", codebook.FormatJSON, `{"boom": "b + b", "boom_roll": "boom * 2 % 1", "chirp_flare": "o + if1"}`},
		{"toml", codebook.FormatTOML, "boom = \"b + b\"\nboom_roll = \"boom * 2 % 1\"\nchirp_flare = \"o + if1\"\n"},
		{"cue", codebook.FormatCUE, "boom: \"b + b\"\nboom_roll: \"boom * 2 % 1\"\nchirp_flare: \"o + if1\"\n"},
	}
	var version string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, err := codebook.Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.Equal(t, 3, cb.Len())
			for name, formula := range want {
				got, ok := cb.Lookup(name)
				require.True(t, ok, name)
				assert.Equal(t, formula, got)
			}
			if version == "" {
				version = cb.Version()
			}
			assert.Equal(t, version, cb.Version(), "version depends only on content")
		})
	}
}

// TestParse_YAMLOrder keeps the file order for listing.
func TestParse_YAMLOrder(t *testing.T) {
	cb, err := codebook.Parse([]byte("z: b\na: d\nm: g\n"), codebook.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, cb.Names())

	var seen []string
	for name := range cb.All() {
		seen = append(seen, name)
	}
	assert.Equal(t, cb.Names(), seen)
}

// TestParse_Rejects covers malformed files.
func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		format codebook.Format
		data   string
	}{
		{"yaml list", codebook.FormatYAML, "- b\n- d\n"},
		{"yaml nested", codebook.FormatYAML, "boom:\n  a: b\n"},
		{"yaml empty formula", codebook.FormatYAML, "boom:\n"},
		{"yaml duplicate", codebook.FormatYAML, "boom: b\nboom: d\n"},
		{"toml number", codebook.FormatTOML, "boom = 3\n"},
		{"cue number", codebook.FormatCUE, "boom: 3\n"},
		{"cue syntax", codebook.FormatCUE, "boom: \"b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codebook.Parse([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}
}

// TestLoadFile dispatches on the file extension.
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "book.yml", yamlBook)

	cb, err := codebook.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, cb.Source())
	assert.True(t, cb.Has("boom"))

	_, err = codebook.LoadFile(writeFile(t, dir, "book.ini", "boom=b"))
	assert.ErrorIs(t, err, codebook.ErrUnknownFormat)

	_, err = codebook.LoadFile(filepath.Join(dir, "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// TestNilCodebook behaves as an empty snapshot.
func TestNilCodebook(t *testing.T) {
	var cb *codebook.Codebook
	_, ok := cb.Lookup("boom")
	assert.False(t, ok)
	assert.Equal(t, 0, cb.Len())
	assert.Empty(t, cb.Names())
	assert.Equal(t, codebook.New(nil).Version(), cb.Version())
}

// TestNew copies its input.
func TestNew(t *testing.T) {
	entries := map[string]string{"b2": "b + b", "a2": "d"}
	cb := codebook.New(entries)
	entries["b2"] = "g"

	got, _ := cb.Lookup("b2")
	assert.Equal(t, "b + b", got)
	assert.Equal(t, []string{"a2", "b2"}, cb.Names())
	assert.NotEqual(t, codebook.New(entries).Version(), cb.Version())
}

// TestLint covers each finding kind and the dependency order.
func TestLint(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		cb, err := codebook.Parse([]byte(yamlBook), codebook.FormatYAML)
		require.NoError(t, err)
		report, err := codebook.Lint(cb)
		require.NoError(t, err)
		assert.True(t, report.OK(), "%v", report.Findings)
		require.Len(t, report.Order, 3)
		assert.Less(t, indexOf(report.Order, "boom"), indexOf(report.Order, "boom_roll"))
	})

	t.Run("missing", func(t *testing.T) {
		cb := codebook.New(map[string]string{"combo": "b + ghostly"})
		report, err := codebook.Lint(cb)
		require.NoError(t, err)
		require.Len(t, report.Findings, 1)
		assert.Equal(t, codebook.Missing, report.Findings[0].Kind)
		assert.Equal(t, "combo", report.Findings[0].Name)
		assert.Contains(t, report.Findings[0].Detail, "ghostly")
	})

	t.Run("cycle", func(t *testing.T) {
		cb := codebook.New(map[string]string{
			"ping":  "pong + b",
			"pong":  "ping",
			"self":  "self * 2",
			"clean": "ping + d",
		})
		report, err := codebook.Lint(cb)
		require.NoError(t, err)
		var cyclic []string
		for _, f := range report.Findings {
			require.Equal(t, codebook.Cyclic, f.Kind)
			cyclic = append(cyclic, f.Name)
		}
		assert.ElementsMatch(t, []string{"ping", "pong", "self"}, cyclic)
		assert.Empty(t, report.Order)
	})

	t.Run("invalid and shadowed", func(t *testing.T) {
		cb := codebook.New(map[string]string{
			"broken": "b + (d",
			"f2":     "b",
		})
		report, err := codebook.Lint(cb)
		require.NoError(t, err)
		kinds := map[string]codebook.FindingKind{}
		for _, f := range report.Findings {
			kinds[f.Name] = f.Kind
		}
		assert.Equal(t, map[string]codebook.FindingKind{
			"broken": codebook.Invalid,
			"f2":     codebook.Shadowed,
		}, kinds)
	})
}

// TestReferences lists identifiers in order of first use.
func TestReferences(t *testing.T) {
	refs, err := codebook.References("(b_b + -f2S)/1 + b_b[0:1] * 3")
	require.NoError(t, err)
	assert.Equal(t, []string{"b_b", "f2S"}, refs)
}

// TestIsGrammarName recognises every grammar branch.
func TestIsGrammarName(t *testing.T) {
	for _, name := range []string{"b", "tr3SLog", "ft2", "b_b", "of1_i_21"} {
		assert.True(t, codebook.IsGrammarName(name), name)
	}
	for _, name := range []string{"boom", "boom_roll", "xyz123"} {
		assert.False(t, codebook.IsGrammarName(name), name)
	}
}

// TestWatcher reloads the file after it is rewritten.
func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "book.yaml", "boom: b + b\n")

	w, err := codebook.NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	writeFile(t, dir, "other.yaml", "ignored: b\n")
	writeFile(t, dir, "book.yaml", "boom: d + d\n")

	select {
	case u := <-w.Updates:
		require.NoError(t, u.Err)
		got, ok := u.Codebook.Lookup("boom")
		require.True(t, ok)
		assert.Equal(t, "d + d", got)
		assert.False(t, u.Codebook.Has("ignored"))
	case <-time.After(5 * time.Second):
		t.Fatal("no update after rewriting the codebook")
	}
}

func indexOf(list []string, s string) int {
	for i, x := range list {
		if x == s {
			return i
		}
	}
	return -1
}
