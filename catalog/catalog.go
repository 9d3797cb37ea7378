package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/blackwell-systems/scratchbook/classify"
	"github.com/blackwell-systems/scratchbook/codebook"
	"github.com/blackwell-systems/scratchbook/grammar"
	"github.com/blackwell-systems/scratchbook/resolve"
)

// Library selects a family of catalog rows.
type Library int

const (
	Elements Library = iota
	Tears
	Orbits
	Combos
)

var libraryNames = []string{"elements", "tears", "orbits", "combos"}

func (l Library) String() string {
	if int(l) < len(libraryNames) {
		return libraryNames[l]
	}
	return fmt.Sprintf("Library(%d)", int(l))
}

// ErrUnknownLibrary is returned by ParseLibrary.
var ErrUnknownLibrary = errors.New("unknown library")

// ParseLibrary maps a library name to its value.
func ParseLibrary(s string) (Library, error) {
	i := slices.Index(libraryNames, strings.ToLower(s))
	if i < 0 {
		return 0, fmt.Errorf("%w %q (want one of %s)", ErrUnknownLibrary, s, strings.Join(libraryNames, ", "))
	}
	return Library(i), nil
}

// Limits bounds the digit names the generators produce. Orbit time splits
// are single digits, so flare and transformer digits stay below ten.
type Limits struct {
	MaxFlare       int `mapstructure:"max_flare"`
	MaxTransformer int `mapstructure:"max_transformer"`
	MaxTear        int `mapstructure:"max_tear"`
}

// DefaultLimits matches the published libraries.
var DefaultLimits = Limits{MaxFlare: 3, MaxTransformer: 4, MaxTear: 3}

// Validate checks that every generated name stays decodable.
func (l Limits) Validate() error {
	switch {
	case l.MaxFlare < 1 || l.MaxFlare > 8:
		return fmt.Errorf("max flare %d out of range [1, 8]", l.MaxFlare)
	case l.MaxTransformer < 2 || l.MaxTransformer > 9:
		return fmt.Errorf("max transformer %d out of range [2, 9]", l.MaxTransformer)
	case l.MaxTear < 2 || l.MaxTear > 9:
		return fmt.Errorf("max tear %d out of range [2, 9]", l.MaxTear)
	}
	return nil
}

// Row is one classified catalog entry.
type Row struct {
	Name    string   `json:"name" yaml:"name"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Formula string   `json:"formula" yaml:"formula"`
	// Tutorial is a video id, empty when none is known.
	Tutorial string          `json:"tutorial,omitempty" yaml:"tutorial,omitempty"`
	Record   classify.Record `json:"record" yaml:"record"`
}

// Names lists the names of lib.
func Names(lib Library, lim Limits, cb *codebook.Codebook) []string {
	switch lib {
	case Elements:
		return ElementNames(lim.MaxFlare, lim.MaxTransformer)
	case Tears:
		return TearNames(lim.MaxTear)
	case Orbits:
		return OrbitNames(lim.MaxFlare, lim.MaxTransformer)
	}
	return ComboNames(cb)
}

// Build resolves and classifies every name of lib.
func Build(ctx context.Context, r *resolve.Resolver, lib Library, lim Limits) ([]Row, error) {
	if lib != Combos {
		if err := lim.Validate(); err != nil {
			return nil, err
		}
	}
	cb := r.Codebook()
	names := Names(lib, lim, cb)
	renames := renamesOf(cb)

	rows := make([]Row, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := buildRow(ctx, r, name)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", lib, err)
		}
		row.Aliases = slices.Concat(renames[name], row.Aliases)
		row.Tutorial = Tutorial(name, cb)
		rows = append(rows, row)
	}
	return rows, nil
}

func buildRow(ctx context.Context, r *resolve.Resolver, name string) (Row, error) {
	def, err := r.Define(name)
	if err != nil {
		return Row{}, err
	}
	row := Row{Name: name, Formula: def.Formula}
	if def.Kind == resolve.Elementary {
		row.Formula = name
		row.Aliases = elementAliases(name)
	}
	s, err := r.Resolve(ctx, row.Formula)
	if err != nil {
		return Row{}, err
	}
	row.Record = classify.Classify(s)
	return row, nil
}

// elementAliases lists the long spelling, and for holds the other accepted
// spellings, of an elementary name.
func elementAliases(name string) []string {
	spec, err := grammar.DecodeElementary(name)
	if err != nil {
		return nil
	}
	var out []string
	if long := spec.LongName(); long != name {
		out = append(out, long)
	}
	if spec.Info().Flat {
		for _, sp := range spec.Info().Spellings {
			if sp != name && !slices.Contains(out, sp) {
				out = append(out, sp)
			}
		}
	}
	return out
}

// renamesOf maps each formula that is a bare name to the codebook entries
// that rename it.
func renamesOf(cb *codebook.Codebook) map[string][]string {
	out := make(map[string][]string)
	for name, formula := range cb.All() {
		if strings.ContainsAny(formula, resolve.FormulaSymbols) {
			continue
		}
		target := strings.TrimSpace(formula)
		out[target] = append(out[target], name)
	}
	return out
}
