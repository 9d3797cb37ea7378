// Package catalog enumerates the names the grammar can produce and builds
// classified libraries from them.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/blackwell-systems/scratchbook/codebook"
	"github.com/blackwell-systems/scratchbook/resolve"
)

var curveMods = []string{"", "Ex", "Log"}

var distributions = []string{"", "D", "A", "S", "Q"}

// synonyms decode to the same element as a name already listed.
var synonyms = []string{"f1S", "f1Q", "if1S", "if1Q", "of1S", "of1Q", "tr2S", "tr2Q"}

// ElementNames lists every elementary name up to the given flare and
// transformer digits, without synonyms.
func ElementNames(maxFlare, maxTransformer int) []string {
	var bases []string
	bases = append(bases, "b", "i", "o", "d")
	for n := 1; n <= maxFlare; n++ {
		for _, io := range []string{"", "i", "o"} {
			for _, d := range distributions {
				bases = append(bases, fmt.Sprintf("%sf%d%s", io, n, d))
			}
		}
	}
	for n := 2; n <= maxTransformer; n++ {
		for _, d := range distributions {
			bases = append(bases, fmt.Sprintf("tr%d%s", n, d))
		}
	}

	names := []string{"h", "gh", "g"}
	for _, base := range bases {
		if slices.Contains(synonyms, base) {
			continue
		}
		for _, c := range curveMods {
			names = append(names, base+c)
		}
	}
	return names
}

// TearNames lists tears of 2 to maxTear steps over every base.
func TearNames(maxTear int) []string {
	var names []string
	for n := 2; n <= maxTear; n++ {
		for _, base := range []string{"", "i", "o", "d", "if", "of", "tr"} {
			for _, c := range curveMods {
				names = append(names, fmt.Sprintf("%st%d%s", base, n, c))
			}
		}
	}
	return names
}

// OrbitNames lists the named orbits, the flare and transformer orbits up to
// the given digits, and every curve variant of each.
func OrbitNames(maxFlare, maxTransformer int) []string {
	names := []string{"g_d", "b_b", "i_o", "o_i", "d_d", "d_g"}
	for n := 1; n <= maxFlare; n++ {
		names = append(names, fmt.Sprintf("b_f%d_1%d", n, n+1))
	}
	for _, lr := range [][2]string{{"f", "b"}, {"if", "o"}, {"of", "i"}} {
		for n := 1; n <= maxFlare; n++ {
			names = append(names, fmt.Sprintf("%s%d_%s_%d1", lr[0], n, lr[1], n+1))
		}
	}
	for n := 1; n <= maxFlare; n++ {
		for m := 1; m <= maxFlare; m++ {
			for _, lr := range [][2]string{{"f", "f"}, {"if", "of"}, {"of", "if"}} {
				names = append(names, pairName(lr[0], n, lr[1], m, n+1, m+1))
			}
		}
	}
	for _, el := range []string{"g", "b"} {
		for n := 2; n <= maxTransformer; n++ {
			names = append(names, fmt.Sprintf("%s_tr%d_1%d", el, n, n))
		}
	}
	for _, el := range []string{"g", "b"} {
		for n := 2; n <= maxTransformer; n++ {
			names = append(names, fmt.Sprintf("tr%d_%s_%d1", n, el, n))
		}
	}
	for n := 2; n <= maxTransformer; n++ {
		for m := 2; m <= maxTransformer; m++ {
			names = append(names, pairName("tr", n, "tr", m, n, m))
		}
	}

	plain := len(names)
	for _, p := range names[:plain] {
		parts := strings.SplitN(p, "_", 3)
		for _, l := range curveMods {
			for _, r := range curveMods {
				if l == "" && r == "" {
					continue
				}
				v := parts[0] + l + "_" + parts[1] + r
				if len(parts) == 3 {
					v += "_" + parts[2]
				}
				names = append(names, v)
			}
		}
	}
	return names
}

// pairName joins two digit names, with a time split unless the digits match.
func pairName(l string, n int, r string, m, sn, sm int) string {
	name := fmt.Sprintf("%s%d_%s%d", l, n, r, m)
	if n != m {
		name += fmt.Sprintf("_%d%d", sn, sm)
	}
	return name
}

// ComboNames lists the codebook entries whose formulas are expressions
// rather than plain renames.
func ComboNames(cb *codebook.Codebook) []string {
	var names []string
	for name, formula := range cb.All() {
		if strings.ContainsAny(formula, resolve.FormulaSymbols) {
			names = append(names, name)
		}
	}
	return names
}
