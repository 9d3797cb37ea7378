package catalog

import (
	"strings"

	"github.com/blackwell-systems/scratchbook/codebook"
	"github.com/blackwell-systems/scratchbook/resolve"
)

// tutorials maps catalog names to video ids.
var tutorials = map[string]string{
	"ab":        "nqzwiWkKV_s",
	"aqua":      "7GXOhZbuvIg",
	"boom":      "c2IrbYGs0eU",
	"boom_roll": "c2IrbYGs0eU",
	"brbhp":     "REVf6rnZPBc",
	"cboom":     "5mB80n1sZmo",
	"cf1":       "DUaY6gMONmA",
	"cogf":      "DPC6LJar6DY",
	"cogf_roll": "DPC6LJar6DY",
	"cts":       "FllVjK2nv3c",
	"delete":    "Hpzb9wALU04",
	"dr":        "rtqTmUVjsuY",
	"eg":        "fPOTkGvLtL0",
	"eg_roll":   "fPOTkGvLtL0",
	"hg":        "OVZxorYLHj8",
	"hg_roll":   "OVZxorYLHj8",
	"hp_roll":   "wmiTMz8XViE",
	"internet":  "_mxSbVy6y8Y",
	"jc":        "lV5SPCaAnMM",
	"k":         "rQnMymtQ9sg",
	"mf1":       "XbU7whSfp-c",
	"mf2":       "XbU7whSfp-c",
	"mt":        "GpT1Y1aMlWw",
	"of1_i_21":  "V1owPZNNMPI",
	"pr":        "B32m9Jqqrpo",
	"pr_roll":   "B32m9Jqqrpo",
	"rl":        "iMHKliaY7BU",
	"sc":        "rtqTmUVjsuY",
	"scf1":      "7zHJShFI7uM",
	"scf2":      "7zHJShFI7uM",
	"sf":        "h3o5OTIy-kQ",
	"slico1":    "B_iOaAguNuo",
	"slico2":    "B_iOaAguNuo",
	"spair":     "xxhZ45KcMCY",
	"square":    "qkh_EgsZt3M",
	"ss":        "6ZHYnUdPw3g",
	"ta1":       "-kuVk_wyNAg",
	"ta1_roll":  "-kuVk_wyNAg?t=17",
	"ta2":       "JRaUuXhw6Qk",
	"tt":        "7I8ezdTaq88",
	"uzi":       "YjtVcQ39QrU",
	"x":         "aVgurUuDDSw&t=369s",
}

// Tutorial returns the video id for name. A codebook rename is followed
// once; names without their own video fall back to the one for their
// family, judged on the first two orbit sides.
func Tutorial(name string, cb *codebook.Codebook) string {
	if formula, ok := cb.Lookup(name); ok && !strings.ContainsAny(formula, resolve.FormulaSymbols) {
		name = strings.TrimSpace(formula)
	}
	if id, ok := tutorials[name]; ok {
		return id
	}

	keepDigits := familyKey(name, true)
	bare := familyKey(name, false)
	switch {
	case keepDigits == "b_b" || keepDigits == "b":
		return "rtqTmUVjsuY"
	case keepDigits == "f1_f1" || keepDigits == "f1":
		return "irNJitl6xpc"
	case keepDigits == "f2_f2" || keepDigits == "f2",
		keepDigits == "f3_f3" || keepDigits == "f3":
		return "x-GqD3eH36g"
	case bare == "tr_tr" || bare == "tr":
		return "XdkNAePjM7o"
	case bare == "d_g":
		return "Fl-JlMxQlxc"
	case bare == "o_i":
		return "pKe3OUKaK2k"
	case bare == "t" || bare == "t_t":
		return "WN8ity9B35U"
	}
	return ""
}

// familyKey strips modifiers from the first two underscore-separated parts
// of name, and digits too unless keepDigits is set.
func familyKey(name string, keepDigits bool) string {
	parts := strings.Split(name, "_")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	for i, p := range parts {
		p = strings.NewReplacer("Log", "", "Ex", "").Replace(p)
		parts[i] = strings.Map(func(r rune) rune {
			if strings.ContainsRune("DASQ", r) || (!keepDigits && r >= '0' && r <= '9') {
				return -1
			}
			return r
		}, p)
	}
	return strings.Join(parts, "_")
}
