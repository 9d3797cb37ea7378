package grammar

import (
	"fmt"
	"strings"
)

// tearName is a decoded tear token:
// [i|o|d] [f|tr] t(ear) N [Ex|Log] [__base].
type tearName struct {
	in, out     bool
	flare, tr   bool
	steps       int
	curveMod    CurveMod
	base        string
	hasExplicit bool
}

func decodeTear(name string) (tearName, bool) {
	var tn tearName
	if strings.HasPrefix(name, "otr") || strings.HasPrefix(name, "itr") {
		return tn, false
	}
	rest := name
	head, base, explicit := strings.Cut(rest, "__")
	if explicit {
		if base == "" {
			return tn, false
		}
		tn.base, tn.hasExplicit = base, true
		rest = head
	}
	switch {
	case strings.HasPrefix(rest, "d"):
		tn.in, tn.out = true, true
		rest = rest[1:]
	case strings.HasPrefix(rest, "i"):
		tn.in = true
		rest = rest[1:]
	case strings.HasPrefix(rest, "o"):
		tn.out = true
		rest = rest[1:]
	}
	switch {
	case strings.HasPrefix(rest, "tr"):
		tn.tr = true
		rest = rest[2:]
	case strings.HasPrefix(rest, "f"):
		tn.flare = true
		rest = rest[1:]
	}
	switch {
	case strings.HasPrefix(rest, "tear"):
		rest = rest[4:]
	case strings.HasPrefix(rest, "t"):
		rest = rest[1:]
	default:
		return tn, false
	}
	rest, tn.curveMod = trimCurveMod(rest)
	if len(rest) != 1 || rest[0] < '0' || rest[0] > '9' {
		return tn, false
	}
	tn.steps = int(rest[0]-'0') + 1
	return tn, true
}

// tearBaseOK accepts the base elements a tear may slice explicitly:
// flares, dice flares and transformers.
func tearBaseOK(spec Spec) bool {
	switch spec.Family {
	case Flare, DFlare, Transformer:
		return true
	}
	return false
}

// TearFormula expands a tear name into formula text: the base element is cut
// into N+1 slices of equal length and height, each lifted one step further,
// with clicks rewired so the slices read as one gesture.
func TearFormula(name string) (string, error) {
	tn, ok := decodeTear(name)
	if !ok || tn.steps <= 1 {
		return "", unrecognized(name)
	}

	var base Spec
	switch {
	case tn.hasExplicit:
		spec, err := DecodeElementary(tn.base)
		if err != nil || !tearBaseOK(spec) || spec.CurveMod != Plain {
			return "", unrecognized(name)
		}
		// Flare and transformer tears rewire the base by its short digit.
		if (tn.flare || tn.tr) && !isShortSpelling(tn.base) {
			return "", unrecognized(name)
		}
		base = spec
	case tn.tr:
		base = Spec{Family: Dice}
	default:
		base = Spec{Family: Baby}
	}
	base.CurveMod = tn.curveMod
	baseShort := base.Info().Short

	parts := make([]Spec, tn.steps)
	for i := range parts {
		parts[i] = base
	}
	first, last := 0, len(parts)-1

	if tn.flare || tn.tr {
		switch base.Family {
		case Baby:
			parts[first].Family = Out
			parts[last].Family = In
			for i := first + 1; i < last; i++ {
				parts[i].Family = Dice
			}
		case Flare:
			parts[first].Family = OFlare
			parts[last].Family = IFlare
			for i := first + 1; i < last; i++ {
				parts[i] = promote(parts[i])
			}
		}
	}

	leads := strings.HasPrefix(baseShort, "i") || strings.HasPrefix(baseShort, "d") || strings.HasPrefix(baseShort, "tr")
	if (tn.in || tn.tr) && !leads {
		p := &parts[first]
		switch p.Family {
		case Baby:
			p.Family = In
		case OFlare:
			*p = promote(*p)
		case Out:
			p.Family = Dice
		case Flare:
			p.Family = IFlare
		}
	}
	trails := strings.HasPrefix(baseShort, "o") || strings.HasPrefix(baseShort, "d") || strings.HasPrefix(baseShort, "tr")
	if (tn.out || tn.tr) && !trails {
		p := &parts[last]
		switch p.Family {
		case Baby:
			p.Family = Out
		case IFlare:
			*p = promote(*p)
		case In:
			p.Family = Dice
		case Flare:
			p.Family = OFlare
		}
	}

	texts := make([]string, len(parts))
	for i, p := range parts {
		pn := p.Name()
		if _, err := DecodeElementary(pn); err != nil {
			return "", unrecognized(name)
		}
		texts[i] = tearPart(pn, i, tn.steps)
	}
	return strings.Join(texts, " + "), nil
}

// promote turns a flare-like slice into the transformer with the same
// interior clicks.
func promote(s Spec) Spec {
	return Spec{
		Family:       Transformer,
		Digit:        s.Digit + 1,
		Distribution: s.Distribution,
		CurveMod:     s.CurveMod,
	}
}

func tearPart(name string, i, steps int) string {
	part := fmt.Sprintf("(%s/(1/%d)//(1/%d))", name, steps, steps)
	if i > 0 {
		part += fmt.Sprintf("**(%d/%d)", i, steps)
	}
	return part
}

func isShortSpelling(name string) bool {
	for _, long := range []string{"flare", "transformer"} {
		if strings.Contains(name, long) {
			return false
		}
	}
	return true
}

// IsTear reports whether name expands as a tear.
func IsTear(name string) bool {
	_, err := TearFormula(name)
	return err == nil
}
