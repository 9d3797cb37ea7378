// Package classify names the elements of a scratch and the two-element
// combinations it contains, and counts the clicks and phrases it is built
// from.
package classify

import (
	"slices"
	"strconv"

	"github.com/blackwell-systems/scratchbook/curve"
	"github.com/blackwell-systems/scratchbook/grammar"
	"github.com/blackwell-systems/scratchbook/scratch"
)

// Record is the classification of one scratch.
type Record struct {
	// Elements and Combos are sorted and free of duplicates.
	Elements []string `json:"elements" yaml:"elements"`
	Combos   []string `json:"combos" yaml:"combos"`
	// Sequence names every element in playing order.
	Sequence []string `json:"sequence" yaml:"sequence"`

	Sounds int `json:"sounds" yaml:"sounds"`
	FO     int `json:"fo" yaml:"fo"`
	FC     int `json:"fc" yaml:"fc"`
	PO     int `json:"po" yaml:"po"`
	PC     int `json:"pc" yaml:"pc"`
	F      int `json:"f" yaml:"f"`
	P      int `json:"p" yaml:"p"`

	Variations bool    `json:"variations" yaml:"variations"`
	Length     float64 `json:"length" yaml:"length"`
}

// observed is what one pass step remembers about an element.
type observed struct {
	spec     grammar.Spec
	lead     bool
	trail    bool
	interior int
	flat     bool
	silent   bool
	forward  bool
	ypos     scratch.YPos
}

// Describe returns the elementary spec an element would be spelled with.
func Describe(el scratch.Element) grammar.Spec {
	return observe(el).spec
}

// Name returns the long name the classifier gives an element.
func Name(el scratch.Element) string {
	return Describe(el).LongName()
}

func observe(el scratch.Element) observed {
	interior := el.Interior()
	o := observed{
		lead:     el.StartsOnClick(),
		trail:    el.EndsOnClick(),
		interior: len(interior),
		flat:     el.Curve() == curve.Flat,
		silent:   el.Tone() == scratch.Silent,
		forward:  el.Forward(),
		ypos:     el.YPos(),
	}

	fam, _ := grammar.Canonical(grammar.Features{
		Tone:     el.Tone(),
		Flat:     o.flat,
		Lead:     o.lead,
		Trail:    o.trail,
		Interior: o.interior,
	})
	fi := fam.Info()
	o.spec = grammar.Spec{
		Family: fam,
		Digit:  fi.DigitFor(o.interior),
	}
	if fi.Digit {
		o.spec.Distribution = distributionOf(interior)
	}
	if !fi.Flat {
		o.spec.CurveMod = grammar.CurveModOf(el.Curve())
	}
	return o
}

// distributionOf matches interior clicks against the tagged distributions.
// Evenly spaced clicks, and a lone click at 1/2, carry no tag.
func distributionOf(interior []scratch.Click) grammar.Distribution {
	n := len(interior)
	if n == 0 || (n == 1 && interior[0] == scratch.Half) {
		return grammar.Even
	}
	for _, d := range grammar.Distributions {
		if scratch.ClicksEqual(interior, grammar.InteriorClicks(n, d)) {
			return d
		}
	}
	return grammar.Even
}

// sounds counts the audible onsets an element contributes.
func (o observed) sounds() int {
	if o.lead || o.trail || o.interior > 0 {
		return o.interior + 1
	}
	if o.flat || o.silent {
		return 0
	}
	return 1
}

func (o observed) varied() bool {
	return o.spec.Distribution != grammar.Even || o.spec.CurveMod != grammar.Plain
}

// orbits reports whether cur returns along the path prev took: opposite
// directions at the same placement, with the clicks mirrored at the turn.
// Holds never orbit, and a silent member has no clicks to mirror.
func orbits(prev, cur observed) bool {
	if prev.flat || cur.flat || prev.forward == cur.forward {
		return false
	}
	if !prev.ypos.Equal(cur.ypos) {
		return false
	}
	if prev.silent || cur.silent {
		return true
	}
	return cur.lead == prev.trail && cur.trail == prev.lead
}

// combo names the orbit pair prev, cur, or returns "".
func combo(prev, cur observed) string {
	p, c := prev.spec, cur.spec
	switch c.Family {
	case grammar.Baby:
		if p.Family == grammar.Baby {
			return "babyorbit"
		}
	case grammar.Ghost:
		if p.Family == grammar.Dice {
			return "stab"
		}
	case grammar.Dice:
		switch p.Family {
		case grammar.Ghost:
			return "stab"
		case grammar.Dice:
			return "diceorbit"
		}
	case grammar.Transformer:
		if p.Family == grammar.Transformer {
			return pairName("tr", p.Digit, c.Digit)
		}
	case grammar.In:
		switch {
		case p.Family == grammar.Out:
			return "chirp"
		case p.Family == grammar.OFlare && prev.interior == 1:
			return "ogflare"
		}
	case grammar.Out:
		if p.Family == grammar.In {
			return "slice"
		}
	case grammar.Flare:
		if p.Family == grammar.Flare {
			return pairName("f", p.Digit, c.Digit)
		}
	}
	return ""
}

func pairName(short string, a, b int) string {
	return grammar.Orbit{
		Left:  short + strconv.Itoa(a),
		Right: short + strconv.Itoa(b),
	}.Name()
}

// Classify walks s once, left to right.
func Classify(s scratch.Scratch) Record {
	rec := Record{Length: s.Length()}
	var (
		prev     observed
		havePrev bool
	)
	for _, el := range s.Elements() {
		cur := observe(el)
		name := cur.spec.LongName()
		rec.Sequence = append(rec.Sequence, name)
		rec.Elements = append(rec.Elements, name)
		rec.Sounds += cur.sounds()
		rec.FO += b2i(cur.lead) + cur.interior
		rec.FC += b2i(cur.trail) + cur.interior
		rec.PO += b2i(!cur.lead)
		rec.PC += b2i(!cur.trail)
		if cur.varied() {
			rec.Variations = true
		}
		if havePrev && orbits(prev, cur) {
			if c := combo(prev, cur); c != "" {
				rec.Combos = append(rec.Combos, c)
			}
		}
		prev, havePrev = cur, true
	}
	rec.F = max(rec.FO, rec.FC)
	rec.P = max(rec.PO, rec.PC)
	rec.Elements = sortedSet(rec.Elements)
	rec.Combos = sortedSet(rec.Combos)
	return rec
}

func sortedSet(names []string) []string {
	if len(names) == 0 {
		return []string{}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
