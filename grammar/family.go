// Package grammar decodes scratch names. Elementary names map to a single
// element; tear and orbit names expand to formula text over elementary names.
//
// The family table in this file is shared with the classifier, which walks it
// in reverse to name elements from their structure.
package grammar

import (
	"github.com/blackwell-systems/scratchbook/scratch"
)

// Family identifies an elementary scratch family.
type Family int

const (
	Hold Family = iota
	GhostHold
	Ghost
	Baby
	In
	Out
	Dice
	Flare
	IFlare
	OFlare
	DFlare
	Transformer
)

// FamilyInfo describes how a family is spelled and what it builds.
type FamilyInfo struct {
	Family Family
	// Short is the canonical short spelling, Long the canonical long one.
	Short string
	Long  string
	// Spellings lists every accepted spelling, longest first.
	Spellings []string
	Tone      scratch.Tone
	// Flat families use the hold curve and take no modifiers.
	Flat bool
	// Lead and Trail add boundary clicks at 0 and 1.
	Lead  bool
	Trail bool
	// Digit families carry a count and may take a distribution modifier.
	Digit bool
	// Offset is subtracted from the digit to get the interior click count.
	Offset   int
	MinDigit int
	// Synonym families decode but are never produced by classification.
	Synonym bool
}

// Families is the canonical table, in classification priority order.
var Families = []FamilyInfo{
	{Family: Hold, Short: "h", Long: "hold", Spellings: []string{"hold", "h"}, Flat: true},
	{Family: GhostHold, Short: "gh", Long: "ghosthold", Spellings: []string{"ghosthold", "ghosth", "ghold", "gh"}, Tone: scratch.Silent, Flat: true},
	{Family: Ghost, Short: "g", Long: "ghost", Spellings: []string{"ghost", "g"}, Tone: scratch.Silent},
	{Family: Baby, Short: "b", Long: "baby", Spellings: []string{"baby", "b"}},
	{Family: Transformer, Short: "tr", Long: "transformer", Spellings: []string{"transformer", "tr"}, Lead: true, Trail: true, Digit: true, Offset: 1, MinDigit: 2},
	{Family: Dice, Short: "d", Long: "dice", Spellings: []string{"dice", "d"}, Lead: true, Trail: true},
	{Family: IFlare, Short: "if", Long: "iflare", Spellings: []string{"iflare", "if"}, Lead: true, Digit: true, MinDigit: 1},
	{Family: In, Short: "i", Long: "in", Spellings: []string{"in", "i"}, Lead: true},
	{Family: OFlare, Short: "of", Long: "oflare", Spellings: []string{"oflare", "of"}, Trail: true, Digit: true, MinDigit: 1},
	{Family: Out, Short: "o", Long: "out", Spellings: []string{"out", "o"}, Trail: true},
	{Family: Flare, Short: "f", Long: "flare", Spellings: []string{"flare", "f"}, Digit: true, MinDigit: 1},
	{Family: DFlare, Short: "df", Long: "dflare", Spellings: []string{"dflare", "df"}, Lead: true, Trail: true, Digit: true, MinDigit: 1, Synonym: true},
}

var familyIndex = func() map[Family]*FamilyInfo {
	m := make(map[Family]*FamilyInfo, len(Families))
	for i := range Families {
		m[Families[i].Family] = &Families[i]
	}
	return m
}()

// Info returns the table entry for f.
func (f Family) Info() *FamilyInfo { return familyIndex[f] }

func (f Family) String() string { return f.Info().Long }

// Interior returns the interior click count for a digit of this family.
func (fi *FamilyInfo) Interior(digit int) int {
	if !fi.Digit {
		return 0
	}
	return digit - fi.Offset
}

// DigitFor is the inverse of Interior.
func (fi *FamilyInfo) DigitFor(interior int) int {
	if !fi.Digit {
		return 0
	}
	return interior + fi.Offset
}

// Features is what the classifier can observe about an element.
type Features struct {
	Tone     scratch.Tone
	Flat     bool
	Lead     bool
	Trail    bool
	Interior int
}

// Canonical names the family an element with the given features belongs to.
// Click-less elements are told apart by curve and tone; elements with clicks
// only by where their clicks sit.
func Canonical(ft Features) (Family, bool) {
	clicked := ft.Lead || ft.Trail || ft.Interior > 0
	for i := range Families {
		fi := &Families[i]
		if fi.Synonym {
			continue
		}
		hasClicks := fi.Lead || fi.Trail || fi.Digit
		if hasClicks != clicked {
			continue
		}
		if !clicked {
			if fi.Flat == ft.Flat && fi.Tone == ft.Tone {
				return fi.Family, true
			}
			continue
		}
		if fi.Lead == ft.Lead && fi.Trail == ft.Trail && fi.Digit == (ft.Interior > 0) {
			return fi.Family, true
		}
	}
	return 0, false
}
