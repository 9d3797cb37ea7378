package grammar

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/blackwell-systems/scratchbook/curve"
	"github.com/blackwell-systems/scratchbook/scratch"
)

// ErrUnrecognizedName is matched by every UnrecognizedNameError.
var ErrUnrecognizedName = errors.New("unrecognized name")

// UnrecognizedNameError carries the text that matched no grammar branch.
type UnrecognizedNameError struct {
	Name string
}

func (e *UnrecognizedNameError) Error() string {
	return fmt.Sprintf("unintelligible name: %q", e.Name)
}

func (e *UnrecognizedNameError) Is(target error) bool {
	return target == ErrUnrecognizedName
}

func unrecognized(name string) error {
	return &UnrecognizedNameError{Name: name}
}

// CurveMod is the optional curve modifier of a name.
type CurveMod int

const (
	Plain CurveMod = iota
	Exp
	Logarithmic
)

func (c CurveMod) String() string {
	switch c {
	case Exp:
		return "Ex"
	case Logarithmic:
		return "Log"
	}
	return ""
}

// Curve returns the curve the modifier selects for a moving element.
func (c CurveMod) Curve() *curve.Curve {
	switch c {
	case Exp:
		return curve.Ex
	case Logarithmic:
		return curve.Log
	}
	return curve.S
}

// CurveModOf maps a curve back to its modifier.
func CurveModOf(c *curve.Curve) CurveMod {
	switch c {
	case curve.Ex:
		return Exp
	case curve.Log:
		return Logarithmic
	}
	return Plain
}

func trimCurveMod(s string) (string, CurveMod) {
	if rest, ok := strings.CutSuffix(s, "Ex"); ok {
		return rest, Exp
	}
	if rest, ok := strings.CutSuffix(s, "Log"); ok {
		return rest, Logarithmic
	}
	return s, Plain
}

// Spec is a decoded elementary name.
type Spec struct {
	Family       Family
	Digit        int
	Distribution Distribution
	CurveMod     CurveMod
}

// Info returns the family table entry.
func (s Spec) Info() *FamilyInfo { return s.Family.Info() }

// Interior is the number of interior clicks the spec carries.
func (s Spec) Interior() int { return s.Info().Interior(s.Digit) }

// Name renders the canonical short spelling.
func (s Spec) Name() string {
	fi := s.Info()
	var sb strings.Builder
	sb.WriteString(fi.Short)
	if fi.Digit {
		sb.WriteString(strconv.Itoa(s.Digit))
		sb.WriteString(s.Distribution.String())
	}
	sb.WriteString(s.CurveMod.String())
	return sb.String()
}

// LongName renders the canonical long spelling, as the classifier names it.
func (s Spec) LongName() string {
	fi := s.Info()
	var sb strings.Builder
	sb.WriteString(fi.Long)
	if fi.Digit {
		sb.WriteString(strconv.Itoa(s.Digit))
		sb.WriteString(s.Distribution.String())
	}
	sb.WriteString(s.CurveMod.String())
	return sb.String()
}

// Clicks returns the full click set, boundaries included.
func (s Spec) Clicks() []scratch.Click {
	fi := s.Info()
	var out []scratch.Click
	if fi.Lead {
		out = append(out, scratch.Start)
	}
	out = append(out, InteriorClicks(s.Interior(), s.Distribution)...)
	if fi.Trail {
		out = append(out, scratch.End)
	}
	return out
}

// Element builds the unit element the spec denotes.
func (s Spec) Element() scratch.Element {
	fi := s.Info()
	c := s.CurveMod.Curve()
	if fi.Flat {
		c = curve.Flat
	}
	return scratch.NewElement(c, fi.Tone, s.Clicks()...)
}

// Scratch wraps Element in a one-element scratch.
func (s Spec) Scratch() scratch.Scratch { return scratch.Of(s.Element()) }

// spellings holds every family spelling, longest first, so that "gh" wins
// over "g" and "iflare" over "in".
var spellings = func() []spelling {
	var out []spelling
	for i := range Families {
		for _, sp := range Families[i].Spellings {
			out = append(out, spelling{text: sp, family: Families[i].Family})
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return len(out[a].text) > len(out[b].text)
	})
	return out
}()

type spelling struct {
	text   string
	family Family
}

// DecodeElementary decodes a single elementary token.
func DecodeElementary(name string) (Spec, error) {
	for _, sp := range spellings {
		rest, ok := strings.CutPrefix(name, sp.text)
		if !ok {
			continue
		}
		if spec, ok := decodeModifiers(sp.family, rest); ok {
			return spec, nil
		}
	}
	return Spec{}, unrecognized(name)
}

func decodeModifiers(f Family, rest string) (Spec, bool) {
	fi := f.Info()
	spec := Spec{Family: f}
	if fi.Flat {
		return spec, rest == ""
	}
	rest, spec.CurveMod = trimCurveMod(rest)
	if !fi.Digit {
		return spec, rest == ""
	}
	if rest == "" || rest[0] < '0' || rest[0] > '9' {
		return spec, false
	}
	spec.Digit = int(rest[0] - '0')
	if spec.Digit < fi.MinDigit {
		return spec, false
	}
	rest = rest[1:]
	if rest == "" {
		return spec, true
	}
	d, ok := distributionOf(rest[0])
	if !ok || len(rest) != 1 {
		return spec, false
	}
	spec.Distribution = d
	return spec, true
}

// IsElementary reports whether name decodes as an elementary token.
func IsElementary(name string) bool {
	_, err := DecodeElementary(name)
	return err == nil
}
