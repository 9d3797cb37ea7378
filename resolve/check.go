package resolve

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/blackwell-systems/scratchbook/scratch"
)

var (
	ErrEmptyFormula = errors.New("empty formula")
	ErrNotAFormula  = errors.New("not a working formula")
)

// InvalidCharacterError reports a character the formula language does not use.
type InvalidCharacterError struct {
	Char rune
	Pos  int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("you cannot use %q in a formula (position %d)", e.Char, e.Pos)
}

// TooLongError reports a scratch longer than the configured limit.
type TooLongError struct {
	Length float64
	Max    float64
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("scratch is %g beats long, the limit is %g", e.Length, e.Max)
}

// Check removes whitespace from a formula and rejects text that cannot be a
// formula: empty input, bare punctuation and characters outside the
// formula alphabet. It returns the normalised formula.
func Check(formula string) (string, error) {
	normalized := strings.Join(strings.Fields(formula), "")
	switch normalized {
	case "":
		return "", ErrEmptyFormula
	case ".", "()", "[]":
		return "", ErrNotAFormula
	}
	for i, r := range normalized {
		if r > unicode.MaxASCII || !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(FormulaSymbols, r)) {
			return "", &InvalidCharacterError{Char: r, Pos: i}
		}
	}
	return normalized, nil
}

// CheckLength rejects scratches longer than limit beats. A limit of zero or less
// disables the check.
func CheckLength(s scratch.Scratch, limit float64) error {
	if limit > 0 && s.Length() > limit {
		return &TooLongError{Length: s.Length(), Max: limit}
	}
	return nil
}
