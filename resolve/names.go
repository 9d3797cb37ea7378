package resolve

import (
	"slices"
	"strings"
)

// FormulaSymbols are the operator and punctuation characters of the formula
// language.
const FormulaSymbols = "-+*/%~[]().:"

// Names returns the bare names a formula mentions, in order of first use.
// Operators, punctuation and numeric literals are dropped.
func Names(formula string) []string {
	fields := strings.FieldsFunc(formula, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || strings.ContainsRune(FormulaSymbols, r)
	})
	var names []string
	for _, f := range fields {
		if isNumeric(f) || slices.Contains(names, f) {
			continue
		}
		names = append(names, f)
	}
	return names
}

func isNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
