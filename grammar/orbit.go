package grammar

import (
	"fmt"
	"strings"
)

// Orbit is a decoded orbit name: Left goes out, Right comes back flipped.
// N and M are the optional time split, both zero when absent.
type Orbit struct {
	Left, Right string
	N, M        int
}

// DecodeOrbit splits an orbit name of the form L_R or L_R_NM.
func DecodeOrbit(name string) (Orbit, error) {
	body := name
	var o Orbit
	if n := len(body); n > 3 && body[n-3] == '_' && body[n-4] != '_' && isDigit(body[n-2]) && isDigit(body[n-1]) {
		if left, right, ok := splitOrbit(body[:n-3]); ok {
			o.Left, o.Right = left, right
			o.N, o.M = int(body[n-2]-'0'), int(body[n-1]-'0')
			if o.N == 0 || o.M == 0 {
				return Orbit{}, unrecognized(name)
			}
			return o, nil
		}
	}
	left, right, ok := splitOrbit(body)
	if !ok {
		return Orbit{}, unrecognized(name)
	}
	o.Left, o.Right = left, right
	return o, nil
}

// splitOrbit finds the single underscore that separates two grammar names.
// Double underscores belong to tear base suffixes and never split.
func splitOrbit(s string) (string, string, bool) {
	for i := 1; i < len(s)-1; i++ {
		if s[i] != '_' || s[i-1] == '_' || s[i+1] == '_' {
			continue
		}
		left, right := s[:i], s[i+1:]
		if isGrammarName(left) && isGrammarName(right) {
			return left, right, true
		}
	}
	return "", "", false
}

func isGrammarName(s string) bool {
	return IsElementary(s) || IsTear(s)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// keepsProportion reports whether a side carries interior clicks whose
// spacing would be distorted by compressing the orbit's height.
func keepsProportion(side string) bool {
	for _, p := range []string{"f", "if", "of", "tr"} {
		if strings.HasPrefix(side, p) {
			return true
		}
	}
	return false
}

// Name renders the orbit back into its name.
func (o Orbit) Name() string {
	if o.N > 0 {
		return fmt.Sprintf("%s_%s_%d%d", o.Left, o.Right, o.N, o.M)
	}
	return o.Left + "_" + o.Right
}

// Formula renders the orbit as formula text.
func (o Orbit) Formula() string {
	var body string
	if o.N > 0 {
		den := o.N + o.M
		body = fmt.Sprintf("(%s/(%d/%d) + -%s/(%d/%d)) / 1", o.Left, o.N, den, o.Right, o.M, den)
	} else {
		body = fmt.Sprintf("(%s + -%s) / 1", o.Left, o.Right)
	}
	if !keepsProportion(o.Left) && !keepsProportion(o.Right) {
		body += " // 0.5"
	}
	return body
}

// OrbitFormula expands an orbit name into formula text.
func OrbitFormula(name string) (string, error) {
	o, err := DecodeOrbit(name)
	if err != nil {
		return "", err
	}
	return o.Formula(), nil
}
