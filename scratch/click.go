package scratch

import (
	"fmt"
	"strconv"
	"strings"
)

// Click is a crossfader click position on [0,1], held as a reduced fraction so
// that complementing it is exact.
type Click struct {
	num int64
	den int64
}

// Frac returns num/den reduced. It panics on a zero denominator or a value
// outside [0,1]; clicks are only built from grammar tables and flips.
func Frac(num, den int64) Click {
	if den == 0 {
		panic("scratch: zero click denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	if num < 0 || num > den {
		panic(fmt.Sprintf("scratch: click %d/%d out of range", num, den))
	}
	g := gcd(num, den)
	return Click{num: num / g, den: den / g}
}

var (
	// Start is the click at position 0.
	Start = Click{num: 0, den: 1}
	// End is the click at position 1.
	End = Click{num: 1, den: 1}
	// Half is the click at position 1/2.
	Half = Click{num: 1, den: 2}
)

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// Num returns the reduced numerator.
func (c Click) Num() int64 { return c.num }

// Den returns the reduced denominator.
func (c Click) Den() int64 {
	if c.den == 0 {
		return 1
	}
	return c.den
}

// Float returns the click position as a float.
func (c Click) Float() float64 { return float64(c.num) / float64(c.Den()) }

// Complement returns 1 - c.
func (c Click) Complement() Click { return Click{num: c.Den() - c.num, den: c.Den()} }

// IsBoundary reports whether the click sits on 0 or 1.
func (c Click) IsBoundary() bool { return c.num == 0 || c.num == c.Den() }

// Less orders clicks by position.
func (c Click) Less(o Click) bool { return c.num*o.Den() < o.num*c.Den() }

func (c Click) String() string {
	switch {
	case c.num == 0:
		return "0"
	case c.num == c.Den():
		return "1"
	}
	return strconv.FormatInt(c.num, 10) + "/" + strconv.FormatInt(c.Den(), 10)
}

// MarshalText renders the click as "n/d".
func (c Click) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses "n/d", "0" or "1".
func (c *Click) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	num, den, found := strings.Cut(s, "/")
	if !found {
		den = "1"
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return fmt.Errorf("click %q: %w", s, err)
	}
	d, err := strconv.ParseInt(den, 10, 64)
	if err != nil {
		return fmt.Errorf("click %q: %w", s, err)
	}
	if d <= 0 || n < 0 || n > d {
		return fmt.Errorf("click %q out of range", s)
	}
	*c = Frac(n, d)
	return nil
}

// ClicksEqual compares two click lists element-wise.
func ClicksEqual(a, b []Click) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
