package grammar

import "github.com/blackwell-systems/scratchbook/scratch"

// Distribution selects how interior clicks are spaced.
type Distribution int

const (
	Even Distribution = iota
	Decelerated
	Accelerated
	Symmetric
	Quartered
)

// Distributions lists the four modifier distributions in tag order.
var Distributions = []Distribution{Decelerated, Accelerated, Symmetric, Quartered}

func (d Distribution) String() string {
	switch d {
	case Decelerated:
		return "D"
	case Accelerated:
		return "A"
	case Symmetric:
		return "S"
	case Quartered:
		return "Q"
	}
	return ""
}

func distributionOf(b byte) (Distribution, bool) {
	switch b {
	case 'D':
		return Decelerated, true
	case 'A':
		return Accelerated, true
	case 'S':
		return Symmetric, true
	case 'Q':
		return Quartered, true
	}
	return Even, false
}

// InteriorClicks places n interior clicks according to d.
func InteriorClicks(n int, d Distribution) []scratch.Click {
	if n < 1 {
		return nil
	}
	out := make([]scratch.Click, 0, n)
	frac := func(num, den int) scratch.Click { return scratch.Frac(int64(num), int64(den)) }
	switch d {
	case Decelerated:
		for i := 1; i <= n; i++ {
			out = append(out, frac(i, n+2))
		}
	case Accelerated:
		for i := 1; i <= n; i++ {
			out = append(out, frac(i+1, n+2))
		}
	case Quartered:
		for i := 1; i <= n; i++ {
			out = append(out, frac(i+1, n+3))
		}
	case Symmetric:
		half := n / 2
		for i := 1; i <= half; i++ {
			out = append(out, frac(i, n+2))
		}
		if n%2 == 0 {
			for i := half + 1; i <= n; i++ {
				out = append(out, frac(i+1, n+2))
			}
		} else {
			out = append(out, scratch.Half)
			for i := half + 1; i < 2*half+1; i++ {
				out = append(out, frac(i+2, n+2))
			}
		}
	default:
		for i := 1; i <= n; i++ {
			out = append(out, frac(i, n+1))
		}
	}
	return out
}
