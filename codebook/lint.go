package codebook

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"

	"github.com/blackwell-systems/scratchbook/expr"
	"github.com/blackwell-systems/scratchbook/grammar"
)

// FindingKind classifies a lint finding.
type FindingKind int

const (
	// Missing: a formula references a name that is neither a grammar name
	// nor an alias.
	Missing FindingKind = iota
	// Cyclic: the alias reaches itself through its references.
	Cyclic
	// Invalid: the formula does not parse.
	Invalid
	// Shadowed: the alias decodes as a grammar name, so resolution never
	// reaches its definition.
	Shadowed
)

func (k FindingKind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Cyclic:
		return "cyclic"
	case Invalid:
		return "invalid"
	}
	return "shadowed"
}

func (k FindingKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Finding is one problem with one entry.
type Finding struct {
	Kind   FindingKind `json:"kind" yaml:"kind"`
	Name   string      `json:"name" yaml:"name"`
	Detail string      `json:"detail" yaml:"detail"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s", f.Name, f.Kind, f.Detail)
}

// Report is the result of Lint.
type Report struct {
	// Order lists aliases with dependencies first. It is empty when the
	// reference graph has a cycle.
	Order    []string  `json:"order" yaml:"order"`
	Findings []Finding `json:"findings" yaml:"findings"`
}

// OK reports whether lint found nothing.
func (r *Report) OK() bool { return len(r.Findings) == 0 }

// IsGrammarName reports whether name resolves without the codebook.
func IsGrammarName(name string) bool {
	if grammar.IsElementary(name) || grammar.IsTear(name) {
		return true
	}
	_, err := grammar.DecodeOrbit(name)
	return err == nil
}

// References lists the identifiers a formula uses, in order of first use.
func References(formula string) ([]string, error) {
	tokens, err := expr.Lex(formula)
	if err != nil {
		return nil, err
	}
	var refs []string
	for _, t := range tokens {
		if t.Type == expr.TokIdent && !slices.Contains(refs, t.Val) {
			refs = append(refs, t.Val)
		}
	}
	return refs, nil
}

// Lint checks every entry statically: formulas must parse, references must
// resolve, and alias references must not form cycles. Dependencies between
// aliases are checked on a directed reference graph.
func Lint(c *Codebook) (*Report, error) {
	report := &Report{}
	g := core.NewGraph(core.WithDirected(true), core.WithLoops())
	edges := make(map[string][]string)

	for name, formula := range c.All() {
		if err := g.AddVertex(name); err != nil {
			return nil, fmt.Errorf("lint %q: %w", name, err)
		}
		if IsGrammarName(name) {
			report.Findings = append(report.Findings, Finding{
				Kind:   Shadowed,
				Name:   name,
				Detail: "decodes as a grammar name",
			})
		}
		if _, err := expr.Parse(formula); err != nil {
			report.Findings = append(report.Findings, Finding{Kind: Invalid, Name: name, Detail: err.Error()})
			continue
		}
		refs, err := References(formula)
		if err != nil {
			return nil, fmt.Errorf("lint %q: %w", name, err)
		}
		for _, ref := range refs {
			switch {
			case IsGrammarName(ref):
			case c.Has(ref):
				edges[name] = append(edges[name], ref)
				if _, err := g.AddEdge(name, ref, 0); err != nil {
					return nil, fmt.Errorf("lint %q -> %q: %w", name, ref, err)
				}
			default:
				report.Findings = append(report.Findings, Finding{
					Kind:   Missing,
					Name:   name,
					Detail: fmt.Sprintf("references undefined name %q", ref),
				})
			}
		}
	}

	order, err := dfs.TopologicalSort(g)
	switch {
	case errors.Is(err, dfs.ErrCycleDetected):
		for _, name := range onCycle(c.Names(), edges) {
			report.Findings = append(report.Findings, Finding{
				Kind:   Cyclic,
				Name:   name,
				Detail: "definition refers back to itself",
			})
		}
	case err != nil:
		return nil, fmt.Errorf("lint: %w", err)
	default:
		// Edges point from referrer to referenced; dependencies go first.
		slices.Reverse(order)
		report.Order = order
	}
	return report, nil
}

// onCycle returns the names, in the given order, that can reach themselves.
func onCycle(names []string, edges map[string][]string) []string {
	var out []string
	for _, start := range names {
		seen := map[string]bool{}
		stack := slices.Clone(edges[start])
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if n == start {
				out = append(out, start)
				break
			}
			if seen[n] {
				continue
			}
			seen[n] = true
			stack = append(stack, edges[n]...)
		}
	}
	return out
}
