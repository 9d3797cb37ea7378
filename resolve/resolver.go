// Package resolve turns formula text into a scratch. Every name a formula
// mentions is bound by the first strategy that accepts it: elementary decode,
// tear expansion, orbit expansion, codebook lookup. Expansions and codebook
// entries are formulas themselves, so binding is transitive.
package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/blackwell-systems/scratchbook/codebook"
	"github.com/blackwell-systems/scratchbook/expr"
	"github.com/blackwell-systems/scratchbook/grammar"
	"github.com/blackwell-systems/scratchbook/scratch"
)

// Kind says which strategy bound a name.
type Kind int

const (
	Elementary Kind = iota
	Tear
	Orbit
	Alias
)

func (k Kind) String() string {
	switch k {
	case Elementary:
		return "elementary"
	case Tear:
		return "tear"
	case Orbit:
		return "orbit"
	}
	return "alias"
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Definition is how a single name resolves.
type Definition struct {
	Name string `json:"name" yaml:"name"`
	Kind Kind   `json:"kind" yaml:"kind"`
	// Formula is empty for elementary names.
	Formula string   `json:"formula,omitempty" yaml:"formula,omitempty"`
	Refs    []string `json:"refs,omitempty" yaml:"refs,omitempty"`
}

func define(cb *codebook.Codebook, name string) (Definition, bool) {
	def := Definition{Name: name}
	if _, err := grammar.DecodeElementary(name); err == nil {
		def.Kind = Elementary
		return def, true
	}
	if f, err := grammar.TearFormula(name); err == nil {
		def.Kind, def.Formula = Tear, f
	} else if f, err := grammar.OrbitFormula(name); err == nil {
		def.Kind, def.Formula = Orbit, f
	} else if f, ok := cb.Lookup(name); ok {
		def.Kind, def.Formula = Alias, f
	} else {
		return def, false
	}
	def.Refs = Names(def.Formula)
	return def, true
}

// Resolver resolves formulas against a codebook snapshot. It is safe for
// concurrent use; bound names are memoised until the codebook is replaced.
type Resolver struct {
	logger *slog.Logger
	noMemo bool

	mu   sync.RWMutex
	cb   *codebook.Codebook
	memo map[string]scratch.Scratch
	gen  uint64
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for discovery and binding traces.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithoutMemo disables memoisation of bound names.
func WithoutMemo() Option {
	return func(r *Resolver) { r.noMemo = true }
}

// New creates a resolver over cb. A nil codebook resolves grammar names only.
func New(cb *codebook.Codebook, opts ...Option) *Resolver {
	r := &Resolver{
		logger: slog.New(slog.DiscardHandler),
		cb:     cb,
		memo:   make(map[string]scratch.Scratch),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Codebook returns the current snapshot.
func (r *Resolver) Codebook() *codebook.Codebook {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cb
}

// SetCodebook swaps in a new snapshot and drops the memo.
func (r *Resolver) SetCodebook(cb *codebook.Codebook) {
	r.mu.Lock()
	r.cb = cb
	r.memo = make(map[string]scratch.Scratch)
	r.gen++
	r.mu.Unlock()
	r.logger.Info("codebook replaced", "entries", cb.Len(), "version", cb.Version())
}

// Define reports how name resolves without evaluating it.
func (r *Resolver) Define(name string) (Definition, error) {
	def, ok := define(r.Codebook(), name)
	if !ok {
		return def, &grammar.UnrecognizedNameError{Name: name}
	}
	return def, nil
}

// pass is the state of one Resolve call.
type pass struct {
	r    *Resolver
	cb   *codebook.Codebook
	memo map[string]scratch.Scratch
	gen  uint64

	env   *expr.Env
	state map[string]visit
	defs  map[string]Definition
	order []string
}

type visit int

const (
	unseen visit = iota
	inProgress
	done
)

type frame struct {
	name string
	refs []string
	next int
}

// Resolve evaluates formula into a scratch.
func (r *Resolver) Resolve(ctx context.Context, formula string) (scratch.Scratch, error) {
	r.mu.RLock()
	p := &pass{
		r:     r,
		cb:    r.cb,
		memo:  r.memo,
		gen:   r.gen,
		env:   expr.NewEnv(),
		state: make(map[string]visit),
		defs:  make(map[string]Definition),
	}
	r.mu.RUnlock()

	for _, name := range Names(formula) {
		if err := p.discover(ctx, name); err != nil {
			return scratch.Scratch{}, err
		}
	}
	if err := p.bind(ctx); err != nil {
		return scratch.Scratch{}, err
	}

	prog, err := expr.Compile(formula)
	if err != nil {
		return scratch.Scratch{}, err
	}
	s, err := prog.EvalScratch(p.env)
	if err != nil {
		return scratch.Scratch{}, err
	}
	r.logger.DebugContext(ctx, "resolved", "formula", formula, "elements", s.Len(), "length", s.Length())
	return s, nil
}

// discover walks the definitions reachable from root depth first and
// records them in post-order, so every definition follows the names it uses.
func (p *pass) discover(ctx context.Context, root string) error {
	if p.state[root] == done {
		return nil
	}
	var stack []*frame

	push := func(name, referrer string) error {
		if s, ok := p.lookupMemo(name); ok {
			p.env.Bind(name, s)
			p.state[name] = done
			return nil
		}
		def, ok := define(p.cb, name)
		if !ok {
			if referrer == "" {
				return &grammar.UnrecognizedNameError{Name: name}
			}
			return &MissingDefinitionError{Name: name, Referrer: referrer}
		}
		p.r.logger.DebugContext(ctx, "discovered", "name", name, "kind", def.Kind, "referrer", referrer)
		p.state[name] = inProgress
		p.defs[name] = def
		stack = append(stack, &frame{name: name, refs: def.Refs})
		return nil
	}

	if err := push(root, ""); err != nil {
		return err
	}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		top := stack[len(stack)-1]
		if top.next == len(top.refs) {
			p.state[top.name] = done
			p.order = append(p.order, top.name)
			stack = stack[:len(stack)-1]
			continue
		}
		ref := top.refs[top.next]
		top.next++

		switch p.state[ref] {
		case done:
		case inProgress:
			return &CyclicDefinitionError{Cycle: cycleFrom(stack, ref)}
		default:
			if err := push(ref, top.name); err != nil {
				return err
			}
		}
	}
	return nil
}

func cycleFrom(stack []*frame, name string) []string {
	i := slices.IndexFunc(stack, func(f *frame) bool { return f.name == name })
	cycle := make([]string, 0, len(stack)-i+1)
	for _, f := range stack[i:] {
		cycle = append(cycle, f.name)
	}
	return append(cycle, name)
}

// bind evaluates the discovered definitions, leaves first.
func (p *pass) bind(ctx context.Context) error {
	for _, name := range p.order {
		if err := ctx.Err(); err != nil {
			return err
		}
		def := p.defs[name]
		var (
			s   scratch.Scratch
			err error
		)
		if def.Kind == Elementary {
			var spec grammar.Spec
			spec, err = grammar.DecodeElementary(name)
			s = spec.Scratch()
		} else {
			s, err = expr.Evaluate(def.Formula, p.env)
		}
		if err != nil {
			return fmt.Errorf("define %s %q: %w", def.Kind, name, err)
		}
		p.env.Bind(name, s)
		p.storeMemo(name, s)
		p.r.logger.DebugContext(ctx, "bound", "name", name, "kind", def.Kind, "elements", s.Len())
	}
	return nil
}

func (p *pass) lookupMemo(name string) (scratch.Scratch, bool) {
	if p.r.noMemo {
		return scratch.Scratch{}, false
	}
	p.r.mu.RLock()
	defer p.r.mu.RUnlock()
	s, ok := p.memo[name]
	return s, ok
}

func (p *pass) storeMemo(name string, s scratch.Scratch) {
	if p.r.noMemo {
		return
	}
	p.r.mu.Lock()
	defer p.r.mu.Unlock()
	if p.r.gen == p.gen {
		p.memo[name] = s
	}
}
