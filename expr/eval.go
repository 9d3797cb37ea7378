package expr

import (
	"fmt"
	"math"

	"github.com/blackwell-systems/scratchbook/scratch"
)

// Kind tags a Value.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindScratch
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	}
	return "scratch"
}

// Value is a tagged union for evaluation results.
type Value struct {
	Kind    Kind
	Int     int64
	Float   float64
	Scratch scratch.Scratch
}

func intValue(v int64) Value { return Value{Kind: KindInt, Int: v} }
func floatValue(v float64) Value { return Value{Kind: KindFloat, Float: v} }
func scratchValue(s scratch.Scratch) Value { return Value{Kind: KindScratch, Scratch: s} }

// IsNum reports whether v is an int or a float.
func (v Value) IsNum() bool { return v.Kind != KindScratch }

// Num returns the numeric value as a float.
func (v Value) Num() float64 {
	if v.Kind == KindInt {
		return float64(v.Int)
	}
	return v.Float
}

// Env maps names to the scratches bound to them.
type Env struct {
	vars map[string]scratch.Scratch
}

// NewEnv creates an empty evaluation environment.
func NewEnv() *Env {
	return &Env{vars: make(map[string]scratch.Scratch)}
}

// Bind sets name to s, replacing any earlier binding.
func (e *Env) Bind(name string, s scratch.Scratch) { e.vars[name] = s }

// Lookup returns the scratch bound to name.
func (e *Env) Lookup(name string) (scratch.Scratch, bool) {
	s, ok := e.vars[name]
	return s, ok
}

// Has reports whether name is bound.
func (e *Env) Has(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// Len is the number of bindings.
func (e *Env) Len() int { return len(e.vars) }

// Program is a parsed formula ready for evaluation.
type Program struct {
	src  string
	root *Node
}

// Compile parses a formula.
func Compile(src string) (*Program, error) {
	root, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return &Program{src: src, root: root}, nil
}

// Source returns the formula text.
func (p *Program) Source() string { return p.src }

// Eval evaluates the program in env.
func (p *Program) Eval(env *Env) (Value, error) {
	ev := &evaluator{src: p.src, env: env}
	return ev.eval(p.root)
}

// EvalScratch evaluates the program and requires a scratch result.
func (p *Program) EvalScratch(env *Env) (scratch.Scratch, error) {
	v, err := p.Eval(env)
	if err != nil {
		return scratch.Scratch{}, err
	}
	if v.Kind != KindScratch {
		return scratch.Scratch{}, &EvalError{
			Expr: p.src,
			Pos:  0,
			Err:  errorf(ErrType, "formula evaluates to %s, not a scratch", v.Kind),
		}
	}
	return v.Scratch, nil
}

// Evaluate compiles and evaluates src to a scratch in one step.
func Evaluate(src string, env *Env) (scratch.Scratch, error) {
	p, err := Compile(src)
	if err != nil {
		return scratch.Scratch{}, err
	}
	return p.EvalScratch(env)
}

type evaluator struct {
	src string
	env *Env
}

func (ev *evaluator) fail(n *Node, err error) error {
	return &EvalError{Expr: ev.src[n.Start:n.End], Pos: n.Start, Err: err}
}

func (ev *evaluator) typeError(n *Node, op string, kinds ...Kind) error {
	if len(kinds) == 1 {
		return ev.fail(n, errorf(ErrType, "%s %s", op, kinds[0]))
	}
	return ev.fail(n, errorf(ErrType, "%s %s %s", kinds[0], op, kinds[1]))
}

func (ev *evaluator) eval(n *Node) (Value, error) {
	switch n.Type {
	case NodeNum:
		if n.IsInt {
			return intValue(int64(n.Num)), nil
		}
		return floatValue(n.Num), nil

	case NodeVar:
		s, ok := ev.env.Lookup(n.Name)
		if !ok {
			return Value{}, ev.fail(n, errorf(ErrUndefined, "%q", n.Name))
		}
		return scratchValue(s), nil

	case NodeNeg, NodeInvert:
		v, err := ev.eval(n.Children[0])
		if err != nil {
			return Value{}, err
		}
		return ev.unary(n, v)

	case NodeIndex:
		return ev.index(n)

	case NodeSlice:
		return ev.slice(n)
	}

	left, err := ev.eval(n.Children[0])
	if err != nil {
		return Value{}, err
	}
	right, err := ev.eval(n.Children[1])
	if err != nil {
		return Value{}, err
	}
	if left.Kind == KindScratch {
		return ev.scratchOp(n, left.Scratch, right)
	}
	return ev.numOp(n, left, right)
}

func (ev *evaluator) unary(n *Node, v Value) (Value, error) {
	if n.Type == NodeNeg {
		switch v.Kind {
		case KindScratch:
			return scratchValue(v.Scratch.FlipY()), nil
		case KindInt:
			return intValue(-v.Int), nil
		default:
			return floatValue(-v.Float), nil
		}
	}
	switch v.Kind {
	case KindScratch:
		return scratchValue(v.Scratch.FlipX()), nil
	case KindInt:
		return intValue(^v.Int), nil
	}
	return Value{}, ev.typeError(n, "~", v.Kind)
}

// scratchOp applies a binary operator whose left operand is a scratch.
func (ev *evaluator) scratchOp(n *Node, s scratch.Scratch, r Value) (Value, error) {
	var (
		out scratch.Scratch
		err error
	)
	switch n.Type {
	case NodeAdd:
		if r.Kind != KindScratch {
			return Value{}, ev.typeError(n, "+", KindScratch, r.Kind)
		}
		return scratchValue(s.Concat(r.Scratch)), nil
	case NodeMul:
		if r.Kind != KindInt {
			return Value{}, ev.typeError(n, "*", KindScratch, r.Kind)
		}
		out, err = s.Repeat(int(r.Int))
	case NodeMod:
		if r.Kind != KindInt {
			return Value{}, ev.typeError(n, "%", KindScratch, r.Kind)
		}
		out, err = s.Rotate(int(r.Int))
	case NodeDiv:
		if !r.IsNum() {
			return Value{}, ev.typeError(n, "/", KindScratch, r.Kind)
		}
		out, err = s.ScaleLength(r.Num())
	case NodeFloorDiv:
		if !r.IsNum() {
			return Value{}, ev.typeError(n, "//", KindScratch, r.Kind)
		}
		out, err = s.ScaleHeight(r.Num())
	case NodePow:
		if !r.IsNum() {
			return Value{}, ev.typeError(n, "**", KindScratch, r.Kind)
		}
		out = s.Shift(r.Num())
	default:
		return Value{}, ev.typeError(n, nodeNames[n.Type], KindScratch, r.Kind)
	}
	if err != nil {
		return Value{}, ev.fail(n, err)
	}
	return scratchValue(out), nil
}

// numOp applies a binary operator to two numbers with the usual integer and
// float rules: '/' always yields a float, '//' and '%' floor.
func (ev *evaluator) numOp(n *Node, l, r Value) (Value, error) {
	if !r.IsNum() {
		return Value{}, ev.typeError(n, nodeNames[n.Type], l.Kind, r.Kind)
	}
	ints := l.Kind == KindInt && r.Kind == KindInt
	a, b := l.Num(), r.Num()
	switch n.Type {
	case NodeAdd:
		if ints {
			return intValue(l.Int + r.Int), nil
		}
		return floatValue(a + b), nil
	case NodeSub:
		if ints {
			return intValue(l.Int - r.Int), nil
		}
		return floatValue(a - b), nil
	case NodeMul:
		if ints {
			return intValue(l.Int * r.Int), nil
		}
		return floatValue(a * b), nil
	case NodeDiv:
		if b == 0 {
			return Value{}, ev.fail(n, ErrDivisionByZero)
		}
		return floatValue(a / b), nil
	case NodeFloorDiv:
		if b == 0 {
			return Value{}, ev.fail(n, ErrDivisionByZero)
		}
		if ints {
			return intValue(floorDiv(l.Int, r.Int)), nil
		}
		return floatValue(math.Floor(a / b)), nil
	case NodeMod:
		if b == 0 {
			return Value{}, ev.fail(n, ErrDivisionByZero)
		}
		if ints {
			return intValue(l.Int - floorDiv(l.Int, r.Int)*r.Int), nil
		}
		return floatValue(a - math.Floor(a/b)*b), nil
	case NodePow:
		if ints && r.Int >= 0 {
			out, ok := intPow(l.Int, r.Int)
			if !ok {
				return Value{}, ev.fail(n, errorf(ErrOverflow, "%d ** %d", l.Int, r.Int))
			}
			return intValue(out), nil
		}
		if a == 0 && b < 0 {
			return Value{}, ev.fail(n, ErrDivisionByZero)
		}
		p := math.Pow(a, b)
		if math.IsInf(p, 0) {
			return Value{}, ev.fail(n, errorf(ErrOverflow, "%g ** %g", a, b))
		}
		return floatValue(p), nil
	}
	return Value{}, ev.fail(n, fmt.Errorf("unknown node type %d", n.Type))
}

// intPow raises base to exp by squaring. ok is false on int64 overflow.
func intPow(base, exp int64) (out int64, ok bool) {
	out = 1
	for exp > 0 {
		if exp&1 == 1 {
			if out, ok = mulInt(out, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return out, true
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return c, true
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (ev *evaluator) target(n *Node) (scratch.Scratch, error) {
	v, err := ev.eval(n.Children[0])
	if err != nil {
		return scratch.Scratch{}, err
	}
	if v.Kind != KindScratch {
		return scratch.Scratch{}, ev.fail(n, errorf(ErrType, "cannot index %s", v.Kind))
	}
	return v.Scratch, nil
}

func (ev *evaluator) intOperand(parent, n *Node) (int, error) {
	v, err := ev.eval(n)
	if err != nil {
		return 0, err
	}
	if v.Kind != KindInt {
		return 0, ev.fail(parent, errorf(ErrType, "index must be int, not %s", v.Kind))
	}
	return int(v.Int), nil
}

func (ev *evaluator) index(n *Node) (Value, error) {
	s, err := ev.target(n)
	if err != nil {
		return Value{}, err
	}
	i, err := ev.intOperand(n, n.Children[1])
	if err != nil {
		return Value{}, err
	}
	out, err := s.Index(i)
	if err != nil {
		return Value{}, ev.fail(n, err)
	}
	return scratchValue(out), nil
}

func (ev *evaluator) slice(n *Node) (Value, error) {
	s, err := ev.target(n)
	if err != nil {
		return Value{}, err
	}
	var lo, hi *int
	if n.Lo != nil {
		v, err := ev.intOperand(n, n.Lo)
		if err != nil {
			return Value{}, err
		}
		lo = &v
	}
	if n.Hi != nil {
		v, err := ev.intOperand(n, n.Hi)
		if err != nil {
			return Value{}, err
		}
		hi = &v
	}
	out, err := s.Slice(lo, hi)
	if err != nil {
		return Value{}, ev.fail(n, err)
	}
	return scratchValue(out), nil
}
