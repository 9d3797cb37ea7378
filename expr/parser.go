package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeType classifies AST nodes.
type NodeType int

const (
	NodeNum NodeType = iota
	NodeVar
	NodeNeg    // unary -
	NodeInvert // unary ~
	NodeAdd
	NodeSub
	NodeMul
	NodeDiv
	NodeFloorDiv
	NodeMod
	NodePow
	NodeIndex
	NodeSlice
)

var nodeNames = map[NodeType]string{
	NodeNeg:      "neg",
	NodeInvert:   "inv",
	NodeAdd:      "+",
	NodeSub:      "-",
	NodeMul:      "*",
	NodeDiv:      "/",
	NodeFloorDiv: "//",
	NodeMod:      "%",
	NodePow:      "**",
	NodeIndex:    "index",
	NodeSlice:    "slice",
}

// Node is an AST node. Start and End delimit its source text.
type Node struct {
	Type  NodeType
	Num   float64
	IsInt bool
	Name  string // for Var
	// Children holds operands. For Slice, Lo and Hi may be nil.
	Children []*Node
	Lo, Hi   *Node
	Start    int
	End      int
}

// String renders the node as a fully parenthesised prefix form.
func (n *Node) String() string {
	switch n.Type {
	case NodeNum:
		if n.IsInt {
			return strconv.FormatInt(int64(n.Num), 10)
		}
		return strconv.FormatFloat(n.Num, 'g', -1, 64)
	case NodeVar:
		return n.Name
	case NodeSlice:
		lo, hi := "", ""
		if n.Lo != nil {
			lo = n.Lo.String()
		}
		if n.Hi != nil {
			hi = n.Hi.String()
		}
		return fmt.Sprintf("(slice %s %s:%s)", n.Children[0], lo, hi)
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = c.String()
	}
	return "(" + nodeNames[n.Type] + " " + strings.Join(parts, " ") + ")"
}

// Parser is a Pratt parser for formulas.
type Parser struct {
	src    string
	tokens []Token
	pos    int
}

// Parse parses a formula into an AST.
func Parse(input string) (*Node, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	p := &Parser{src: input, tokens: tokens}
	node, err := p.parseExpr(precNone)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.Type != TokEOF {
		return nil, p.errorAt(t, "unexpected %s", t.Type)
	}
	return node, nil
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokEOF, Pos: len(p.src)}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	t := p.peek()
	p.pos++
	return t
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	t := p.advance()
	if t.Type != tt {
		return t, p.errorAt(t, "expected %s, got %s", tt, t.Type)
	}
	return t, nil
}

func (p *Parser) errorAt(t Token, format string, args ...any) error {
	text := t.Val
	if t.Type == TokEOF {
		text = p.src
	}
	return &EvalError{Expr: text, Pos: t.Pos, Err: errorf(ErrSyntax, format, args...)}
}

// Precedence levels. Unary operators sit between the multiplicative
// operators and '**', so -a**b is -(a**b) and -a/b is (-a)/b.
const (
	precNone = 0
	precAdd  = 1
	precMul  = 2
)

func (p *Parser) parseExpr(minPrec int) (*Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		prec, nodeType, ok := infixInfo(tok.Type)
		if !ok || prec < minPrec {
			break
		}

		p.advance()
		right, err := p.parseExpr(prec + 1) // left-associative
		if err != nil {
			return nil, err
		}
		left = &Node{Type: nodeType, Children: []*Node{left, right}, Start: left.Start, End: right.End}
	}

	return left, nil
}

func (p *Parser) parseUnary() (*Node, error) {
	tok := p.peek()

	var nt NodeType
	switch tok.Type {
	case TokMinus:
		nt = NodeNeg
	case TokTilde:
		nt = NodeInvert
	default:
		return p.parsePower()
	}
	p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Node{Type: nt, Children: []*Node{operand}, Start: tok.Pos, End: operand.End}, nil
}

// parsePower handles '**', which is right-associative and whose right
// operand may itself carry a unary prefix.
func (p *Parser) parsePower() (*Node, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != TokStarStar {
		return base, nil
	}
	p.advance()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Node{Type: NodePow, Children: []*Node{base, exp}, Start: base.Start, End: exp.End}, nil
}

func (p *Parser) parsePostfix() (*Node, error) {
	node, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokLBracket {
		p.advance()
		node, err = p.parseSubscript(node)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

// parseSubscript parses the inside of [i] or [lo:hi] after the '['.
func (p *Parser) parseSubscript(target *Node) (*Node, error) {
	var lo, hi *Node
	var err error
	if t := p.peek().Type; t != TokColon && t != TokRBracket {
		lo, err = p.parseExpr(precNone)
		if err != nil {
			return nil, err
		}
	}
	if p.peek().Type != TokColon {
		rb, err := p.expect(TokRBracket)
		if err != nil {
			return nil, err
		}
		if lo == nil {
			return nil, p.errorAt(rb, "empty index")
		}
		return &Node{Type: NodeIndex, Children: []*Node{target, lo}, Start: target.Start, End: rb.End()}, nil
	}
	p.advance()
	if p.peek().Type != TokRBracket {
		hi, err = p.parseExpr(precNone)
		if err != nil {
			return nil, err
		}
	}
	rb, err := p.expect(TokRBracket)
	if err != nil {
		return nil, err
	}
	return &Node{Type: NodeSlice, Children: []*Node{target}, Lo: lo, Hi: hi, Start: target.Start, End: rb.End()}, nil
}

func (p *Parser) parseAtom() (*Node, error) {
	tok := p.advance()

	switch tok.Type {
	case TokNum:
		n := &Node{Type: NodeNum, Start: tok.Pos, End: tok.End()}
		if !strings.Contains(tok.Val, ".") {
			v, err := strconv.ParseInt(tok.Val, 10, 64)
			if err != nil {
				return nil, p.errorAt(tok, "invalid integer %q", tok.Val)
			}
			n.Num, n.IsInt = float64(v), true
			return n, nil
		}
		v, err := strconv.ParseFloat(tok.Val, 64)
		if err != nil {
			return nil, p.errorAt(tok, "invalid number %q", tok.Val)
		}
		n.Num = v
		return n, nil

	case TokIdent:
		return &Node{Type: NodeVar, Name: tok.Val, Start: tok.Pos, End: tok.End()}, nil

	case TokLParen:
		inner, err := p.parseExpr(precNone)
		if err != nil {
			return nil, err
		}
		rp, err := p.expect(TokRParen)
		if err != nil {
			return nil, err
		}
		inner.Start, inner.End = tok.Pos, rp.End()
		return inner, nil

	default:
		return nil, p.errorAt(tok, "unexpected %s", tok.Type)
	}
}

func infixInfo(tt TokenType) (prec int, nt NodeType, ok bool) {
	switch tt {
	case TokPlus:
		return precAdd, NodeAdd, true
	case TokMinus:
		return precAdd, NodeSub, true
	case TokStar:
		return precMul, NodeMul, true
	case TokSlash:
		return precMul, NodeDiv, true
	case TokSlashSlash:
		return precMul, NodeFloorDiv, true
	case TokPercent:
		return precMul, NodeMod, true
	default:
		return 0, 0, false
	}
}
