package expr

import (
	"unicode"
)

// TokenType classifies lexer tokens.
type TokenType int

const (
	TokEOF TokenType = iota
	TokNum
	TokIdent
	TokPlus
	TokMinus
	TokStar
	TokStarStar // **
	TokSlash
	TokSlashSlash // //
	TokPercent
	TokTilde
	TokLParen
	TokRParen
	TokLBracket
	TokRBracket
	TokColon
)

var tokenNames = map[TokenType]string{
	TokEOF:        "end of formula",
	TokNum:        "number",
	TokIdent:      "name",
	TokPlus:       "'+'",
	TokMinus:      "'-'",
	TokStar:       "'*'",
	TokStarStar:   "'**'",
	TokSlash:      "'/'",
	TokSlashSlash: "'//'",
	TokPercent:    "'%'",
	TokTilde:      "'~'",
	TokLParen:     "'('",
	TokRParen:     "')'",
	TokLBracket:   "'['",
	TokRBracket:   "']'",
	TokColon:      "':'",
}

func (t TokenType) String() string { return tokenNames[t] }

// Token is a single lexer token.
type Token struct {
	Type TokenType
	Val  string
	Pos  int
}

// End is the offset just past the token.
func (t Token) End() int { return t.Pos + len(t.Val) }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Lex tokenizes a formula.
func Lex(input string) ([]Token, error) {
	var tokens []Token
	i := 0
	for i < len(input) {
		ch := input[i]

		if unicode.IsSpace(rune(ch)) {
			i++
			continue
		}

		// Numbers: 12, 0.5, .5, 2.
		if isDigit(ch) || (ch == '.' && i+1 < len(input) && isDigit(input[i+1])) {
			start := i
			for i < len(input) && isDigit(input[i]) {
				i++
			}
			if i < len(input) && input[i] == '.' {
				i++
				for i < len(input) && isDigit(input[i]) {
					i++
				}
			}
			tokens = append(tokens, Token{TokNum, input[start:i], start})
			continue
		}

		if isIdentStart(ch) {
			start := i
			for i < len(input) && isIdentPart(input[i]) {
				i++
			}
			tokens = append(tokens, Token{TokIdent, input[start:i], start})
			continue
		}

		if i+1 < len(input) {
			switch input[i : i+2] {
			case "**":
				tokens = append(tokens, Token{TokStarStar, "**", i})
				i += 2
				continue
			case "//":
				tokens = append(tokens, Token{TokSlashSlash, "//", i})
				i += 2
				continue
			}
		}

		var tt TokenType
		switch ch {
		case '+':
			tt = TokPlus
		case '-':
			tt = TokMinus
		case '*':
			tt = TokStar
		case '/':
			tt = TokSlash
		case '%':
			tt = TokPercent
		case '~':
			tt = TokTilde
		case '(':
			tt = TokLParen
		case ')':
			tt = TokRParen
		case '[':
			tt = TokLBracket
		case ']':
			tt = TokRBracket
		case ':':
			tt = TokColon
		default:
			return nil, &EvalError{
				Expr: input[i : i+1],
				Pos:  i,
				Err:  errorf(ErrSyntax, "unexpected character %q", ch),
			}
		}
		tokens = append(tokens, Token{tt, input[i : i+1], i})
		i++
	}
	tokens = append(tokens, Token{TokEOF, "", len(input)})
	return tokens, nil
}
