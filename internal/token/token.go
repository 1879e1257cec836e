package token

import "fmt"

type Kind int

const (
	Illegal Kind = iota
	EOF

	Ident  // Identifier (type names such as Int are lexed as Ident too)
	Int    // Integer literal
	String // String literal

	// Keywords
	Func
	Var
	If
	Else
	While
	Print
	Return
	True
	False

	// Operators
	Assign // =

	Plus  // +
	Minus // -
	Star  // *
	Slash // /

	Bang // !

	Eq   // ==
	Lt   // <
	LtEq // <=

	// Symbols
	Comma // ,
	Colon // :
	Arrow // ->

	LParen // (
	RParen // )
	LBrace // {
	RBrace // }
)

type Position struct {
	Line   int
	Column int
}

type Token struct {
	Kind   Kind
	Lexeme string
	Pos    Position
}

func (k Kind) String() string {
	switch k {
	case Illegal:
		return "Illegal"
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case Int:
		return "Int"
	case String:
		return "String"
	case Func:
		return "Func"
	case Var:
		return "Var"
	case If:
		return "If"
	case Else:
		return "Else"
	case While:
		return "While"
	case Print:
		return "Print"
	case Return:
		return "Return"
	case True:
		return "True"
	case False:
		return "False"
	case Assign:
		return "Assign"
	case Plus:
		return "Plus"
	case Minus:
		return "Minus"
	case Star:
		return "Star"
	case Slash:
		return "Slash"
	case Bang:
		return "Bang"
	case Eq:
		return "Eq"
	case Lt:
		return "Lt"
	case LtEq:
		return "LtEq"
	case Comma:
		return "Comma"
	case Colon:
		return "Colon"
	case Arrow:
		return "Arrow"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case LBrace:
		return "LBrace"
	case RBrace:
		return "RBrace"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var keywords = map[string]Kind{
	"func":   Func,
	"var":    Var,
	"if":     If,
	"else":   Else,
	"while":  While,
	"print":  Print,
	"return": Return,
	"true":   True,
	"false":  False,
}

func LookupIdent(lit string) Kind {
	if kind, ok := keywords[lit]; ok {
		return kind
	}
	return Ident
}
