package lexer_test

import (
	"testing"

	"nimble/internal/lexer"
	"nimble/internal/token"
)

func TestNextToken_BasicScript(t *testing.T) {
	input := `func inc(x : Int) -> Int {
    return x + 1
}

var total : Int = 0
total = inc(total)
print total
`

	tests := []struct {
		kind token.Kind
		lit  string
	}{
		{token.Func, "func"},
		{token.Ident, "inc"},
		{token.LParen, "("},
		{token.Ident, "x"},
		{token.Colon, ":"},
		{token.Ident, "Int"},
		{token.RParen, ")"},
		{token.Arrow, "->"},
		{token.Ident, "Int"},
		{token.LBrace, "{"},

		{token.Return, "return"},
		{token.Ident, "x"},
		{token.Plus, "+"},
		{token.Int, "1"},
		{token.RBrace, "}"},

		{token.Var, "var"},
		{token.Ident, "total"},
		{token.Colon, ":"},
		{token.Ident, "Int"},
		{token.Assign, "="},
		{token.Int, "0"},

		{token.Ident, "total"},
		{token.Assign, "="},
		{token.Ident, "inc"},
		{token.LParen, "("},
		{token.Ident, "total"},
		{token.RParen, ")"},

		{token.Print, "print"},
		{token.Ident, "total"},
		{token.EOF, ""},
	}

	l := lexer.New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (lexeme=%q, pos=%+v)",
				i, tt.kind, tok.Kind, tok.Lexeme, tok.Pos)
		}

		if tok.Lexeme != tt.lit {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q",
				i, tt.lit, tok.Lexeme)
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		t.Fatalf("expected no lexer errors, got %v", errs)
	}
}

func TestNextToken_Operators(t *testing.T) {
	input := `! - * / + == < <= = ->`

	tests := []struct {
		kind token.Kind
		lit  string
	}{
		{token.Bang, "!"},
		{token.Minus, "-"},
		{token.Star, "*"},
		{token.Slash, "/"},
		{token.Plus, "+"},
		{token.Eq, "=="},
		{token.Lt, "<"},
		{token.LtEq, "<="},
		{token.Assign, "="},
		{token.Arrow, "->"},
		{token.EOF, ""},
	}

	l := lexer.New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.kind || tok.Lexeme != tt.lit {
			t.Fatalf("tests[%d] - expected (%s, %q), got (%s, %q)",
				i, tt.kind, tt.lit, tok.Kind, tok.Lexeme)
		}
	}
}

func TestNextToken_Comments(t *testing.T) {
	input := `// leading comment
var x : Int /* inline */ = 5
`

	tests := []token.Kind{
		token.Var, token.Ident, token.Colon, token.Ident,
		token.Assign, token.Int, token.EOF,
	}

	l := lexer.New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Kind != want {
			t.Fatalf("tests[%d] - expected %s, got %s (%q)", i, want, tok.Kind, tok.Lexeme)
		}
	}
}

func TestNextToken_StringEscapes(t *testing.T) {
	l := lexer.New(`"a\tb\n\"q\""`)

	tok := l.NextToken()
	if tok.Kind != token.String {
		t.Fatalf("expected String, got %s", tok.Kind)
	}
	if want := "a\tb\n\"q\""; tok.Lexeme != want {
		t.Fatalf("expected %q, got %q", want, tok.Lexeme)
	}
}

func TestNextToken_TokenFlushAtEOF(t *testing.T) {
	// Identifiers and numbers ending exactly at EOF must keep their
	// final rune.
	tests := []struct {
		input string
		kind  token.Kind
		lit   string
	}{
		{"ab", token.Ident, "ab"},
		{"x", token.Ident, "x"},
		{"37", token.Int, "37"},
		{"7", token.Int, "7"},
		{"print", token.Print, "print"},
	}

	for _, tt := range tests {
		l := lexer.New(tt.input)
		tok := l.NextToken()
		if tok.Kind != tt.kind || tok.Lexeme != tt.lit {
			t.Errorf("lex(%q) = (%s, %q), want (%s, %q)",
				tt.input, tok.Kind, tok.Lexeme, tt.kind, tt.lit)
		}
		if eof := l.NextToken(); eof.Kind != token.EOF {
			t.Errorf("lex(%q) - expected EOF after first token, got %s (%q)",
				tt.input, eof.Kind, eof.Lexeme)
		}
	}
}

func TestNextToken_FlushAtEOFInExpression(t *testing.T) {
	l := lexer.New("x+1")

	tests := []struct {
		kind token.Kind
		lit  string
	}{
		{token.Ident, "x"},
		{token.Plus, "+"},
		{token.Int, "1"},
		{token.EOF, ""},
	}

	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.kind || tok.Lexeme != tt.lit {
			t.Fatalf("tests[%d] - expected (%s, %q), got (%s, %q)",
				i, tt.kind, tt.lit, tok.Kind, tok.Lexeme)
		}
	}
}

func TestNextToken_UnterminatedString(t *testing.T) {
	l := lexer.New(`"oops`)

	tok := l.NextToken()
	if tok.Kind != token.Illegal {
		t.Fatalf("expected Illegal, got %s", tok.Kind)
	}
	if len(l.Errors()) == 0 {
		t.Fatal("expected a lexer error for unterminated string")
	}
}

func TestNextToken_InvalidEscapeConsumesString(t *testing.T) {
	// The malformed literal is consumed through its closing quote, so
	// lexing resumes cleanly after the Illegal token.
	l := lexer.New(`"\q" var x`)

	tok := l.NextToken()
	if tok.Kind != token.Illegal {
		t.Fatalf("expected Illegal, got %s (%q)", tok.Kind, tok.Lexeme)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected one lexer error, got %v", l.Errors())
	}

	tests := []struct {
		kind token.Kind
		lit  string
	}{
		{token.Var, "var"},
		{token.Ident, "x"},
		{token.EOF, ""},
	}
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.kind || tok.Lexeme != tt.lit {
			t.Fatalf("tests[%d] - expected (%s, %q), got (%s, %q)",
				i, tt.kind, tt.lit, tok.Kind, tok.Lexeme)
		}
	}
}

func TestNextToken_Keywords(t *testing.T) {
	input := `func var if else while print return true false`

	tests := []token.Kind{
		token.Func, token.Var, token.If, token.Else, token.While,
		token.Print, token.Return, token.True, token.False, token.EOF,
	}

	l := lexer.New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Kind != want {
			t.Fatalf("tests[%d] - expected %s, got %s", i, want, tok.Kind)
		}
	}
}

func TestNextToken_Positions(t *testing.T) {
	input := "var x : Int\nx = 5"

	l := lexer.New(input)

	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
	}

	// 'x' on line 2 starts at column 1.
	assign := toks[4]
	if assign.Lexeme != "x" || assign.Pos.Line != 2 || assign.Pos.Column != 1 {
		t.Fatalf("expected 'x' at 2:1, got %q at %d:%d",
			assign.Lexeme, assign.Pos.Line, assign.Pos.Column)
	}
}
