package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"nimble/internal/token"
)

type Lexer struct {
	input []rune

	pos int

	ch   rune
	line int
	col  int

	errors []string
}

func New(input string) *Lexer {
	l := &Lexer{
		input: []rune(input),
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	pos := token.Position{
		Line:   l.line,
		Column: l.col,
	}

	ch := l.ch

	// EOF
	if ch == 0 {
		return token.Token{
			Kind:   token.EOF,
			Lexeme: "",
			Pos:    pos,
		}
	}

	// Numbers
	if isDigit(ch) {
		lit := l.readNumber()
		return token.Token{
			Kind:   token.Int,
			Lexeme: lit,
			Pos:    pos,
		}
	}

	// Identifiers / keywords
	if isLetter(ch) {
		lit := l.readIdentifier()
		kind := token.LookupIdent(lit)
		return token.Token{
			Kind:   kind,
			Lexeme: lit,
			Pos:    pos,
		}
	}

	// Strings
	if ch == '"' {
		l.readChar() // consume opening quote
		lit, ok := l.readString(pos)
		if !ok {
			return token.Token{Kind: token.Illegal, Lexeme: "", Pos: pos}
		}
		return token.Token{
			Kind:   token.String,
			Lexeme: lit,
			Pos:    pos,
		}
	}

	// Single- and two-character tokens
	var kind token.Kind
	var lexeme string

	switch ch {
	case ',':
		kind = token.Comma
		lexeme = ","
	case ':':
		kind = token.Colon
		lexeme = ":"
	case '(':
		kind = token.LParen
		lexeme = "("
	case ')':
		kind = token.RParen
		lexeme = ")"
	case '{':
		kind = token.LBrace
		lexeme = "{"
	case '}':
		kind = token.RBrace
		lexeme = "}"
	case '+':
		kind = token.Plus
		lexeme = "+"
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			kind = token.Arrow
			lexeme = "->"
		} else {
			kind = token.Minus
			lexeme = "-"
		}
	case '*':
		kind = token.Star
		lexeme = "*"
	case '/':
		kind = token.Slash
		lexeme = "/"
	case '!':
		kind = token.Bang
		lexeme = "!"
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			kind = token.Eq
			lexeme = "=="
		} else {
			kind = token.Assign
			lexeme = "="
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			kind = token.LtEq
			lexeme = "<="
		} else {
			kind = token.Lt
			lexeme = "<"
		}
	default:
		l.errorf(pos, "unexpected character %q", string(ch))
		kind = token.Illegal
		lexeme = string(ch)
	}

	l.readChar()

	return token.Token{
		Kind:   kind,
		Lexeme: lexeme,
		Pos:    pos,
	}
}

// Helpers

func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		// Keep pos one past the current rune even at EOF, so a token
		// flushed against the end of input slices to its full length.
		l.ch = 0
		l.pos = len(l.input) + 1
		return
	}

	l.ch = l.input[l.pos]
	l.pos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *Lexer) peekChar() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for unicode.IsSpace(l.ch) {
			l.readChar()
		}

		if l.ch == '/' {
			switch l.peekChar() {
			case '/':
				l.readChar() // '/'
				l.readChar() // second '/'
				for l.ch != '\n' && l.ch != 0 {
					l.readChar()
				}
				continue
			case '*':
				l.readChar() // '/'
				l.readChar() // '*'
				for {
					if l.ch == 0 {
						// EOF inside comment
						return
					}
					if l.ch == '*' && l.peekChar() == '/' {
						l.readChar() // '*'
						l.readChar() // '/'
						break
					}
					l.readChar()
				}
				continue
			}
		}

		break
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.pos - 1 // current rune is already in l.ch
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return string(l.input[start : l.pos-1])
}

func (l *Lexer) readNumber() string {
	start := l.pos - 1
	for isDigit(l.ch) {
		l.readChar()
	}
	return string(l.input[start : l.pos-1])
}

func (l *Lexer) readString(startPos token.Position) (string, bool) {
	var sb []rune
	for {
		if l.ch == 0 || l.ch == '\n' {
			l.errorf(startPos, "unterminated string literal")
			return "", false
		}
		if l.ch == '"' {
			l.readChar() // consume closing quote
			return string(sb), true
		}
		if l.ch == '\\' {
			escPos := token.Position{Line: l.line, Column: l.col}
			l.readChar()
			r, ok := l.readEscape(escPos)
			if !ok {
				l.skipStringTail()
				return "", false
			}
			sb = append(sb, r)
			l.readChar()
			continue
		}
		sb = append(sb, l.ch)
		l.readChar()
	}
}

// skipStringTail consumes the remainder of a malformed string literal
// through its closing quote, so the tail does not re-lex as stray
// tokens after the Illegal token is emitted.
func (l *Lexer) skipStringTail() {
	for l.ch != '"' && l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	if l.ch == '"' {
		l.readChar()
	}
}

func (l *Lexer) readEscape(pos token.Position) (rune, bool) {
	switch l.ch {
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	default:
		l.errorf(pos, "invalid escape sequence")
		return 0, false
	}
}

func (l *Lexer) errorf(pos token.Position, format string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf("%d:%d: ", pos.Line, pos.Column)+fmt.Sprintf(format, args...))
}

func (l *Lexer) Errors() []string {
	return l.errors
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	if ch > utf8.RuneSelf {
		return false
	}
	return ch >= '0' && ch <= '9'
}
