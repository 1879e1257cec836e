package parser

import (
	"fmt"
	"strconv"

	"nimble/internal/ast"
	"nimble/internal/lexer"
	"nimble/internal/token"
)

type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	errors []string
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	// init cur/peek
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(pos token.Position, format string, args ...interface{}) {
	msg := fmt.Sprintf("%d:%d: ", pos.Line, pos.Column) + fmt.Sprintf(format, args...)
	p.errors = append(p.errors, msg)
}

func (p *Parser) expect(kind token.Kind) token.Token {
	if p.cur.Kind != kind {
		p.errorf(p.cur.Pos, "expected %s, got %s (%q)", kind, p.cur.Kind, p.cur.Lexeme)
	}
	tok := p.cur
	p.nextToken()
	return tok
}

// ---------- Top-level ----------

// ParseScript parses a whole program: function definitions followed by
// the entry-block statements.
func (p *Parser) ParseScript() *ast.Script {
	script := &ast.Script{}

	for p.cur.Kind == token.Func {
		fn := p.parseFuncDecl()
		if fn != nil {
			script.Funcs = append(script.Funcs, fn)
		}
	}

	main := &ast.MainBlock{StartPos: p.cur.Pos}
	for p.cur.Kind != token.EOF {
		if p.cur.Kind == token.Func {
			p.errorf(p.cur.Pos, "function definitions must precede the script statements")
			p.nextToken()
			continue
		}
		st := p.parseStmt()
		if st != nil {
			main.Stmts = append(main.Stmts, st)
		}
	}
	script.Main = main

	return script
}

// ParseExpr parses a single standalone expression and reports an error
// when trailing tokens remain. Used by the expression test harness.
func (p *Parser) ParseExpr() ast.Expr {
	expr := p.parseExpr()
	if p.cur.Kind != token.EOF {
		p.errorf(p.cur.Pos, "unexpected token after expression: %s", p.cur.Kind)
	}
	return expr
}

func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	funcTok := p.cur
	p.nextToken()

	if p.cur.Kind != token.Ident {
		p.errorf(p.cur.Pos, "expected function name after 'func'")
		return nil
	}
	nameTok := p.cur
	p.nextToken()

	p.expect(token.LParen)

	var params []*ast.Param
	if p.cur.Kind != token.RParen {
		for {
			if p.cur.Kind != token.Ident {
				p.errorf(p.cur.Pos, "expected parameter name")
				break
			}
			paramTok := p.cur
			p.nextToken()

			p.expect(token.Colon)
			paramType := p.parseTypeRef()

			params = append(params, &ast.Param{
				Name:    paramTok.Lexeme,
				NamePos: paramTok.Pos,
				Type:    paramType,
			})
			if p.cur.Kind == token.Comma {
				p.nextToken()
				continue
			}
			break
		}
	}
	p.expect(token.RParen)

	var ret *ast.TypeRef
	if p.cur.Kind == token.Arrow {
		p.nextToken()
		ret = p.parseTypeRef()
	}

	body := p.parseBlock()

	return &ast.FuncDecl{
		FuncPos: funcTok.Pos,
		Name:    nameTok.Lexeme,
		NamePos: nameTok.Pos,
		Params:  params,
		Return:  ret,
		Body:    body,
	}
}

func (p *Parser) parseTypeRef() *ast.TypeRef {
	if p.cur.Kind != token.Ident {
		p.errorf(p.cur.Pos, "expected type name, got %s (%q)", p.cur.Kind, p.cur.Lexeme)
		return &ast.TypeRef{Name: "", NamePos: p.cur.Pos}
	}
	tok := p.cur
	p.nextToken()
	return &ast.TypeRef{
		Name:    tok.Lexeme,
		NamePos: tok.Pos,
	}
}

// ---------- Statements ----------

func (p *Parser) parseBlock() []ast.Stmt {
	p.expect(token.LBrace)

	var stmts []ast.Stmt
	for p.cur.Kind != token.RBrace && p.cur.Kind != token.EOF {
		st := p.parseStmt()
		if st != nil {
			stmts = append(stmts, st)
		}
	}

	p.expect(token.RBrace)
	return stmts
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Kind {
	case token.Var:
		return p.parseVarDecl()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.Print:
		return p.parsePrint()
	case token.Return:
		return p.parseReturn()
	case token.Ident:
		if p.peek.Kind == token.Assign {
			return p.parseAssign()
		}
		if p.peek.Kind == token.LParen {
			call := p.parseCall()
			return &ast.ExprStmt{Expression: call}
		}
		p.errorf(p.cur.Pos, "unexpected identifier %q in statement position", p.cur.Lexeme)
		p.nextToken()
		return nil
	default:
		p.errorf(p.cur.Pos, "unexpected token in statement position: %s", p.cur.Kind)
		p.nextToken()
		return nil
	}
}

func (p *Parser) parseVarDecl() ast.Stmt {
	varTok := p.cur
	p.nextToken()

	if p.cur.Kind != token.Ident {
		p.errorf(p.cur.Pos, "expected variable name after 'var'")
		return nil
	}
	nameTok := p.cur
	p.nextToken()

	p.expect(token.Colon)
	typeRef := p.parseTypeRef()

	var value ast.Expr
	if p.cur.Kind == token.Assign {
		p.nextToken()
		value = p.parseExpr()
	}

	return &ast.VarDeclStmt{
		VarPos:  varTok.Pos,
		Name:    nameTok.Lexeme,
		NamePos: nameTok.Pos,
		Type:    typeRef,
		Value:   value,
	}
}

func (p *Parser) parseAssign() ast.Stmt {
	nameTok := p.cur
	p.nextToken()
	p.expect(token.Assign)
	value := p.parseExpr()

	return &ast.AssignStmt{
		Name:    nameTok.Lexeme,
		NamePos: nameTok.Pos,
		Value:   value,
	}
}

func (p *Parser) parseIf() ast.Stmt {
	ifTok := p.cur
	p.nextToken()

	cond := p.parseExpr()
	thenBlock := p.parseBlock()

	var elseBlock []ast.Stmt
	if p.cur.Kind == token.Else {
		p.nextToken()
		elseBlock = p.parseBlock()
	}

	return &ast.IfStmt{
		IfPos: ifTok.Pos,
		Cond:  cond,
		Then:  thenBlock,
		Else:  elseBlock,
	}
}

func (p *Parser) parseWhile() ast.Stmt {
	whileTok := p.cur
	p.nextToken()

	cond := p.parseExpr()
	body := p.parseBlock()

	return &ast.WhileStmt{
		WhilePos: whileTok.Pos,
		Cond:     cond,
		Body:     body,
	}
}

func (p *Parser) parsePrint() ast.Stmt {
	printTok := p.cur
	p.nextToken()

	value := p.parseExpr()

	return &ast.PrintStmt{
		PrintPos: printTok.Pos,
		Value:    value,
	}
}

func (p *Parser) parseReturn() ast.Stmt {
	returnTok := p.cur
	p.nextToken()

	var result ast.Expr
	if startsExpr(p.cur.Kind) {
		result = p.parseExpr()
	}

	return &ast.ReturnStmt{
		ReturnPos: returnTok.Pos,
		Result:    result,
	}
}

// startsExpr reports whether a token can begin an expression; a bare
// 'return' is followed by a token that cannot.
func startsExpr(k token.Kind) bool {
	switch k {
	case token.Int, token.String, token.True, token.False,
		token.Ident, token.LParen, token.Bang, token.Minus:
		return true
	}
	return false
}

// ---------- Expressions (with priorities) ----------

func (p *Parser) parseExpr() ast.Expr {
	return p.parseComparison()
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	for p.cur.Kind == token.Eq || p.cur.Kind == token.Lt || p.cur.Kind == token.LtEq {
		opTok := p.cur
		p.nextToken()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{
			OpPos: opTok.Pos,
			Op:    opTok.Kind,
			Left:  left,
			Right: right,
		}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.cur.Kind == token.Plus || p.cur.Kind == token.Minus {
		opTok := p.cur
		p.nextToken()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{
			OpPos: opTok.Pos,
			Op:    opTok.Kind,
			Left:  left,
			Right: right,
		}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.cur.Kind == token.Star || p.cur.Kind == token.Slash {
		opTok := p.cur
		p.nextToken()
		right := p.parseUnary()
		left = &ast.BinaryExpr{
			OpPos: opTok.Pos,
			Op:    opTok.Kind,
			Left:  left,
			Right: right,
		}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.cur.Kind == token.Bang || p.cur.Kind == token.Minus {
		opTok := p.cur
		p.nextToken()
		x := p.parseUnary()
		return &ast.UnaryExpr{
			OpPos: opTok.Pos,
			Op:    opTok.Kind,
			X:     x,
		}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.cur.Kind {
	case token.Ident:
		if p.peek.Kind == token.LParen {
			return p.parseCall()
		}
		tok := p.cur
		p.nextToken()
		return &ast.IdentExpr{
			Name:    tok.Lexeme,
			NamePos: tok.Pos,
		}
	case token.Int:
		tok := p.cur
		p.nextToken()
		val, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			p.errorf(tok.Pos, "invalid integer literal %q: %v", tok.Lexeme, err)
			val = 0
		}
		return &ast.IntLiteral{
			Value:  val,
			LitPos: tok.Pos,
			Raw:    tok.Lexeme,
		}
	case token.String:
		tok := p.cur
		p.nextToken()
		return &ast.StringLiteral{
			Value:  tok.Lexeme,
			LitPos: tok.Pos,
		}
	case token.True, token.False:
		tok := p.cur
		p.nextToken()
		return &ast.BoolLiteral{
			Value:  tok.Kind == token.True,
			LitPos: tok.Pos,
		}
	case token.LParen:
		lparen := p.cur
		p.nextToken()
		inner := p.parseExpr()
		rparen := p.expect(token.RParen)
		return &ast.ParenExpr{
			LParen: lparen.Pos,
			Inner:  inner,
			RParen: rparen.Pos,
		}
	default:
		tok := p.cur
		p.errorf(tok.Pos, "unexpected token in expression: %s", tok.Kind)
		p.nextToken()
		return &ast.IntLiteral{
			Value:  0,
			LitPos: tok.Pos,
			Raw:    "0",
		}
	}
}

func (p *Parser) parseCall() ast.Expr {
	nameTok := p.cur
	p.nextToken()

	lparen := p.expect(token.LParen)
	var args []ast.Expr
	if p.cur.Kind != token.RParen {
		for {
			arg := p.parseExpr()
			args = append(args, arg)
			if p.cur.Kind == token.Comma {
				p.nextToken()
				continue
			}
			break
		}
	}
	rparen := p.expect(token.RParen)

	return &ast.CallExpr{
		Callee:    nameTok.Lexeme,
		CalleePos: nameTok.Pos,
		LParen:    lparen.Pos,
		Args:      args,
		RParen:    rparen.Pos,
	}
}
