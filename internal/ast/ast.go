package ast

import "nimble/internal/token"

// Basic interfaces

type Node interface {
	Pos() token.Position
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

// Script / entry block

// Script is the root of a parsed Nimble program: function definitions
// followed by the statements of the entry block.
type Script struct {
	Funcs []*FuncDecl
	Main  *MainBlock
}

func (s *Script) Pos() token.Position {
	if len(s.Funcs) > 0 {
		return s.Funcs[0].Pos()
	}
	if s.Main != nil {
		return s.Main.Pos()
	}
	return token.Position{}
}

// MainBlock holds the trailing script statements. It introduces the
// entry-block scope even when empty.
type MainBlock struct {
	StartPos token.Position
	Stmts    []Stmt
}

func (m *MainBlock) Pos() token.Position { return m.StartPos }

// Declarations

// TypeRef is a source-level type annotation. The name is carried as raw
// text so unrecognized names reach the analyzer as ordinary data.
type TypeRef struct {
	Name    string
	NamePos token.Position
}

func (t *TypeRef) Pos() token.Position { return t.NamePos }

type FuncDecl struct {
	FuncPos token.Position
	Name    string
	NamePos token.Position
	Params  []*Param
	Return  *TypeRef // nil when no '->' annotation (implicit Void)
	Body    []Stmt
}

func (f *FuncDecl) Pos() token.Position { return f.FuncPos }

type Param struct {
	Name    string
	NamePos token.Position
	Type    *TypeRef
}

func (p *Param) Pos() token.Position { return p.NamePos }

// Statements

type VarDeclStmt struct {
	VarPos  token.Position
	Name    string
	NamePos token.Position
	Type    *TypeRef
	Value   Expr // nil when declared without initializer
}

func (s *VarDeclStmt) Pos() token.Position { return s.VarPos }
func (s *VarDeclStmt) stmtNode()           {}

type AssignStmt struct {
	Name    string
	NamePos token.Position
	Value   Expr
}

func (s *AssignStmt) Pos() token.Position { return s.NamePos }
func (s *AssignStmt) stmtNode()           {}

type IfStmt struct {
	IfPos token.Position
	Cond  Expr
	Then  []Stmt
	Else  []Stmt // nil when no else branch
}

func (s *IfStmt) Pos() token.Position { return s.IfPos }
func (s *IfStmt) stmtNode()           {}

type WhileStmt struct {
	WhilePos token.Position
	Cond     Expr
	Body     []Stmt
}

func (s *WhileStmt) Pos() token.Position { return s.WhilePos }
func (s *WhileStmt) stmtNode()           {}

type PrintStmt struct {
	PrintPos token.Position
	Value    Expr
}

func (s *PrintStmt) Pos() token.Position { return s.PrintPos }
func (s *PrintStmt) stmtNode()           {}

type ReturnStmt struct {
	ReturnPos token.Position
	Result    Expr // nil for a bare return
}

func (s *ReturnStmt) Pos() token.Position { return s.ReturnPos }
func (s *ReturnStmt) stmtNode()           {}

// ExprStmt wraps a call used in statement position.
type ExprStmt struct {
	Expression Expr
}

func (s *ExprStmt) Pos() token.Position { return s.Expression.Pos() }
func (s *ExprStmt) stmtNode()           {}

// Expressions

type IdentExpr struct {
	Name    string
	NamePos token.Position
}

func (e *IdentExpr) Pos() token.Position { return e.NamePos }
func (e *IdentExpr) exprNode()           {}

type IntLiteral struct {
	Value  int64
	LitPos token.Position
	Raw    string
}

func (e *IntLiteral) Pos() token.Position { return e.LitPos }
func (e *IntLiteral) exprNode()           {}

type StringLiteral struct {
	Value  string
	LitPos token.Position
}

func (e *StringLiteral) Pos() token.Position { return e.LitPos }
func (e *StringLiteral) exprNode()           {}

type BoolLiteral struct {
	Value  bool
	LitPos token.Position
}

func (e *BoolLiteral) Pos() token.Position { return e.LitPos }
func (e *BoolLiteral) exprNode()           {}

// ParenExpr is kept as an explicit node: a parenthesized expression
// receives its own type annotation during analysis.
type ParenExpr struct {
	LParen token.Position
	Inner  Expr
	RParen token.Position
}

func (e *ParenExpr) Pos() token.Position { return e.LParen }
func (e *ParenExpr) exprNode()           {}

type UnaryExpr struct {
	OpPos token.Position
	Op    token.Kind // token.Minus or token.Bang
	X     Expr
}

func (e *UnaryExpr) Pos() token.Position { return e.OpPos }
func (e *UnaryExpr) exprNode()           {}

type BinaryExpr struct {
	OpPos token.Position
	Op    token.Kind
	Left  Expr
	Right Expr
}

func (e *BinaryExpr) Pos() token.Position { return e.Left.Pos() }
func (e *BinaryExpr) exprNode()           {}

type CallExpr struct {
	Callee    string
	CalleePos token.Position
	LParen    token.Position
	Args      []Expr
	RParen    token.Position
}

func (e *CallExpr) Pos() token.Position { return e.CalleePos }
func (e *CallExpr) exprNode()           {}
