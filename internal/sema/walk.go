package sema

import "nimble/internal/ast"

// visitor receives enter/exit events from walk. Each pass implements
// both and dispatches on the node kind; expression typing happens in
// exit handlers, so operand types are always available before their
// parent is evaluated.
type visitor interface {
	enter(n ast.Node)
	exit(n ast.Node)
}

// walk drives a single depth-first traversal over the closed node set.
// Both passes use the same driver, which keeps their visit order
// identical by construction.
func walk(v visitor, n ast.Node) {
	if n == nil {
		return
	}

	v.enter(n)

	switch n := n.(type) {
	case *ast.Script:
		for _, fn := range n.Funcs {
			walk(v, fn)
		}
		if n.Main != nil {
			walk(v, n.Main)
		}

	case *ast.MainBlock:
		for _, st := range n.Stmts {
			walk(v, st)
		}

	case *ast.FuncDecl:
		for _, p := range n.Params {
			walk(v, p)
		}
		for _, st := range n.Body {
			walk(v, st)
		}

	case *ast.Param:
		// leaf

	case *ast.VarDeclStmt:
		walk(v, n.Value)

	case *ast.AssignStmt:
		walk(v, n.Value)

	case *ast.IfStmt:
		walk(v, n.Cond)
		for _, st := range n.Then {
			walk(v, st)
		}
		for _, st := range n.Else {
			walk(v, st)
		}

	case *ast.WhileStmt:
		walk(v, n.Cond)
		for _, st := range n.Body {
			walk(v, st)
		}

	case *ast.PrintStmt:
		walk(v, n.Value)

	case *ast.ReturnStmt:
		walk(v, n.Result)

	case *ast.ExprStmt:
		walk(v, n.Expression)

	case *ast.ParenExpr:
		walk(v, n.Inner)

	case *ast.UnaryExpr:
		walk(v, n.X)

	case *ast.BinaryExpr:
		walk(v, n.Left)
		walk(v, n.Right)

	case *ast.CallExpr:
		for _, a := range n.Args {
			walk(v, a)
		}

	case *ast.IdentExpr, *ast.IntLiteral, *ast.StringLiteral, *ast.BoolLiteral:
		// leaves
	}

	v.exit(n)
}
