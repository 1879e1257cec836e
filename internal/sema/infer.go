package sema

import (
	"nimble/internal/ast"
	"nimble/internal/diag"
	"nimble/internal/token"
	"nimble/internal/types"
)

// inferencer is the second pass: it re-enters the scopes built by the
// first pass, declares variables and parameters, infers every
// expression's type bottom-up, and raises a diagnostic for each
// violated rule. Faults never abort the walk; the offending node is
// typed Error and analysis continues.
type inferencer struct {
	log    *diag.Log
	typeOf map[ast.Node]types.Type
	stack  []*Scope
}

func newInferencer(log *diag.Log, global *Scope) *inferencer {
	return &inferencer{
		log:    log,
		typeOf: make(map[ast.Node]types.Type),
		stack:  []*Scope{global},
	}
}

func (c *inferencer) current() *Scope {
	return c.stack[len(c.stack)-1]
}

func (c *inferencer) push(s *Scope) {
	c.stack = append(c.stack, s)
}

func (c *inferencer) pop() {
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *inferencer) setType(n ast.Node, t types.Type) {
	c.typeOf[n] = t
}

// typeAt returns a node's recorded type. A missing entry degrades to
// Error, which matches nothing and so cannot mask a defect silently.
func (c *inferencer) typeAt(n ast.Node) types.Type {
	if t, exists := c.typeOf[n]; exists {
		return t
	}
	return types.Error
}

// ----- Traversal events -----

func (c *inferencer) enter(n ast.Node) {
	switch n := n.(type) {
	case *ast.MainBlock:
		c.enterChild(EntryScopeName)

	case *ast.FuncDecl:
		c.enterChild(n.Name)
		c.declareParams(n)
	}
}

func (c *inferencer) exit(n ast.Node) {
	switch n := n.(type) {
	case *ast.MainBlock, *ast.FuncDecl:
		c.pop()

	case *ast.VarDeclStmt:
		c.checkVarDecl(n)
	case *ast.AssignStmt:
		c.checkAssign(n)
	case *ast.IfStmt:
		c.checkCondition(n, n.Cond)
	case *ast.WhileStmt:
		c.checkCondition(n, n.Cond)
	case *ast.PrintStmt:
		c.checkPrint(n)
	case *ast.ReturnStmt:
		c.checkReturn(n)

	case *ast.IntLiteral:
		c.setType(n, types.Int)
	case *ast.StringLiteral:
		c.setType(n, types.String)
	case *ast.BoolLiteral:
		c.setType(n, types.Bool)
	case *ast.ParenExpr:
		c.setType(n, c.typeAt(n.Inner))
	case *ast.IdentExpr:
		c.checkVariable(n)
	case *ast.UnaryExpr:
		c.checkUnary(n)
	case *ast.BinaryExpr:
		c.checkBinary(n)
	case *ast.CallExpr:
		c.checkCall(n)
	}
}

// enterChild re-enters a scope the first pass created. The passes walk
// scope-introducing nodes in identical order, so the child is always
// present; the fallback keeps the stack balanced regardless.
func (c *inferencer) enterChild(name string) {
	if child := c.current().Child(name); child != nil {
		c.push(child)
		return
	}
	c.push(c.current())
}

func (c *inferencer) declareParams(fn *ast.FuncDecl) {
	sc := c.current()
	for _, p := range fn.Params {
		if sc.ResolveLocally(p.Name) != nil {
			c.log.Add(p, diag.DuplicateName, "parameter %q already declared", p.Name)
			continue
		}
		sc.Define(p.Name, paramType(p), true)
	}
}

// ----- Statement rules -----

func (c *inferencer) checkVarDecl(s *ast.VarDeclStmt) {
	sc := c.current()
	if sc.ResolveLocally(s.Name) != nil {
		c.log.Add(s, diag.DuplicateName, "var %q already declared", s.Name)
		return
	}

	declared, ok := types.FromName(s.Type.Name)
	if !ok {
		c.log.Add(s, diag.AssignToWrongType, "%q is not a valid type name", s.Type.Name)
		return
	}
	sc.Define(s.Name, declared, false)

	// The symbol keeps its stated type even when the initializer is
	// incompatible.
	if s.Value != nil && !types.Equal(c.typeAt(s.Value), declared) {
		c.log.Add(s, diag.AssignToWrongType, "cannot assign %s to %q of type %s",
			c.typeAt(s.Value), s.Name, declared)
	}
}

func (c *inferencer) checkAssign(s *ast.AssignStmt) {
	sym := c.current().ResolveLocally(s.Name)
	if sym == nil {
		c.setType(s, types.Error)
		c.log.Add(s, diag.UndefinedName, "var %q is not declared", s.Name)
		return
	}
	if !types.Equal(c.typeAt(s.Value), sym.Type) {
		c.setType(s, types.Error)
		c.log.Add(s, diag.AssignToWrongType, "cannot assign %s to %q of type %s",
			c.typeAt(s.Value), s.Name, sym.Type)
	}
}

func (c *inferencer) checkCondition(stmt ast.Node, cond ast.Expr) {
	if !types.Equal(c.typeAt(cond), types.Bool) {
		c.setType(stmt, types.Error)
		c.log.Add(stmt, diag.ConditionNotBool, "condition must be Bool, got %s", c.typeAt(cond))
	}
}

func (c *inferencer) checkPrint(s *ast.PrintStmt) {
	t := c.typeAt(s.Value)
	if types.IsVoid(t) || types.IsError(t) {
		c.log.Add(s, diag.UnprintableExpression, "expression of type %s cannot be printed", t)
	}
}

func (c *inferencer) checkReturn(s *ast.ReturnStmt) {
	declared := c.current().ReturnType
	if declared == nil {
		// Only reachable for a return outside any function or entry
		// block, which the grammar does not produce.
		c.log.Add(s, diag.InvalidReturn, "return outside of function")
		return
	}

	if s.Result == nil {
		if !types.Equal(declared, types.Void) {
			c.log.Add(s, diag.InvalidReturn, "returning without a value from a function returning %s", declared)
		}
		return
	}

	if !types.Equal(c.typeAt(s.Result), declared) {
		c.log.Add(s, diag.InvalidReturn, "returning %s from a function returning %s",
			c.typeAt(s.Result), declared)
	}
}

// ----- Expression rules -----

func (c *inferencer) checkVariable(e *ast.IdentExpr) {
	// References use the local-only lookup; names from enclosing
	// scopes deliberately do not resolve here.
	sym := c.current().ResolveLocally(e.Name)
	if sym == nil {
		c.setType(e, types.Error)
		c.log.Add(e, diag.UndefinedName, "%q is undefined", e.Name)
		return
	}
	c.setType(e, sym.Type)
}

func (c *inferencer) checkUnary(e *ast.UnaryExpr) {
	x := c.typeAt(e.X)
	switch {
	case e.Op == token.Minus && types.Equal(x, types.Int):
		c.setType(e, types.Int)
	case e.Op == token.Bang && types.Equal(x, types.Bool):
		c.setType(e, types.Bool)
	default:
		c.setType(e, types.Error)
		c.log.Add(e, diag.InvalidNegation, "cannot apply %q to %s", opLexeme(e.Op), x)
	}
}

func (c *inferencer) checkBinary(e *ast.BinaryExpr) {
	left := c.typeAt(e.Left)
	right := c.typeAt(e.Right)

	bothInt := types.Equal(left, types.Int) && types.Equal(right, types.Int)

	switch e.Op {
	case token.Star, token.Slash:
		if bothInt {
			c.setType(e, types.Int)
			return
		}

	case token.Plus:
		if bothInt {
			c.setType(e, types.Int)
			return
		}
		if types.Equal(left, types.String) && types.Equal(right, types.String) {
			c.setType(e, types.String)
			return
		}

	case token.Minus:
		if bothInt {
			c.setType(e, types.Int)
			return
		}

	case token.Eq:
		if bothInt || (types.Equal(left, types.Bool) && types.Equal(right, types.Bool)) {
			c.setType(e, types.Bool)
			return
		}

	case token.Lt, token.LtEq:
		if bothInt {
			c.setType(e, types.Bool)
			return
		}
	}

	c.setType(e, types.Error)
	c.log.Add(e, diag.InvalidBinaryOp, "operator %q is not defined for (%s, %s)",
		opLexeme(e.Op), left, right)
}

func (c *inferencer) checkCall(e *ast.CallExpr) {
	fnScope, sig := c.resolveCallee(e.Callee)
	if fnScope == nil || sig == nil {
		c.setType(e, types.Error)
		c.log.Add(e, diag.InvalidCall, "no definition for function %q", e.Callee)
		return
	}

	if len(e.Args) != len(sig.ParamTypes) {
		c.setType(e, types.Error)
		c.log.Add(e, diag.InvalidCall, "%q expects %d argument(s), got %d",
			e.Callee, len(sig.ParamTypes), len(e.Args))
		return
	}

	for i, arg := range e.Args {
		if !types.Equal(c.typeAt(arg), sig.ParamTypes[i]) {
			c.setType(e, types.Error)
			c.log.Add(e, diag.InvalidCall, "argument %d of %q must be %s, got %s",
				i+1, e.Callee, sig.ParamTypes[i], c.typeAt(arg))
			return
		}
	}

	c.setType(e, sig.Result)
}

// resolveCallee finds the callee's body scope among the child scopes
// reachable from the call site, walking the enclosing links; the
// registered signature lives in the scope that owns the child.
func (c *inferencer) resolveCallee(name string) (*Scope, *types.Func) {
	for sc := c.current(); sc != nil; sc = sc.Enclosing() {
		child := sc.Child(name)
		if child == nil {
			continue
		}
		if sym := sc.ResolveLocally(name); sym != nil {
			if sig, ok := sym.Type.(*types.Func); ok {
				return child, sig
			}
		}
		return child, nil
	}
	return nil, nil
}

func opLexeme(k token.Kind) string {
	switch k {
	case token.Plus:
		return "+"
	case token.Minus:
		return "-"
	case token.Star:
		return "*"
	case token.Slash:
		return "/"
	case token.Bang:
		return "!"
	case token.Eq:
		return "=="
	case token.Lt:
		return "<"
	case token.LtEq:
		return "<="
	default:
		return k.String()
	}
}
