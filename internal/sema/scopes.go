package sema

import (
	"nimble/internal/ast"
	"nimble/internal/diag"
	"nimble/internal/types"
)

// scopeBuilder is the first pass: it creates a scope-tree node for
// every scope-introducing construct and registers function signatures
// in the enclosing scope. Variable and parameter declarations are left
// to the second pass.
type scopeBuilder struct {
	log   *diag.Log
	stack []*Scope
}

func newScopeBuilder(log *diag.Log, global *Scope) *scopeBuilder {
	return &scopeBuilder{
		log:   log,
		stack: []*Scope{global},
	}
}

func (b *scopeBuilder) current() *Scope {
	return b.stack[len(b.stack)-1]
}

func (b *scopeBuilder) push(s *Scope) {
	b.stack = append(b.stack, s)
}

func (b *scopeBuilder) pop() {
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *scopeBuilder) enter(n ast.Node) {
	switch n := n.(type) {
	case *ast.MainBlock:
		child, _ := b.current().CreateChild(EntryScopeName, types.Void)
		b.push(child)

	case *ast.FuncDecl:
		ret := b.declaredReturnType(n)
		child, ok := b.current().CreateChild(n.Name, ret)
		if !ok {
			b.log.Add(n, diag.DuplicateName, "function %q already defined", n.Name)
		}
		b.push(child)
	}
}

func (b *scopeBuilder) exit(n ast.Node) {
	switch n := n.(type) {
	case *ast.MainBlock:
		b.pop()

	case *ast.FuncDecl:
		fnScope := b.current()
		b.pop()

		paramTypes := make([]types.Type, 0, len(n.Params))
		for _, p := range n.Params {
			paramTypes = append(paramTypes, paramType(p))
		}
		sig := &types.Func{
			ParamTypes: paramTypes,
			Result:     fnScope.ReturnType,
		}
		// First definition wins: a duplicate was already flagged at
		// scope creation and must not replace the signature.
		if b.current().ResolveLocally(n.Name) == nil {
			b.current().Define(n.Name, sig, false)
		}
	}
}

// declaredReturnType reads the function's explicit annotation, falling
// back to Void when absent. An unrecognized name is an InvalidReturn
// fault against the definition and yields the Error sentinel so the
// scope can still be created and re-entered by the second pass.
func (b *scopeBuilder) declaredReturnType(fn *ast.FuncDecl) types.Type {
	if fn.Return == nil {
		return types.Void
	}
	pt, ok := types.FromName(fn.Return.Name)
	if !ok {
		b.log.Add(fn, diag.InvalidReturn, "%q is not a valid return type for %q", fn.Return.Name, fn.Name)
		return types.Error
	}
	return pt
}

// paramType maps a parameter annotation to its type. The grammar
// restricts annotations to recognized names; anything else degrades to
// the Error sentinel instead of panicking.
func paramType(p *ast.Param) types.Type {
	if pt, ok := types.FromName(p.Type.Name); ok {
		return pt
	}
	return types.Error
}
