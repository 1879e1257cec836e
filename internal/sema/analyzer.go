// Package sema performs two-pass semantic analysis over a parsed
// Nimble script. The first pass builds the scope tree and registers
// function signatures; the second re-traverses the syntax tree,
// infers a type for every expression, and records a diagnostic for
// each violated rule.
package sema

import (
	"nimble/internal/ast"
	"nimble/internal/diag"
	"nimble/internal/types"
)

// Result bundles everything analysis produces: the scope tree rooted
// at Global, a type for every expression node, and the fault log.
type Result struct {
	Global *Scope
	Types  map[ast.Node]types.Type
	Log    *diag.Log
}

// TypeOf returns the inferred type for a node, or Error when the node
// was never typed.
func (r *Result) TypeOf(n ast.Node) types.Type {
	if t, exists := r.Types[n]; exists {
		return t
	}
	return types.Error
}

// Analyze runs both passes over a script. It never fails; faults
// accumulate in the returned Result's Log.
func Analyze(script *ast.Script) *Result {
	log := diag.NewLog()
	global := NewGlobalScope()

	walk(newScopeBuilder(log, global), script)

	inf := newInferencer(log, global)
	walk(inf, script)

	return &Result{Global: global, Types: inf.typeOf, Log: log}
}

// AnalyzeExpr analyzes a bare expression against an empty global
// scope. Both passes still run so scope-introducing forms, were any
// to appear, behave exactly as they do in a full script.
func AnalyzeExpr(expr ast.Expr) *Result {
	log := diag.NewLog()
	global := NewGlobalScope()

	walk(newScopeBuilder(log, global), expr)

	inf := newInferencer(log, global)
	walk(inf, expr)

	return &Result{Global: global, Types: inf.typeOf, Log: log}
}
