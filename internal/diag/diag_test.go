package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nimble/internal/ast"
	"nimble/internal/diag"
	"nimble/internal/token"
)

func ident(name string, line, col int) *ast.IdentExpr {
	return &ast.IdentExpr{
		Name:    name,
		NamePos: token.Position{Line: line, Column: col},
	}
}

func TestLogOrderAndCounts(t *testing.T) {
	log := diag.NewLog()

	log.Add(ident("x", 1, 1), diag.UndefinedName, "%q is undefined", "x")
	log.Add(ident("y", 2, 5), diag.UndefinedName, "%q is undefined", "y")
	log.Add(ident("x", 3, 1), diag.UndefinedName, "%q is undefined", "x")

	assert.Equal(t, 3, log.TotalEntries())
	assert.Equal(t, 2, log.CountOf(diag.UndefinedName, "x"))
	assert.Equal(t, 1, log.CountOf(diag.UndefinedName, "y"))
	assert.Equal(t, 0, log.CountOf(diag.DuplicateName, "x"))

	assert.True(t, log.IncludesExactly(diag.UndefinedName, 2, "x"))
	assert.False(t, log.IncludesExactly(diag.UndefinedName, 1, "x"))
	assert.True(t, log.IncludesExactly(diag.InvalidCall, 0, "x"))

	entries := log.Entries()
	assert.Equal(t, `"x" is undefined`, entries[0].Message)
	assert.Equal(t, `"y" is undefined`, entries[1].Message)
}

func TestEntryString(t *testing.T) {
	log := diag.NewLog()
	log.Add(ident("n", 4, 7), diag.InvalidNegation, "cannot apply %q to %s", "!", "Int")

	got := log.Entries()[0].String()
	assert.Equal(t, `4:7: invalid-negation: cannot apply "!" to Int`, got)
}

func TestCategoryNames(t *testing.T) {
	names := map[diag.Category]string{
		diag.UndefinedName:         "undefined-name",
		diag.DuplicateName:         "duplicate-name",
		diag.InvalidCall:           "invalid-call",
		diag.InvalidReturn:         "invalid-return",
		diag.AssignToWrongType:     "assign-to-wrong-type",
		diag.ConditionNotBool:      "condition-not-bool",
		diag.UnprintableExpression: "unprintable-expression",
		diag.InvalidNegation:       "invalid-negation",
		diag.InvalidBinaryOp:       "invalid-binary-op",
	}

	for c, want := range names {
		assert.Equal(t, want, c.String())
	}
}

func TestLogString(t *testing.T) {
	log := diag.NewLog()
	assert.Equal(t, "", log.String())

	log.Add(ident("x", 1, 1), diag.UndefinedName, "%q is undefined", "x")
	assert.Equal(t, "1:1: undefined-name: \"x\" is undefined\n", log.String())
}
