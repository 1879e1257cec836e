// Package diag collects semantic diagnostics. Faults accumulate in an
// ordered, append-only log; analysis never aborts on the first fault.
package diag

import (
	"fmt"
	"strings"

	"nimble/internal/ast"
)

// Category classifies a semantic fault. The set is closed.
type Category int

const (
	UndefinedName Category = iota
	DuplicateName
	InvalidCall
	InvalidReturn
	AssignToWrongType
	ConditionNotBool
	UnprintableExpression
	InvalidNegation
	InvalidBinaryOp
)

func (c Category) String() string {
	switch c {
	case UndefinedName:
		return "undefined-name"
	case DuplicateName:
		return "duplicate-name"
	case InvalidCall:
		return "invalid-call"
	case InvalidReturn:
		return "invalid-return"
	case AssignToWrongType:
		return "assign-to-wrong-type"
	case ConditionNotBool:
		return "condition-not-bool"
	case UnprintableExpression:
		return "unprintable-expression"
	case InvalidNegation:
		return "invalid-negation"
	case InvalidBinaryOp:
		return "invalid-binary-op"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Entry is a single fault record against a syntax-tree node.
type Entry struct {
	Node     ast.Node
	Category Category
	Message  string
}

func (e Entry) String() string {
	pos := e.Node.Pos()
	return fmt.Sprintf("%d:%d: %s: %s", pos.Line, pos.Column, e.Category, e.Message)
}

// Log is an ordered collection of entries.
type Log struct {
	entries []Entry
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Add(node ast.Node, category Category, format string, args ...interface{}) {
	l.entries = append(l.entries, Entry{
		Node:     node,
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Entries returns the recorded entries in insertion order.
func (l *Log) Entries() []Entry {
	return l.entries
}

func (l *Log) TotalEntries() int {
	return len(l.entries)
}

// CountOf returns the number of entries of the given category whose
// node renders to the given compact source text.
func (l *Log) CountOf(category Category, nodeText string) int {
	n := 0
	for _, e := range l.entries {
		if e.Category == category && ast.Text(e.Node) == nodeText {
			n++
		}
	}
	return n
}

// IncludesExactly reports whether exactly count entries of the category
// exist for the node text. Mirrors the verification queries used by the
// conformance suite.
func (l *Log) IncludesExactly(category Category, count int, nodeText string) bool {
	return l.CountOf(category, nodeText) == count
}

func (l *Log) String() string {
	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
