package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"nimble/internal/token"
)

// Text returns a compact, whitespace-free rendering of a node's source
// form. Diagnostic queries and annotation lookups key on this text, so
// two structurally identical nodes render identically.
func Text(node Node) string {
	var sb strings.Builder
	writeText(&sb, node)
	return sb.String()
}

func writeText(w io.Writer, n Node) {
	if n == nil {
		return
	}

	switch n := n.(type) {
	case *Script:
		for _, fn := range n.Funcs {
			writeText(w, fn)
		}
		if n.Main != nil {
			writeText(w, n.Main)
		}

	case *MainBlock:
		for _, st := range n.Stmts {
			writeText(w, st)
		}

	case *FuncDecl:
		fmt.Fprintf(w, "func%s(", n.Name)
		for i, p := range n.Params {
			if i > 0 {
				io.WriteString(w, ",")
			}
			writeText(w, p)
		}
		io.WriteString(w, ")")
		if n.Return != nil {
			fmt.Fprintf(w, "->%s", n.Return.Name)
		}
		io.WriteString(w, "{")
		for _, st := range n.Body {
			writeText(w, st)
		}
		io.WriteString(w, "}")

	case *Param:
		fmt.Fprintf(w, "%s:%s", n.Name, n.Type.Name)

	case *VarDeclStmt:
		fmt.Fprintf(w, "var%s:%s", n.Name, n.Type.Name)
		if n.Value != nil {
			io.WriteString(w, "=")
			writeText(w, n.Value)
		}

	case *AssignStmt:
		fmt.Fprintf(w, "%s=", n.Name)
		writeText(w, n.Value)

	case *IfStmt:
		io.WriteString(w, "if")
		writeText(w, n.Cond)
		io.WriteString(w, "{")
		for _, st := range n.Then {
			writeText(w, st)
		}
		io.WriteString(w, "}")
		if n.Else != nil {
			io.WriteString(w, "else{")
			for _, st := range n.Else {
				writeText(w, st)
			}
			io.WriteString(w, "}")
		}

	case *WhileStmt:
		io.WriteString(w, "while")
		writeText(w, n.Cond)
		io.WriteString(w, "{")
		for _, st := range n.Body {
			writeText(w, st)
		}
		io.WriteString(w, "}")

	case *PrintStmt:
		io.WriteString(w, "print")
		writeText(w, n.Value)

	case *ReturnStmt:
		io.WriteString(w, "return")
		writeText(w, n.Result)

	case *ExprStmt:
		writeText(w, n.Expression)

	case *IdentExpr:
		io.WriteString(w, n.Name)

	case *IntLiteral:
		io.WriteString(w, n.Raw)

	case *StringLiteral:
		io.WriteString(w, strconv.Quote(n.Value))

	case *BoolLiteral:
		if n.Value {
			io.WriteString(w, "true")
		} else {
			io.WriteString(w, "false")
		}

	case *ParenExpr:
		io.WriteString(w, "(")
		writeText(w, n.Inner)
		io.WriteString(w, ")")

	case *UnaryExpr:
		io.WriteString(w, opText(n.Op))
		writeText(w, n.X)

	case *BinaryExpr:
		writeText(w, n.Left)
		io.WriteString(w, opText(n.Op))
		writeText(w, n.Right)

	case *CallExpr:
		fmt.Fprintf(w, "%s(", n.Callee)
		for i, a := range n.Args {
			if i > 0 {
				io.WriteString(w, ",")
			}
			writeText(w, a)
		}
		io.WriteString(w, ")")
	}
}

func opText(k token.Kind) string {
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
