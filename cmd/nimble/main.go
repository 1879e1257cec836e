package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"nimble/internal/ast"
	"nimble/internal/diag"
	"nimble/internal/lexer"
	"nimble/internal/parser"
	"nimble/internal/sema"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]

	switch cmd {
	case "check":
		if err := cmdCheck(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	case "expr":
		if err := cmdExpr(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		usage()
	case "version", "-v", "--version":
		fmt.Println("nimble", version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`Nimble semantic checker

Usage:
  nimble check <file.nim> [-scopes]
  nimble expr <expression>

Commands:
  version  Nimble checker version
  check    Parse and analyze a .nim script, reporting semantic faults
  expr     Analyze a single expression and print its inferred type

Flags (check):
  -scopes  Dump the scope tree after analysis`)
}

// -------------- CHECK --------------

func cmdCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var dumpScopes bool
	fs.BoolVar(&dumpScopes, "scopes", false, "dump the scope tree after analysis")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("check: missing input file")
	}
	input := fs.Arg(0)

	if filepath.Ext(input) != ".nim" {
		return fmt.Errorf("check: input must be a .nim source file")
	}

	src, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	script, err := parseScript(string(src))
	if err != nil {
		return err
	}

	res := sema.Analyze(script)

	if dumpScopes {
		printScope(res.Global, 0)
	}

	if res.Log.TotalEntries() > 0 {
		reportLog(input, res.Log)
		os.Exit(1)
	}
	return nil
}

// -------------- EXPR --------------

func cmdExpr(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("expr: missing expression")
	}

	expr, err := parseExpr(args[0])
	if err != nil {
		return err
	}

	res := sema.AnalyzeExpr(expr)
	if res.Log.TotalEntries() > 0 {
		reportLog("<expr>", res.Log)
		os.Exit(1)
	}

	fmt.Printf("%s : %s\n", ast.Text(expr), res.TypeOf(expr))
	return nil
}

// -------------- Shared pipeline --------------

func parseScript(src string) (*ast.Script, error) {
	l := lexer.New(src)
	p := parser.New(l)
	script := p.ParseScript()
	if err := frontendError(l, p); err != nil {
		return nil, err
	}
	return script, nil
}

func parseExpr(src string) (ast.Expr, error) {
	l := lexer.New(src)
	p := parser.New(l)
	expr := p.ParseExpr()
	if err := frontendError(l, p); err != nil {
		return nil, err
	}
	return expr, nil
}

func frontendError(l *lexer.Lexer, p *parser.Parser) error {
	msgs := append(append([]string{}, l.Errors()...), p.Errors()...)
	if len(msgs) == 0 {
		return nil
	}
	for _, m := range msgs {
		fmt.Fprintln(os.Stderr, m)
	}
	return fmt.Errorf("parsing failed with %d errors", len(msgs))
}

func reportLog(name string, log *diag.Log) {
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	cat := color.New(color.FgRed, color.Bold)
	loc := color.New(color.FgCyan)
	if !useColor {
		cat.DisableColor()
		loc.DisableColor()
	}

	for _, e := range log.Entries() {
		pos := e.Node.Pos()
		fmt.Fprintf(os.Stderr, "%s %s %s\n",
			loc.Sprintf("%s:%d:%d:", name, pos.Line, pos.Column),
			cat.Sprintf("%s:", e.Category),
			e.Message)
	}
	fmt.Fprintf(os.Stderr, "%d fault(s)\n", log.TotalEntries())
}

func printScope(sc *sema.Scope, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	if sc.ReturnType != nil {
		fmt.Printf("%sscope %s (returns %s)\n", indent, sc.Name, sc.ReturnType)
	} else {
		fmt.Printf("%sscope %s\n", indent, sc.Name)
	}

	for _, sym := range sc.Symbols() {
		kind := "var"
		if sym.IsParam {
			kind = "param"
		}
		fmt.Printf("%s  %s %s : %s\n", indent, kind, sym.Name, sym.Type)
	}

	names := sc.ChildNames()
	sort.Strings(names)
	for _, name := range names {
		printScope(sc.Child(name), depth+1)
	}
}
