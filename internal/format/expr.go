package format

import (
	"strconv"
	"strings"

	"github.com/funvibe/kclsp/internal/ast"
)

// flat renders e as a single line with no layout decisions, used both as
// real output when it fits the width budget and as the candidate whose
// length decides whether it doesn't.
func flat(e ast.Expr) string {
	switch n := e.(type) {
	case nil:
		return ""
	case *ast.NumberLiteral:
		return n.Value + n.Unit
	case *ast.BoolLiteral:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.StringLiteral:
		return strconv.Quote(n.Value)
	case *ast.NilLiteral:
		return "nil"
	case *ast.ArrayLiteral:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = flat(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.ObjectLiteral:
		parts := make([]string, len(n.Entries))
		for i, entry := range n.Entries {
			parts[i] = entry.Key.Name + ": " + flat(entry.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ast.VariableRef:
		return identName(n.Name)
	case *ast.CallExpr:
		return identName(n.Callee) + "(" + flatArgs(n.Args) + ")"
	case *ast.PipeExpr:
		return flat(n.Left) + " |> " + flat(n.Right)
	case *ast.PipeSubstitution:
		return "%"
	case *ast.TagDeclarator:
		return "$" + identName(n.Name)
	case *ast.UnaryExpr:
		return n.Op + flat(n.Operand)
	case *ast.BinaryExpr:
		return flat(n.Left) + " " + n.Op + " " + flat(n.Right)
	case *ast.IndexExpr:
		return flat(n.Object) + "[" + flat(n.Index) + "]"
	case *ast.RangeExpr:
		op := ".."
		if !n.Inclusive {
			op = "..<"
		}
		return flat(n.Start) + op + flat(n.End)
	case *ast.MemberExpr:
		return flat(n.Object) + "." + identName(n.Property)
	case *ast.TypeAscription:
		return flat(n.Expr) + ": " + identName(n.Type)
	case *ast.ConditionalExpr:
		s := "if " + flat(n.Cond) + " " + flatBlock(n.Then)
		switch e := n.Else.(type) {
		case *ast.Block:
			s += " else " + flatBlock(e)
		case *ast.ConditionalExpr:
			s += " else " + flat(e)
		}
		return s
	case *ast.AnonFunction:
		ret := ""
		if n.ReturnType != nil {
			ret = ": " + n.ReturnType.Name
		}
		return "fn(" + flatParams(n.Params) + ")" + ret + " " + flatBlock(n.Body)
	default:
		return ""
	}
}

func identName(id *ast.Identifier) string {
	if id == nil {
		return ""
	}
	return id.Name
}

func flatArgs(args []ast.Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a.Label != nil {
			parts[i] = a.Label.Name + " = " + flat(a.Value)
		} else {
			parts[i] = flat(a.Value)
		}
	}
	return strings.Join(parts, ", ")
}

func flatParams(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		name := identName(p.Name)
		if p.Unlabeled {
			name = "@" + name
		}
		if p.Type != nil {
			parts[i] = name + ": " + identName(p.Type)
		} else {
			parts[i] = name
		}
	}
	return strings.Join(parts, ", ")
}

// flatBlock renders a block on one line, used only as a measurement
// candidate or for the "single trivial return" shortcut (spec.md §4.F).
func flatBlock(b *ast.Block) string {
	if b == nil {
		return "{}"
	}
	var parts []string
	for _, s := range b.Statements {
		parts = append(parts, flatStmt(s))
	}
	if b.TailExpr != nil {
		parts = append(parts, flat(b.TailExpr))
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

func flatStmt(s ast.Stmt) string {
	switch n := s.(type) {
	case *ast.ReturnStmt:
		if n.Value == nil {
			return "return"
		}
		return "return " + flat(n.Value)
	case *ast.LetStmt:
		return "let " + identName(n.Name) + " = " + flat(n.Value)
	case *ast.AssignStmt:
		return identName(n.Name) + " = " + flat(n.Value)
	case *ast.ExprStmt:
		return flat(n.Expr)
	default:
		return ""
	}
}

// isTrivialReturn reports whether b is exactly one `return` statement
// whose value is absent, an atom, or any expression rendering flat in at
// most 24 characters, short enough to stay on one line with its enclosing
// `fn` header (spec.md §4.F's single-line function shortcut).
func isTrivialReturn(b *ast.Block) bool {
	if b == nil || len(b.Statements) != 1 || b.TailExpr != nil {
		return false
	}
	ret, ok := b.Statements[0].(*ast.ReturnStmt)
	if !ok {
		return false
	}
	if ret.Value == nil {
		return true
	}
	switch ret.Value.(type) {
	case *ast.VariableRef, *ast.NumberLiteral, *ast.BoolLiteral, *ast.StringLiteral, *ast.NilLiteral:
		return true
	default:
		return len(flat(ret.Value)) <= 24
	}
}
