package format

import (
	"strconv"

	"github.com/funvibe/kclsp/internal/ast"
)

// renderExpr writes e to p, choosing a single-line or multi-line layout
// for arrays, objects, and calls based on the measured width of the flat
// candidate (spec.md §4.F).
func (p *Printer) renderExpr(e ast.Expr) {
	switch n := e.(type) {
	case nil:
		return
	case *ast.ArrayLiteral:
		p.renderArray(n)
	case *ast.ObjectLiteral:
		p.renderObject(n)
	case *ast.CallExpr:
		p.renderCall(n)
	case *ast.ConditionalExpr:
		p.renderConditional(n)
	case *ast.AnonFunction:
		p.write("fn(" + flatParams(n.Params) + ")")
		if n.ReturnType != nil {
			p.write(": " + n.ReturnType.Name)
		}
		p.write(" ")
		p.renderBlock(n.Body)
	case *ast.PipeExpr:
		p.renderExpr(n.Left)
		p.write(" |> ")
		p.renderExpr(n.Right)
	case *ast.BinaryExpr:
		p.renderExpr(n.Left)
		p.write(" " + n.Op + " ")
		p.renderExpr(n.Right)
	case *ast.UnaryExpr:
		p.write(n.Op)
		p.renderExpr(n.Operand)
	case *ast.IndexExpr:
		p.renderExpr(n.Object)
		p.write("[")
		p.renderExpr(n.Index)
		p.write("]")
	case *ast.RangeExpr:
		p.renderExpr(n.Start)
		if n.Inclusive {
			p.write("..")
		} else {
			p.write("..<")
		}
		p.renderExpr(n.End)
	case *ast.MemberExpr:
		p.renderExpr(n.Object)
		p.write("." + identName(n.Property))
	case *ast.TypeAscription:
		p.renderExpr(n.Expr)
		p.write(": " + identName(n.Type))
	default:
		p.write(flat(e))
	}
}

func fits(s string, target, hard int) bool {
	return len(s) <= target || len(s) <= hard
}

// renderArray chooses single-line vs one-element-per-line (spec.md §4.F).
func (p *Printer) renderArray(n *ast.ArrayLiteral) {
	line := flat(n)
	target, hard := p.budget()
	if len(n.Elements) == 0 || fits(line, target, hard) {
		p.write(line)
		return
	}
	p.write("[")
	p.writeln()
	p.indent++
	for i, el := range n.Elements {
		p.writeIndent()
		p.renderExpr(el)
		if i < len(n.Elements)-1 {
			p.write(",")
		} else {
			p.write(",")
		}
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("]")
}

func (p *Printer) renderObject(n *ast.ObjectLiteral) {
	line := flat(n)
	target, hard := p.budget()
	if len(n.Entries) == 0 || fits(line, target, hard) {
		p.write(line)
		return
	}
	p.write("{")
	p.writeln()
	p.indent++
	for _, entry := range n.Entries {
		p.writeIndent()
		p.write(entry.Key.Name + ": ")
		p.renderExpr(entry.Value)
		p.write(",")
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *Printer) renderCall(n *ast.CallExpr) {
	line := flat(n)
	target, hard := p.budget()
	if len(n.Args) == 0 || fits(line, target, hard) {
		p.write(line)
		return
	}
	p.write(identName(n.Callee) + "(")
	p.writeln()
	p.indent++
	for i, a := range n.Args {
		p.writeIndent()
		if a.Label != nil {
			p.write(a.Label.Name + " = ")
		}
		p.renderExpr(a.Value)
		if i < len(n.Args)-1 {
			p.write(",")
		} else {
			p.write(",")
		}
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write(")")
}

// renderConditional lays out each branch of an `if` on its own through
// renderBlock: a branch stays on one line only when it is a single short
// `return` (isTrivialReturn); any other branch, a one-expression tail such
// as `{ 1 }` included, is indented one statement per line. The two
// branches are not judged together.
func (p *Printer) renderConditional(n *ast.ConditionalExpr) {
	p.write("if ")
	p.renderExpr(n.Cond)
	p.write(" ")
	p.renderBlock(n.Then)
	switch e := n.Else.(type) {
	case *ast.Block:
		p.write(" else ")
		p.renderBlock(e)
	case *ast.ConditionalExpr:
		p.write(" else ")
		p.renderConditional(e)
	}
}

// renderBlock renders `{ stmt* tailExpr? }`. A body consisting of exactly
// one short `return` (see isTrivialReturn) stays on one line with its header (spec.md
// §4.F's single-line function shortcut); every other body is indented
// one statement per line.
func (p *Printer) renderBlock(b *ast.Block) {
	if b == nil {
		p.write("{}")
		return
	}
	if isTrivialReturn(b) {
		p.write(flatBlock(b))
		return
	}
	p.write("{")
	p.writeln()
	p.indent++
	for _, s := range b.Statements {
		p.writeIndent()
		p.renderStmt(s)
		p.writeln()
	}
	if b.TailExpr != nil {
		p.writeIndent()
		p.renderExpr(b.TailExpr)
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

// renderStmt renders one statement's own text (no leading/trailing
// trivia or statement-separating newline; the caller owns those).
func (p *Printer) renderStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.LetStmt:
		p.write("let " + identName(n.Name) + " = ")
		p.renderExpr(n.Value)
	case *ast.AssignStmt:
		p.write(identName(n.Name) + " = ")
		p.renderExpr(n.Value)
	case *ast.FnDefStmt:
		p.write("fn " + identName(n.Name) + "(" + flatParams(n.Params) + ")")
		if n.ReturnType != nil {
			p.write(": " + n.ReturnType.Name)
		}
		p.write(" ")
		p.renderBlock(n.Body)
	case *ast.ReturnStmt:
		if n.Value == nil {
			p.write("return")
		} else {
			p.write("return ")
			p.renderExpr(n.Value)
		}
	case *ast.ExprStmt:
		p.renderExpr(n.Expr)
	case *ast.AnnotationStmt:
		p.write("@" + identName(n.Name))
		if len(n.Args) > 0 {
			p.write("(" + flatArgs(n.Args) + ")")
		}
	case *ast.ImportStmt:
		p.write("import ")
		if len(n.Items) > 0 {
			p.write("(" + identList(n.Items) + ") from ")
		}
		if n.Path != nil {
			p.write(strconv.Quote(n.Path.Value))
		}
		if n.Alias != nil {
			p.write(" as " + n.Alias.Name)
		}
	case *ast.ExportStmt:
		p.write("export ")
		if n.Inner != nil {
			p.renderStmt(n.Inner)
		}
	case *ast.ExportImportStmt:
		p.write("export (" + identList(n.Items) + ") from ")
		if n.Path != nil {
			p.write(strconv.Quote(n.Path.Value))
		}
	}
}

func identList(ids []*ast.Identifier) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ", "
		}
		out += identName(id)
	}
	return out
}

func isFnLike(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.FnDefStmt:
		return true
	case *ast.ExportStmt:
		return isFnLike(n.Inner)
	default:
		return false
	}
}
