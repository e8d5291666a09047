package semtok

import (
	"github.com/funvibe/kclsp/internal/ast"
	"github.com/funvibe/kclsp/internal/position"
)

// Role is the classification recorded for one identifier's own source
// range; occurrences with no recorded role (most VariableRef/MemberExpr
// names) fall back to the emitter's plain "variable" default. Exported so
// internal/hover can reuse the exact same classification (SPEC_FULL.md's
// supplemented hover feature is explicitly built on "the same AST walk as
// component G").
type Role struct {
	Type      TokenType
	Modifiers uint32
}

// roleTable maps an identifier's start position to its role. Keyed by
// position rather than by name: a name's role depends on the syntactic
// slot it fills at each occurrence, not on which symbol it denotes.
type roleTable map[position.Position]Role

// BuildRoles classifies every identifier in prog that plays a
// declaration- or usage-specific syntactic role (let/fn/param names, call
// callees, type names, and so on). It walks the tree once through
// ast.Inspect — the same traversal the lint engine and hover use — rather
// than a package-private recursive walker.
func BuildRoles(prog *ast.Program) map[position.Position]Role {
	return buildRoles(prog)
}

func buildRoles(prog *ast.Program) roleTable {
	rt := roleTable{}
	ast.Inspect(prog, func(n ast.Node) bool {
		assignRoles(n, rt)
		return true
	})
	return rt
}

func (rt roleTable) set(id *ast.Identifier, typ TokenType, mods uint32) {
	if id == nil {
		return
	}
	rt[id.Range().Start] = Role{Type: typ, Modifiers: mods}
}

func (rt roleTable) setParams(params []ast.Param) {
	for _, p := range params {
		rt.set(p.Name, TypeParameter, ModDeclaration)
		if p.Type != nil {
			rt.set(p.Type, TypeType, 0)
		}
	}
}

func (rt roleTable) setArgs(args []ast.Argument) {
	for _, a := range args {
		if a.Label != nil {
			rt.set(a.Label, TypeParameter, 0)
		}
	}
}

// assignRoles records the role(s), if any, that n's own identifier-bearing
// fields play. It never recurses itself: ast.Inspect already visits every
// descendant, including n's children, so assignRoles only needs to look at
// n's immediate fields each time Inspect calls it.
func assignRoles(n ast.Node, rt roleTable) {
	switch node := n.(type) {
	case *ast.LetStmt:
		rt.set(node.Name, TypeVariable, ModDeclaration|ModReadonly)
	case *ast.AssignStmt:
		rt.set(node.Name, TypeVariable, ModDeclaration)
	case *ast.FnDefStmt:
		rt.set(node.Name, TypeFunction, ModDeclaration|ModReadonly)
		rt.setParams(node.Params)
		if node.ReturnType != nil {
			rt.set(node.ReturnType, TypeType, 0)
		}
	case *ast.AnnotationStmt:
		rt.set(node.Name, TypeNamespace, 0)
		rt.setArgs(node.Args)
	case *ast.ImportStmt:
		for _, item := range node.Items {
			rt.set(item, TypeNamespace, 0)
		}
		if node.Alias != nil {
			rt.set(node.Alias, TypeNamespace, ModDeclaration)
		}
	case *ast.ExportImportStmt:
		for _, item := range node.Items {
			rt.set(item, TypeNamespace, 0)
		}
	case *ast.CallExpr:
		rt.set(node.Callee, TypeFunction, 0)
		rt.setArgs(node.Args)
	case *ast.TagDeclarator:
		rt.set(node.Name, TypeVariable, ModDeclaration)
	case *ast.TypeAscription:
		rt.set(node.Type, TypeType, 0)
	case *ast.AnonFunction:
		rt.setParams(node.Params)
		if node.ReturnType != nil {
			rt.set(node.ReturnType, TypeType, 0)
		}
	case *ast.ObjectLiteral:
		for _, entry := range node.Entries {
			rt.set(entry.Key, TypeParameter, 0)
		}
	}
}
