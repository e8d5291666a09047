// Package hover resolves an editor cursor position to the identifier it
// sits over and, for names a stdlib catalog recognizes, a signature and
// description to show in a tooltip. It is deliberately thin: SPEC_FULL.md
// scopes the stdlib catalog itself — and any scope-aware "jump to the
// binding that declared this reference" resolution, which would need a
// symbol table this core does not build — to an external collaborator;
// this package only demonstrates the "thin consumer of parser output"
// shape spec.md §1 describes for hover/completion.
package hover

import (
	"github.com/funvibe/kclsp/internal/ast"
	"github.com/funvibe/kclsp/internal/position"
	"github.com/funvibe/kclsp/internal/semtok"
)

// Entry is one stdlib catalog record: name -> {signature, description}
// (spec.md §6, "consumed from collaborators").
type Entry struct {
	Signature   string
	Description string
}

// Catalog is implemented by a collaborator that knows the stdlib function
// surface. This module never implements it — only declares the shape a
// caller's value must satisfy.
type Catalog interface {
	Lookup(name string) (Entry, bool)
}

// Result is what Info resolves a position to.
type Result struct {
	Name      string
	Range     position.Range // the identifier occurrence's own range
	Type      semtok.TokenType
	Modifiers uint32
	Entry     Entry // zero value when catalog has no entry for Name
	HasEntry  bool
}

// Info finds the innermost identifier in prog whose range contains pos
// and reports its classification plus, when catalog recognizes its name,
// the catalog's signature/description. ok is false when no identifier
// occupies pos. catalog may be nil, in which case HasEntry is always
// false.
func Info(prog *ast.Program, pos position.Position, catalog Catalog) (Result, bool) {
	if prog == nil {
		return Result{}, false
	}
	id := identifierAt(prog, pos)
	if id == nil {
		return Result{}, false
	}
	roles := semtok.BuildRoles(prog)
	r, found := roles[id.Range().Start]
	if !found {
		r = semtok.Role{Type: semtok.TypeVariable}
	}

	info := Result{Name: id.Name, Range: id.Range(), Type: r.Type, Modifiers: r.Modifiers}
	if catalog != nil {
		if entry, ok := catalog.Lookup(id.Name); ok {
			info.Entry = entry
			info.HasEntry = true
		}
	}
	return info, true
}

// identifierAt walks prog and returns the Identifier node containing pos,
// or nil. A later (more deeply nested) match overwrites an earlier one,
// so the innermost identifier wins when ranges nest (they never do for
// Identifier itself, but Inspect visits parents before children).
func identifierAt(prog *ast.Program, pos position.Position) *ast.Identifier {
	var found *ast.Identifier
	ast.Inspect(prog, func(n ast.Node) bool {
		id, ok := n.(*ast.Identifier)
		if !ok {
			return true
		}
		if contains(id.Range(), pos) {
			found = id
		}
		return true
	})
	return found
}

func contains(r position.Range, pos position.Position) bool {
	return !pos.Less(r.Start) && pos.Less(r.End)
}
