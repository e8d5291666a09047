package ast

import "github.com/funvibe/kclsp/internal/position"

// stmtBase is embedded by every concrete Stmt to carry the optional
// leading/trailing trivia every statement may have (spec.md §3).
type stmtBase struct {
	Trivia Trivia
}

func (s *stmtBase) LeadingTrivia() *Trivia { return &s.Trivia }
func (s *stmtBase) stmtNode() {}

// LetStmt is `let name = value`, an immutable binding.
type LetStmt struct {
	stmtBase
	Name  *Identifier
	Value Expr
	Rng   position.Range
}

func (l *LetStmt) Range() position.Range { return l.Rng }

// AssignStmt is a bare top-level assignment without `let`, e.g. `x = 1`.
type AssignStmt struct {
	stmtBase
	Name  *Identifier
	Value Expr
	Rng   position.Range
}

func (a *AssignStmt) Range() position.Range { return a.Rng }

// FnDefStmt is `fn name(params) : retType? { body }`.
type FnDefStmt struct {
	stmtBase
	Name       *Identifier
	Params     []Param
	ReturnType *Identifier // optional
	Body       *Block
	Rng        position.Range
}

func (f *FnDefStmt) Range() position.Range { return f.Rng }

// ReturnStmt is `return expr?`.
type ReturnStmt struct {
	stmtBase
	Value Expr // nil for a bare `return`
	Rng   position.Range
}

func (r *ReturnStmt) Range() position.Range { return r.Rng }

// ExprStmt wraps an expression used for its side effect/value at
// statement position.
type ExprStmt struct {
	stmtBase
	Expr Expr
	Rng  position.Range
}

func (e *ExprStmt) Range() position.Range { return e.Rng }

// AnnotationStmt is `@name(k=v, ...)`.
type AnnotationStmt struct {
	stmtBase
	Name *Identifier
	Args []Argument
	Rng  position.Range
}

func (a *AnnotationStmt) Range() position.Range { return a.Rng }

// ImportStmt is `import (items)? from "path" (as alias)?`.
type ImportStmt struct {
	stmtBase
	Items []*Identifier // nil when no item list was given
	Path  *StringLiteral
	Alias *Identifier // optional
	Rng   position.Range
}

func (i *ImportStmt) Range() position.Range { return i.Rng }

// ExportStmt is `export stmt`, wrapping any other statement to mark it
// as re-exported.
type ExportStmt struct {
	stmtBase
	Inner Stmt
	Rng   position.Range
}

func (e *ExportStmt) Range() position.Range { return e.Rng }

// ExportImportStmt is the re-export shorthand `export (items) from "path"`:
// unlike ExportStmt(ImportStmt), it names symbols to re-export without
// binding a local alias for the whole module.
type ExportImportStmt struct {
	stmtBase
	Items []*Identifier
	Path  *StringLiteral
	Rng   position.Range
}

func (e *ExportImportStmt) Range() position.Range { return e.Rng }
