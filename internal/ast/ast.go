// Package ast defines the trivia-aware AST produced by the parser. Nodes
// are a tagged union of struct-per-kind types implementing Node, grounded
// on mcgru-funxy's internal/ast/ast.go Node/Statement/Expression interface
// split, generalized to KCL's grammar (spec.md §3): pipes,
// pipe-substitution, tag declarators, ranges, and a structural
// Argument{Label, Value} replacing funxy's positional synthetic labels so
// "$N never surfaces in formatter output" is a type-level fact.
// internal/lint, internal/semtok and internal/hover walk the tree through
// the single Inspect function rather than a per-consumer traversal;
// internal/format walks it with its own type switches.
package ast

import "github.com/funvibe/kclsp/internal/position"

// Node is the base interface implemented by every AST node.
type Node interface {
	Range() position.Range
}

// Stmt is a Node that can appear at statement position.
type Stmt interface {
	Node
	stmtNode()
	LeadingTrivia() *Trivia
}

// Expr is a Node that can appear at expression position.
type Expr interface {
	Node
	exprNode()
}

// Comment is one comment token retained as trivia.
type Comment struct {
	IsBlock bool
	Text    string
}

// TriviaEntry is one leading-trivia item: either a comment or a collapsed
// blank-line run (never both). Invariant: Blank > 0 whenever Comment ==
// nil for an entry that represents a blank run.
type TriviaEntry struct {
	Comment *Comment
	Blank   int
}

// Trivia attaches leading (comments/blank runs before a node) and trailing
// (an inline same-line comment) context to a statement.
type Trivia struct {
	Leading  []TriviaEntry
	Trailing *Comment
}

// Identifier is a bare name: a variable reference, a declared name, a
// call's callee, a member/argument label, and so on.
type Identifier struct {
	Name string
	Rng  position.Range
}

func (i *Identifier) Range() position.Range { return i.Rng }
func (i *Identifier) exprNode() {}

// Argument is a single call argument: Label == nil means positional.
// Encounter order is preserved by the enclosing slice, which is how the
// formatter reconstructs positional syntax without ever naming "$N".
type Argument struct {
	Label *Identifier
	Value Expr
}

// Program is the root of a parsed document. TrailingTrivia holds any
// comments/blank runs that appear after the last statement, so every
// comment in a source file attaches somewhere even at end of file.
type Program struct {
	Statements     []Stmt
	LeadingTrivia  []TriviaEntry
	TrailingTrivia []TriviaEntry
	Rng            position.Range
}

func (p *Program) Range() position.Range { return p.Rng }
