package ast

import "github.com/funvibe/kclsp/internal/position"

// NumberLiteral is a numeric literal with an optional unit suffix
// (spec.md §3's "Numeric suffix").
type NumberLiteral struct {
	Value string // raw digits/decimal, as written
	Unit  string // "" when no suffix was written at all
	Rng   position.Range
}

func (n *NumberLiteral) Range() position.Range { return n.Rng }
func (n *NumberLiteral) exprNode() {}

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Value bool
	Rng   position.Range
}

func (b *BoolLiteral) Range() position.Range { return b.Rng }
func (b *BoolLiteral) exprNode() {}

// StringLiteral is a double-quoted string with escapes already resolved.
type StringLiteral struct {
	Value string
	Rng   position.Range
}

func (s *StringLiteral) Range() position.Range { return s.Rng }
func (s *StringLiteral) exprNode() {}

// NilLiteral is the `nil` literal.
type NilLiteral struct {
	Rng position.Range
}

func (n *NilLiteral) Range() position.Range { return n.Rng }
func (n *NilLiteral) exprNode() {}

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	Elements []Expr
	Rng      position.Range
}

func (a *ArrayLiteral) Range() position.Range { return a.Rng }
func (a *ArrayLiteral) exprNode() {}

// ObjectEntry is one key/value pair of an ObjectLiteral, order-preserving.
type ObjectEntry struct {
	Key   *Identifier
	Value Expr
}

// ObjectLiteral is `{k1: v1, k2: v2, ...}`, keyed by identifier with
// insertion order retained for formatting.
type ObjectLiteral struct {
	Entries []ObjectEntry
	Rng     position.Range
}

func (o *ObjectLiteral) Range() position.Range { return o.Rng }
func (o *ObjectLiteral) exprNode() {}

// VariableRef is a reference to a bound name in expression position.
type VariableRef struct {
	Name *Identifier
	Rng  position.Range
}

func (r *VariableRef) Range() position.Range { return r.Rng }
func (r *VariableRef) exprNode() {}

// CallExpr is a function call with labeled and/or positional arguments,
// e.g. makeBox(10, 20, height=30).
type CallExpr struct {
	Callee *Identifier
	Args   []Argument
	Rng    position.Range
}

func (c *CallExpr) Range() position.Range { return c.Rng }
func (c *CallExpr) exprNode() {}

// PipeExpr is `left |> right`.
type PipeExpr struct {
	Left  Expr
	Right Expr
	Rng   position.Range
}

func (p *PipeExpr) Range() position.Range { return p.Rng }
func (p *PipeExpr) exprNode() {}

// PipeSubstitution is the `%` placeholder inside a piped expression.
type PipeSubstitution struct {
	Rng position.Range
}

func (p *PipeSubstitution) Range() position.Range { return p.Rng }
func (p *PipeSubstitution) exprNode() {}

// TagDeclarator is the `$ident` syntax naming a geometry feature.
type TagDeclarator struct {
	Name *Identifier
	Rng  position.Range
}

func (t *TagDeclarator) Range() position.Range { return t.Rng }
func (t *TagDeclarator) exprNode() {}

// UnaryExpr is a prefix `-x` or `!x`.
type UnaryExpr struct {
	Op      string
	Operand Expr
	Rng     position.Range
}

func (u *UnaryExpr) Range() position.Range { return u.Rng }
func (u *UnaryExpr) exprNode() {}

// BinaryExpr is an arithmetic, comparison, or logical infix operation.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
	Rng   position.Range
}

func (b *BinaryExpr) Range() position.Range { return b.Rng }
func (b *BinaryExpr) exprNode() {}

// IndexExpr is `object[index]`.
type IndexExpr struct {
	Object Expr
	Index  Expr
	Rng    position.Range
}

func (i *IndexExpr) Range() position.Range { return i.Rng }
func (i *IndexExpr) exprNode() {}

// RangeExpr is `start..end` (inclusive) or `start..<end` (half-open).
type RangeExpr struct {
	Start     Expr
	End       Expr
	Inclusive bool
	Rng       position.Range
}

func (r *RangeExpr) Range() position.Range { return r.Rng }
func (r *RangeExpr) exprNode() {}

// MemberExpr is `object.property`.
type MemberExpr struct {
	Object   Expr
	Property *Identifier
	Rng      position.Range
}

func (m *MemberExpr) Range() position.Range { return m.Rng }
func (m *MemberExpr) exprNode() {}

// TypeAscription is `expr: Type`.
type TypeAscription struct {
	Expr Expr
	Type *Identifier
	Rng  position.Range
}

func (t *TypeAscription) Range() position.Range { return t.Rng }
func (t *TypeAscription) exprNode() {}

// Block is `{ stmt* tailExpr? }`, used by function bodies and conditional
// branches. TailExpr is the optional trailing expression that becomes the
// block's value.
type Block struct {
	Statements []Stmt
	TailExpr   Expr
	Rng        position.Range
}

func (b *Block) Range() position.Range { return b.Rng }

// ConditionalExpr is `if cond { ... } else if cond2 { ... } else { ... }`.
// Else is nil (no else branch), a *Block (terminal else), or a
// *ConditionalExpr (an "else if" link in the chain).
type ConditionalExpr struct {
	Cond Expr
	Then *Block
	Else Node // nil | *Block | *ConditionalExpr
	Rng  position.Range
}

func (c *ConditionalExpr) Range() position.Range { return c.Rng }
func (c *ConditionalExpr) exprNode() {}

// Param is one parameter of a function or anonymous function. Unlabeled
// marks a leading `@` prefix: KCL functions take their first argument
// unlabeled (typically the value piped in via `|>`), and every other
// parameter is called by name.
type Param struct {
	Name      *Identifier
	Type      *Identifier // optional
	Unlabeled bool
}

// AnonFunction is a first-class `fn(params) { body }` expression.
type AnonFunction struct {
	Params     []Param
	ReturnType *Identifier // optional
	Body       *Block
	Rng        position.Range
}

func (a *AnonFunction) Range() position.Range { return a.Rng }
func (a *AnonFunction) exprNode() {}
