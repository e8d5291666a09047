package ast

// Inspect walks node and every descendant in source order, calling visit
// once per node. If visit returns false, Inspect does not descend into
// that node's children. Written once and reused by the lint engine, the
// semantic-token emitter and hover (DESIGN NOTES §9) so none of them
// hand-rolls its own traversal.
func Inspect(node Node, visit func(Node) bool) {
	// A nil *Program reaches here as a non-nil Node interface value (a
	// typed nil pointer), the same hazard inspectIdent and its siblings
	// below guard against for optional child fields, so node == nil alone
	// cannot catch it.
	if p, ok := node.(*Program); ok && p == nil {
		return
	}
	if node == nil || !visit(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			Inspect(s, visit)
		}
	case *LetStmt:
		inspectIdent(n.Name, visit)
		Inspect(n.Value, visit)
	case *AssignStmt:
		inspectIdent(n.Name, visit)
		Inspect(n.Value, visit)
	case *FnDefStmt:
		inspectIdent(n.Name, visit)
		for _, prm := range n.Params {
			inspectParam(prm, visit)
		}
		inspectIdent(n.ReturnType, visit)
		inspectBlock(n.Body, visit)
	case *ReturnStmt:
		Inspect(n.Value, visit)
	case *ExprStmt:
		Inspect(n.Expr, visit)
	case *AnnotationStmt:
		inspectIdent(n.Name, visit)
		for _, a := range n.Args {
			inspectArgument(a, visit)
		}
	case *ImportStmt:
		for _, item := range n.Items {
			inspectIdent(item, visit)
		}
		inspectStringLit(n.Path, visit)
		inspectIdent(n.Alias, visit)
	case *ExportStmt:
		Inspect(n.Inner, visit)
	case *ExportImportStmt:
		for _, item := range n.Items {
			inspectIdent(item, visit)
		}
		inspectStringLit(n.Path, visit)
	case *Identifier:
		// leaf
	case *NumberLiteral, *BoolLiteral, *StringLiteral, *NilLiteral, *PipeSubstitution:
		// leaf
	case *ArrayLiteral:
		for _, e := range n.Elements {
			Inspect(e, visit)
		}
	case *ObjectLiteral:
		for _, entry := range n.Entries {
			inspectIdent(entry.Key, visit)
			Inspect(entry.Value, visit)
		}
	case *VariableRef:
		inspectIdent(n.Name, visit)
	case *CallExpr:
		inspectIdent(n.Callee, visit)
		for _, a := range n.Args {
			inspectArgument(a, visit)
		}
	case *PipeExpr:
		Inspect(n.Left, visit)
		Inspect(n.Right, visit)
	case *TagDeclarator:
		inspectIdent(n.Name, visit)
	case *UnaryExpr:
		Inspect(n.Operand, visit)
	case *BinaryExpr:
		Inspect(n.Left, visit)
		Inspect(n.Right, visit)
	case *IndexExpr:
		Inspect(n.Object, visit)
		Inspect(n.Index, visit)
	case *RangeExpr:
		Inspect(n.Start, visit)
		Inspect(n.End, visit)
	case *MemberExpr:
		Inspect(n.Object, visit)
		inspectIdent(n.Property, visit)
	case *TypeAscription:
		Inspect(n.Expr, visit)
		inspectIdent(n.Type, visit)
	case *Block:
		for _, s := range n.Statements {
			Inspect(s, visit)
		}
		Inspect(n.TailExpr, visit)
	case *ConditionalExpr:
		Inspect(n.Cond, visit)
		inspectBlock(n.Then, visit)
		inspectElse(n.Else, visit)
	case *AnonFunction:
		for _, prm := range n.Params {
			inspectParam(prm, visit)
		}
		inspectIdent(n.ReturnType, visit)
		inspectBlock(n.Body, visit)
	}
}

// The helpers below guard against a typed-nil pointer (e.g. a nil
// *Identifier stored in an optional field) reaching Inspect's interface
// parameter: comparing such a value against the untyped nil interface
// literal is false, so Inspect's own node == nil check cannot catch it.
func inspectIdent(id *Identifier, visit func(Node) bool) {
	if id != nil {
		Inspect(id, visit)
	}
}

func inspectStringLit(s *StringLiteral, visit func(Node) bool) {
	if s != nil {
		Inspect(s, visit)
	}
}

func inspectBlock(b *Block, visit func(Node) bool) {
	if b != nil {
		Inspect(b, visit)
	}
}

func inspectElse(n Node, visit func(Node) bool) {
	switch e := n.(type) {
	case nil:
	case *Block:
		inspectBlock(e, visit)
	case *ConditionalExpr:
		Inspect(e, visit)
	}
}

func inspectParam(p Param, visit func(Node) bool) {
	inspectIdent(p.Name, visit)
	inspectIdent(p.Type, visit)
}

func inspectArgument(a Argument, visit func(Node) bool) {
	inspectIdent(a.Label, visit)
	Inspect(a.Value, visit)
}
