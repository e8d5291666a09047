package lint

import (
	"fmt"
	"strings"

	"github.com/funvibe/kclsp/internal/ast"
	"github.com/funvibe/kclsp/internal/diagnostics"
)

// DefaultRules returns the engine's three illustrative rules, in
// registration order. The concrete lint rule catalog beyond these is an
// external collaborator's responsibility (spec.md's Non-goals); these
// three exist to exercise and document the rule contract end to end.
func DefaultRules() []Rule {
	return []Rule{CamelCaseRule{}, UnusedVariableRule{}, MagicNumberRule{}}
}

// CamelCaseRule flags Let/Assign/FnDef names that are not lowerCamelCase.
type CamelCaseRule struct{}

func (CamelCaseRule) Name() string        { return "camelCase" }
func (CamelCaseRule) Description() string { return "binding names should be lowerCamelCase" }
func (CamelCaseRule) DefaultSeverity() diagnostics.Severity { return diagnostics.SeverityWarning }

func (r CamelCaseRule) Check(ctx *Context) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	ast.Inspect(ctx.Program, func(n ast.Node) bool {
		var name *ast.Identifier
		switch s := n.(type) {
		case *ast.LetStmt:
			name = s.Name
		case *ast.AssignStmt:
			name = s.Name
		case *ast.FnDefStmt:
			name = s.Name
		}
		if name != nil && !isCamelCase(name.Name) {
			out = append(out, diagnostics.Diagnostic{
				Range:   name.Rng,
				Message: fmt.Sprintf("%q is not camelCase", name.Name),
			})
		}
		return true
	})
	return out
}

func isCamelCase(name string) bool {
	if name == "" || strings.Contains(name, "_") {
		return false
	}
	first := rune(name[0])
	return first >= 'a' && first <= 'z'
}

// UnusedVariableRule flags a top-level `let` binding that is never
// referenced elsewhere in the program. Exported bindings are exempt: they
// are part of the module's public surface, so "unused within this file"
// does not apply.
type UnusedVariableRule struct{}

func (UnusedVariableRule) Name() string        { return "unusedVariable" }
func (UnusedVariableRule) Description() string { return "top-level let binding is never referenced" }
func (UnusedVariableRule) DefaultSeverity() diagnostics.Severity { return diagnostics.SeverityWarning }

func (r UnusedVariableRule) Check(ctx *Context) []diagnostics.Diagnostic {
	used := make(map[string]bool)
	ast.Inspect(ctx.Program, func(n ast.Node) bool {
		if ref, ok := n.(*ast.VariableRef); ok && ref.Name != nil {
			used[ref.Name.Name] = true
		}
		return true
	})

	var out []diagnostics.Diagnostic
	for _, stmt := range ctx.Program.Statements {
		let, ok := stmt.(*ast.LetStmt)
		if !ok || let.Name == nil {
			continue
		}
		if used[let.Name.Name] {
			continue
		}
		out = append(out, diagnostics.Diagnostic{
			Range:   let.Name.Rng,
			Message: fmt.Sprintf("%q is never used", let.Name.Name),
		})
	}
	return out
}

// MagicNumberRule flags a bare numeric literal used as an operand that
// isn't 0, 1, or -1, and isn't annotated with a unit suffix (a unit
// suffix already documents the number's meaning).
type MagicNumberRule struct{}

func (MagicNumberRule) Name() string        { return "magicNumber" }
func (MagicNumberRule) Description() string { return "unexplained numeric literal" }
func (MagicNumberRule) DefaultSeverity() diagnostics.Severity { return diagnostics.SeverityWarning }

func (r MagicNumberRule) Check(ctx *Context) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	ast.Inspect(ctx.Program, func(n ast.Node) bool {
		num, ok := n.(*ast.NumberLiteral)
		if !ok || num.Unit != "" {
			return true
		}
		if num.Value == "0" || num.Value == "1" {
			return true
		}
		out = append(out, diagnostics.Diagnostic{
			Range:   num.Rng,
			Message: fmt.Sprintf("magic number %s", num.Value),
		})
		return true
	})
	return out
}
