package hover_test

import (
	"testing"

	"github.com/funvibe/kclsp/internal/ast"
	"github.com/funvibe/kclsp/internal/hover"
	"github.com/funvibe/kclsp/internal/lexer"
	"github.com/funvibe/kclsp/internal/parser"
	"github.com/funvibe/kclsp/internal/position"
	"github.com/funvibe/kclsp/internal/semtok"
)

type fakeCatalog map[string]hover.Entry

func (c fakeCatalog) Lookup(name string) (hover.Entry, bool) {
	e, ok := c[name]
	return e, ok
}

func mustProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, diags := lexer.New(src).Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected lex diagnostics for %q: %v", src, diags)
	}
	res := parser.Parse(toks)
	return res.Program
}

func TestInfoResolvesLetBindingIdentifier(t *testing.T) {
	prog := mustProgram(t, "let x = 1")
	info, ok := hover.Info(prog, position.Position{Line: 0, Character: 4}, nil)
	if !ok {
		t.Fatal("expected ok == true for a position over the bound name")
	}
	if info.Name != "x" {
		t.Errorf("Name = %q, want %q", info.Name, "x")
	}
	if info.Type != semtok.TypeVariable {
		t.Errorf("Type = %v, want TypeVariable", info.Type)
	}
	if info.Modifiers&semtok.ModDeclaration == 0 || info.Modifiers&semtok.ModReadonly == 0 {
		t.Errorf("Modifiers = %b, want both ModDeclaration and ModReadonly", info.Modifiers)
	}
	if info.HasEntry {
		t.Error("expected HasEntry == false with a nil catalog")
	}
}

func TestInfoReturnsFalseOutsideAnyIdentifier(t *testing.T) {
	prog := mustProgram(t, "let x = 1")
	// Character 0 sits on the `let` keyword, not an identifier.
	if _, ok := hover.Info(prog, position.Position{Line: 0, Character: 0}, nil); ok {
		t.Fatal("expected ok == false over the `let` keyword")
	}
}

func TestInfoRangeIsExclusiveOfEnd(t *testing.T) {
	prog := mustProgram(t, "let x = 1")
	// "x" occupies characters [4,5); character 5 is the space after it.
	if _, ok := hover.Info(prog, position.Position{Line: 0, Character: 5}, nil); ok {
		t.Fatal("expected ok == false one character past the identifier's end")
	}
}

func TestInfoUsesCatalogWhenNameMatches(t *testing.T) {
	prog := mustProgram(t, "let x = 1")
	catalog := fakeCatalog{"x": hover.Entry{Signature: "x: number", Description: "a bound number"}}

	info, ok := hover.Info(prog, position.Position{Line: 0, Character: 4}, catalog)
	if !ok {
		t.Fatal("expected ok == true")
	}
	if !info.HasEntry {
		t.Fatal("expected HasEntry == true when the catalog recognizes the name")
	}
	if info.Entry.Signature != "x: number" || info.Entry.Description != "a bound number" {
		t.Errorf("Entry = %+v, want the catalog's entry for x", info.Entry)
	}
}

func TestInfoCatalogMissReturnsNoEntry(t *testing.T) {
	prog := mustProgram(t, "let x = 1")
	catalog := fakeCatalog{"unrelated": hover.Entry{Signature: "unrelated()"}}

	info, ok := hover.Info(prog, position.Position{Line: 0, Character: 4}, catalog)
	if !ok {
		t.Fatal("expected ok == true")
	}
	if info.HasEntry {
		t.Error("expected HasEntry == false when the catalog has no entry for the name")
	}
}

func TestInfoResolvesCallCallee(t *testing.T) {
	prog := mustProgram(t, "result = len(x)")
	// "len" occupies characters [9,12).
	info, ok := hover.Info(prog, position.Position{Line: 0, Character: 10}, nil)
	if !ok {
		t.Fatal("expected ok == true over the callee")
	}
	if info.Name != "len" {
		t.Errorf("Name = %q, want %q", info.Name, "len")
	}
	if info.Type != semtok.TypeFunction {
		t.Errorf("Type = %v, want TypeFunction for a call callee", info.Type)
	}
}

func TestInfoResolvesArgumentReferenceWithVariableFallback(t *testing.T) {
	prog := mustProgram(t, "result = len(x)")
	// "x" occupies character 13; it is a plain VariableRef with no
	// recorded role, so Info must fall back to the plain variable type.
	info, ok := hover.Info(prog, position.Position{Line: 0, Character: 13}, nil)
	if !ok {
		t.Fatal("expected ok == true over the argument reference")
	}
	if info.Name != "x" {
		t.Errorf("Name = %q, want %q", info.Name, "x")
	}
	if info.Type != semtok.TypeVariable {
		t.Errorf("Type = %v, want the fallback TypeVariable", info.Type)
	}
	if info.Modifiers != 0 {
		t.Errorf("Modifiers = %b, want 0 for an unrecorded reference", info.Modifiers)
	}
}

func TestInfoNilProgramReturnsFalse(t *testing.T) {
	if _, ok := hover.Info(nil, position.Position{Line: 0, Character: 0}, nil); ok {
		t.Fatal("expected ok == false for a nil program")
	}
}
