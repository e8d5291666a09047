package lint_test

import (
	"testing"

	"github.com/funvibe/kclsp/internal/diagnostics"
	"github.com/funvibe/kclsp/internal/lexer"
	"github.com/funvibe/kclsp/internal/lint"
	"github.com/funvibe/kclsp/internal/parser"
	"github.com/funvibe/kclsp/internal/position"
)

func mustCheckContext(t *testing.T, src string) *lint.Context {
	t.Helper()
	toks, lexDiags := lexer.New(src).Tokenize()
	if len(lexDiags) != 0 {
		t.Fatalf("unexpected lex diagnostics: %v", lexDiags)
	}
	res := parser.Parse(toks)
	return &lint.Context{
		Program:     res.Program,
		Tokens:      toks,
		LineOffsets: position.NewIndex(src),
		SourceText:  src,
	}
}

// TestCamelCaseRuleScenario is spec.md §8 scenario 1.
func TestCamelCaseRuleScenario(t *testing.T) {
	ctx := mustCheckContext(t, "let my_variable = 10")
	diags := lint.CamelCaseRule{}.Check(ctx)
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v, want exactly 1", diags)
	}
	d := diags[0]
	if d.Range.Start.Character != 4 || d.Range.End.Character != 15 {
		t.Errorf("range = %v, want characters 4-15", d.Range)
	}
	if !containsAll(d.Message, "my_variable", "camelCase") {
		t.Errorf("message = %q, want it to mention my_variable and camelCase", d.Message)
	}
}

func containsAll(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if !contains(s, sub) {
			return false
		}
	}
	return true
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

// TestUnusedVariableRuleScenario is spec.md §8 scenario 2.
func TestUnusedVariableRuleScenario(t *testing.T) {
	ctx := mustCheckContext(t, "let unused = 10\nlet used = 20\nlet r = used + 5")
	diags := lint.UnusedVariableRule{}.Check(ctx)
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v, want exactly 1", diags)
	}
	if !contains(diags[0].Message, "unused") {
		t.Errorf("message = %q, want it to mention unused", diags[0].Message)
	}
}

func TestUnusedVariableRuleExemptsExported(t *testing.T) {
	ctx := mustCheckContext(t, "export let width = 10")
	diags := lint.UnusedVariableRule{}.Check(ctx)
	if len(diags) != 0 {
		t.Fatalf("diagnostics = %v, want none for an exported binding", diags)
	}
}

// TestMagicNumberRuleScenario is spec.md §8 scenario 3.
func TestMagicNumberRuleScenario(t *testing.T) {
	ctx := mustCheckContext(t, "let area = width * 42")
	diags := lint.MagicNumberRule{}.Check(ctx)
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v, want exactly 1 flagging 42", diags)
	}
}

func TestMagicNumberRuleAllowsUnitSuffix(t *testing.T) {
	ctx := mustCheckContext(t, "let w = 42mm")
	diags := lint.MagicNumberRule{}.Check(ctx)
	if len(diags) != 0 {
		t.Fatalf("diagnostics = %v, want none for a unit-suffixed literal", diags)
	}
}

func TestMagicNumberRuleAllowsZeroOneAndNegativeOne(t *testing.T) {
	ctx := mustCheckContext(t, "let zero = 0\nlet one = 1\nlet m = -1")
	diags := lint.MagicNumberRule{}.Check(ctx)
	if len(diags) != 0 {
		t.Fatalf("diagnostics = %v, want none for 0, 1, and -1", diags)
	}
}

func TestEngineRunAppliesSeverityOverrideAndSource(t *testing.T) {
	ctx := mustCheckContext(t, "let my_variable = 10")
	engine := lint.NewEngine(nil, lint.CamelCaseRule{})
	cfg := lint.DefaultConfig()
	cfg.SeverityOverride["camelCase"] = diagnostics.SeverityError

	diags := engine.Run(ctx, cfg)
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v, want 1", diags)
	}
	if diags[0].Severity != diagnostics.SeverityError {
		t.Errorf("severity = %v, want overridden to error", diags[0].Severity)
	}
	if diags[0].Source != "camelCase" {
		t.Errorf("source = %q, want the rule's own name", diags[0].Source)
	}
}

func TestEngineRunSkipsDisabledRules(t *testing.T) {
	ctx := mustCheckContext(t, "let my_variable = 10")
	engine := lint.NewEngine(nil, lint.CamelCaseRule{})
	cfg := lint.DefaultConfig()
	cfg.DisabledRules["camelCase"] = true

	diags := engine.Run(ctx, cfg)
	if len(diags) != 0 {
		t.Fatalf("diagnostics = %v, want none when the only rule is disabled", diags)
	}
}

func TestEngineRunDisabledOverall(t *testing.T) {
	ctx := mustCheckContext(t, "let my_variable = 10")
	engine := lint.NewEngine(nil, lint.CamelCaseRule{})
	cfg := lint.DefaultConfig()
	cfg.Enabled = false

	if diags := engine.Run(ctx, cfg); diags != nil {
		t.Fatalf("diagnostics = %v, want nil when the engine is disabled", diags)
	}
}

// panicRule always panics, used to confirm a faulty rule cannot break
// the batch (spec.md §4.E, §7's "rule failure" taxonomy entry).
type panicRule struct{}

func (panicRule) Name() string                              { return "panicky" }
func (panicRule) Description() string                       { return "always panics" }
func (panicRule) DefaultSeverity() diagnostics.Severity      { return diagnostics.SeverityWarning }
func (panicRule) Check(ctx *lint.Context) []diagnostics.Diagnostic {
	panic("boom")
}

func TestEngineRunSurvivesAPanickingRule(t *testing.T) {
	ctx := mustCheckContext(t, "let my_variable = 10")
	engine := lint.NewEngine(nil, panicRule{}, lint.CamelCaseRule{})
	cfg := lint.DefaultConfig()

	diags := engine.Run(ctx, cfg)
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v, want just camelCase's finding despite the panic", diags)
	}
	if diags[0].Source != "camelCase" {
		t.Errorf("source = %q, want camelCase", diags[0].Source)
	}
}

// TestLintIsolation is spec.md §8's "Lint isolation" invariant: removing
// or adding one rule changes the diagnostic set by exactly that rule's
// contribution.
func TestLintIsolation(t *testing.T) {
	ctx := mustCheckContext(t, "let my_variable = 10")
	withOne := lint.NewEngine(nil, lint.CamelCaseRule{}).Run(ctx, lint.DefaultConfig())
	withTwo := lint.NewEngine(nil, lint.CamelCaseRule{}, lint.MagicNumberRule{}).Run(ctx, lint.DefaultConfig())

	if len(withTwo)-len(withOne) != len(lint.MagicNumberRule{}.Check(ctx)) {
		t.Fatalf("adding MagicNumberRule changed the diagnostic count by %d, want exactly its own contribution", len(withTwo)-len(withOne))
	}
}

func TestEngineRunPreservesRegistrationOrder(t *testing.T) {
	ctx := mustCheckContext(t, "let my_variable = 10")
	engine := lint.NewEngine(nil, lint.CamelCaseRule{}, lint.MagicNumberRule{})
	diags := engine.Run(ctx, lint.DefaultConfig())
	if len(diags) < 1 {
		t.Fatal("expected at least one diagnostic")
	}
	if diags[0].Source != "camelCase" {
		t.Errorf("first diagnostic source = %q, want camelCase to run before magicNumber", diags[0].Source)
	}
}
