// Package lint runs an ordered set of rules against a parse result,
// producing diagnostics with severities. Grounded on mcgru-funxy's
// evaluator dispatch table style (a registration-ordered slice consulted
// in a fixed loop, e.g. builtins_task.go's worker pool draining a queue)
// adapted to a rule registry that must survive one rule panicking.
package lint

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/funvibe/kclsp/internal/ast"
	"github.com/funvibe/kclsp/internal/diagnostics"
	"github.com/funvibe/kclsp/internal/position"
	"github.com/funvibe/kclsp/internal/token"
)

// Context is the read-only view a Rule's Check receives (spec.md §4.E's
// rule contract). Rules may walk Program but must not mutate it.
type Context struct {
	Program     *ast.Program
	Tokens      []token.Token
	LineOffsets *position.Index
	SourceText  string

	// Cancelled is polled between top-level statement visits by
	// well-behaved rules; it reports whether the edit this Context was
	// built from has been superseded (§5's cooperative cancellation).
	Cancelled func() bool
}

func (c *Context) cancelled() bool {
	return c.Cancelled != nil && c.Cancelled()
}

// Rule is a named, independently failing unit of analysis.
type Rule interface {
	Name() string
	Description() string
	DefaultSeverity() diagnostics.Severity
	Check(ctx *Context) []diagnostics.Diagnostic
}

// Config controls which rules run and at what severity.
type Config struct {
	Enabled          bool
	DisabledRules    map[string]bool
	SeverityOverride map[string]diagnostics.Severity
}

// DefaultConfig enables every registered rule at its default severity.
func DefaultConfig() Config {
	return Config{Enabled: true, DisabledRules: map[string]bool{}, SeverityOverride: map[string]diagnostics.Severity{}}
}

// Engine runs rules in registration order.
type Engine struct {
	rules []Rule
	log   *zap.Logger
}

// NewEngine builds an Engine over rules, run in the given order. A nil
// logger is replaced with zap.NewNop().
func NewEngine(log *zap.Logger, rules ...Rule) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{rules: rules, log: log}
}

// Run executes every enabled rule against ctx and concatenates their
// diagnostics, applying cfg's severity overrides. A rule that panics is
// logged and skipped; it never aborts the batch (spec.md §4.E, §7's "rule
// failure" taxonomy entry). Cancellation is checked between rules.
func (e *Engine) Run(ctx *Context, cfg Config) []diagnostics.Diagnostic {
	if !cfg.Enabled {
		return nil
	}
	var out []diagnostics.Diagnostic
	for _, rule := range e.rules {
		if ctx.cancelled() {
			return nil
		}
		if cfg.DisabledRules[rule.Name()] {
			continue
		}
		found := e.runOne(rule, ctx)
		sev := rule.DefaultSeverity()
		if override, ok := cfg.SeverityOverride[rule.Name()]; ok {
			sev = override
		}
		for i := range found {
			found[i].Severity = sev
			found[i].Source = rule.Name()
		}
		out = append(out, found...)
	}
	return out
}

// runOne calls rule.Check, recovering a panic into a logged, empty result
// so a faulty rule can never break the batch.
func (e *Engine) runOne(rule Rule, ctx *Context) (result []diagnostics.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("lint rule panicked", zap.String("rule", rule.Name()), zap.Any("panic", r))
			result = nil
		}
	}()
	return rule.Check(ctx)
}

// RuleError formats a rule's own non-fatal check errors for logging, kept
// separate from Diagnostic since these never reach the editor.
func RuleError(rule string, err error) string {
	return fmt.Sprintf("rule %s: %v", rule, err)
}
