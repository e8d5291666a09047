// Package diagnostics defines the editor-facing diagnostic shape shared by
// the lexer, parser, document manager, lint engine, and formatter.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/kclsp/internal/position"
)

// Severity follows the editor-protocol encoding (spec.md §4.E).
type Severity int

const (
	SeverityError   Severity = 1
	SeverityWarning Severity = 2
	SeverityInfo    Severity = 3
	SeverityHint    Severity = 4
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Code identifies the kind of diagnostic, grouped by the phase that
// produced it: KL (lexer), KP (parser), KD (document/manager), KF
// (formatter). The lint engine's rules supply their own codes (see
// internal/lint).
type Code string

const (
	KL001 Code = "KL001" // invalid character
	KL002 Code = "KL002" // unterminated string literal
	KL003 Code = "KL003" // unterminated block comment

	KP001 Code = "KP001" // unexpected token
	KP002 Code = "KP002" // expected identifier
	KP003 Code = "KP003" // missing terminator / closing delimiter
	KP004 Code = "KP004" // invalid import syntax
	KP005 Code = "KP005" // no prefix parse function for token

	KD001 Code = "KD001" // document operation on unknown URI

	KF001 Code = "KF001" // formatting requested on a failed parse
)

var templates = map[Code]string{
	KL001: "invalid character %q",
	KL002: "unterminated string literal",
	KL003: "unterminated block comment",
	KP001: "unexpected token: expected %s, got %s",
	KP002: "expected an identifier",
	KP003: "missing %s",
	KP004: "invalid import syntax: %s",
	KP005: "no prefix parse function for %s",
	KD001: "no document open for %s",
	KF001: "cannot format a document that failed to parse",
}

// Diagnostic is the shape exposed to collaborators (spec.md §6).
type Diagnostic struct {
	Range    position.Range
	Severity Severity
	Source   string // "kclsp", or a lint rule name
	Message  string
	Code     Code
}

// New builds a Diagnostic from a Code, formatting its message template with
// args, at the given range and severity.
func New(code Code, rng position.Range, severity Severity, args ...interface{}) Diagnostic {
	template, ok := templates[code]
	if !ok {
		template = string(code)
	}
	return Diagnostic{
		Range:    rng,
		Severity: severity,
		Source:   "kclsp",
		Message:  fmt.Sprintf(template, args...),
		Code:     code,
	}
}

// Error renders a Diagnostic the way a CLI or log line would print it.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s [%s] %s: %s", d.Range, d.Severity, d.Code, d.Message)
}
