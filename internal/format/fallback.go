package format

import (
	"strings"

	"github.com/funvibe/kclsp/internal/ast"
	"github.com/funvibe/kclsp/internal/diagnostics"
	"github.com/funvibe/kclsp/internal/lexer"
)

// FormatRecovering renders prog like Format, then — only when diags is
// non-empty, meaning the parse hit at least one recovery — re-injects any
// comment from source that trivia attachment missed (DESIGN NOTES §9's
// fallback path for constructs that failed recovery).
func FormatRecovering(prog *ast.Program, source string, diags []diagnostics.Diagnostic) string {
	rendered := Format(prog, source)
	if len(diags) == 0 {
		return rendered
	}
	return recoverUnattachedComments(rendered, source)
}

// recoverUnattachedComments scans source for comment tokens whose exact
// text doesn't already appear in rendered, and appends each at the end in
// original source order. This is a best-effort line-merge, not a precise
// re-placement: it guarantees no comment is silently dropped, which is
// the property spec.md's trivia-preservation invariant actually requires.
func recoverUnattachedComments(rendered, source string) string {
	toks, _ := lexer.New(source).Tokenize()
	var missing []string
	for _, t := range toks {
		if !t.IsComment() {
			continue
		}
		if !strings.Contains(rendered, t.Value) {
			missing = append(missing, t.Value)
		}
	}
	if len(missing) == 0 {
		return rendered
	}
	out := strings.TrimRight(rendered, "\n")
	for _, c := range missing {
		out += "\n" + c
	}
	return out + "\n"
}
