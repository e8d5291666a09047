package semtok

import (
	"html"
	"strings"

	"github.com/fatih/color"

	"github.com/funvibe/kclsp/internal/ast"
	"github.com/funvibe/kclsp/internal/position"
	"github.com/funvibe/kclsp/internal/token"
)

// ansiByType mirrors the palette cmd/kclsp's predecessor used for its
// terminal output, repointed at the fixed TokenType legend instead of an
// ad hoc per-AST-kind switch.
var ansiByType = map[TokenType]*color.Color{
	TypeNamespace: color.New(color.FgMagenta),
	TypeType:      color.New(color.FgCyan),
	TypeParameter: color.New(color.FgYellow),
	TypeFunction:  color.New(color.FgBlue, color.Bold),
	TypeKeyword:   color.New(color.FgGreen, color.Bold),
	TypeComment:   color.New(color.FgHiBlack),
	TypeString:    color.New(color.FgRed),
	TypeNumber:    color.New(color.FgMagenta),
	TypeOperator:  color.New(color.FgWhite),
}

var cssClassByType = map[TokenType]string{
	TypeNamespace: "tok-namespace",
	TypeType:      "tok-type",
	TypeParameter: "tok-parameter",
	TypeVariable:  "tok-variable",
	TypeFunction:  "tok-function",
	TypeKeyword:   "tok-keyword",
	TypeComment:   "tok-comment",
	TypeString:    "tok-string",
	TypeNumber:    "tok-number",
	TypeOperator:  "tok-operator",
}

// RenderANSI classifies the given toks and wraps each classified token in
// the ANSI color its type maps to, copying every byte between and around
// tokens through unchanged so the output is byte-identical to source
// except for the inserted escape codes (spec.md §6's CLI surface).
func RenderANSI(prog *ast.Program, toks []token.Token, source string, idx *position.Index) string {
	rt := buildRoles(prog)
	var b strings.Builder
	last := 0
	for _, t := range toks {
		if t.Kind == token.EOF {
			continue
		}
		typ, _, ok := classify(t, rt)
		if !ok {
			continue
		}
		start := idx.PositionToOffset(t.Range.Start)
		end := idx.PositionToOffset(t.Range.End)
		if start < last || start > len(source) || end > len(source) {
			continue
		}
		b.WriteString(source[last:start])
		c := ansiByType[typ]
		if c != nil {
			b.WriteString(c.Sprint(source[start:end]))
		} else {
			b.WriteString(source[start:end])
		}
		last = end
	}
	if last < len(source) {
		b.WriteString(source[last:])
	}
	return b.String()
}

// RenderHTML is RenderANSI's HTML-fragment counterpart: every classified
// token becomes a `<span class="tok-...">`, with surrounding text
// (including untyped punctuation) HTML-escaped but otherwise untouched.
func RenderHTML(prog *ast.Program, toks []token.Token, source string, idx *position.Index) string {
	rt := buildRoles(prog)
	var b strings.Builder
	b.WriteString(`<pre class="kcl-source">`)
	last := 0
	for _, t := range toks {
		if t.Kind == token.EOF {
			continue
		}
		typ, _, ok := classify(t, rt)
		if !ok {
			continue
		}
		start := idx.PositionToOffset(t.Range.Start)
		end := idx.PositionToOffset(t.Range.End)
		if start < last || start > len(source) || end > len(source) {
			continue
		}
		b.WriteString(html.EscapeString(source[last:start]))
		class := cssClassByType[typ]
		b.WriteString(`<span class="` + class + `">`)
		b.WriteString(html.EscapeString(source[start:end]))
		b.WriteString(`</span>`)
		last = end
	}
	if last < len(source) {
		b.WriteString(html.EscapeString(source[last:]))
	}
	b.WriteString(`</pre>`)
	return b.String()
}
