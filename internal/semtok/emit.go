package semtok

import (
	"unicode/utf16"

	"github.com/funvibe/kclsp/internal/ast"
	"github.com/funvibe/kclsp/internal/token"
)

var keywordKinds = map[token.Kind]bool{
	token.FN: true, token.LET: true, token.RETURN: true, token.IF: true,
	token.ELSE: true, token.IMPORT: true, token.EXPORT: true, token.AS: true,
	token.FROM: true, token.TRUE: true, token.FALSE: true, token.NIL: true,
}

var operatorKinds = map[token.Kind]bool{
	token.PLUS: true, token.MINUS: true, token.STAR: true, token.SLASH: true,
	token.PERCENT: true, token.CARET: true, token.EQ: true, token.NEQ: true,
	token.LT: true, token.GT: true, token.LTE: true, token.GTE: true,
	token.AND: true, token.OR: true, token.BANG: true, token.ASSIGN: true,
	token.PIPE_GT: true, token.DOLLAR: true, token.RANGE_INCL: true,
	token.RANGE_EXCL: true,
}

// Emit walks toks in source order and classifies each into the semantic
// token stream (spec.md §6), consulting roles built from prog for
// identifiers that play a declaration/usage-specific part. Punctuation
// that carries no semantic meaning on its own (parens, braces, commas,
// colons, the bare `@`/`.` separators) is omitted, matching how editors
// only highlight tokens with a registered type.
func Emit(prog *ast.Program, toks []token.Token) []Token {
	rt := buildRoles(prog)
	var out []Token
	for _, t := range toks {
		if t.Kind == token.EOF {
			continue
		}
		typ, mods, ok := classify(t, rt)
		if !ok {
			continue
		}
		length := utf16Len(t.Value)
		if t.Range.Start.Line == t.Range.End.Line {
			length = t.Range.End.Character - t.Range.Start.Character
		}
		out = append(out, Token{
			Line:      t.Range.Start.Line,
			Character: t.Range.Start.Character,
			Length:    length,
			Type:      typ,
			Modifiers: mods,
		})
	}
	return out
}

func classify(t token.Token, rt roleTable) (TokenType, uint32, bool) {
	switch {
	case t.IsComment():
		return TypeComment, 0, true
	case t.Kind == token.STRING:
		return TypeString, 0, true
	case t.Kind == token.NUMBER:
		return TypeNumber, 0, true
	case keywordKinds[t.Kind]:
		return TypeKeyword, 0, true
	case operatorKinds[t.Kind]:
		return TypeOperator, 0, true
	case t.Kind == token.IDENT:
		if r, found := rt[t.Range.Start]; found {
			return r.Type, r.Modifiers, true
		}
		return TypeVariable, 0, true
	default:
		return 0, 0, false
	}
}

// utf16Len measures s the way spec.md §6 requires token lengths: in
// UTF-16 code units, matching how LSP clients index text.
func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}
