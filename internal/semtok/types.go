// Package semtok classifies a parsed document's tokens into the
// delta-encoded semantic-token stream described by spec.md §6, grounded
// on mcgru-funxy's internal/prettyprinter token-classification switches
// (same "one type switch per token kind" shape, repointed at LSP's
// legend instead of a terminal color palette).
package semtok

// TokenType is an index into the fixed legend the server publishes once
// at initialization (spec.md §6: "a fixed enum documented by the
// server"). The order here IS the wire encoding; never reorder it.
type TokenType uint32

const (
	TypeNamespace TokenType = iota
	TypeType
	TypeParameter
	TypeVariable
	TypeFunction
	TypeKeyword
	TypeComment
	TypeString
	TypeNumber
	TypeOperator
)

// Legend is the fixed, ordered list of token-type names a collaborator
// registers with its editor client; index i here must equal TokenType i.
var Legend = []string{
	"namespace", "type", "parameter", "variable", "function",
	"keyword", "comment", "string", "number", "operator",
}

// Modifier bits, combined by OR into Token.Modifiers. Every name at its
// binding site carries ModDeclaration; `let` and `fn` names also carry
// ModReadonly, while assignment targets, parameters, tag names and import
// aliases carry ModDeclaration alone.
const (
	ModDeclaration uint32 = 1 << iota
	ModReadonly
)

// Token is one classified lexical token prior to delta-encoding: an
// absolute {line, character} position, a UTF-16 length, its type, and
// its modifier bitmask.
type Token struct {
	Line      int
	Character int
	Length    int
	Type      TokenType
	Modifiers uint32
}

// Encode delta-encodes toks into the flat 5-int-per-token stream of
// spec.md §6: deltaLine is the line delta from the previous token (0 on
// the same line), deltaChar resets to an absolute column whenever
// deltaLine > 0 and is otherwise a delta from the previous token's
// column. toks must already be sorted in source order.
func Encode(toks []Token) []uint32 {
	out := make([]uint32, 0, len(toks)*5)
	prevLine, prevChar := 0, 0
	for _, t := range toks {
		deltaLine := t.Line - prevLine
		deltaChar := t.Character
		if deltaLine == 0 {
			deltaChar = t.Character - prevChar
		}
		out = append(out, uint32(deltaLine), uint32(deltaChar), uint32(t.Length), uint32(t.Type), t.Modifiers)
		prevLine, prevChar = t.Line, t.Character
	}
	return out
}
