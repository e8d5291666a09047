package lexer_test

import (
	"testing"

	"github.com/funvibe/kclsp/internal/diagnostics"
	"github.com/funvibe/kclsp/internal/lexer"
	"github.com/funvibe/kclsp/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeKeywordsAndIdents(t *testing.T) {
	toks, diags := lexer.New("let width = myVar").Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []token.Kind{token.LET, token.IDENT, token.ASSIGN, token.IDENT, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeNumberWithUnit(t *testing.T) {
	toks, diags := lexer.New("42mm").Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	num := toks[0]
	if num.Kind != token.NUMBER || num.Value != "42" || num.Unit != token.UnitMM {
		t.Fatalf("got %+v, want NUMBER 42 with unit mm", num)
	}
}

func TestTokenizeExplicitUnitlessSuffix(t *testing.T) {
	toks, _ := lexer.New("10_").Tokenize()
	if toks[0].Unit != token.UnitExplicitNone {
		t.Fatalf("got unit %q, want explicit unitless marker", toks[0].Unit)
	}
}

func TestTokenizeDecimalNumber(t *testing.T) {
	toks, _ := lexer.New("3.14deg").Tokenize()
	if toks[0].Value != "3.14" || toks[0].Unit != token.UnitDeg {
		t.Fatalf("got %+v, want 3.14 with unit deg", toks[0])
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, diags := lexer.New(`"a\nb\tc\"d\\e"`).Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := "a\nb\tc\"d\\e"
	if toks[0].Value != want {
		t.Fatalf("got %q, want %q", toks[0].Value, want)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, diags := lexer.New(`"unterminated`).Tokenize()
	if len(diags) != 1 || diags[0].Code != diagnostics.KL002 {
		t.Fatalf("diags = %v, want one KL002", diags)
	}
}

func TestTokenizeUnterminatedBlockComment(t *testing.T) {
	_, diags := lexer.New("/* never closed").Tokenize()
	if len(diags) != 1 || diags[0].Code != diagnostics.KL003 {
		t.Fatalf("diags = %v, want one KL003", diags)
	}
}

func TestTokenizeIllegalCharacterRecovers(t *testing.T) {
	toks, diags := lexer.New("let x = 1 ` let y = 2").Tokenize()
	if len(diags) != 1 || diags[0].Code != diagnostics.KL001 {
		t.Fatalf("diags = %v, want one KL001", diags)
	}
	// Lexing must continue past the bad character and still find `let y`.
	found := false
	for _, tk := range toks {
		if tk.Kind == token.IDENT && tk.Value == "y" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected lexer to recover and keep scanning, tokens: %v", kinds(toks))
	}
}

func TestTokenizeComments(t *testing.T) {
	toks, _ := lexer.New("// a line comment\n/* a block */\nlet x = 1").Tokenize()
	if toks[0].Kind != token.COMMENT_LINE || toks[0].Value != "// a line comment" {
		t.Fatalf("got %+v, want line comment", toks[0])
	}
	if toks[1].Kind != token.COMMENT_BLOCK || toks[1].Value != "/* a block */" {
		t.Fatalf("got %+v, want block comment", toks[1])
	}
}

func TestTokenizeOperatorsGreedyLongestMatch(t *testing.T) {
	toks, _ := lexer.New("<= >= == != |> .. ..< |").Tokenize()
	want := []token.Kind{
		token.LTE, token.GTE, token.EQ, token.NEQ, token.PIPE_GT,
		token.RANGE_INCL, token.RANGE_EXCL, token.OR, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenRangesCoverExactText(t *testing.T) {
	src := "let width = 42mm"
	toks, _ := lexer.New(src).Tokenize()
	idx := lexer.New(src).Index()
	for _, tk := range toks {
		if tk.Kind == token.EOF {
			continue
		}
		startOff := idx.PositionToOffset(tk.Range.Start)
		endOff := idx.PositionToOffset(tk.Range.End)
		got := src[startOff:endOff]
		if tk.Kind == token.NUMBER {
			if got != tk.Value+string(tk.Unit) {
				t.Errorf("token %+v range text = %q, want %q", tk, got, tk.Value+string(tk.Unit))
			}
			continue
		}
		if got != tk.Value && tk.Kind != token.STRING {
			t.Errorf("token %+v range text = %q, want %q", tk, got, tk.Value)
		}
	}
}

func TestTokenizeEOFAlwaysLast(t *testing.T) {
	toks, _ := lexer.New("").Tokenize()
	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Fatalf("empty source tokens = %v, want a lone EOF", toks)
	}
}
