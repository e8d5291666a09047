package format_test

import (
	"strings"
	"testing"

	"github.com/funvibe/kclsp/internal/format"
	"github.com/funvibe/kclsp/internal/lexer"
	"github.com/funvibe/kclsp/internal/parser"
)

func mustFormat(t *testing.T, src string) string {
	t.Helper()
	toks, lexDiags := lexer.New(src).Tokenize()
	if len(lexDiags) != 0 {
		t.Fatalf("unexpected lex diagnostics for %q: %v", src, lexDiags)
	}
	res := parser.Parse(toks)
	if !res.Success {
		t.Fatalf("unexpected parse diagnostics for %q: %v", src, res.Diags)
	}
	return format.Format(res.Program, src)
}

// TestFormatterBlankLineNormalization is spec.md §8 scenario 4.
func TestFormatterBlankLineNormalization(t *testing.T) {
	got := mustFormat(t, "x = 1\n\n\n\n\ny = 2")
	want := "x = 1\n\n\ny = 2\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestFormatterFunctionSpacing is spec.md §8 scenario 5.
func TestFormatterFunctionSpacing(t *testing.T) {
	got := mustFormat(t, "let x = 10\nfn f(@a) { return a }")
	if !strings.Contains(got, "\n\nfn f(@a) { return a }") {
		t.Fatalf("got %q, want a blank line inserted before the fn definition", got)
	}
}

// TestFormatterPositionalArgs is spec.md §8 scenario 6.
func TestFormatterPositionalArgs(t *testing.T) {
	got := mustFormat(t, "result = makeBox(10, 20, 30)")
	if !strings.Contains(got, "makeBox(10, 20, 30)") {
		t.Fatalf("got %q, want makeBox(10, 20, 30)", got)
	}
	for _, synthetic := range []string{"$0", "$1", "$2"} {
		if strings.Contains(got, synthetic) {
			t.Errorf("got %q, must never contain synthetic label %q", got, synthetic)
		}
	}
}

func TestFormatterNoBlankLineAtFileStart(t *testing.T) {
	got := mustFormat(t, "\n\n\nx = 1")
	if strings.HasPrefix(got, "\n") {
		t.Fatalf("got %q, must not start with a blank line", got)
	}
}

func TestFormatterTrailingBlankLinesCollapse(t *testing.T) {
	got := mustFormat(t, "x = 1\n\n\n\n")
	want := "x = 1\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatterLabeledArgumentsPreserveNames(t *testing.T) {
	got := mustFormat(t, "makeBox(10, 20, height=30)")
	if !strings.Contains(got, "height = 30") {
		t.Fatalf("got %q, want labeled argument height = 30 preserved", got)
	}
}

func TestFormatterArrayMultilineOverBudget(t *testing.T) {
	// Build an array literal whose flat rendering comfortably exceeds the
	// formatter's hard width (120), which is what actually forces a
	// multi-line layout.
	elems := make([]string, 12)
	for i := range elems {
		elems[i] = "1234567890"
	}
	src := "x = [" + strings.Join(elems, ", ") + "]"
	got := mustFormat(t, src)
	if !strings.Contains(got, "[\n") {
		t.Fatalf("got %q, want the over-budget array to render multi-line", got)
	}
	if !strings.HasSuffix(strings.TrimRight(got, "\n"), "]") {
		t.Fatalf("got %q, want the closing bracket on its own line", got)
	}
}

func TestFormatterShortArraySingleLine(t *testing.T) {
	got := mustFormat(t, "x = [1, 2, 3]")
	want := "x = [1, 2, 3]\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatterCommentPreservation(t *testing.T) {
	src := "// a helpful comment\nlet x = 1"
	got := mustFormat(t, src)
	if !strings.Contains(got, "// a helpful comment") {
		t.Fatalf("got %q, want the leading comment preserved", got)
	}
}

func TestFormatterTrailingInlineCommentPreservation(t *testing.T) {
	src := "let x = 1 // keep me"
	got := mustFormat(t, src)
	if !strings.Contains(got, "let x = 1 // keep me") {
		t.Fatalf("got %q, want the trailing comment kept on the same line", got)
	}
}

func TestFormatterConditionNotParenthesized(t *testing.T) {
	got := mustFormat(t, "x = if a { 1 } else { 2 }")
	if strings.Contains(got, "if (a)") {
		t.Fatalf("got %q, must not parenthesize the if condition", got)
	}
	if !strings.Contains(got, "if a ") {
		t.Fatalf("got %q, want an unparenthesized condition", got)
	}
}

// TestFormatIsIdempotent is spec.md §8's round-trip invariant:
// format(parse(text)) is idempotent.
func TestFormatIsIdempotent(t *testing.T) {
	sources := []string{
		"let x = 1\nfn f(@a) { return a }\n",
		"result = makeBox(10, 20, height=30)\n",
		"x = [1, 2, 3]\ny = {a: 1, b: 2}\n",
		"// header comment\nlet width = 10mm\nlet height = 20mm\n",
		"x = if a { 1 } else if b { 2 } else { 3 }\n",
	}
	for _, src := range sources {
		once := mustFormat(t, src)
		twice := mustFormat(t, once)
		if once != twice {
			t.Errorf("not idempotent for %q:\nfirst:  %q\nsecond: %q", src, once, twice)
		}
	}
}

func TestFormatNilProgramReturnsEmptyString(t *testing.T) {
	if got := format.Format(nil, ""); got != "" {
		t.Fatalf("got %q, want empty string for a nil program", got)
	}
}

func TestFormatRecoveringAppendsUnattachedComments(t *testing.T) {
	toks, _ := lexer.New("let x = ) // orphaned").Tokenize()
	res := parser.Parse(toks)
	out := format.FormatRecovering(res.Program, "let x = ) // orphaned", res.Diags)
	if !strings.Contains(out, "// orphaned") {
		t.Fatalf("got %q, want the orphaned comment recovered", out)
	}
}
