package format

import (
	"strings"

	"github.com/funvibe/kclsp/internal/ast"
)

// triviaOp is either a (clamped) blank-line run or a single comment line.
type triviaOp struct {
	blank   int
	comment *ast.Comment
}

func toOps(entries []ast.TriviaEntry) []triviaOp {
	var ops []triviaOp
	for _, e := range entries {
		switch {
		case e.Comment != nil:
			ops = append(ops, triviaOp{comment: e.Comment})
		case e.Blank > 0:
			ops = append(ops, triviaOp{blank: e.Blank})
		}
	}
	return ops
}

// clampBlankRuns applies rule 3: a run of N >= 1 blank lines collapses to
// min(N, 2).
func clampBlankRuns(ops []triviaOp) []triviaOp {
	for i := range ops {
		if ops[i].comment == nil && ops[i].blank > 2 {
			ops[i].blank = 2
		}
	}
	return ops
}

// dropLeadingBlank applies rule 1: no blank lines at the very start of
// the document.
func dropLeadingBlank(ops []triviaOp) []triviaOp {
	if len(ops) > 0 && ops[0].comment == nil {
		return ops[1:]
	}
	return ops
}

// dropTrailingBlank applies rule 2: trailing blank lines collapse to a
// single terminating newline, which Format appends unconditionally, so
// any blank op at the very end of the trailing trivia is simply dropped.
func dropTrailingBlank(ops []triviaOp) []triviaOp {
	for len(ops) > 0 && ops[len(ops)-1].comment == nil {
		ops = ops[:len(ops)-1]
	}
	return ops
}

// ensureMinBlank applies rule 4: blanks mandated around a function
// definition take max(user's run, min). It leaves a comment-only leading
// trivia alone, since a comment directly above a statement is read as
// attached to it, not separated from it.
func ensureMinBlank(ops []triviaOp, min int) []triviaOp {
	for _, o := range ops {
		if o.comment != nil {
			return ops
		}
	}
	if len(ops) == 0 {
		return []triviaOp{{blank: min}}
	}
	if ops[len(ops)-1].blank < min {
		ops[len(ops)-1].blank = min
	}
	return ops
}

func (p *Printer) emitOps(ops []triviaOp) {
	for _, o := range ops {
		if o.comment != nil {
			p.writeIndent()
			p.write(o.comment.Text)
			p.writeln()
			continue
		}
		for i := 0; i < o.blank; i++ {
			p.writeln()
		}
	}
}

// Format renders prog back to text. source is accepted but not read when
// rendering; recovering comments from the original text after a failed
// parse is done by FormatRecovering.
func Format(prog *ast.Program, source string) string {
	return FormatWithOptions(prog, source, DefaultOptions())
}

// FormatWithOptions is Format with an explicit width-budget/indent
// configuration.
func FormatWithOptions(prog *ast.Program, source string, opts Options) string {
	if prog == nil {
		return ""
	}
	p := newPrinter(opts)

	p.emitOps(clampBlankRuns(dropLeadingBlank(toOps(prog.LeadingTrivia))))

	for i, stmt := range prog.Statements {
		if i > 0 {
			ops := clampBlankRuns(toOps(stmt.LeadingTrivia().Leading))
			if isFnLike(stmt) || isFnLike(prog.Statements[i-1]) {
				ops = ensureMinBlank(ops, 1)
			}
			p.emitOps(ops)
		}
		p.writeIndent()
		p.renderStmt(stmt)
		if trailing := stmt.LeadingTrivia().Trailing; trailing != nil {
			p.write(" " + trailing.Text)
		}
		p.writeln()
	}

	p.emitOps(dropTrailingBlank(clampBlankRuns(toOps(prog.TrailingTrivia))))

	return strings.TrimRight(p.String(), "\n") + "\n"
}
