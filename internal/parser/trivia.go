package parser

import "github.com/funvibe/kclsp/internal/token"
import "github.com/funvibe/kclsp/internal/ast"

// gatherTrivia consumes every comment token starting at p.idx, collapsing
// runs of blank source lines between them (and before the first of them)
// into single TriviaEntry{Blank: n} entries per spec.md invariant 4, and
// leaves p.idx positioned at the next non-comment token (or EOF).
func (p *Parser) gatherTrivia() []ast.TriviaEntry {
	var entries []ast.TriviaEntry
	prevEndLine := p.lastEndLine
	for p.raw(p.idx).IsComment() {
		tok := p.raw(p.idx)
		startLine := tok.Range.Start.Line
		if blank := startLine - prevEndLine - 1; blank > 0 {
			entries = append(entries, ast.TriviaEntry{Blank: blank})
		}
		entries = append(entries, ast.TriviaEntry{Comment: &ast.Comment{
			IsBlock: tok.Kind == token.COMMENT_BLOCK,
			Text:    tok.Value,
		}})
		prevEndLine = tok.Range.End.Line
		p.idx++
	}
	// Blank run between the last comment (or the previous statement) and
	// the upcoming significant token.
	if p.idx < len(p.toks) {
		nextLine := p.raw(p.idx).Range.Start.Line
		if blank := nextLine - prevEndLine - 1; blank > 0 {
			entries = append(entries, ast.TriviaEntry{Blank: blank})
		}
	}
	p.lastEndLine = prevEndLine
	p.syncCur()
	return entries
}

// tryConsumeTrailingComment consumes a same-line comment immediately
// following a statement's last token, if one is present, and returns it.
func (p *Parser) tryConsumeTrailingComment(stmtEndLine int) *ast.Comment {
	if p.idx >= len(p.toks) {
		return nil
	}
	tok := p.raw(p.idx)
	if !tok.IsComment() || tok.Range.Start.Line != stmtEndLine {
		return nil
	}
	p.idx++
	p.lastEndLine = tok.Range.End.Line
	p.syncCur()
	return &ast.Comment{IsBlock: tok.Kind == token.COMMENT_BLOCK, Text: tok.Value}
}
