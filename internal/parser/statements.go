// Grounded on mcgru-funxy's internal/parser/statements.go per-keyword
// dispatch, adapted to KCL's statement grammar (spec.md §4.C) and to carry
// trivia on every statement rather than discarding it.
package parser

import (
	"github.com/funvibe/kclsp/internal/ast"
	"github.com/funvibe/kclsp/internal/diagnostics"
	"github.com/funvibe/kclsp/internal/position"
	"github.com/funvibe/kclsp/internal/token"
)

// parseProgramBody parses the top-level statement list into prog,
// attaching the trivia gathered before the first statement to
// prog.LeadingTrivia and any trivia dangling after the last statement to
// prog.TrailingTrivia (an extension beyond spec.md's literal Program shape,
// needed so every comment still attaches somewhere).
func (p *Parser) parseProgramBody(prog *ast.Program) {
	first := true
	for {
		leading := p.gatherTrivia()
		if p.cur.Kind == token.EOF {
			prog.TrailingTrivia = leading
			return
		}
		stmt := p.parseStatement()
		if stmt == nil {
			p.recover()
			continue
		}
		if first {
			prog.LeadingTrivia = leading
			first = false
		} else {
			stmt.LeadingTrivia().Leading = leading
		}
		stmt.LeadingTrivia().Trailing = p.tryConsumeTrailingComment(p.lastEndLine)
		prog.Statements = append(prog.Statements, stmt)
	}
}

// parseBlock parses `{ stmt* tailExpr? }` (spec.md §4.C: "Function bodies
// are `{ stmt* returnExpr? }`"). The first non-stmt expression immediately
// followed by '}' becomes the block's tail expression instead of an
// ExprStmt.
func (p *Parser) parseBlock() *ast.Block {
	start := p.cur.Range.Start
	p.expect(token.LBRACE)

	block := &ast.Block{}
	first := true
	for p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		leading := p.gatherTrivia()
		if p.cur.Kind == token.RBRACE || p.cur.Kind == token.EOF {
			break
		}
		if !isStatementStart(p.cur.Kind) && !p.looksLikeAssign() {
			expr := p.parseExpression(LOWEST)
			if p.cur.Kind == token.RBRACE {
				block.TailExpr = expr
				break
			}
			stmt := &ast.ExprStmt{Expr: expr, Rng: exprRangeOrHere(expr, p.cur.Range)}
			p.attachLeading(stmt, leading, &first)
			stmt.LeadingTrivia().Trailing = p.tryConsumeTrailingComment(p.lastEndLine)
			block.Statements = append(block.Statements, stmt)
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			p.recover()
			continue
		}
		p.attachLeading(stmt, leading, &first)
		stmt.LeadingTrivia().Trailing = p.tryConsumeTrailingComment(p.lastEndLine)
		block.Statements = append(block.Statements, stmt)
	}
	end := p.cur.Range.End
	p.expect(token.RBRACE)
	block.Rng = position.Range{Start: start, End: end}
	return block
}

func (p *Parser) attachLeading(stmt ast.Stmt, leading []ast.TriviaEntry, first *bool) {
	stmt.LeadingTrivia().Leading = leading
	*first = false
}

func exprRangeOrHere(expr ast.Expr, fallback position.Range) position.Range {
	if expr != nil {
		return expr.Range()
	}
	return fallback
}

// looksLikeAssign reports whether cur begins a bare `IDENT = expr`
// assignment, which is only legal at the top of a program or a block
// (spec.md §4.C's assignStmt production).
func (p *Parser) looksLikeAssign() bool {
	return p.cur.Kind == token.IDENT && p.peek.Kind == token.ASSIGN
}

func isStatementStart(k token.Kind) bool {
	return statementStart[k]
}

// parseStatement dispatches on the current token to the matching
// statement production, or falls through to assignment/expression
// statements.
func (p *Parser) parseStatement() ast.Stmt {
	switch {
	case p.cur.Kind == token.AT:
		return p.parseAnnotationStmt()
	case p.cur.Kind == token.IMPORT:
		return p.parseImportStmt()
	case p.cur.Kind == token.EXPORT:
		return p.parseExportStmt()
	case p.cur.Kind == token.FN:
		return p.parseFnDefStmt()
	case p.cur.Kind == token.LET:
		return p.parseLetStmt()
	case p.cur.Kind == token.RETURN:
		return p.parseReturnStmt()
	case p.looksLikeAssign():
		return p.parseAssignStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseLetStmt() *ast.LetStmt {
	start := p.cur.Range.Start
	p.advance() // 'let'
	if p.cur.Kind != token.IDENT {
		p.errorf(diagnostics.KP002, p.cur.Range)
		return &ast.LetStmt{Rng: position.Range{Start: start, End: p.cur.Range.End}}
	}
	name := &ast.Identifier{Name: p.cur.Value, Rng: p.cur.Range}
	p.advance()
	p.expect(token.ASSIGN)
	value := p.parseExpression(LOWEST)
	end := start
	if value != nil {
		end = value.Range().End
	}
	return &ast.LetStmt{Name: name, Value: value, Rng: position.Range{Start: start, End: end}}
}

func (p *Parser) parseAssignStmt() *ast.AssignStmt {
	start := p.cur.Range.Start
	name := &ast.Identifier{Name: p.cur.Value, Rng: p.cur.Range}
	p.advance() // IDENT
	p.expect(token.ASSIGN)
	value := p.parseExpression(LOWEST)
	end := start
	if value != nil {
		end = value.Range().End
	}
	return &ast.AssignStmt{Name: name, Value: value, Rng: position.Range{Start: start, End: end}}
}

func (p *Parser) parseFnDefStmt() *ast.FnDefStmt {
	start := p.cur.Range.Start
	p.advance() // 'fn'
	if p.cur.Kind != token.IDENT {
		p.errorf(diagnostics.KP002, p.cur.Range)
		return &ast.FnDefStmt{Rng: position.Range{Start: start, End: p.cur.Range.End}}
	}
	name := &ast.Identifier{Name: p.cur.Value, Rng: p.cur.Range}
	p.advance()
	p.expect(token.LPAREN)
	params := p.parseParams()
	p.expect(token.RPAREN)
	var retType *ast.Identifier
	if p.cur.Kind == token.COLON {
		p.advance()
		if p.cur.Kind == token.IDENT {
			retType = &ast.Identifier{Name: p.cur.Value, Rng: p.cur.Range}
			p.advance()
		}
	}
	body := p.parseBlock()
	return &ast.FnDefStmt{
		Name: name, Params: params, ReturnType: retType, Body: body,
		Rng: position.Range{Start: start, End: body.Rng.End},
	}
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.cur.Range.Start
	p.advance() // 'return'
	end := start
	var value ast.Expr
	if _, ok := p.prefixFns[p.cur.Kind]; ok {
		value = p.parseExpression(LOWEST)
		if value != nil {
			end = value.Range().End
		}
	}
	return &ast.ReturnStmt{Value: value, Rng: position.Range{Start: start, End: end}}
}

func (p *Parser) parseExprStmt() *ast.ExprStmt {
	start := p.cur.Range
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	return &ast.ExprStmt{Expr: expr, Rng: position.Range{Start: start.Start, End: expr.Range().End}}
}

// parseAnnotationStmt parses `@name(k=v, ...)` (spec.md §4.C).
func (p *Parser) parseAnnotationStmt() *ast.AnnotationStmt {
	start := p.cur.Range.Start
	p.advance() // '@'
	if p.cur.Kind != token.IDENT {
		p.errorf(diagnostics.KP002, p.cur.Range)
		return &ast.AnnotationStmt{Rng: position.Range{Start: start, End: p.cur.Range.End}}
	}
	name := &ast.Identifier{Name: p.cur.Value, Rng: p.cur.Range}
	p.advance()
	var args []ast.Argument
	end := name.Rng.End
	if p.cur.Kind == token.LPAREN {
		p.advance()
		args = p.parseArguments(token.RPAREN)
		end = p.cur.Range.End
		p.expect(token.RPAREN)
	}
	return &ast.AnnotationStmt{Name: name, Args: args, Rng: position.Range{Start: start, End: end}}
}

// parseImportStmt parses `import (itemList 'from')? STRING ('as' IDENT)?`
// (spec.md §4.C).
func (p *Parser) parseImportStmt() *ast.ImportStmt {
	start := p.cur.Range.Start
	p.advance() // 'import'

	var items []*ast.Identifier
	if p.cur.Kind == token.LPAREN {
		items = p.parseIdentList()
		if !p.expect(token.FROM) {
			p.errorf(diagnostics.KP004, p.cur.Range, "expected 'from' after import item list")
		}
	}

	if p.cur.Kind != token.STRING {
		p.errorf(diagnostics.KP004, p.cur.Range, "expected a string module path")
		return &ast.ImportStmt{Items: items, Rng: position.Range{Start: start, End: p.cur.Range.End}}
	}
	path := &ast.StringLiteral{Value: p.cur.Value, Rng: p.cur.Range}
	end := path.Rng.End
	p.advance()

	var alias *ast.Identifier
	if p.cur.Kind == token.AS {
		p.advance()
		if p.cur.Kind == token.IDENT {
			alias = &ast.Identifier{Name: p.cur.Value, Rng: p.cur.Range}
			end = alias.Rng.End
			p.advance()
		}
	}
	return &ast.ImportStmt{Items: items, Path: path, Alias: alias, Rng: position.Range{Start: start, End: end}}
}

// parseIdentList parses `'(' IDENT (',' IDENT)* ')'`.
func (p *Parser) parseIdentList() []*ast.Identifier {
	p.expect(token.LPAREN)
	var items []*ast.Identifier
	for p.cur.Kind == token.IDENT {
		items = append(items, &ast.Identifier{Name: p.cur.Value, Rng: p.cur.Range})
		p.advance()
		if p.cur.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return items
}

// parseExportStmt parses `export (stmt | importShort)`: either a wrapped
// statement, or the `(items) from "path"` re-export shorthand.
func (p *Parser) parseExportStmt() ast.Stmt {
	start := p.cur.Range.Start
	p.advance() // 'export'

	if p.cur.Kind == token.LPAREN {
		items := p.parseIdentList()
		p.expect(token.FROM)
		if p.cur.Kind != token.STRING {
			p.errorf(diagnostics.KP004, p.cur.Range, "expected a string module path")
			return &ast.ExportImportStmt{Items: items, Rng: position.Range{Start: start, End: p.cur.Range.End}}
		}
		path := &ast.StringLiteral{Value: p.cur.Value, Rng: p.cur.Range}
		end := path.Rng.End
		p.advance()
		return &ast.ExportImportStmt{Items: items, Path: path, Rng: position.Range{Start: start, End: end}}
	}

	inner := p.parseStatement()
	if inner == nil {
		return &ast.ExportStmt{Rng: position.Range{Start: start, End: start}}
	}
	return &ast.ExportStmt{Inner: inner, Rng: position.Range{Start: start, End: inner.Range().End}}
}
