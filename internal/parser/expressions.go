package parser

import (
	"github.com/funvibe/kclsp/internal/ast"
	"github.com/funvibe/kclsp/internal/diagnostics"
	"github.com/funvibe/kclsp/internal/position"
	"github.com/funvibe/kclsp/internal/token"
)

func (p *Parser) registerParseFns() {
	p.prefixFns = map[token.Kind]prefixParseFn{
		token.IDENT:    p.parseVariableRef,
		token.NUMBER:   p.parseNumberLiteral,
		token.TRUE:     p.parseBoolLiteral,
		token.FALSE:    p.parseBoolLiteral,
		token.STRING:   p.parseStringLiteral,
		token.NIL:      p.parseNilLiteral,
		token.LPAREN:   p.parseGroupedExpr,
		token.LBRACKET: p.parseArrayLiteral,
		token.LBRACE:   p.parseObjectLiteral,
		token.MINUS:    p.parseUnaryExpr,
		token.BANG:     p.parseUnaryExpr,
		token.PERCENT:  p.parsePipeSubstitution,
		token.DOLLAR:   p.parseTagDeclarator,
		token.IF:       p.parseConditionalExpr,
		token.FN:       p.parseAnonFunction,
	}

	p.infixFns = map[token.Kind]infixParseFn{
		token.PIPE_GT:    p.parsePipeExpr,
		token.OR:         p.parseBinaryExpr,
		token.AND:        p.parseBinaryExpr,
		token.EQ:         p.parseBinaryExpr,
		token.NEQ:        p.parseBinaryExpr,
		token.LT:         p.parseBinaryExpr,
		token.GT:         p.parseBinaryExpr,
		token.LTE:        p.parseBinaryExpr,
		token.GTE:        p.parseBinaryExpr,
		token.PLUS:       p.parseBinaryExpr,
		token.MINUS:      p.parseBinaryExpr,
		token.STAR:       p.parseBinaryExpr,
		token.SLASH:      p.parseBinaryExpr,
		token.PERCENT:    p.parseBinaryExpr,
		token.CARET:      p.parseBinaryExpr,
		token.RANGE_INCL: p.parseRangeExpr,
		token.RANGE_EXCL: p.parseRangeExpr,
		token.LPAREN:     p.parseCallExpr,
		token.LBRACKET:   p.parseIndexExpr,
		token.DOT:        p.parseMemberExpr,
		token.COLON:      p.parseTypeAscription,
	}
}

// parseExpression is the Pratt entry point: parse a prefix production,
// then repeatedly fold in infix/postfix operators while they bind more
// tightly than minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expr {
	prefix, ok := p.prefixFns[p.cur.Kind]
	if !ok {
		p.errorf(diagnostics.KP005, p.cur.Range, string(p.cur.Kind))
		// Don't consume a token that begins the next statement (e.g. a
		// missing `let` value followed directly by the next `let`):
		// leave it for the enclosing statement dispatcher to reclaim
		// rather than swallowing it here (spec.md §8 scenario 7).
		if !statementStart[p.cur.Kind] {
			p.advance()
		}
		return nil
	}
	left := prefix()

	for left != nil && minPrec < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur.Kind]
		if !ok {
			break
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseVariableRef() ast.Expr {
	id := &ast.Identifier{Name: p.cur.Value, Rng: p.cur.Range}
	p.advance()
	return &ast.VariableRef{Name: id, Rng: id.Rng}
}

func (p *Parser) parseNumberLiteral() ast.Expr {
	n := &ast.NumberLiteral{Value: p.cur.Value, Unit: string(p.cur.Unit), Rng: p.cur.Range}
	p.advance()
	return n
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	b := &ast.BoolLiteral{Value: p.cur.Kind == token.TRUE, Rng: p.cur.Range}
	p.advance()
	return b
}

func (p *Parser) parseStringLiteral() ast.Expr {
	s := &ast.StringLiteral{Value: p.cur.Value, Rng: p.cur.Range}
	p.advance()
	return s
}

func (p *Parser) parseNilLiteral() ast.Expr {
	n := &ast.NilLiteral{Rng: p.cur.Range}
	p.advance()
	return n
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	p.advance() // consume '('
	expr := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	start := p.cur.Range.Start
	p.advance() // consume '['
	var elems []ast.Expr
	for p.cur.Kind != token.RBRACKET && p.cur.Kind != token.EOF {
		elems = append(elems, p.parseExpression(LOWEST))
		if p.cur.Kind == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	end := p.cur.Range.End
	p.expect(token.RBRACKET)
	return &ast.ArrayLiteral{Elements: elems, Rng: position.Range{Start: start, End: end}}
}

func (p *Parser) parseObjectLiteral() ast.Expr {
	start := p.cur.Range.Start
	p.advance() // consume '{'
	var entries []ast.ObjectEntry
	for p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		if p.cur.Kind != token.IDENT {
			p.errorf(diagnostics.KP002, p.cur.Range)
			break
		}
		key := &ast.Identifier{Name: p.cur.Value, Rng: p.cur.Range}
		p.advance()
		p.expect(token.COLON)
		val := p.parseExpression(LOWEST)
		entries = append(entries, ast.ObjectEntry{Key: key, Value: val})
		if p.cur.Kind == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	end := p.cur.Range.End
	p.expect(token.RBRACE)
	return &ast.ObjectLiteral{Entries: entries, Rng: position.Range{Start: start, End: end}}
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	start := p.cur.Range.Start
	op := string(p.cur.Kind)
	p.advance()
	operand := p.parseExpression(UNARY)
	end := start
	if operand != nil {
		end = operand.Range().End
	}
	return &ast.UnaryExpr{Op: op, Operand: operand, Rng: position.Range{Start: start, End: end}}
}

func (p *Parser) parsePipeSubstitution() ast.Expr {
	n := &ast.PipeSubstitution{Rng: p.cur.Range}
	p.advance()
	return n
}

func (p *Parser) parseTagDeclarator() ast.Expr {
	start := p.cur.Range.Start
	p.advance() // consume '$'
	if p.cur.Kind != token.IDENT {
		p.errorf(diagnostics.KP002, p.cur.Range)
		return &ast.TagDeclarator{Rng: position.Range{Start: start, End: p.cur.Range.End}}
	}
	name := &ast.Identifier{Name: p.cur.Value, Rng: p.cur.Range}
	end := p.cur.Range.End
	p.advance()
	return &ast.TagDeclarator{Name: name, Rng: position.Range{Start: start, End: end}}
}

func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	op := string(p.cur.Kind)
	prec := p.curPrecedence()
	p.advance()
	rightPrec := prec
	if p.isRightAssoc(op) {
		rightPrec = prec - 1
	}
	right := p.parseExpression(rightPrec)
	rng := position.Range{Start: left.Range().Start, End: p.endOf(right, left)}
	return &ast.BinaryExpr{Op: op, Left: left, Right: right, Rng: rng}
}

// isRightAssoc reports whether op is right-associative; `^` (exponent) is
// the only one in this grammar (spec.md §4.C).
func (p *Parser) isRightAssoc(op string) bool {
	return op == string(token.CARET)
}

func (p *Parser) endOf(expr ast.Expr, fallback ast.Expr) position.Position {
	if expr != nil {
		return expr.Range().End
	}
	return fallback.Range().End
}

func (p *Parser) parseRangeExpr(left ast.Expr) ast.Expr {
	inclusive := p.cur.Kind == token.RANGE_INCL
	p.advance()
	right := p.parseExpression(RANGE_PREC)
	rng := position.Range{Start: left.Range().Start, End: p.endOf(right, left)}
	return &ast.RangeExpr{Start: left, End: right, Inclusive: inclusive, Rng: rng}
}

func (p *Parser) parseIndexExpr(left ast.Expr) ast.Expr {
	p.advance() // consume '['
	idx := p.parseExpression(LOWEST)
	end := p.cur.Range.End
	p.expect(token.RBRACKET)
	return &ast.IndexExpr{Object: left, Index: idx, Rng: position.Range{Start: left.Range().Start, End: end}}
}

func (p *Parser) parseMemberExpr(left ast.Expr) ast.Expr {
	p.advance() // consume '.'
	if p.cur.Kind != token.IDENT {
		p.errorf(diagnostics.KP002, p.cur.Range)
		return left
	}
	prop := &ast.Identifier{Name: p.cur.Value, Rng: p.cur.Range}
	end := p.cur.Range.End
	p.advance()
	return &ast.MemberExpr{Object: left, Property: prop, Rng: position.Range{Start: left.Range().Start, End: end}}
}

func (p *Parser) parseTypeAscription(left ast.Expr) ast.Expr {
	p.advance() // consume ':'
	if p.cur.Kind != token.IDENT {
		p.errorf(diagnostics.KP002, p.cur.Range)
		return left
	}
	typ := &ast.Identifier{Name: p.cur.Value, Rng: p.cur.Range}
	end := p.cur.Range.End
	p.advance()
	return &ast.TypeAscription{Expr: left, Type: typ, Rng: position.Range{Start: left.Range().Start, End: end}}
}

func (p *Parser) parsePipeExpr(left ast.Expr) ast.Expr {
	p.advance() // consume '|>'
	right := p.parseExpression(PIPE_PREC)
	rng := position.Range{Start: left.Range().Start, End: p.endOf(right, left)}
	return &ast.PipeExpr{Left: left, Right: right, Rng: rng}
}

// parseCallExpr implements `callee(args)`; callee must already have
// resolved to a bare identifier reference (spec.md §3: "call (callee
// identifier + ...)").
func (p *Parser) parseCallExpr(left ast.Expr) ast.Expr {
	ref, ok := left.(*ast.VariableRef)
	if !ok {
		p.errorf(diagnostics.KP001, p.cur.Range, "identifier", "expression")
	}
	p.advance() // consume '('
	args := p.parseArguments(token.RPAREN)
	end := p.cur.Range.End
	p.expect(token.RPAREN)
	var callee *ast.Identifier
	if ok {
		callee = ref.Name
	}
	return &ast.CallExpr{Callee: callee, Args: args, Rng: position.Range{Start: left.Range().Start, End: end}}
}

// parseArguments parses a comma-separated list of labeled (`name = expr`)
// or positional (`expr`) call/annotation arguments, stopping before
// closer (not consuming it). Trailing commas are permitted.
func (p *Parser) parseArguments(closer token.Kind) []ast.Argument {
	var args []ast.Argument
	for p.cur.Kind != closer && p.cur.Kind != token.EOF {
		if p.cur.Kind == token.IDENT && p.peek.Kind == token.ASSIGN {
			label := &ast.Identifier{Name: p.cur.Value, Rng: p.cur.Range}
			p.advance() // identifier
			p.advance() // '='
			val := p.parseExpression(LOWEST)
			args = append(args, ast.Argument{Label: label, Value: val})
		} else {
			val := p.parseExpression(LOWEST)
			args = append(args, ast.Argument{Value: val})
		}
		if p.cur.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	return args
}

func (p *Parser) parseAnonFunction() ast.Expr {
	start := p.cur.Range.Start
	p.advance() // consume 'fn'
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
	return &ast.AnonFunction{
		Params: params, ReturnType: retType, Body: body,
		Rng: position.Range{Start: start, End: body.Rng.End},
	}
}

// parseParams parses a comma-separated parameter list. A leading '@'
// marks the parameter as unlabeled (spec.md's `@x` parameter syntax: the
// value supplied positionally or via a pipe, rather than by name).
func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	for p.cur.Kind == token.AT || p.cur.Kind == token.IDENT {
		unlabeled := false
		if p.cur.Kind == token.AT {
			unlabeled = true
			p.advance()
		}
		if p.cur.Kind != token.IDENT {
			p.errorf(diagnostics.KP002, p.cur.Range)
			break
		}
		name := &ast.Identifier{Name: p.cur.Value, Rng: p.cur.Range}
		p.advance()
		var typ *ast.Identifier
		if p.cur.Kind == token.COLON {
			p.advance()
			if p.cur.Kind == token.IDENT {
				typ = &ast.Identifier{Name: p.cur.Value, Rng: p.cur.Range}
				p.advance()
			}
		}
		params = append(params, ast.Param{Name: name, Type: typ, Unlabeled: unlabeled})
		if p.cur.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	return params
}

// parseConditionalExpr parses `if cond { ... } (else if cond {...})* (else
// {...})?`.
func (p *Parser) parseConditionalExpr() ast.Expr {
	start := p.cur.Range.Start
	p.advance() // consume 'if'
	cond := p.parseExpression(LOWEST)
	then := p.parseBlock()
	end := then.Rng.End

	var elseNode ast.Node
	if p.cur.Kind == token.ELSE {
		p.advance()
		if p.cur.Kind == token.IF {
			inner := p.parseConditionalExpr().(*ast.ConditionalExpr)
			elseNode = inner
			end = inner.Rng.End
		} else {
			elseBlock := p.parseBlock()
			elseNode = elseBlock
			end = elseBlock.Rng.End
		}
	}
	return &ast.ConditionalExpr{Cond: cond, Then: then, Else: elseNode, Rng: position.Range{Start: start, End: end}}
}
