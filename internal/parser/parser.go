// Package parser consumes a token stream into a Program AST, emitting
// diagnostics on recoverable errors instead of aborting. Grounded on
// mcgru-funxy's internal/parser/parser.go Pratt-parser shape
// (prefixParseFns/infixParseFns maps keyed by token kind, a precedence
// table, registerPrefix/registerInfix setup in New), adapted to KCL's
// grammar (spec.md §4.C) and to never panic: every recoverable error is a
// diagnostic, and parsing always produces a best-effort *ast.Program.
package parser

import (
	"github.com/funvibe/kclsp/internal/ast"
	"github.com/funvibe/kclsp/internal/diagnostics"
	"github.com/funvibe/kclsp/internal/position"
	"github.com/funvibe/kclsp/internal/token"
)

// Precedence levels, low to high (spec.md §4.C).
const (
	LOWEST = iota
	PIPE_PREC
	LOGIC_OR
	LOGIC_AND
	RANGE_PREC
	COMPARISON
	ADDITIVE
	MULTIPLICATIVE
	EXPONENT
	UNARY
	POSTFIX
)

var precedences = map[token.Kind]int{
	token.PIPE_GT:    PIPE_PREC,
	token.OR:         LOGIC_OR,
	token.AND:        LOGIC_AND,
	token.RANGE_INCL: RANGE_PREC,
	token.RANGE_EXCL: RANGE_PREC,
	token.EQ:         COMPARISON,
	token.NEQ:        COMPARISON,
	token.LT:         COMPARISON,
	token.GT:         COMPARISON,
	token.LTE:        COMPARISON,
	token.GTE:        COMPARISON,
	token.PLUS:       ADDITIVE,
	token.MINUS:      ADDITIVE,
	token.STAR:       MULTIPLICATIVE,
	token.SLASH:      MULTIPLICATIVE,
	token.PERCENT:    MULTIPLICATIVE,
	token.CARET:      EXPONENT,
	token.LPAREN:     POSTFIX,
	token.LBRACKET:   POSTFIX,
	token.DOT:        POSTFIX,
	token.COLON:      POSTFIX,
}

// statementStart is the set of tokens that begin a new statement, used
// both to decide how to parse a block/program entry and to resync during
// error recovery.
var statementStart = map[token.Kind]bool{
	token.LET:    true,
	token.FN:     true,
	token.RETURN: true,
	token.IMPORT: true,
	token.EXPORT: true,
	token.AT:     true,
}

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parser holds all state for one parse of one token stream.
type Parser struct {
	toks []token.Token
	idx  int // index of the next raw token not yet consumed (may be a comment that precedes cur)

	cur  token.Token
	peek token.Token

	lastEndLine int // line on which the previously consumed token ended

	diags []diagnostics.Diagnostic

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn
}

// Result is the immutable record produced for one source text (spec.md's
// "Parse result").
type Result struct {
	Success bool
	Program *ast.Program
	Diags   []diagnostics.Diagnostic
}

// Parse runs the full lex-adjacent parse of a token stream (as produced by
// internal/lexer.Lexer.Tokenize) into a Program.
func Parse(toks []token.Token) Result {
	p := &Parser{toks: toks, lastEndLine: 1}
	p.registerParseFns()
	p.syncCur()

	prog := &ast.Program{}
	if len(toks) > 0 {
		prog.Rng.Start = toks[0].Range.Start
	}
	p.parseProgramBody(prog)
	if n := len(toks); n > 0 {
		prog.Rng.End = toks[n-1].Range.End
	}

	return Result{
		Success: len(p.diags) == 0,
		Program: prog,
		Diags:   p.diags,
	}
}

// raw returns the raw (possibly-comment) token at index i, or the EOF
// sentinel past the end of the stream.
func (p *Parser) raw(i int) token.Token {
	if i >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[i]
}

// syncCur re-derives cur/peek as the first two significant tokens at or
// after p.idx. It does not move p.idx, so comment tokens between p.idx and
// cur stay in place for gatherTrivia and tryConsumeTrailingComment.
func (p *Parser) syncCur() {
	i := p.idx
	for p.raw(i).IsComment() {
		i++
	}
	p.cur = p.raw(i)
	j := i + 1
	for p.raw(j).IsComment() {
		j++
	}
	p.peek = p.raw(j)
}

// advance consumes the current significant token (cur), records the line
// it ended on, and lands on the next one. Comments still pending before cur
// that no caller gathered are stepped over with it.
func (p *Parser) advance() {
	p.lastEndLine = p.cur.Range.End.Line
	for p.raw(p.idx).IsComment() {
		p.idx++
	}
	p.idx++
	p.syncCur()
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Kind]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) errorf(code diagnostics.Code, rng position.Range, args ...interface{}) {
	p.diags = append(p.diags, diagnostics.New(code, rng, diagnostics.SeverityError, args...))
}

// expect consumes cur if it matches kind, otherwise emits a KP001
// diagnostic and leaves cur in place (callers continue best-effort).
func (p *Parser) expect(kind token.Kind) bool {
	if p.cur.Kind == kind {
		p.advance()
		return true
	}
	p.errorf(diagnostics.KP001, p.cur.Range, string(kind), string(p.cur.Kind))
	return false
}

// recover discards tokens until a statement-start keyword, or an
// identifier that begins a new source line, per spec.md §4.C's error
// recovery rule.
func (p *Parser) recover() {
	errLine := p.cur.Range.Start.Line
	for p.cur.Kind != token.EOF {
		if statementStart[p.cur.Kind] {
			return
		}
		if p.cur.Kind == token.IDENT && p.cur.Range.Start.Line > errLine {
			return
		}
		p.advance()
	}
}
