package pipeline

import (
	"github.com/funvibe/kclsp/internal/lexer"
	"github.com/funvibe/kclsp/internal/parser"
)

// LexStage tokenizes ctx.SourceCode into ctx.Tokens, appending any lexer
// diagnostics (illegal characters, unterminated strings/comments).
var LexStage Processor = ProcessorFunc(func(ctx *Context) *Context {
	toks, diags := lexer.New(ctx.SourceCode).Tokenize()
	ctx.Tokens = toks
	ctx.Diagnostics = append(ctx.Diagnostics, diags...)
	return ctx
})

// ParseStage parses ctx.Tokens into ctx.Root, appending parser diagnostics.
// It always runs, even when the lex stage produced diagnostics, so the
// parser still returns a best-effort tree for a source file with a stray
// illegal character elsewhere.
var ParseStage Processor = ProcessorFunc(func(ctx *Context) *Context {
	result := parser.Parse(ctx.Tokens)
	ctx.Root = result.Program
	ctx.Diagnostics = append(ctx.Diagnostics, result.Diags...)
	return ctx
})

// Run lexes and parses source in one call, going from raw text to a
// Context; internal/document and cmd/kclsp use it, while internal/format
// calls the lexer directly.
func Run(uri, source string) *Context {
	ctx := NewContext(uri, source)
	return New(LexStage, ParseStage).Run(ctx)
}
