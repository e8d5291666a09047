// Package pipeline runs a document's source text through the lex/parse
// stages as a sequence of Processors over a shared Context, grounded on
// mcgru-funxy's internal/pipeline package (Pipeline/Processor/Context
// split), narrowed to this server's scope: there is no symbol table, type
// map, or trait dispatch here, since analysis/evaluation are out of scope.
package pipeline

import (
	"github.com/funvibe/kclsp/internal/ast"
	"github.com/funvibe/kclsp/internal/diagnostics"
	"github.com/funvibe/kclsp/internal/token"
)

// Context holds the data passed between pipeline stages for one document
// parse. Each Processor reads what earlier stages produced and appends to
// Diagnostics rather than aborting the run.
type Context struct {
	SourceCode string
	URI        string

	Tokens []token.Token
	Root   *ast.Program

	Diagnostics []diagnostics.Diagnostic
}

// NewContext initializes a Context for one parse of source.
func NewContext(uri, source string) *Context {
	return &Context{SourceCode: source, URI: uri}
}
