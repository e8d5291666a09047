// Package document tracks open documents by URI across edits, grounded on
// mcgru-funxy's registry-style singletons (builtins_ws.go's
// wsConnectionsMu-guarded map, builtins_sql.go's sqlDBRegistryMu) adapted
// into a per-instance manager rather than a package-level registry, since
// a language server owns exactly one document set for its lifetime.
package document

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/funvibe/kclsp/internal/ast"
	"github.com/funvibe/kclsp/internal/diagnostics"
	"github.com/funvibe/kclsp/internal/pipeline"
	"github.com/funvibe/kclsp/internal/position"
	"github.com/funvibe/kclsp/internal/token"
)

// EditToken identifies one change() call. Comparing it with CurrentToken
// (for example inside a lint.Context's Cancelled callback) tells a
// long-running rule loop that a newer edit has superseded the one it was
// asked to analyze (§5's cancellation model).
type EditToken uuid.UUID

// ParseResult is the immutable record produced for one source text
// (spec.md's "Parse result"): {success, tokens, program, lineOffsets,
// diagnostics}.
type ParseResult struct {
	Success     bool
	Tokens      []token.Token
	Program     *ast.Program
	LineOffsets *position.Index
	Diagnostics []diagnostics.Diagnostic
}

type entry struct {
	version int
	source  string
	result  ParseResult
	token   EditToken
}

// Manager owns a mapping URI → {version, sourceText, parseResult}. All
// methods are safe for concurrent use; per §5 the server is single-
// threaded cooperative, but the mutex costs nothing and protects against
// a future concurrent transport.
type Manager struct {
	mu   sync.RWMutex
	docs map[string]*entry
	log  *zap.Logger
}

// New builds an empty Manager. A nil logger is replaced with zap.NewNop(),
// the same guard mcgru-funxy's own config layer applies to an unset
// logger field.
func New(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{docs: make(map[string]*entry), log: log}
}

func parse(uri, source string) ParseResult {
	ctx := pipeline.Run(uri, source)
	idx := position.NewIndex(source)
	success := ctx.Root != nil && len(ctx.Diagnostics) == 0
	program := ctx.Root
	if program == nil {
		program = &ast.Program{}
	}
	return ParseResult{
		Success:     success,
		Tokens:      ctx.Tokens,
		Program:     program,
		LineOffsets: idx,
		Diagnostics: ctx.Diagnostics,
	}
}

// Open lexes and parses text, stores it under uri at version, and returns
// the parse result.
func (m *Manager) Open(uri, text string, version int) ParseResult {
	result := parse(uri, text)
	m.mu.Lock()
	m.docs[uri] = &entry{version: version, source: text, result: result, token: EditToken(uuid.New())}
	m.mu.Unlock()
	m.log.Info("document opened", zap.String("uri", uri), zap.Int("version", version),
		zap.Bool("success", result.Success), zap.Int("diagnostics", len(result.Diagnostics)))
	return result
}

// Change replaces the stored text for uri with fullText (full-document
// edits only; incremental ranges are out of scope per spec.md's
// Non-goals), re-parses it, and returns the new EditToken alongside the
// result so a caller can thread it into a cancellable lint pass.
func (m *Manager) Change(uri, fullText string, version int) (ParseResult, EditToken) {
	result := parse(uri, fullText)
	tok := EditToken(uuid.New())
	m.mu.Lock()
	m.docs[uri] = &entry{version: version, source: fullText, result: result, token: tok}
	m.mu.Unlock()
	m.log.Info("document changed", zap.String("uri", uri), zap.Int("version", version),
		zap.Bool("success", result.Success), zap.Int("diagnostics", len(result.Diagnostics)))
	return result, tok
}

// Close removes uri's entry, if any.
func (m *Manager) Close(uri string) {
	m.mu.Lock()
	delete(m.docs, uri)
	m.mu.Unlock()
	m.log.Info("document closed", zap.String("uri", uri))
}

// Get returns uri's current source, parse result, and edit token. ok is
// false when no document is open at uri (KD001).
func (m *Manager) Get(uri string) (source string, result ParseResult, tok EditToken, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, found := m.docs[uri]
	if !found {
		return "", ParseResult{}, EditToken{}, false
	}
	return e.source, e.result, e.token, true
}

// CurrentToken reports uri's latest EditToken so a cooperative rule loop
// can detect that it has been superseded. ok mirrors Get.
func (m *Manager) CurrentToken(uri string) (tok EditToken, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, found := m.docs[uri]
	if !found {
		return EditToken{}, false
	}
	return e.token, true
}
