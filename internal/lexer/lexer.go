// Package lexer turns KCL source text into a position-preserving token
// stream. Grounded on mcgru-funxy's internal/lexer/lexer.go two-char
// lookahead scanner, adapted to retain comments as trivia tokens (the
// teacher's skipWhitespace swallows "//" comments entirely; KCL's
// lossless-formatting requirement means comments must survive as tokens)
// and to record a {line, character} range on every token, converted from
// byte offsets via position.Index.
package lexer

import (
	"strings"

	"github.com/funvibe/kclsp/internal/diagnostics"
	"github.com/funvibe/kclsp/internal/position"
	"github.com/funvibe/kclsp/internal/token"
)

// Lexer scans a single source text into tokens.
type Lexer struct {
	src   string
	index *position.Index

	pos     int // current byte offset (points at ch)
	readPos int // next byte offset to read
	ch      byte

	diags []diagnostics.Diagnostic
}

// New creates a Lexer over source, building its line-offset index.
func New(source string) *Lexer {
	l := &Lexer{src: source, index: position.NewIndex(source)}
	l.readChar()
	return l
}

// Index returns the line-offset index built for this lexer's source, for
// reuse by the parser/document manager so it isn't rebuilt.
func (l *Lexer) Index() *position.Index { return l.index }

// Tokenize scans the entire source and returns the token stream (ending in
// an EOF sentinel) plus any lex diagnostics.
func (l *Lexer) Tokenize() ([]token.Token, []diagnostics.Diagnostic) {
	var tokens []token.Token
	for {
		tok := l.next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, l.diags
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.src) {
		l.ch = 0
	} else {
		l.ch = l.src[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.src) {
		return 0
	}
	return l.src[l.readPos]
}

func (l *Lexer) peekCharAt(n int) byte {
	i := l.readPos + n - 1
	if i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

func (l *Lexer) rangeFrom(start int) position.Range {
	return position.Range{
		Start: l.index.OffsetToPosition(start),
		End:   l.index.OffsetToPosition(l.pos),
	}
}

func (l *Lexer) errorf(start int, code diagnostics.Code, args ...interface{}) {
	rng := l.rangeFrom(start)
	l.diags = append(l.diags, diagnostics.New(code, rng, diagnostics.SeverityError, args...))
}

func (l *Lexer) skipSpaceAndNewlines() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

// next scans and returns the next token, including comment trivia and the
// terminal EOF sentinel.
func (l *Lexer) next() token.Token {
	l.skipSpaceAndNewlines()

	start := l.pos
	switch {
	case l.ch == 0:
		return token.Token{Kind: token.EOF, Range: l.rangeFrom(start)}
	case l.ch == '/' && l.peekChar() == '/':
		return l.readLineComment(start)
	case l.ch == '/' && l.peekChar() == '*':
		return l.readBlockComment(start)
	case l.ch == '"':
		return l.readString(start)
	case isLetter(l.ch):
		return l.readIdentifier(start)
	case isDigit(l.ch):
		return l.readNumber(start)
	default:
		return l.readOperatorOrPunct(start)
	}
}

func (l *Lexer) readLineComment(start int) token.Token {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	text := l.src[start:l.pos]
	return token.Token{Kind: token.COMMENT_LINE, Value: text, Range: l.rangeFrom(start)}
}

func (l *Lexer) readBlockComment(start int) token.Token {
	l.readChar() // consume '/'
	l.readChar() // consume '*'
	for {
		if l.ch == 0 {
			l.errorf(start, diagnostics.KL003)
			break
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			break
		}
		l.readChar()
	}
	text := l.src[start:l.pos]
	return token.Token{Kind: token.COMMENT_BLOCK, Value: text, Range: l.rangeFrom(start)}
}

func (l *Lexer) readString(start int) token.Token {
	l.readChar() // consume opening quote
	var sb strings.Builder
	terminated := false
	for {
		if l.ch == '"' {
			l.readChar()
			terminated = true
			break
		}
		if l.ch == 0 || l.ch == '\n' {
			break
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteByte('\\')
				sb.WriteByte(l.ch)
			}
			l.readChar()
			continue
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
	if !terminated {
		l.errorf(start, diagnostics.KL002)
	}
	return token.Token{Kind: token.STRING, Value: sb.String(), Range: l.rangeFrom(start)}
}

func (l *Lexer) readIdentifier(start int) token.Token {
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.src[start:l.pos]
	return token.Token{Kind: token.LookupIdent(lexeme), Value: lexeme, Range: l.rangeFrom(start)}
}

// readNumber consumes digits, an optional decimal point, and an optional
// unit suffix from the fixed set. Leading zeros are accepted.
func (l *Lexer) readNumber(start int) token.Token {
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	numEnd := l.pos
	unit := l.readUnitSuffix()
	lexeme := l.src[start:numEnd]
	return token.Token{Kind: token.NUMBER, Value: lexeme, Unit: unit, Range: l.rangeFrom(start)}
}

// readUnitSuffix greedily matches the longest recognized unit suffix
// immediately following a number's digits.
func (l *Lexer) readUnitSuffix() token.Unit {
	for _, u := range token.Units {
		n := len(u)
		if n == 0 {
			continue
		}
		matched := true
		for i := 0; i < n; i++ {
			var c byte
			if i == 0 {
				c = l.ch
			} else {
				c = l.peekCharAt(i)
			}
			if c != u[i] {
				matched = false
				break
			}
		}
		if matched {
			for i := 0; i < n; i++ {
				l.readChar()
			}
			return u
		}
	}
	return token.UnitNone
}

// readOperatorOrPunct matches punctuation and operators, greedily
// preferring the longest valid lexeme (e.g. "<=" before "<", "..<" before
// "..").
func (l *Lexer) readOperatorOrPunct(start int) token.Token {
	three := string(l.ch) + string(l.peekChar()) + string(l.peekCharAt(2))
	two := string(l.ch) + string(l.peekChar())

	switch three {
	case "..<":
		l.readChar()
		l.readChar()
		l.readChar()
		return token.Token{Kind: token.RANGE_EXCL, Value: "..<", Range: l.rangeFrom(start)}
	}

	switch two {
	case "==":
		l.readChar()
		l.readChar()
		return token.Token{Kind: token.EQ, Value: "==", Range: l.rangeFrom(start)}
	case "!=":
		l.readChar()
		l.readChar()
		return token.Token{Kind: token.NEQ, Value: "!=", Range: l.rangeFrom(start)}
	case "<=":
		l.readChar()
		l.readChar()
		return token.Token{Kind: token.LTE, Value: "<=", Range: l.rangeFrom(start)}
	case ">=":
		l.readChar()
		l.readChar()
		return token.Token{Kind: token.GTE, Value: ">=", Range: l.rangeFrom(start)}
	case "|>":
		l.readChar()
		l.readChar()
		return token.Token{Kind: token.PIPE_GT, Value: "|>", Range: l.rangeFrom(start)}
	case "..":
		l.readChar()
		l.readChar()
		return token.Token{Kind: token.RANGE_INCL, Value: "..", Range: l.rangeFrom(start)}
	}

	ch := l.ch
	l.readChar()
	switch ch {
	case '(':
		return token.Token{Kind: token.LPAREN, Value: "(", Range: l.rangeFrom(start)}
	case ')':
		return token.Token{Kind: token.RPAREN, Value: ")", Range: l.rangeFrom(start)}
	case '{':
		return token.Token{Kind: token.LBRACE, Value: "{", Range: l.rangeFrom(start)}
	case '}':
		return token.Token{Kind: token.RBRACE, Value: "}", Range: l.rangeFrom(start)}
	case '[':
		return token.Token{Kind: token.LBRACKET, Value: "[", Range: l.rangeFrom(start)}
	case ']':
		return token.Token{Kind: token.RBRACKET, Value: "]", Range: l.rangeFrom(start)}
	case ',':
		return token.Token{Kind: token.COMMA, Value: ",", Range: l.rangeFrom(start)}
	case ':':
		return token.Token{Kind: token.COLON, Value: ":", Range: l.rangeFrom(start)}
	case '@':
		return token.Token{Kind: token.AT, Value: "@", Range: l.rangeFrom(start)}
	case '.':
		return token.Token{Kind: token.DOT, Value: ".", Range: l.rangeFrom(start)}
	case '+':
		return token.Token{Kind: token.PLUS, Value: "+", Range: l.rangeFrom(start)}
	case '-':
		return token.Token{Kind: token.MINUS, Value: "-", Range: l.rangeFrom(start)}
	case '*':
		return token.Token{Kind: token.STAR, Value: "*", Range: l.rangeFrom(start)}
	case '/':
		return token.Token{Kind: token.SLASH, Value: "/", Range: l.rangeFrom(start)}
	case '%':
		return token.Token{Kind: token.PERCENT, Value: "%", Range: l.rangeFrom(start)}
	case '^':
		return token.Token{Kind: token.CARET, Value: "^", Range: l.rangeFrom(start)}
	case '<':
		return token.Token{Kind: token.LT, Value: "<", Range: l.rangeFrom(start)}
	case '>':
		return token.Token{Kind: token.GT, Value: ">", Range: l.rangeFrom(start)}
	case '&':
		return token.Token{Kind: token.AND, Value: "&", Range: l.rangeFrom(start)}
	case '|':
		return token.Token{Kind: token.OR, Value: "|", Range: l.rangeFrom(start)}
	case '!':
		return token.Token{Kind: token.BANG, Value: "!", Range: l.rangeFrom(start)}
	case '=':
		return token.Token{Kind: token.ASSIGN, Value: "=", Range: l.rangeFrom(start)}
	case '$':
		return token.Token{Kind: token.DOLLAR, Value: "$", Range: l.rangeFrom(start)}
	default:
		l.errorf(start, diagnostics.KL001, string(ch))
		return token.Token{Kind: token.ILLEGAL, Value: string(ch), Range: l.rangeFrom(start)}
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
