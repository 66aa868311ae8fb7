package parser

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/sqldialect/pkg/dialect"
	"github.com/leapstack-labs/sqldialect/pkg/token"
)

// Lexer tokenizes SQL expression input.
//
// Malformed input (an unterminated string, a stray character) yields an
// ILLEGAL token whose Literal holds the diagnostic and whose Raw holds the
// offending source text.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	dialect *dialect.Dialect
	symbols []string // dialect symbols, longest first
}

// NewLexer creates a new Lexer for the given input.
// A nil dialect recognizes double-quoted identifiers and no custom symbols.
func NewLexer(input string, d *dialect.Dialect) *Lexer {
	l := &Lexer{
		input:   input,
		line:    1,
		col:     0,
		dialect: d,
	}
	if d != nil {
		for sym := range d.Symbols() {
			l.symbols = append(l.symbols, sym)
		}
		// Longest match first ("::" before ":")
		sort.Slice(l.symbols, func(i, j int) bool {
			if len(l.symbols[i]) != len(l.symbols[j]) {
				return len(l.symbols[i]) > len(l.symbols[j])
			}
			return l.symbols[i] < l.symbols[j]
		})
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// atEOF reports whether the whole input has been consumed.
func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()
	start := min(l.pos, len(l.input))

	tok := l.scan()
	tok.Pos = pos
	end := min(l.pos, len(l.input))
	tok.Raw = l.input[start:end]
	return tok
}

// scan reads one token starting at the current character and leaves the
// lexer on the character after it.
func (l *Lexer) scan() token.Token {
	if l.atEOF() {
		return token.Token{Type: token.EOF}
	}

	// Check dialect-specific symbols first (longest match)
	if tok, ok := l.matchDialectSymbol(); ok {
		return tok
	}

	switch l.ch {
	case '+':
		return l.single(token.PLUS)
	case '-':
		if l.peekChar() == '>' {
			return l.double(token.ARROW)
		}
		return l.single(token.MINUS)
	case '*':
		return l.single(token.STAR)
	case '/':
		return l.single(token.SLASH)
	case '%':
		return l.single(token.PERCENT)
	case '=':
		return l.single(token.EQ)
	case '<':
		switch l.peekChar() {
		case '=':
			return l.double(token.LE)
		case '>':
			return l.double(token.NE)
		}
		return l.single(token.LT)
	case '>':
		if l.peekChar() == '=' {
			return l.double(token.GE)
		}
		return l.single(token.GT)
	case '!':
		if l.peekChar() == '=' {
			return l.double(token.NE)
		}
	case '|':
		if l.peekChar() == '|' {
			return l.double(token.DPIPE)
		}
	case '.':
		return l.single(token.DOT)
	case ',':
		return l.single(token.COMMA)
	case '(':
		return l.single(token.LPAREN)
	case ')':
		return l.single(token.RPAREN)
	case '[':
		return l.single(token.LBRACKET)
	case ']':
		return l.single(token.RBRACKET)
	case '\'':
		lit, ok := l.readQuoted('\'')
		if !ok {
			return token.Token{Type: token.ILLEGAL, Literal: ErrUnterminatedString}
		}
		return token.Token{Type: token.STRING, Literal: lit}
	}

	switch {
	case l.isIdentQuote(l.ch):
		lit, ok := l.readQuoted(l.ch)
		if !ok {
			return token.Token{Type: token.ILLEGAL, Literal: ErrUnterminatedIdent}
		}
		return token.Token{Type: token.IDENT, Literal: lit}
	case isLetter(l.ch) || l.ch == '_':
		lit, ok := l.readIdentifier()
		if !ok {
			bad := l.input[l.pos-1]
			return token.Token{Type: token.ILLEGAL, Literal: fmt.Sprintf("%s %#x", ErrInvalidUTF8, bad)}
		}
		lower := strings.ToLower(lit)
		// Check builtin keywords first, then dialect keywords
		typ := token.LookupIdent(lower)
		if typ == token.IDENT && l.dialect != nil {
			if dynTok, ok := l.dialect.LookupKeyword(lower); ok {
				typ = dynTok
			}
		}
		return token.Token{Type: typ, Literal: lit}
	case isDigit(l.ch):
		return token.Token{Type: token.NUMBER, Literal: l.readNumber()}
	}

	ch := l.ch
	l.readChar()
	return token.Token{Type: token.ILLEGAL, Literal: "illegal character " + quoteChar(ch)}
}

func (l *Lexer) single(t token.TokenType) token.Token {
	lit := string(l.ch)
	l.readChar()
	return token.Token{Type: t, Literal: lit}
}

func (l *Lexer) double(t token.TokenType) token.Token {
	lit := l.input[l.pos : l.pos+2]
	l.readChar()
	l.readChar()
	return token.Token{Type: t, Literal: lit}
}

// matchDialectSymbol checks if the current position matches a dialect-specific symbol.
// Returns the longest matching symbol (e.g., "::" before ":").
func (l *Lexer) matchDialectSymbol() (token.Token, bool) {
	remaining := l.input[l.pos:]
	for _, sym := range l.symbols {
		if strings.HasPrefix(remaining, sym) {
			for range sym {
				l.readChar()
			}
			return token.Token{Type: l.dialect.Symbols()[sym], Literal: sym}, true
		}
	}
	return token.Token{}, false
}

func (l *Lexer) isIdentQuote(ch byte) bool {
	if l.dialect == nil {
		return ch == '"'
	}
	return l.dialect.IsQuoteChar(ch)
}

// skipWhitespaceAndComments skips whitespace, line comments and block comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		// Skip whitespace
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		// Line comment (-- ...)
		if l.ch == '-' && l.peekChar() == '-' {
			for l.ch != '\n' && !l.atEOF() {
				l.readChar()
			}
			continue
		}

		// Block comment (/* ... */)
		if l.ch == '/' && l.peekChar() == '*' {
			l.readChar() // skip '/'
			l.readChar() // skip '*'
			for !l.atEOF() {
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar() // skip '*'
					l.readChar() // skip '/'
					break
				}
				l.readChar()
			}
			continue
		}

		break
	}
}

// readQuoted reads a string or quoted identifier delimited by quote.
// A doubled delimiter is an escaped delimiter: 'it''s' -> it's.
// Reports false when the input ends before the closing delimiter.
func (l *Lexer) readQuoted(quote byte) (string, bool) {
	l.readChar() // skip opening quote

	var result strings.Builder
	for !l.atEOF() {
		if l.ch == quote {
			if l.peekChar() == quote {
				// Doubled quote escape
				result.WriteByte(quote)
				l.readChar() // skip first quote
				l.readChar() // skip second quote
				continue
			}
			l.readChar() // skip closing quote
			return result.String(), true
		}
		result.WriteByte(l.ch)
		l.readChar()
	}
	return result.String(), false
}

// readIdentifier reads an unquoted identifier. Non-ASCII characters must be
// valid UTF-8; on an invalid byte it stops just past that byte and reports false.
func (l *Lexer) readIdentifier() (string, bool) {
	start := l.pos
	for !l.atEOF() {
		switch {
		case l.ch >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(l.input[l.pos:])
			if r == utf8.RuneError && size <= 1 {
				l.readChar()
				return l.input[start:l.pos], false
			}
			for range size {
				l.readChar()
			}
		case isLetter(l.ch) || isDigit(l.ch) || l.ch == '_':
			l.readChar()
		default:
			return l.input[start:l.pos], true
		}
	}
	return l.input[start:l.pos], true
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
func (l *Lexer) readNumber() string {
	start := l.pos

	// Read integer part
	for isDigit(l.ch) {
		l.readChar()
	}

	// Read decimal part
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Read exponent part (e.g., 1e10, 1E-5)
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			l.readChar() // skip 'e' or 'E'
			if l.ch == '+' || l.ch == '-' {
				l.readChar() // skip sign
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return l.input[start:l.pos]
}

// isLetter returns true if ch is an ASCII letter or part of a multi-byte
// UTF-8 sequence.
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func quoteChar(ch byte) string {
	return "'" + string(rune(ch)) + "'"
}

// Tokenize returns all tokens from the input, ending with EOF.
func Tokenize(input string, d *dialect.Dialect) []token.Token {
	l := NewLexer(input, d)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens
}
