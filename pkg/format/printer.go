// Package format renders expression trees back to SQL text.
package format

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/sqldialect/pkg/dialect"
	"github.com/leapstack-labs/sqldialect/pkg/token"
)

// Printer accumulates the canonical single-line rendering of an expression.
type Printer struct {
	dialect *dialect.Dialect
	output  *bytes.Buffer
}

func newPrinter(d *dialect.Dialect) *Printer {
	return &Printer{
		dialect: d,
		output:  &bytes.Buffer{},
	}
}

// String returns the formatted output.
func (p *Printer) String() string {
	return p.output.String()
}

func (p *Printer) write(s string) {
	p.output.WriteString(s)
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// kw prints keywords and operators by token type, separated by spaces.
func (p *Printer) kw(tokens ...token.TokenType) {
	for i, t := range tokens {
		if i > 0 {
			p.space()
		}
		p.write(t.String())
	}
}

// ident writes a name, quoting it when it would not lex back unchanged.
func (p *Printer) ident(name string) {
	p.write(p.dialect.QuoteIdentifierIfNeeded(name))
}

// name writes a function or alias name, quoting it only when it would not
// lex back as a bare word.
func (p *Printer) name(s string) {
	if p.isBareWord(s) {
		p.write(s)
		return
	}
	p.write(p.dialect.QuoteIdentifier(s))
}

// formatList prints a list of items with separators.
// count is the number of items, format is called for each index.
func (p *Printer) formatList(count int, format func(i int), sep string) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
		}
	}
}

// sub renders into a fresh printer sharing the dialect.
func (p *Printer) sub(format func(*Printer)) string {
	s := newPrinter(p.dialect)
	format(s)
	return s.String()
}

// isBareWord reports whether name lexes back as an unquoted identifier.
// Unlike QuoteIdentifierIfNeeded it ignores the reserved word list, which
// only advises quoting.
func (p *Printer) isBareWord(name string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	if token.LookupIdent(lower) != token.IDENT {
		return false
	}
	if _, ok := p.dialect.LookupKeyword(lower); ok {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
