// Package dialect provides SQL dialect configuration and function classification.
//
// This package contains the public contract for dialect definitions used by the
// parser and formatter. Concrete dialect implementations are registered from
// pkg/dialects/*/ packages.
package dialect

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/sqldialect/pkg/classify"
	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/spi"
	"github.com/leapstack-labs/sqldialect/pkg/token"
)

// Dialect represents a SQL dialect configuration.
//
// A built Dialect is immutable and safe for concurrent use by any number of
// parsers.
type Dialect struct {
	Name        string
	Identifiers core.IdentifierConfig

	// Function classification
	aggregateNames []string
	aggregates     *classify.Table

	reservedWords map[string]struct{} // Words that need quoting as identifiers

	// Parsing behavior
	symbols        map[string]token.TokenType            // Custom operators: "::" -> DCOLON
	dynamicKw      map[string]token.TokenType            // Custom keywords: "ilike" -> ILIKE
	precedence     map[token.TokenType]int               // Operator precedence for expressions
	infixHandlers  map[token.TokenType]spi.InfixHandler  // Optional custom infix parsing
	prefixHandlers map[token.TokenType]spi.PrefixHandler // Prefix expression handlers (e.g., [ for array literals)
	primaryRest    spi.PrimaryRestHandler                // Suffix continuation override
	aliasParser    spi.AliasHandler                      // Quoted alias override
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return strings.ToUpper(name)
	case core.NormLowercase, core.NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// IsAggregate returns true if the function is an aggregate function.
// Lookup ignores case regardless of the identifier normalization.
func (d *Dialect) IsAggregate(name string) bool {
	return d.aggregates.Contains(name)
}

// AggregateTable returns the dialect's aggregate lookup table.
func (d *Dialect) AggregateTable() *classify.Table {
	return d.aggregates
}

// Aggregates returns the aggregate function names in declaration order.
func (d *Dialect) Aggregates() []string {
	return slices.Clone(d.aggregateNames)
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToLower(word)]
	return ok
}

// IsQuoteChar reports whether ch opens a quoted identifier in this dialect.
func (d *Dialect) IsQuoteChar(ch byte) bool {
	if len(d.Identifiers.Quote) == 1 && d.Identifiers.Quote[0] == ch {
		return true
	}
	for _, q := range d.Identifiers.AltQuotes {
		if len(q) == 1 && q[0] == ch {
			return true
		}
	}
	return false
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	// Escape any existing quote end characters in the name (e.g., ] -> ]])
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier only when it would not lex
// back as the same bare identifier: reserved and keyword names, and names
// that are not plain [A-Za-z_][A-Za-z0-9_]* words.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.needsQuote(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}

func (d *Dialect) needsQuote(name string) bool {
	if name == "" || d.IsReservedWord(name) {
		return true
	}
	lower := strings.ToLower(name)
	if token.LookupIdent(lower) != token.IDENT {
		return true
	}
	if _, ok := d.dynamicKw[lower]; ok {
		return true
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case c >= '0' && c <= '9' && i > 0:
		default:
			return true
		}
	}
	return false
}

// ---------- Parsing Behavior Methods ----------

// Symbols returns the custom operators map for lexer symbol matching.
func (d *Dialect) Symbols() map[string]token.TokenType {
	return d.symbols
}

// LookupKeyword returns the token type for a dynamic keyword.
// Returns the token type and true if found, or IDENT and false if not.
func (d *Dialect) LookupKeyword(name string) (token.TokenType, bool) {
	if t, ok := d.dynamicKw[strings.ToLower(name)]; ok {
		return t, true
	}
	return token.IDENT, false
}

// Precedence returns the precedence level for an operator token.
// Returns 0 (PrecedenceNone) if the operator is not recognized.
func (d *Dialect) Precedence(t token.TokenType) int {
	if p, ok := d.precedence[t]; ok {
		return p
	}
	return spi.PrecedenceNone
}

// InfixHandler returns the custom infix handler for an operator token.
func (d *Dialect) InfixHandler(t token.TokenType) spi.InfixHandler {
	return d.infixHandlers[t]
}

// PrefixHandler returns the custom prefix handler for an operator token.
func (d *Dialect) PrefixHandler(t token.TokenType) spi.PrefixHandler {
	return d.prefixHandlers[t]
}

// PrimaryRestHandler returns the suffix continuation override, or nil when
// the dialect uses the parser default.
func (d *Dialect) PrimaryRestHandler() spi.PrimaryRestHandler {
	return d.primaryRest
}

// AliasHandler returns the quoted alias override, or nil when the dialect
// uses the parser default.
func (d *Dialect) AliasHandler() spi.AliasHandler {
	return d.aliasParser
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: core.IdentifierConfig{
				Quote:         `"`,
				QuoteEnd:      `"`,
				Escape:        `""`,
				Normalization: core.NormLowercase,
			},
			reservedWords:  make(map[string]struct{}),
			symbols:        make(map[string]token.TokenType),
			dynamicKw:      make(map[string]token.TokenType),
			precedence:     make(map[token.TokenType]int),
			infixHandlers:  make(map[token.TokenType]spi.InfixHandler),
			prefixHandlers: make(map[token.TokenType]spi.PrefixHandler),
		},
	}
}

// Identifiers configures identifier quoting and normalization.
// altQuotes lists further single-character quotes accepted by the lexer.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm core.NormalizationStrategy, altQuotes ...string) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
		AltQuotes:     altQuotes,
	}
	return b
}

// Aggregates adds aggregate functions to the dialect.
func (b *Builder) Aggregates(funcs ...string) *Builder {
	b.dialect.aggregateNames = append(b.dialect.aggregateNames, funcs...)
	return b
}

// WithReservedWords registers words that need quoting when used as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[strings.ToLower(w)] = struct{}{}
	}
	return b
}

// AddOperator registers a custom operator symbol for the lexer.
func (b *Builder) AddOperator(symbol string, t token.TokenType) *Builder {
	b.dialect.symbols[symbol] = t
	return b
}

// AddKeyword registers a dynamic keyword for the lexer.
func (b *Builder) AddKeyword(name string, t token.TokenType) *Builder {
	b.dialect.dynamicKw[strings.ToLower(name)] = t
	return b
}

// AddInfix registers an infix operator with precedence.
func (b *Builder) AddInfix(t token.TokenType, precedence int) *Builder {
	b.dialect.precedence[t] = precedence
	return b
}

// AddInfixWithHandler registers an infix operator with custom handler.
func (b *Builder) AddInfixWithHandler(t token.TokenType, precedence int, handler spi.InfixHandler) *Builder {
	b.dialect.precedence[t] = precedence
	b.dialect.infixHandlers[t] = handler
	return b
}

// AddPrefix registers a prefix expression handler (e.g., [ for array literals).
func (b *Builder) AddPrefix(t token.TokenType, handler spi.PrefixHandler) *Builder {
	b.dialect.prefixHandlers[t] = handler
	return b
}

// PrimaryRest installs a suffix continuation override.
func (b *Builder) PrimaryRest(handler spi.PrimaryRestHandler) *Builder {
	b.dialect.primaryRest = handler
	return b
}

// AliasParser installs a quoted alias override.
func (b *Builder) AliasParser(handler spi.AliasHandler) *Builder {
	b.dialect.aliasParser = handler
	return b
}

// Operators adds operator definitions in bulk.
// If Symbol is provided, it's registered with the lexer; if Keyword is
// provided, it's registered as a dynamic keyword.
func (b *Builder) Operators(sets ...[]OperatorDef) *Builder {
	for _, set := range sets {
		for _, op := range set {
			b.dialect.precedence[op.Token] = op.Precedence
			if op.Handler != nil {
				b.dialect.infixHandlers[op.Token] = op.Handler
			}
			if op.Symbol != "" {
				b.dialect.symbols[op.Symbol] = op.Token
			}
			if op.Keyword != "" {
				b.dialect.dynamicKw[strings.ToLower(op.Keyword)] = op.Token
			}
		}
	}
	return b
}

// Build returns the constructed dialect, building its aggregate table.
// It panics if the aggregate list is invalid (empty name or hash collision),
// since dialect aggregate lists are fixed at compile time.
func (b *Builder) Build() *Dialect {
	b.dialect.aggregates = classify.MustBuild(b.dialect.aggregateNames...)
	return b.dialect
}
