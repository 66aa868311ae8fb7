package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqldialect/pkg/token"
)

// ErrSyntax is matched by every *SyntaxError via errors.Is.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports input that does not match the expression grammar.
// Token is the offending token and Pos its position.
type SyntaxError struct {
	Token   token.Token
	Pos     token.Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Is reports whether target is ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Common error messages
const (
	ErrUnexpectedToken    = "unexpected token %s, expected %s"
	ErrUnterminatedString = "unterminated string literal"
	ErrUnterminatedIdent  = "unterminated quoted identifier"
	ErrInvalidUTF8        = "invalid UTF-8 byte"
)

// describe renders a token for error messages, including its text when the
// type alone is ambiguous.
func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "EOF"
	case token.IDENT, token.NUMBER, token.STRING:
		return fmt.Sprintf("%s %q", tok.Type, tok.Raw)
	default:
		return tok.Type.String()
	}
}
