package token

import (
	"sync"
	"sync/atomic"
)

// nextTokenID tracks the next available dynamic token ID.
// Dynamic tokens start after maxBuiltin (999).
var nextTokenID = int32(maxBuiltin)

var (
	dynamicMu       sync.RWMutex
	dynamicTokens   = make(map[TokenType]string)
	dynamicKeywords = make(map[string]TokenType)
)

// Tokens shared by several dialects. Registered here so every dialect that
// enables them agrees on the same token type.
var (
	// ILIKE is the case-insensitive LIKE operator (Postgres, ClickHouse).
	ILIKE = Register("ILIKE")
	// DCOLON is the :: cast operator.
	DCOLON = Register("::")
)

// Register registers a new dynamic token with the given name.
// This is used by dialects to register dialect-specific keywords
// and operators.
//
// Register is idempotent: registering the same name again returns the
// token type assigned the first time.
func Register(name string) TokenType {
	dynamicMu.Lock()
	defer dynamicMu.Unlock()

	if t, ok := dynamicKeywords[name]; ok {
		return t
	}

	t := TokenType(atomic.AddInt32(&nextTokenID, 1))
	dynamicTokens[t] = name
	dynamicKeywords[name] = t

	return t
}

func getDynamicName(t TokenType) (string, bool) {
	dynamicMu.RLock()
	defer dynamicMu.RUnlock()
	name, ok := dynamicTokens[t]
	return name, ok
}

// LookupDynamicKeyword returns the token type for a dynamic keyword.
// Returns IDENT and false if the keyword is not registered.
func LookupDynamicKeyword(name string) (TokenType, bool) {
	dynamicMu.RLock()
	defer dynamicMu.RUnlock()
	if tok, ok := dynamicKeywords[name]; ok {
		return tok, true
	}
	return IDENT, false
}

// IsDynamic returns true if the token type is a dynamically registered token.
func IsDynamic(t TokenType) bool {
	return t > maxBuiltin
}

// RegisteredTokens returns a copy of all registered dynamic tokens.
func RegisteredTokens() map[TokenType]string {
	dynamicMu.RLock()
	defer dynamicMu.RUnlock()
	result := make(map[TokenType]string, len(dynamicTokens))
	for k, v := range dynamicTokens {
		result[k] = v
	}
	return result
}
