// Package core defines the expression tree produced by the parser and the
// identifier configuration shared by dialects.
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
