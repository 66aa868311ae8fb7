package core

// Expr is the interface implemented by every expression node.
//
// The set of node types is closed; consumers switch on the concrete type.
// Nodes own their children and carry no source positions, so two trees
// parsed from equivalent text compare equal.
type Expr interface {
	exprNode() // Marker method to distinguish expressions
}
