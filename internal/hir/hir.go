// Package hir defines the High-level Intermediate Representation (HIR) for
// the Rowan compiler: the desugared, name-resolved form of a function body
// that type checking operates on.
//
// Every node carries a NodeID that is unique for the lifetime of the
// compilation and is never reused. All per-node facts recorded during type
// checking (types, coercions, method resolutions) are keyed by these IDs.
package hir

import (
	"fmt"

	"github.com/rowan-lang/rowan/internal/position"
)

// NodeID uniquely identifies an HIR node within a compilation.
type NodeID uint64

// DefID uniquely identifies an item definition (function, type, trait
// method) within a compilation.
type DefID uint64

// BodyID uniquely identifies a function or closure body.
type BodyID uint64

// Invalid ID constants (zero is sentinel).
const (
	NoNodeID NodeID = 0
	NoDefID  DefID  = 0
	NoBodyID BodyID = 0
)

// IsValid returns true if the ID is valid (non-zero).
func (id NodeID) IsValid() bool { return id != NoNodeID }
func (id DefID) IsValid() bool  { return id != NoDefID }
func (id BodyID) IsValid() bool { return id != NoBodyID }

// UpvarID identifies a variable captured by a closure: the variable's
// declaration node paired with the capturing closure expression node.
type UpvarID struct {
	Var     NodeID
	Closure NodeID
}

func (u UpvarID) String() string {
	return fmt.Sprintf("upvar(%d in closure %d)", u.Var, u.Closure)
}

// Node is the base interface for all HIR nodes.
type Node interface {
	// GetID returns the unique identifier for this node.
	GetID() NodeID
	// GetSpan returns the source span covered by this node.
	GetSpan() position.Span
	// String returns a human-readable representation of the node.
	String() string
}

// Stmt represents all statement nodes in the HIR.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents all expression nodes in the HIR.
type Expr interface {
	Node
	exprNode()
}

// Pat represents all pattern nodes in the HIR.
type Pat interface {
	Node
	patNode()
}

// Arg is a formal argument of a body. The argument node itself carries
// inferred facts; the pattern introduces the bindings.
type Arg struct {
	ID   NodeID
	Pat  Pat
	Span position.Span
}

// Body is a function or closure body: its arguments plus the value
// expression. Closure bodies are separate Body instances referenced by
// the enclosing ClosureExpr.
type Body struct {
	ID        BodyID
	Owner     DefID
	Arguments []*Arg
	Value     Expr
}

// Map resolves BodyIDs to bodies. Nested closure bodies are registered
// here so that a traversal of the enclosing function can descend into
// them.
type Map struct {
	bodies map[BodyID]*Body
}

// NewMap creates an empty body map.
func NewMap() *Map {
	return &Map{bodies: make(map[BodyID]*Body)}
}

// AddBody registers a body.
func (m *Map) AddBody(b *Body) {
	m.bodies[b.ID] = b
}

// Body returns the body with the given ID, or nil if unregistered.
func (m *Map) Body(id BodyID) *Body {
	return m.bodies[id]
}
