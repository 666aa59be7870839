// HIR node implementations for the Rowan compiler.
// This file contains concrete statement, expression, pattern, and local
// nodes, plus the operator enums type checking keys off.

package hir

import (
	"fmt"

	"github.com/rowan-lang/rowan/internal/position"
)

// =============================================================================
// Operators
// =============================================================================

// UnaryOp represents a unary operator.
type UnaryOp int

const (
	UnNeg UnaryOp = iota // -
	UnNot                // !
	UnDeref              // *
)

func (op UnaryOp) String() string {
	switch op {
	case UnNeg:
		return "-"
	case UnNot:
		return "!"
	case UnDeref:
		return "*"
	default:
		return "?"
	}
}

// BinaryOp represents a binary operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota // +
	OpSub                 // -
	OpMul                 // *
	OpDiv                 // /
	OpRem                 // %
	OpBitXor              // ^
	OpBitAnd              // &
	OpBitOr               // |
	OpShl                 // <<
	OpShr                 // >>
	OpAnd                 // &&
	OpOr                  // ||
	OpEq                  // ==
	OpNe                  // !=
	OpLt                  // <
	OpLe                  // <=
	OpGt                  // >
	OpGe                  // >=
)

func (op BinaryOp) String() string {
	names := []string{
		"+", "-", "*", "/", "%", "^", "&", "|", "<<", ">>",
		"&&", "||", "==", "!=", "<", "<=", ">", ">=",
	}
	if int(op) < len(names) {
		return names[op]
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// IsByValue returns true for operators whose overloaded form consumes its
// operands by value. Comparison and lazy-boolean operators take their
// operands by reference instead.
func (op BinaryOp) IsByValue() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpRem, OpBitXor, OpBitAnd, OpBitOr, OpShl, OpShr:
		return true
	default:
		return false
	}
}

// IsComparison returns true for comparison operators.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	default:
		return false
	}
}

// =============================================================================
// Statements
// =============================================================================

// LetStmt introduces a local binding.
type LetStmt struct {
	ID    NodeID
	Local *Local
	Span  position.Span
}

func (s *LetStmt) GetID() NodeID            { return s.ID }
func (s *LetStmt) GetSpan() position.Span   { return s.Span }
func (s *LetStmt) stmtNode()                {}
func (s *LetStmt) String() string           { return fmt.Sprintf("LetStmt{%s}", s.Local) }

// ExprStmt is an expression used in statement position. Semi records
// whether the trailing semicolon discards the value.
type ExprStmt struct {
	ID   NodeID
	Expr Expr
	Semi bool
	Span position.Span
}

func (s *ExprStmt) GetID() NodeID          { return s.ID }
func (s *ExprStmt) GetSpan() position.Span { return s.Span }
func (s *ExprStmt) stmtNode()              {}
func (s *ExprStmt) String() string         { return fmt.Sprintf("ExprStmt{%s}", s.Expr) }

// Local is a single local-variable declaration. The declared type may be
// known before any initializer is checked, so type checking addresses it
// through a dedicated local-type query rather than the generic node type.
type Local struct {
	ID   NodeID
	Pat  Pat
	Init Expr // optional
	Span position.Span
}

func (l *Local) GetID() NodeID          { return l.ID }
func (l *Local) GetSpan() position.Span { return l.Span }
func (l *Local) String() string         { return fmt.Sprintf("Local{%s}", l.Pat) }

// Block is a brace-delimited sequence of statements with an optional tail
// expression.
type Block struct {
	ID    NodeID
	Stmts []Stmt
	Expr  Expr // optional tail expression
	Span  position.Span
}

func (b *Block) GetID() NodeID          { return b.ID }
func (b *Block) GetSpan() position.Span { return b.Span }
func (b *Block) String() string         { return fmt.Sprintf("Block{%d stmts}", len(b.Stmts)) }

// =============================================================================
// Patterns
// =============================================================================

// BindingPat binds a name.
type BindingPat struct {
	ID   NodeID
	Name string
	Span position.Span
}

func (p *BindingPat) GetID() NodeID          { return p.ID }
func (p *BindingPat) GetSpan() position.Span { return p.Span }
func (p *BindingPat) patNode()               {}
func (p *BindingPat) String() string         { return fmt.Sprintf("BindingPat{%s}", p.Name) }

// TuplePat destructures a tuple.
type TuplePat struct {
	ID    NodeID
	Elems []Pat
	Span  position.Span
}

func (p *TuplePat) GetID() NodeID          { return p.ID }
func (p *TuplePat) GetSpan() position.Span { return p.Span }
func (p *TuplePat) patNode()               {}
func (p *TuplePat) String() string         { return fmt.Sprintf("TuplePat{%d elems}", len(p.Elems)) }

// WildcardPat matches anything without binding.
type WildcardPat struct {
	ID   NodeID
	Span position.Span
}

func (p *WildcardPat) GetID() NodeID          { return p.ID }
func (p *WildcardPat) GetSpan() position.Span { return p.Span }
func (p *WildcardPat) patNode()               {}
func (p *WildcardPat) String() string         { return "WildcardPat{_}" }

// =============================================================================
// Expressions
// =============================================================================

// LitKind classifies literal expressions.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitBool
	LitChar
	LitStr
)

// LiteralExpr is a literal value.
type LiteralExpr struct {
	ID    NodeID
	Kind  LitKind
	Value string
	Span  position.Span
}

func (e *LiteralExpr) GetID() NodeID          { return e.ID }
func (e *LiteralExpr) GetSpan() position.Span { return e.Span }
func (e *LiteralExpr) exprNode()              {}
func (e *LiteralExpr) String() string         { return fmt.Sprintf("LiteralExpr{%s}", e.Value) }

// PathExpr references a named definition or local binding.
type PathExpr struct {
	ID   NodeID
	Name string
	Def  DefID // resolved definition, NoDefID for locals
	Span position.Span
}

func (e *PathExpr) GetID() NodeID          { return e.ID }
func (e *PathExpr) GetSpan() position.Span { return e.Span }
func (e *PathExpr) exprNode()              {}
func (e *PathExpr) String() string         { return fmt.Sprintf("PathExpr{%s}", e.Name) }

// UnaryExpr applies a unary operator.
type UnaryExpr struct {
	ID      NodeID
	Op      UnaryOp
	Operand Expr
	Span    position.Span
}

func (e *UnaryExpr) GetID() NodeID          { return e.ID }
func (e *UnaryExpr) GetSpan() position.Span { return e.Span }
func (e *UnaryExpr) exprNode()              {}
func (e *UnaryExpr) String() string         { return fmt.Sprintf("UnaryExpr{%s}", e.Op) }

// BinaryExpr applies a binary operator.
type BinaryExpr struct {
	ID   NodeID
	Op   BinaryOp
	LHS  Expr
	RHS  Expr
	Span position.Span
}

func (e *BinaryExpr) GetID() NodeID          { return e.ID }
func (e *BinaryExpr) GetSpan() position.Span { return e.Span }
func (e *BinaryExpr) exprNode()              {}
func (e *BinaryExpr) String() string         { return fmt.Sprintf("BinaryExpr{%s}", e.Op) }

// AssignOpExpr is a compound assignment such as `a += b`.
type AssignOpExpr struct {
	ID   NodeID
	Op   BinaryOp
	LHS  Expr
	RHS  Expr
	Span position.Span
}

func (e *AssignOpExpr) GetID() NodeID          { return e.ID }
func (e *AssignOpExpr) GetSpan() position.Span { return e.Span }
func (e *AssignOpExpr) exprNode()              {}
func (e *AssignOpExpr) String() string         { return fmt.Sprintf("AssignOpExpr{%s=}", e.Op) }

// CallExpr is a function call.
type CallExpr struct {
	ID   NodeID
	Fn   Expr
	Args []Expr
	Span position.Span
}

func (e *CallExpr) GetID() NodeID          { return e.ID }
func (e *CallExpr) GetSpan() position.Span { return e.Span }
func (e *CallExpr) exprNode()              {}
func (e *CallExpr) String() string         { return fmt.Sprintf("CallExpr{%d args}", len(e.Args)) }

// MethodCallExpr is a method call `receiver.method(args)`. The resolved
// callee is recorded in the method table keyed by this node.
type MethodCallExpr struct {
	ID       NodeID
	Method   string
	Receiver Expr
	Args     []Expr
	Span     position.Span
}

func (e *MethodCallExpr) GetID() NodeID          { return e.ID }
func (e *MethodCallExpr) GetSpan() position.Span { return e.Span }
func (e *MethodCallExpr) exprNode()              {}
func (e *MethodCallExpr) String() string         { return fmt.Sprintf("MethodCallExpr{%s}", e.Method) }

// CastExpr is an explicit cast `expr as T`.
type CastExpr struct {
	ID      NodeID
	Operand Expr
	Span    position.Span
}

func (e *CastExpr) GetID() NodeID          { return e.ID }
func (e *CastExpr) GetSpan() position.Span { return e.Span }
func (e *CastExpr) exprNode()              {}
func (e *CastExpr) String() string         { return "CastExpr{}" }

// FieldInit is one field of a struct literal.
type FieldInit struct {
	Name string
	Expr Expr
}

// StructExpr is a struct literal, optionally with a functional-update
// base (`S { x: 1, ..base }`). The types of fields filled in from the
// base are recorded in the FRU field-type table keyed by this node.
type StructExpr struct {
	ID     NodeID
	Name   string
	Fields []FieldInit
	Base   Expr // optional functional-update base
	Span   position.Span
}

func (e *StructExpr) GetID() NodeID          { return e.ID }
func (e *StructExpr) GetSpan() position.Span { return e.Span }
func (e *StructExpr) exprNode()              {}
func (e *StructExpr) String() string         { return fmt.Sprintf("StructExpr{%s}", e.Name) }

// ClosureExpr is a closure. The closure's own arguments and body live in
// a separate Body referenced by BodyID; traversals descend into it at
// the definition point.
type ClosureExpr struct {
	ID   NodeID
	Body BodyID
	Span position.Span
}

func (e *ClosureExpr) GetID() NodeID          { return e.ID }
func (e *ClosureExpr) GetSpan() position.Span { return e.Span }
func (e *ClosureExpr) exprNode()              {}
func (e *ClosureExpr) String() string         { return fmt.Sprintf("ClosureExpr{body %d}", e.Body) }

// BlockExpr is a block in expression position.
type BlockExpr struct {
	ID    NodeID
	Block *Block
	Span  position.Span
}

func (e *BlockExpr) GetID() NodeID          { return e.ID }
func (e *BlockExpr) GetSpan() position.Span { return e.Span }
func (e *BlockExpr) exprNode()              {}
func (e *BlockExpr) String() string         { return "BlockExpr{}" }

// FieldExpr is a field access `base.field`.
type FieldExpr struct {
	ID   NodeID
	Base Expr
	Name string
	Span position.Span
}

func (e *FieldExpr) GetID() NodeID          { return e.ID }
func (e *FieldExpr) GetSpan() position.Span { return e.Span }
func (e *FieldExpr) exprNode()              {}
func (e *FieldExpr) String() string         { return fmt.Sprintf("FieldExpr{.%s}", e.Name) }

// IndexExpr is an index access `base[index]`.
type IndexExpr struct {
	ID    NodeID
	Base  Expr
	Index Expr
	Span  position.Span
}

func (e *IndexExpr) GetID() NodeID          { return e.ID }
func (e *IndexExpr) GetSpan() position.Span { return e.Span }
func (e *IndexExpr) exprNode()              {}
func (e *IndexExpr) String() string         { return "IndexExpr{}" }
