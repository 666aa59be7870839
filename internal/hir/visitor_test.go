package hir

import (
	"reflect"
	"testing"

	"github.com/rowan-lang/rowan/internal/position"
)

// orderVisitor records the node IDs it sees, recursing everywhere.
type orderVisitor struct {
	order []NodeID
}

func (v *orderVisitor) VisitStmt(s Stmt) {
	v.order = append(v.order, s.GetID())
	WalkStmt(v, s)
}

func (v *orderVisitor) VisitExpr(e Expr) {
	v.order = append(v.order, e.GetID())
	WalkExpr(v, e)
}

func (v *orderVisitor) VisitBlock(b *Block) {
	v.order = append(v.order, b.ID)
	WalkBlock(v, b)
}

func (v *orderVisitor) VisitPat(p Pat) {
	v.order = append(v.order, p.GetID())
	WalkPat(v, p)
}

func (v *orderVisitor) VisitLocal(l *Local) {
	v.order = append(v.order, l.ID)
	WalkLocal(v, l)
}

func sp() position.Span {
	return position.NewSpan(
		position.Position{Filename: "test.rw", Line: 1, Column: 1, Offset: 0},
		position.Position{Filename: "test.rw", Line: 1, Column: 2, Offset: 1},
	)
}

func TestWalkBodyOrder(t *testing.T) {
	// fn f(a, (b, _)) { let v = a + 1; v }
	body := &Body{
		ID: 1,
		Arguments: []*Arg{
			{ID: 1, Pat: &BindingPat{ID: 2, Name: "a", Span: sp()}, Span: sp()},
			{ID: 3, Pat: &TuplePat{ID: 4, Elems: []Pat{
				&BindingPat{ID: 5, Name: "b", Span: sp()},
				&WildcardPat{ID: 6, Span: sp()},
			}, Span: sp()}, Span: sp()},
		},
		Value: &BlockExpr{ID: 7, Block: &Block{
			ID: 8,
			Stmts: []Stmt{&LetStmt{ID: 9, Span: sp(), Local: &Local{
				ID:  10,
				Pat: &BindingPat{ID: 11, Name: "v", Span: sp()},
				Init: &BinaryExpr{ID: 12, Op: OpAdd,
					LHS:  &PathExpr{ID: 13, Name: "a", Span: sp()},
					RHS:  &LiteralExpr{ID: 14, Kind: LitInt, Value: "1", Span: sp()},
					Span: sp()},
				Span: sp(),
			}}},
			Expr: &PathExpr{ID: 15, Name: "v", Span: sp()},
			Span: sp(),
		}, Span: sp()},
	}

	v := &orderVisitor{}
	WalkBody(v, body)

	want := []NodeID{2, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	if !reflect.DeepEqual(v.order, want) {
		t.Errorf("walk order = %v, want %v", v.order, want)
	}
}

func TestWalkExprChildren(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want []NodeID
	}{
		{
			"call visits callee then args",
			&CallExpr{ID: 1,
				Fn:   &PathExpr{ID: 2, Name: "f", Span: sp()},
				Args: []Expr{&LiteralExpr{ID: 3, Span: sp()}, &LiteralExpr{ID: 4, Span: sp()}},
				Span: sp()},
			[]NodeID{2, 3, 4},
		},
		{
			"method call visits receiver then args",
			&MethodCallExpr{ID: 1, Method: "len",
				Receiver: &PathExpr{ID: 2, Name: "v", Span: sp()},
				Args:     []Expr{&LiteralExpr{ID: 3, Span: sp()}},
				Span:     sp()},
			[]NodeID{2, 3},
		},
		{
			"struct literal visits fields then base",
			&StructExpr{ID: 1, Name: "S",
				Fields: []FieldInit{{Name: "x", Expr: &LiteralExpr{ID: 2, Span: sp()}}},
				Base:   &PathExpr{ID: 3, Name: "base", Span: sp()},
				Span:   sp()},
			[]NodeID{2, 3},
		},
		{
			"index visits base then index",
			&IndexExpr{ID: 1,
				Base:  &PathExpr{ID: 2, Name: "v", Span: sp()},
				Index: &LiteralExpr{ID: 3, Span: sp()},
				Span:  sp()},
			[]NodeID{2, 3},
		},
		{
			"closure bodies are not walked implicitly",
			&ClosureExpr{ID: 1, Body: 2, Span: sp()},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &orderVisitor{}
			WalkExpr(v, tt.expr)
			if !reflect.DeepEqual(v.order, tt.want) {
				t.Errorf("children = %v, want %v", v.order, tt.want)
			}
		})
	}
}

func TestBinaryOpClassification(t *testing.T) {
	byValue := []BinaryOp{OpAdd, OpSub, OpMul, OpDiv, OpRem, OpBitXor, OpBitAnd, OpBitOr, OpShl, OpShr}
	byRef := []BinaryOp{OpAnd, OpOr, OpEq, OpNe, OpLt, OpLe, OpGt, OpGe}

	for _, op := range byValue {
		if !op.IsByValue() {
			t.Errorf("%s should be by-value", op)
		}
	}
	for _, op := range byRef {
		if op.IsByValue() {
			t.Errorf("%s should not be by-value", op)
		}
	}
	for _, op := range []BinaryOp{OpEq, OpNe, OpLt, OpLe, OpGt, OpGe} {
		if !op.IsComparison() {
			t.Errorf("%s should be a comparison", op)
		}
	}
	if OpAdd.IsComparison() {
		t.Error("+ should not be a comparison")
	}
}

func TestBodyMap(t *testing.T) {
	m := NewMap()
	body := &Body{ID: 3, Owner: 9}
	m.AddBody(body)

	if got := m.Body(3); got != body {
		t.Error("registered body not returned")
	}
	if got := m.Body(99); got != nil {
		t.Error("unregistered body should be nil")
	}
}

func TestIDValidity(t *testing.T) {
	if NoNodeID.IsValid() || NoDefID.IsValid() || NoBodyID.IsValid() {
		t.Error("zero IDs must be invalid")
	}
	if !NodeID(1).IsValid() || !DefID(1).IsValid() || !BodyID(1).IsValid() {
		t.Error("non-zero IDs must be valid")
	}
}
