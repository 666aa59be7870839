package typechecker

import (
	"context"
	"fmt"
	"testing"

	"github.com/rowan-lang/rowan/internal/diagnostic"
	"github.com/rowan-lang/rowan/internal/hir"
	"github.com/rowan-lang/rowan/internal/types"
)

func TestFinalizeBodies(t *testing.T) {
	arena := types.NewArena()
	reporter := diagnostic.NewReporter()
	hirMap := hir.NewMap()

	var checked []CheckedBody
	for i := 0; i < 8; i++ {
		id := hir.NodeID(100*i + 1)
		body := &hir.Body{
			ID:    hir.BodyID(i + 1),
			Owner: hir.DefID(i + 1),
			Value: &hir.LiteralExpr{ID: id, Kind: hir.LitInt, Value: fmt.Sprint(i), Span: testSpan(i + 1)},
		}
		hirMap.AddBody(body)

		icx := NewInferCtx(arena, hirMap, body, reporter)
		v := icx.NewTyVar()
		setTy(icx, id, v)
		icx.SolveTy(v.ID, types.I64Ty)
		checked = append(checked, CheckedBody{Body: body, Icx: icx})
	}

	driver := NewDriver(arena, reporter)
	driver.Parallelism = 4
	if err := driver.FinalizeBodies(context.Background(), checked); err != nil {
		t.Fatalf("FinalizeBodies failed: %v", err)
	}

	owners := driver.Owners()
	if len(owners) != 8 {
		t.Fatalf("finalized %d bodies, want 8", len(owners))
	}
	for i, def := range owners {
		if def != hir.DefID(i+1) {
			t.Errorf("owners[%d] = %d, want %d", i, def, i+1)
		}
		tables, ok := driver.Tables(def)
		if !ok {
			t.Fatalf("no tables for def %d", def)
		}
		got, ok := tables.NodeType(hir.NodeID(100*i + 1))
		if !ok || got != types.Ty(types.I64Ty) {
			t.Errorf("def %d node type = %s, want i64", def, got)
		}
	}
}

func TestFinalizeBodiesCanceled(t *testing.T) {
	arena := types.NewArena()
	reporter := diagnostic.NewReporter()

	body := &hir.Body{
		ID:    1,
		Owner: 1,
		Value: &hir.LiteralExpr{ID: 1, Kind: hir.LitInt, Value: "0", Span: testSpan(1)},
	}
	icx := NewInferCtx(arena, hir.NewMap(), body, reporter)
	setTy(icx, 1, types.I32Ty)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver := NewDriver(arena, reporter)
	if err := driver.FinalizeBodies(ctx, []CheckedBody{{Body: body, Icx: icx}}); err == nil {
		t.Fatal("expected an error from a canceled context")
	}
}
