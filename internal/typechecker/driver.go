package typechecker

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rowan-lang/rowan/internal/diagnostic"
	"github.com/rowan-lang/rowan/internal/hir"
	"github.com/rowan-lang/rowan/internal/types"
)

// CheckedBody pairs a body with the inference context that checked it,
// ready for finalization.
type CheckedBody struct {
	Body *hir.Body
	Icx  *InferCtx
}

// Driver finalizes checked bodies into their immutable tables. Bodies
// are independent once checked, so finalization runs in parallel.
type Driver struct {
	Arena       *types.Arena
	Reporter    *diagnostic.Reporter
	Parallelism int

	mu     sync.Mutex
	tables map[hir.DefID]*Tables
}

// NewDriver creates a driver writing into the given arena and reporter.
func NewDriver(arena *types.Arena, reporter *diagnostic.Reporter) *Driver {
	return &Driver{
		Arena:    arena,
		Reporter: reporter,
		tables:   make(map[hir.DefID]*Tables),
	}
}

// FinalizeBodies runs writeback for every checked body and records the
// result under the body's owner. The first failure cancels the rest.
func (d *Driver) FinalizeBodies(ctx context.Context, checked []CheckedBody) error {
	g, ctx := errgroup.WithContext(ctx)
	if d.Parallelism > 0 {
		g.SetLimit(d.Parallelism)
	}

	for _, cb := range checked {
		cb := cb
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tables := cb.Icx.ResolveTypeVarsInBody(cb.Body)
			d.mu.Lock()
			d.tables[cb.Body.Owner] = tables
			d.mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}

// Tables returns the finalized tables for a definition.
func (d *Driver) Tables(def hir.DefID) (*Tables, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.tables[def]
	return t, ok
}

// Owners returns the definitions with finalized tables, sorted.
func (d *Driver) Owners() []hir.DefID {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]hir.DefID, 0, len(d.tables))
	for def := range d.tables {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
