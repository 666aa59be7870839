// The writeback pass: walks a fully-inferred function body, replaces
// every remaining type/region inference variable with its solution, and
// freezes the per-function scratch facts into the immutable final
// tables. From here on the results are global and shared; nothing may
// mutate them.

package typechecker

import (
	"fmt"

	"github.com/rowan-lang/rowan/internal/diagnostic"
	"github.com/rowan-lang/rowan/internal/hir"
	"github.com/rowan-lang/rowan/internal/position"
	"github.com/rowan-lang/rowan/internal/types"
)

// ResolveTypeVarsInBody runs writeback for one body and returns its
// final tables. The scratch tables are drained in the process.
func (icx *InferCtx) ResolveTypeVarsInBody(body *hir.Body) *Tables {
	wbcx := newWritebackCtx(icx, body)

	for _, arg := range wbcx.body.Arguments {
		wbcx.visitNodeID(arg.Pat.GetSpan(), arg.ID)
	}
	wbcx.visitBody(wbcx.body)
	wbcx.visitUpvarCaptures()
	wbcx.visitClosures()
	wbcx.visitLiberatedFnSigs()
	wbcx.visitFruFieldTypes()
	wbcx.visitAnonTypes()
	wbcx.visitCastKinds()
	wbcx.visitLints()
	wbcx.visitFreeRegionMap()

	// The used-import set moves wholesale: it carries no inference
	// content and is not keyed by node.
	wbcx.tables.usedTraitImports = icx.Scratch.UsedTraitImports
	icx.Scratch.UsedTraitImports = make(map[hir.DefID]struct{})

	wbcx.tables.taintedByErrors = icx.IsTaintedByErrors()

	icx.debugf("writeback complete for body %d: %d node types", body.ID, wbcx.tables.NodeCount())

	return wbcx.tables
}

// writebackCtx walks the body, draining the fn-specific scratch tables
// and writing resolved results into the final tables. Here and there it
// applies a few ad-hoc fixes that were not convenient to do elsewhere.
type writebackCtx struct {
	icx    *InferCtx
	tables *Tables
	body   *hir.Body

	// freeToBound maps the function's free regions to their early-bound
	// forms visible outside the function. Only populated when the body
	// has opaque result types to externalize.
	freeToBound map[hir.DefID]types.Region
}

func newWritebackCtx(icx *InferCtx, body *hir.Body) *writebackCtx {
	wbcx := &writebackCtx{
		icx:         icx,
		tables:      newTables(),
		body:        body,
		freeToBound: make(map[hir.DefID]types.Region),
	}

	// Only build the reverse mapping if opaque types are in play.
	if len(icx.Scratch.AnonTypes) == 0 {
		return wbcx
	}

	for i, r := range icx.ParamEnv.FreeRegions {
		free, ok := r.(types.ReFree)
		if !ok {
			panic(diagnostic.InternalError(position.Span{},
				"%s is not a free region for an early-bound lifetime", r))
		}
		wbcx.freeToBound[free.BoundDef] = types.ReEarlyBound{
			Index: uint32(i),
			Name:  free.Name,
		}
	}

	return wbcx
}

func (wbcx *writebackCtx) writeTyToTables(id hir.NodeID, ty types.Ty) {
	wbcx.icx.debugf("node %d has type %s", id, ty)
	if ty.NeedsInfer() {
		panic(diagnostic.InternalError(position.Span{},
			"writeback: type `%s` for node %d still needs inference", ty, id))
	}
	wbcx.tables.nodeTypes[id] = ty
}

// =============================================================================
// Scalar operator fix-up
// =============================================================================

// fixScalarBuiltinExpr clears spurious operator-overload bookkeeping.
// During checking, every operator is treated as potentially overloaded;
// once we can see that something like `a + b` operates on scalars, the
// overload entry must go so later phases do not lower it as a call.
func (wbcx *writebackCtx) fixScalarBuiltinExpr(e hir.Expr) {
	switch e := e.(type) {
	case *hir.UnaryExpr:
		if e.Op != hir.UnNeg && e.Op != hir.UnNot {
			return
		}
		innerTy := wbcx.icx.ResolveIfPossible(wbcx.icx.NodeType(e.Operand.GetID()))
		if types.IsScalar(innerTy) {
			delete(wbcx.icx.Scratch.MethodMap, ExprMethodCall(e.ID))
		}

	case *hir.BinaryExpr:
		lhsTy := wbcx.icx.ResolveIfPossible(wbcx.icx.NodeType(e.LHS.GetID()))
		rhsTy := wbcx.icx.ResolveIfPossible(wbcx.icx.NodeType(e.RHS.GetID()))

		if types.IsScalar(lhsTy) && types.IsScalar(rhsTy) {
			delete(wbcx.icx.Scratch.MethodMap, ExprMethodCall(e.ID))

			// Weird but true: the by-ref binops put an adjustment on the
			// lhs but not the rhs; the adjustment for rhs is kind of
			// baked into the system.
			if !e.Op.IsByValue() {
				delete(wbcx.icx.Scratch.Adjustments, e.LHS.GetID())
			}
		}

	case *hir.AssignOpExpr:
		lhsTy := wbcx.icx.ResolveIfPossible(wbcx.icx.NodeType(e.LHS.GetID()))
		rhsTy := wbcx.icx.ResolveIfPossible(wbcx.icx.NodeType(e.RHS.GetID()))

		if types.IsScalar(lhsTy) && types.IsScalar(rhsTy) {
			delete(wbcx.icx.Scratch.MethodMap, ExprMethodCall(e.ID))
			delete(wbcx.icx.Scratch.Adjustments, e.LHS.GetID())
		}
	}
}

// =============================================================================
// Tree walk
// =============================================================================

// The writebackCtx is the visitor that drives the traversal. It
// delegates the heavy lifting to visitNodeID and the resolve helpers
// below.

func (wbcx *writebackCtx) VisitStmt(s hir.Stmt) {
	wbcx.visitNodeID(s.GetSpan(), s.GetID())
	hir.WalkStmt(wbcx, s)
}

func (wbcx *writebackCtx) VisitExpr(e hir.Expr) {
	wbcx.fixScalarBuiltinExpr(e)

	wbcx.visitNodeID(e.GetSpan(), e.GetID())
	wbcx.visitMethodMapEntry(e.GetSpan(), ExprMethodCall(e.GetID()))

	if closure, ok := e.(*hir.ClosureExpr); ok {
		body := wbcx.icx.HIR.Body(closure.Body)
		if body == nil {
			panic(diagnostic.InternalError(e.GetSpan(),
				"writeback: no body registered for closure %d", closure.Body))
		}
		for _, arg := range body.Arguments {
			wbcx.visitNodeID(e.GetSpan(), arg.ID)
		}
		wbcx.visitBody(body)
	}

	hir.WalkExpr(wbcx, e)
}

func (wbcx *writebackCtx) VisitBlock(b *hir.Block) {
	wbcx.visitNodeID(b.Span, b.ID)
	hir.WalkBlock(wbcx, b)
}

func (wbcx *writebackCtx) VisitPat(p hir.Pat) {
	wbcx.visitNodeID(p.GetSpan(), p.GetID())
	hir.WalkPat(wbcx, p)
}

func (wbcx *writebackCtx) VisitLocal(l *hir.Local) {
	// Children first: the local's own type comes from the dedicated
	// local-type query, which exists independently of the initializer.
	hir.WalkLocal(wbcx, l)

	varTy := wbcx.icx.LocalType(l.Span, l.ID)
	varTy = wbcx.resolveTy(varTy, l.Span)
	wbcx.writeTyToTables(l.ID, varTy)
}

func (wbcx *writebackCtx) visitBody(body *hir.Body) {
	hir.WalkBody(wbcx, body)
}

// =============================================================================
// Per-node transfer
// =============================================================================

func (wbcx *writebackCtx) visitNodeID(span position.Span, id hir.NodeID) {
	// Resolve any coercions attached to the node.
	wbcx.visitAdjustments(span, id)

	// Resolve the node's own type.
	ty := wbcx.icx.NodeType(id)
	delete(wbcx.icx.Scratch.NodeTypes, id)
	ty = wbcx.resolveTy(ty, span)
	wbcx.writeTyToTables(id, ty)

	// Resolve any substitutions. Identity substitutions are dropped:
	// later phases treat "absent" as "identity".
	wbcx.icx.SubstsFor(id, func(substs types.Substs) {
		resolved := wbcx.resolveSubsts(substs, span)
		if resolved.IsNoop() {
			return
		}
		if resolved.NeedsInfer() {
			panic(diagnostic.InternalError(span,
				"writeback: substs `%s` for node %d still need inference", resolved, id))
		}
		wbcx.icx.debugf("node %d substs: %s", id, resolved)
		wbcx.tables.nodeSubsts[id] = resolved
	})
}

func (wbcx *writebackCtx) visitAdjustments(span position.Span, id hir.NodeID) {
	adj, ok := wbcx.icx.Scratch.Adjustments[id]
	if !ok {
		return
	}
	delete(wbcx.icx.Scratch.Adjustments, id)

	// Each autoderef step may have invoked an overloaded deref; those
	// per-step resolutions transfer through the method path first.
	if adj.Kind == types.AdjustDerefRef {
		for step := 0; step < adj.Autoderefs; step++ {
			wbcx.visitMethodMapEntry(span, AutoderefMethodCall(id, uint32(step)))
		}
	}

	resolved := wbcx.resolveAdjustment(adj, span)
	wbcx.icx.debugf("node %d adjustment: %s", id, resolved)
	wbcx.tables.adjustments[id] = resolved
}

func (wbcx *writebackCtx) visitMethodMapEntry(span position.Span, mc MethodCall) {
	method, ok := wbcx.icx.Scratch.MethodMap[mc]
	if !ok {
		return
	}
	delete(wbcx.icx.Scratch.MethodMap, mc)

	// The definition identity was decided during checking; only the
	// callee type and substitutions can carry inference variables.
	wbcx.tables.methodMap[mc] = MethodCallee{
		Def:    method.Def,
		Ty:     wbcx.resolveTy(method.Ty, span),
		Substs: wbcx.resolveSubsts(method.Substs, span),
	}
}

// =============================================================================
// Whole-function sweeps
// =============================================================================

func (wbcx *writebackCtx) visitUpvarCaptures() {
	for id, capture := range wbcx.icx.Scratch.UpvarCaptures {
		resolved := capture
		if capture.Kind == types.CaptureByRef {
			resolved.Borrow.Region = wbcx.resolveRegion(capture.Borrow.Region)
		}
		wbcx.icx.debugf("upvar %s resolved to %s", id, resolved)
		wbcx.tables.upvarCaptures[id] = resolved
	}
	wbcx.icx.Scratch.UpvarCaptures = make(map[hir.UpvarID]types.UpvarCapture)
}

func (wbcx *writebackCtx) visitClosures() {
	for id, sig := range wbcx.icx.Scratch.ClosureTys {
		wbcx.tables.closureTys[id] = wbcx.resolveFnSig(sig, position.Span{})
	}
	wbcx.icx.Scratch.ClosureTys = make(map[hir.NodeID]types.FnSig)

	// Closure kinds are concrete enums decided during checking; they are
	// copied through unresolved.
	for id, kind := range wbcx.icx.Scratch.ClosureKinds {
		wbcx.tables.closureKinds[id] = kind
	}
	wbcx.icx.Scratch.ClosureKinds = make(map[hir.NodeID]types.ClosureKind)
}

func (wbcx *writebackCtx) visitLiberatedFnSigs() {
	for id, sig := range wbcx.icx.Scratch.LiberatedFnSigs {
		wbcx.tables.liberatedFnSigs[id] = wbcx.resolveFnSig(sig, position.Span{})
	}
	wbcx.icx.Scratch.LiberatedFnSigs = make(map[hir.NodeID]types.FnSig)
}

func (wbcx *writebackCtx) visitFruFieldTypes() {
	for id, ftys := range wbcx.icx.Scratch.FruFieldTypes {
		resolved := make([]types.Ty, len(ftys))
		for i, fty := range ftys {
			resolved[i] = wbcx.resolveTy(fty, position.Span{})
		}
		wbcx.tables.fruFieldTypes[id] = resolved
	}
	wbcx.icx.Scratch.FruFieldTypes = make(map[hir.NodeID][]types.Ty)
}

func (wbcx *writebackCtx) visitCastKinds() {
	for id, kind := range wbcx.icx.Scratch.CastKinds {
		wbcx.tables.castKinds[id] = kind
	}
	wbcx.icx.Scratch.CastKinds = make(map[hir.NodeID]types.CastKind)
}

func (wbcx *writebackCtx) visitLints() {
	lints := wbcx.icx.Scratch.Lints
	wbcx.icx.Scratch.Lints = nil

	for i := range lints {
		if lvl, ok := wbcx.icx.LintLevels[lints[i].Diag.Code]; ok {
			lints[i].Diag.Level = lvl
		}
	}
	wbcx.tables.lints = lints
}

func (wbcx *writebackCtx) visitFreeRegionMap() {
	resolver := &resolver{icx: wbcx.icx}
	wbcx.tables.freeRegionMap = wbcx.icx.Scratch.FreeRegionMap.Fold(resolver)
	wbcx.icx.Scratch.FreeRegionMap = types.FreeRegionMap{}
}

// =============================================================================
// Opaque-type externalization
// =============================================================================

// visitAnonTypes converts each opaque-position type from the form valid
// inside the function into one valid outside it, by replacing free
// regions with their early-bound counterparts. Runs after the main walk
// and overwrites the node-type entry written there.
func (wbcx *writebackCtx) visitAnonTypes() {
	for id, anon := range wbcx.icx.Scratch.AnonTypes {
		insideTy := wbcx.resolveTy(anon.Concrete, anon.Span)

		outsideTy := types.FoldRegionsIn(insideTy, func(r types.Region) types.Region {
			switch r := r.(type) {
			case types.ReStatic, types.ReEmpty:
				// Valid everywhere.
				return r

			case types.ReFree:
				if bound, ok := wbcx.freeToBound[r.BoundDef]; ok {
					return bound
				}
				wbcx.reportOpaqueLifetime(anon.Span, r, insideTy)
				return types.StaticRegion

			case types.ReEarlyBound, types.ReLateBound, types.ReScope, types.ReSkolemized:
				wbcx.reportOpaqueLifetime(anon.Span, r, insideTy)
				return types.StaticRegion

			default:
				// ReVar and ReErased should have been eliminated before
				// this point.
				panic(diagnostic.InternalError(anon.Span,
					"invalid region in opaque type: %s", r))
			}
		})

		lifted, ok := wbcx.icx.Arena.LiftTy(outsideTy)
		if !ok {
			panic(diagnostic.InternalError(anon.Span,
				"writeback: `%s` missing from the global type context", outsideTy))
		}
		wbcx.tables.nodeTypes[id] = lifted
	}
	wbcx.icx.Scratch.AnonTypes = make(map[hir.NodeID]AnonType)
}

func (wbcx *writebackCtx) reportOpaqueLifetime(span position.Span, r types.Region, ty types.Ty) {
	wbcx.icx.ReportError(span, CodeOpaqueLifetime, fmt.Sprintf(
		"only named lifetimes are allowed in opaque return types, but `%s` was found in the type `%s`",
		r, ty))
}

// =============================================================================
// Resolution helpers
// =============================================================================

// resolver is the folding engine that detects unresolved inference
// variables. Failure substitutes a sentinel (the error type, or the
// static region) and keeps folding, so one ambiguity never cascades.
type resolver struct {
	icx  *InferCtx
	span position.Span
}

func (r *resolver) FoldTy(t types.Ty) types.Ty {
	resolved, err := r.icx.FullyResolve(t)
	if err != nil {
		r.icx.debugf("resolver: type `%s` not fully resolvable", t)
		r.reportError(t)
		return types.ErrTy
	}
	return resolved
}

func (r *resolver) FoldRegion(reg types.Region) types.Region {
	resolved, err := r.icx.FullyResolveRegion(reg)
	if err != nil {
		// Regions have no dedicated diagnostic channel here.
		return types.StaticRegion
	}
	return resolved
}

// reportError flags the ambiguity unless this function is already
// tainted by errors, in which case more "need type info" noise helps
// nobody. Errors from other bodies never suppress the report.
func (r *resolver) reportError(t types.Ty) {
	if !r.icx.IsTaintedByErrors() {
		r.icx.NeedTypeInfo(r.span, t)
	}
}

func (wbcx *writebackCtx) resolveTy(t types.Ty, span position.Span) types.Ty {
	folded := (&resolver{icx: wbcx.icx, span: span}).FoldTy(t)
	lifted, ok := wbcx.icx.Arena.LiftTy(folded)
	if !ok {
		panic(diagnostic.InternalError(span,
			"writeback: `%s` missing from the global type context", folded))
	}
	return lifted
}

func (wbcx *writebackCtx) resolveRegion(reg types.Region) types.Region {
	folded := (&resolver{icx: wbcx.icx}).FoldRegion(reg)
	lifted, ok := wbcx.icx.Arena.LiftRegion(folded)
	if !ok {
		panic(diagnostic.InternalError(position.Span{},
			"writeback: region `%s` missing from the global type context", folded))
	}
	return lifted
}

func (wbcx *writebackCtx) resolveSubsts(s types.Substs, span position.Span) types.Substs {
	folded := s.Fold(&resolver{icx: wbcx.icx, span: span})
	lifted, ok := wbcx.icx.Arena.LiftSubsts(folded)
	if !ok {
		panic(diagnostic.InternalError(span,
			"writeback: substs `%s` missing from the global type context", folded))
	}
	return lifted
}

func (wbcx *writebackCtx) resolveAdjustment(adj types.Adjustment, span position.Span) types.Adjustment {
	folded := adj.Fold(&resolver{icx: wbcx.icx, span: span})
	if folded.NeedsInfer() {
		panic(diagnostic.InternalError(span,
			"writeback: adjustment `%s` missing from the global type context", folded))
	}
	folded.Target = wbcx.icx.Arena.Intern(folded.Target)
	return folded
}

func (wbcx *writebackCtx) resolveFnSig(sig types.FnSig, span position.Span) types.FnSig {
	folded := sig.Fold(&resolver{icx: wbcx.icx, span: span})
	if folded.NeedsInfer() {
		panic(diagnostic.InternalError(span,
			"writeback: signature `%s` missing from the global type context", folded))
	}
	return folded
}
