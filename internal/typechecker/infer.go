// Package typechecker implements type checking for Rowan function
// bodies: the inference context that accumulates per-node facts while a
// body is checked, and the writeback pass that freezes those facts into
// the immutable tables consumed by every later phase.
package typechecker

import (
	"errors"
	"fmt"

	"github.com/rowan-lang/rowan/internal/diagnostic"
	"github.com/rowan-lang/rowan/internal/hir"
	"github.com/rowan-lang/rowan/internal/position"
	"github.com/rowan-lang/rowan/internal/types"
)

// ErrStillAmbiguous is returned by the fully-resolve queries when an
// inference variable has no recorded solution.
var ErrStillAmbiguous = errors.New("inference variable still ambiguous")

// Diagnostic codes emitted by this package.
const (
	// CodeNeedTypeInfo is reported when a type is still ambiguous after
	// inference has finished.
	CodeNeedTypeInfo = "E0282"
	// CodeOpaqueLifetime is reported when an opaque return type captures
	// a lifetime that is not nameable outside the function.
	CodeOpaqueLifetime = "E0564"
)

// ParamEnv describes the generic environment of the function being
// checked. FreeRegions holds, per early-bound lifetime parameter index,
// the free region that parameter manifests as inside the body.
type ParamEnv struct {
	FreeRegions []types.Region
}

// InferCtx is the per-function inference context. It owns the scratch
// tables for the body being checked and answers resolution queries
// against the solver's accumulated solutions.
//
// The context is single-threaded: one body, one InferCtx, checked to
// completion before writeback runs.
type InferCtx struct {
	Arena    *types.Arena
	HIR      *hir.Map
	Body     *hir.Body
	Reporter *diagnostic.Reporter
	Scratch  *ScratchTables
	ParamEnv ParamEnv

	// LintLevels overrides lint severities by code during the lint
	// transfer. Usually populated from configuration.
	LintLevels map[string]diagnostic.Level

	tyVarSolutions     map[types.TyVarID]types.Ty
	regionVarSolutions map[types.RegionVarID]types.Region
	localTys           map[hir.NodeID]types.Ty
	nextTyVar          types.TyVarID
	nextRegionVar      types.RegionVarID
	// errCountOnCreation snapshots the reporter when this context is
	// created, so taint tracks errors from checking this body only. The
	// reporter is shared across bodies.
	errCountOnCreation int
	debugMode          bool
}

// NewInferCtx creates an inference context for one body.
func NewInferCtx(arena *types.Arena, hirMap *hir.Map, body *hir.Body, reporter *diagnostic.Reporter) *InferCtx {
	return &InferCtx{
		Arena:              arena,
		HIR:                hirMap,
		Body:               body,
		Reporter:           reporter,
		Scratch:            NewScratchTables(),
		tyVarSolutions:     make(map[types.TyVarID]types.Ty),
		regionVarSolutions: make(map[types.RegionVarID]types.Region),
		localTys:           make(map[hir.NodeID]types.Ty),
		errCountOnCreation: reporter.ErrorCount(),
	}
}

// SetDebugMode enables or disables trace output.
func (icx *InferCtx) SetDebugMode(enabled bool) {
	icx.debugMode = enabled
}

func (icx *InferCtx) debugf(format string, args ...interface{}) {
	if icx.debugMode {
		fmt.Printf("typechecker: "+format+"\n", args...)
	}
}

// NewTyVar allocates a fresh type inference variable.
func (icx *InferCtx) NewTyVar() types.TyInfer {
	icx.nextTyVar++
	return types.TyInfer{ID: icx.nextTyVar}
}

// NewRegionVar allocates a fresh region inference variable.
func (icx *InferCtx) NewRegionVar() types.ReVar {
	icx.nextRegionVar++
	return types.ReVar{ID: icx.nextRegionVar}
}

// SolveTy records the solver's solution for a type variable.
func (icx *InferCtx) SolveTy(id types.TyVarID, ty types.Ty) {
	icx.tyVarSolutions[id] = ty
	icx.debugf("solved ?%d = %s", id, ty)
}

// SolveRegion records the solver's solution for a region variable.
func (icx *InferCtx) SolveRegion(id types.RegionVarID, r types.Region) {
	icx.regionVarSolutions[id] = r
}

// SetLocalType records the declared/inferred type of a local variable.
// Locals are addressable through LocalType before any initializing
// expression has been checked.
func (icx *InferCtx) SetLocalType(id hir.NodeID, ty types.Ty) {
	icx.localTys[id] = ty
}

// LocalType returns the type of a local variable declaration. A missing
// entry is an internal consistency error: checking records every local
// before writeback runs.
func (icx *InferCtx) LocalType(span position.Span, id hir.NodeID) types.Ty {
	if ty, ok := icx.localTys[id]; ok {
		return ty
	}
	panic(diagnostic.InternalError(span, "no type for local %d", id))
}

// NodeType returns the scratch-table inferred type for a node. A missing
// entry is an internal consistency error.
func (icx *InferCtx) NodeType(id hir.NodeID) types.Ty {
	if ty, ok := icx.Scratch.NodeTypes[id]; ok {
		return ty
	}
	panic(diagnostic.InternalError(position.Span{}, "no type for node %d", id))
}

// SubstsFor invokes fn with the node's substitution list if one was
// recorded, removing it from scratch storage.
func (icx *InferCtx) SubstsFor(id hir.NodeID, fn func(types.Substs)) {
	if s, ok := icx.Scratch.NodeSubsts[id]; ok {
		delete(icx.Scratch.NodeSubsts, id)
		fn(s)
	}
}

// IsTaintedByErrors reports whether checking this function hit an
// error: only errors reported after the context was created count, so
// failures in other bodies never taint this one. Writeback suppresses
// redundant ambiguity diagnostics for tainted functions.
func (icx *InferCtx) IsTaintedByErrors() bool {
	return icx.Reporter.ErrorCount() > icx.errCountOnCreation
}

// NeedTypeInfo reports the "type annotations needed" diagnostic for a
// type that survived inference unresolved.
func (icx *InferCtx) NeedTypeInfo(span position.Span, t types.Ty) {
	icx.Reporter.Report(diagnostic.Diagnostic{
		Code:     CodeNeedTypeInfo,
		Message:  fmt.Sprintf("type annotations needed: cannot infer the type `%s`", t),
		Span:     span,
		Level:    diagnostic.LevelError,
		Category: diagnostic.CategoryType,
	})
}

// ReportError reports an error-level diagnostic with a stable code.
func (icx *InferCtx) ReportError(span position.Span, code, message string) {
	icx.Reporter.Error(span, code, message)
}

// =============================================================================
// Resolution queries
// =============================================================================

// fullResolver substitutes solved inference variables throughout a
// value, recording the first unresolved variable it meets.
type fullResolver struct {
	icx *InferCtx
	err error
}

func (r *fullResolver) FoldTy(t types.Ty) types.Ty {
	if inf, ok := t.(types.TyInfer); ok {
		sol, ok := r.icx.tyVarSolutions[inf.ID]
		if !ok {
			if r.err == nil {
				r.err = fmt.Errorf("%w: %s", ErrStillAmbiguous, inf)
			}
			return t
		}
		// Solutions may themselves mention variables.
		return r.FoldTy(sol)
	}
	return t.SuperFold(r)
}

func (r *fullResolver) FoldRegion(reg types.Region) types.Region {
	if v, ok := reg.(types.ReVar); ok {
		sol, ok := r.icx.regionVarSolutions[v.ID]
		if !ok {
			if r.err == nil {
				r.err = fmt.Errorf("%w: %s", ErrStillAmbiguous, v)
			}
			return reg
		}
		return r.FoldRegion(sol)
	}
	return reg
}

// FullyResolve replaces every inference variable in t with its solution.
// It fails with ErrStillAmbiguous if any variable has no solution; the
// partially resolved value is not returned.
func (icx *InferCtx) FullyResolve(t types.Ty) (types.Ty, error) {
	r := &fullResolver{icx: icx}
	out := r.FoldTy(t)
	if r.err != nil {
		return nil, r.err
	}
	return out, nil
}

// FullyResolveRegion is FullyResolve for a single region.
func (icx *InferCtx) FullyResolveRegion(reg types.Region) (types.Region, error) {
	r := &fullResolver{icx: icx}
	out := r.FoldRegion(reg)
	if r.err != nil {
		return nil, r.err
	}
	return out, nil
}

// bestEffortResolver substitutes what it can and leaves unresolved
// variables in place.
type bestEffortResolver struct {
	icx *InferCtx
}

func (r bestEffortResolver) FoldTy(t types.Ty) types.Ty {
	if inf, ok := t.(types.TyInfer); ok {
		if sol, ok := r.icx.tyVarSolutions[inf.ID]; ok {
			return r.FoldTy(sol)
		}
		return t
	}
	return t.SuperFold(r)
}

func (r bestEffortResolver) FoldRegion(reg types.Region) types.Region {
	if v, ok := reg.(types.ReVar); ok {
		if sol, ok := r.icx.regionVarSolutions[v.ID]; ok {
			return r.FoldRegion(sol)
		}
	}
	return reg
}

// ResolveIfPossible substitutes solved variables and leaves the rest in
// place. Used where a best-effort answer is enough (the scalar fix-up).
func (icx *InferCtx) ResolveIfPossible(t types.Ty) types.Ty {
	return bestEffortResolver{icx: icx}.FoldTy(t)
}
