// Scratch and final fact tables.
//
// ScratchTables is the mutable, per-function store that checking writes
// into; it is drained by writeback. Tables is the immutable result:
// every entry fully resolved, no inference placeholders, shared freely
// by later phases without locking.

package typechecker

import (
	"sort"

	"github.com/rowan-lang/rowan/internal/diagnostic"
	"github.com/rowan-lang/rowan/internal/hir"
	"github.com/rowan-lang/rowan/internal/position"
	"github.com/rowan-lang/rowan/internal/types"
)

// MethodCall keys a method-table entry: either the method/operator
// resolution of an expression, or the resolution of one autoderef step
// performed while adjusting that expression.
type MethodCall struct {
	Expr hir.NodeID
	// Autoderef is 0 for the expression's own resolution and n+1 for
	// autoderef step n.
	Autoderef uint32
}

// ExprMethodCall keys the expression's own method resolution.
func ExprMethodCall(id hir.NodeID) MethodCall {
	return MethodCall{Expr: id}
}

// AutoderefMethodCall keys the resolution of autoderef step `step`.
func AutoderefMethodCall(id hir.NodeID, step uint32) MethodCall {
	return MethodCall{Expr: id, Autoderef: step + 1}
}

// MethodCallee is a resolved method: the definition invoked, its result
// type at this call site, and the substitutions applied to it. The
// definition identity is decided during checking and is never an
// inference artifact.
type MethodCallee struct {
	Def    hir.DefID
	Ty     types.Ty
	Substs types.Substs
}

// Lint is a lint diagnostic computed during checking and parked until
// writeback moves it into the final tables. Lints carry no inference
// content.
type Lint struct {
	Node hir.NodeID
	Diag diagnostic.Diagnostic
}

// AnonType records the concrete type inferred for a node declared with
// an opaque (existential) result type, with the span for error
// reporting.
type AnonType struct {
	Span     position.Span
	Concrete types.Ty
}

// ScratchTables holds not-yet-finalized facts for the function being
// checked. Owned exclusively by that function's InferCtx; writeback
// drains it.
type ScratchTables struct {
	NodeTypes        map[hir.NodeID]types.Ty
	NodeSubsts       map[hir.NodeID]types.Substs
	Adjustments      map[hir.NodeID]types.Adjustment
	MethodMap        map[MethodCall]MethodCallee
	ClosureTys       map[hir.NodeID]types.FnSig
	ClosureKinds     map[hir.NodeID]types.ClosureKind
	CastKinds        map[hir.NodeID]types.CastKind
	UpvarCaptures    map[hir.UpvarID]types.UpvarCapture
	LiberatedFnSigs  map[hir.NodeID]types.FnSig
	FruFieldTypes    map[hir.NodeID][]types.Ty
	AnonTypes        map[hir.NodeID]AnonType
	Lints            []Lint
	UsedTraitImports map[hir.DefID]struct{}
	FreeRegionMap    types.FreeRegionMap
}

// NewScratchTables creates empty scratch tables.
func NewScratchTables() *ScratchTables {
	return &ScratchTables{
		NodeTypes:        make(map[hir.NodeID]types.Ty),
		NodeSubsts:       make(map[hir.NodeID]types.Substs),
		Adjustments:      make(map[hir.NodeID]types.Adjustment),
		MethodMap:        make(map[MethodCall]MethodCallee),
		ClosureTys:       make(map[hir.NodeID]types.FnSig),
		ClosureKinds:     make(map[hir.NodeID]types.ClosureKind),
		CastKinds:        make(map[hir.NodeID]types.CastKind),
		UpvarCaptures:    make(map[hir.UpvarID]types.UpvarCapture),
		LiberatedFnSigs:  make(map[hir.NodeID]types.FnSig),
		FruFieldTypes:    make(map[hir.NodeID][]types.Ty),
		AnonTypes:        make(map[hir.NodeID]AnonType),
		UsedTraitImports: make(map[hir.DefID]struct{}),
	}
}

// Tables is the final, immutable result of type checking one body.
// Constructed only by writeback; lookups are total-or-absent and safe
// for concurrent readers.
type Tables struct {
	nodeTypes        map[hir.NodeID]types.Ty
	nodeSubsts       map[hir.NodeID]types.Substs
	adjustments      map[hir.NodeID]types.Adjustment
	methodMap        map[MethodCall]MethodCallee
	closureTys       map[hir.NodeID]types.FnSig
	closureKinds     map[hir.NodeID]types.ClosureKind
	castKinds        map[hir.NodeID]types.CastKind
	upvarCaptures    map[hir.UpvarID]types.UpvarCapture
	liberatedFnSigs  map[hir.NodeID]types.FnSig
	fruFieldTypes    map[hir.NodeID][]types.Ty
	lints            []Lint
	usedTraitImports map[hir.DefID]struct{}
	freeRegionMap    types.FreeRegionMap
	taintedByErrors  bool
}

func newTables() *Tables {
	return &Tables{
		nodeTypes:        make(map[hir.NodeID]types.Ty),
		nodeSubsts:       make(map[hir.NodeID]types.Substs),
		adjustments:      make(map[hir.NodeID]types.Adjustment),
		methodMap:        make(map[MethodCall]MethodCallee),
		closureTys:       make(map[hir.NodeID]types.FnSig),
		closureKinds:     make(map[hir.NodeID]types.ClosureKind),
		castKinds:        make(map[hir.NodeID]types.CastKind),
		upvarCaptures:    make(map[hir.UpvarID]types.UpvarCapture),
		liberatedFnSigs:  make(map[hir.NodeID]types.FnSig),
		fruFieldTypes:    make(map[hir.NodeID][]types.Ty),
		usedTraitImports: make(map[hir.DefID]struct{}),
	}
}

// NodeType returns the resolved type of a node.
func (t *Tables) NodeType(id hir.NodeID) (types.Ty, bool) {
	ty, ok := t.nodeTypes[id]
	return ty, ok
}

// NodeSubsts returns the resolved substitutions of a node. Identity
// substitutions are never stored; absent means identity.
func (t *Tables) NodeSubsts(id hir.NodeID) (types.Substs, bool) {
	s, ok := t.nodeSubsts[id]
	return s, ok
}

// Adjustment returns the resolved adjustment attached to a node.
func (t *Tables) Adjustment(id hir.NodeID) (types.Adjustment, bool) {
	a, ok := t.adjustments[id]
	return a, ok
}

// Method returns the resolved method callee for a call-site key.
func (t *Tables) Method(mc MethodCall) (MethodCallee, bool) {
	m, ok := t.methodMap[mc]
	return m, ok
}

// ClosureTy returns the resolved signature of a closure node.
func (t *Tables) ClosureTy(id hir.NodeID) (types.FnSig, bool) {
	sig, ok := t.closureTys[id]
	return sig, ok
}

// ClosureKind returns the functional trait a closure implements.
func (t *Tables) ClosureKind(id hir.NodeID) (types.ClosureKind, bool) {
	k, ok := t.closureKinds[id]
	return k, ok
}

// CastKind returns the classification of a cast node.
func (t *Tables) CastKind(id hir.NodeID) (types.CastKind, bool) {
	k, ok := t.castKinds[id]
	return k, ok
}

// UpvarCapture returns the resolved capture mode for an upvar.
func (t *Tables) UpvarCapture(id hir.UpvarID) (types.UpvarCapture, bool) {
	c, ok := t.upvarCaptures[id]
	return c, ok
}

// LiberatedFnSig returns the resolved liberated signature of a node.
func (t *Tables) LiberatedFnSig(id hir.NodeID) (types.FnSig, bool) {
	sig, ok := t.liberatedFnSigs[id]
	return sig, ok
}

// FruFieldTypes returns the types of the fields a functional-update
// struct literal fills in from its base.
func (t *Tables) FruFieldTypes(id hir.NodeID) ([]types.Ty, bool) {
	tys, ok := t.fruFieldTypes[id]
	return tys, ok
}

// Lints returns the lints transferred from checking.
func (t *Tables) Lints() []Lint {
	return t.lints
}

// UsedTraitImports returns the definitions of the trait imports checking
// actually used, in sorted order.
func (t *Tables) UsedTraitImports() []hir.DefID {
	out := make([]hir.DefID, 0, len(t.usedTraitImports))
	for def := range t.usedTraitImports {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FreeRegionMap returns the resolved free-region relation.
func (t *Tables) FreeRegionMap() types.FreeRegionMap {
	return t.freeRegionMap
}

// TaintedByErrors reports whether checking this function hit an error.
// Later phases use it to suppress redundant complaints.
func (t *Tables) TaintedByErrors() bool {
	return t.taintedByErrors
}

// NodeIDs returns every node with a recorded type, sorted.
func (t *Tables) NodeIDs() []hir.NodeID {
	out := make([]hir.NodeID, 0, len(t.nodeTypes))
	for id := range t.nodeTypes {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NodeCount returns the number of nodes with a recorded type.
func (t *Tables) NodeCount() int {
	return len(t.nodeTypes)
}
