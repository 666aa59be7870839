// Region (lifetime) representation. Regions follow the same folding
// protocol as types: every region position inside a compound value is
// handed to the active Folder.

package types

import (
	"fmt"

	"github.com/rowan-lang/rowan/internal/hir"
)

// Region is the interface for all regions.
type Region interface {
	// NeedsInfer reports whether the region is an unresolved inference
	// variable.
	NeedsInfer() bool
	String() string
	isRegion()
}

// ReStatic is the 'static region, valid everywhere.
type ReStatic struct{}

func (r ReStatic) NeedsInfer() bool { return false }
func (r ReStatic) String() string   { return "'static" }
func (r ReStatic) isRegion()        {}

// ReEmpty is the empty region, shorter than every other region.
type ReEmpty struct{}

func (r ReEmpty) NeedsInfer() bool { return false }
func (r ReEmpty) String() string   { return "'<empty>" }
func (r ReEmpty) isRegion()        {}

// ReErased is a region whose identity has been discarded after borrow
// checking. Erased regions must never reach writeback's opaque-type
// rewrite.
type ReErased struct{}

func (r ReErased) NeedsInfer() bool { return false }
func (r ReErased) String() string   { return "'erased" }
func (r ReErased) isRegion()        {}

// Shared region singletons.
var (
	StaticRegion = ReStatic{}
	EmptyRegion  = ReEmpty{}
	ErasedRegion = ReErased{}
)

// ReFree is a named region freed inside a function body: the lifetime
// parameter BoundDef of the function ScopeDef, as it manifests while the
// body is being checked. It is not nameable outside the function except
// through its early-bound counterpart.
type ReFree struct {
	ScopeDef hir.DefID
	BoundDef hir.DefID
	Name     string
}

func (r ReFree) NeedsInfer() bool { return false }
func (r ReFree) String() string   { return fmt.Sprintf("'%s/free", r.Name) }
func (r ReFree) isRegion()        {}

// ReEarlyBound is a named lifetime parameter in its externally visible
// form, referenced by declaration index.
type ReEarlyBound struct {
	Index uint32
	Name  string
}

func (r ReEarlyBound) NeedsInfer() bool { return false }
func (r ReEarlyBound) String() string   { return "'" + r.Name }
func (r ReEarlyBound) isRegion()        {}

// ReLateBound is a region bound by an enclosing binder (for-all), with a
// de Bruijn depth.
type ReLateBound struct {
	Depth uint32
	Name  string
}

func (r ReLateBound) NeedsInfer() bool { return false }
func (r ReLateBound) String() string   { return fmt.Sprintf("'%s/late(%d)", r.Name, r.Depth) }
func (r ReLateBound) isRegion()        {}

// ReScope is a region confined to a lexical scope inside the body.
type ReScope struct {
	Scope hir.NodeID
}

func (r ReScope) NeedsInfer() bool { return false }
func (r ReScope) String() string   { return fmt.Sprintf("'scope(%d)", r.Scope) }
func (r ReScope) isRegion()        {}

// ReSkolemized is a placeholder region introduced while checking
// higher-ranked bounds.
type ReSkolemized struct {
	ID   uint32
	Name string
}

func (r ReSkolemized) NeedsInfer() bool { return false }
func (r ReSkolemized) String() string   { return fmt.Sprintf("'%s/skol(%d)", r.Name, r.ID) }
func (r ReSkolemized) isRegion()        {}

// ReVar is an unresolved region inference variable.
type ReVar struct {
	ID RegionVarID
}

func (r ReVar) NeedsInfer() bool { return true }
func (r ReVar) String() string   { return fmt.Sprintf("'?%d", r.ID) }
func (r ReVar) isRegion()        {}

// FreeRegionRelation records that Sub outlives-or-equals Sup.
type FreeRegionRelation struct {
	Sub Region
	Sup Region
}

// FreeRegionMap is the resolved outlives relation between the free
// regions of a function, carried into the final tables for later phases.
type FreeRegionMap struct {
	Relations []FreeRegionRelation
}

// Relate adds a relation.
func (m *FreeRegionMap) Relate(sub, sup Region) {
	m.Relations = append(m.Relations, FreeRegionRelation{Sub: sub, Sup: sup})
}

// Fold rebuilds the map with every region passed through f.
func (m FreeRegionMap) Fold(f Folder) FreeRegionMap {
	if len(m.Relations) == 0 {
		return FreeRegionMap{}
	}
	rels := make([]FreeRegionRelation, len(m.Relations))
	for i, rel := range m.Relations {
		rels[i] = FreeRegionRelation{
			Sub: f.FoldRegion(rel.Sub),
			Sup: f.FoldRegion(rel.Sup),
		}
	}
	return FreeRegionMap{Relations: rels}
}
