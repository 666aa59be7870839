// Generic folding over type- and region-bearing values.
//
// A Folder sees every type position and every region position of the
// value it is applied to. Compound types delegate child positions back
// into the folder through SuperFold; the folder itself decides whether
// to recurse (IdentityFolder does, a resolving folder may instead
// replace the whole subtree at once).
//
// The failure policy is the folder's: writeback's resolver substitutes
// sentinels and keeps going rather than aborting the fold.

package types

// Folder rewrites type and region positions.
type Folder interface {
	FoldTy(t Ty) Ty
	FoldRegion(r Region) Region
}

// IdentityFolder recurses structurally without changing anything. Embed
// it to override only one of the two positions.
type IdentityFolder struct{}

func (IdentityFolder) FoldTy(t Ty) Ty             { return t.SuperFold(identity{}) }
func (IdentityFolder) FoldRegion(r Region) Region { return r }

type identity struct{}

func (identity) FoldTy(t Ty) Ty             { return t.SuperFold(identity{}) }
func (identity) FoldRegion(r Region) Region { return r }

// regionFolder rewrites every region position inside a type while
// recursing structurally through type positions.
type regionFolder struct {
	fn func(Region) Region
}

func (f regionFolder) FoldTy(t Ty) Ty             { return t.SuperFold(f) }
func (f regionFolder) FoldRegion(r Region) Region { return f.fn(r) }

// FoldRegionsIn rewrites every region appearing anywhere inside t using
// fn, leaving the type structure untouched.
func FoldRegionsIn(t Ty, fn func(Region) Region) Ty {
	return regionFolder{fn: fn}.FoldTy(t)
}
