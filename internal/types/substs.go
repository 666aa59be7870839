// Substitution lists: the concrete type and region arguments supplied
// for an item's generic parameters at a use site.

package types

import "strings"

// Substs is a substitution list. Entry i of Types corresponds to the
// item's i-th type parameter; entry j of Regions to its j-th lifetime
// parameter.
type Substs struct {
	Types   []Ty
	Regions []Region
}

// IsEmpty reports whether the list carries no arguments at all.
func (s Substs) IsEmpty() bool {
	return len(s.Types) == 0 && len(s.Regions) == 0
}

// IsNoop reports whether the list is an identity substitution: every
// type argument is the matching parameter itself and every region
// argument the matching early-bound lifetime. Identity substitutions are
// never persisted; later phases treat "absent" as "identity".
func (s Substs) IsNoop() bool {
	for i, t := range s.Types {
		p, ok := t.(TyParam)
		if !ok || p.Index != uint32(i) {
			return false
		}
	}
	for i, r := range s.Regions {
		eb, ok := r.(ReEarlyBound)
		if !ok || eb.Index != uint32(i) {
			return false
		}
	}
	return true
}

// NeedsInfer reports whether any inference placeholder remains.
func (s Substs) NeedsInfer() bool {
	for _, t := range s.Types {
		if t.NeedsInfer() {
			return true
		}
	}
	for _, r := range s.Regions {
		if r.NeedsInfer() {
			return true
		}
	}
	return false
}

// Fold rebuilds the list with every entry passed through f.
func (s Substs) Fold(f Folder) Substs {
	out := Substs{}
	if len(s.Types) > 0 {
		out.Types = make([]Ty, len(s.Types))
		for i, t := range s.Types {
			out.Types[i] = f.FoldTy(t)
		}
	}
	if len(s.Regions) > 0 {
		out.Regions = make([]Region, len(s.Regions))
		for i, r := range s.Regions {
			out.Regions[i] = f.FoldRegion(r)
		}
	}
	return out
}

func (s Substs) String() string {
	parts := make([]string, 0, len(s.Regions)+len(s.Types))
	for _, r := range s.Regions {
		parts = append(parts, r.String())
	}
	for _, t := range s.Types {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ", ")
}
