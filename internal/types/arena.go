// The global type arena: the permanent, process-wide home of every type
// that survives type checking. Values are interned structurally, so
// inserting the same type twice is cheap and idempotent.

package types

import (
	"fmt"
	"strings"
	"sync"
)

// Arena interns types for the lifetime of the compilation. It is safe
// for concurrent use; insertion is append-only.
type Arena struct {
	mu    sync.Mutex
	types map[string]Ty
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{types: make(map[string]Ty)}
}

// Intern returns the canonical instance of t, storing it on first use.
// Interning the same structural type repeatedly returns the same value;
// structurally different types always stay distinct, even when they
// render identically.
func (a *Arena) Intern(t Ty) Ty {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := internKey(t)
	if canonical, ok := a.types[key]; ok {
		return canonical
	}
	a.types[key] = t
	return t
}

// internKey produces a canonical structural encoding of a type. String
// renderings are for humans and omit identity fields (an ADT's DefID, a
// parameter's index, a free region's definition IDs), so they must never
// key the intern map.
func internKey(t Ty) string {
	var sb strings.Builder
	writeTyKey(&sb, t)
	return sb.String()
}

func writeTyKey(sb *strings.Builder, t Ty) {
	switch t := t.(type) {
	case TyPrim:
		fmt.Fprintf(sb, "prim(%d)", t.Kind)
	case TyInfer:
		fmt.Fprintf(sb, "infer(%d)", t.ID)
	case TyError:
		sb.WriteString("error")
	case TyParam:
		fmt.Fprintf(sb, "param(%d,%s)", t.Index, t.Name)
	case TyRef:
		fmt.Fprintf(sb, "ref(%v,", t.Mutable)
		writeRegionKey(sb, t.Region)
		sb.WriteByte(',')
		writeTyKey(sb, t.Elem)
		sb.WriteByte(')')
	case TyRawPtr:
		fmt.Fprintf(sb, "rawptr(%v,", t.Mutable)
		writeTyKey(sb, t.Elem)
		sb.WriteByte(')')
	case TySlice:
		sb.WriteString("slice(")
		writeTyKey(sb, t.Elem)
		sb.WriteByte(')')
	case TyTuple:
		sb.WriteString("tuple(")
		for i, e := range t.Elems {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeTyKey(sb, e)
		}
		sb.WriteByte(')')
	case TyFunc:
		sb.WriteString("fn(")
		writeSigKey(sb, t.Sig)
		sb.WriteByte(')')
	case TyAdt:
		fmt.Fprintf(sb, "adt(%d,%s,", t.Def, t.Name)
		writeSubstsKey(sb, t.Substs)
		sb.WriteByte(')')
	case TyClosure:
		fmt.Fprintf(sb, "closure(%d,", t.Def)
		writeSigKey(sb, t.Sig)
		sb.WriteByte(')')
	default:
		panic(fmt.Sprintf("types: no intern key for %T", t))
	}
}

func writeSigKey(sb *strings.Builder, sig FnSig) {
	for i, p := range sig.Params {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeTyKey(sb, p)
	}
	sb.WriteString("->")
	if sig.Return != nil {
		writeTyKey(sb, sig.Return)
	}
}

func writeSubstsKey(sb *strings.Builder, s Substs) {
	sb.WriteByte('[')
	for i, r := range s.Regions {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeRegionKey(sb, r)
	}
	sb.WriteByte(';')
	for i, t := range s.Types {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeTyKey(sb, t)
	}
	sb.WriteByte(']')
}

func writeRegionKey(sb *strings.Builder, r Region) {
	switch r := r.(type) {
	case ReStatic:
		sb.WriteString("static")
	case ReEmpty:
		sb.WriteString("empty")
	case ReErased:
		sb.WriteString("erased")
	case ReFree:
		fmt.Fprintf(sb, "free(%d,%d,%s)", r.ScopeDef, r.BoundDef, r.Name)
	case ReEarlyBound:
		fmt.Fprintf(sb, "early(%d,%s)", r.Index, r.Name)
	case ReLateBound:
		fmt.Fprintf(sb, "late(%d,%s)", r.Depth, r.Name)
	case ReScope:
		fmt.Fprintf(sb, "scope(%d)", r.Scope)
	case ReSkolemized:
		fmt.Fprintf(sb, "skol(%d,%s)", r.ID, r.Name)
	case ReVar:
		fmt.Fprintf(sb, "var(%d)", r.ID)
	default:
		panic(fmt.Sprintf("types: no intern key for %T", r))
	}
}

// Len returns the number of distinct types interned.
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.types)
}

// LiftTy moves a type into the arena's ownership. It fails when
// inference residue remains: such a value still belongs to a
// function-local inference context and must not become global.
func (a *Arena) LiftTy(t Ty) (Ty, bool) {
	if t == nil || t.NeedsInfer() {
		return nil, false
	}
	return a.Intern(t), true
}

// LiftRegion checks that a region is liftable into the global context.
func (a *Arena) LiftRegion(r Region) (Region, bool) {
	if r == nil || r.NeedsInfer() {
		return nil, false
	}
	return r, true
}

// LiftSubsts lifts every entry of a substitution list.
func (a *Arena) LiftSubsts(s Substs) (Substs, bool) {
	if s.NeedsInfer() {
		return Substs{}, false
	}
	out := s
	if len(s.Types) > 0 {
		out.Types = make([]Ty, len(s.Types))
		for i, t := range s.Types {
			out.Types[i] = a.Intern(t)
		}
	}
	return out, true
}
