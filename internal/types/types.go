// Package types defines the semantic type representation used by the
// Rowan type checker: primitive and compound types, regions (lifetimes),
// inference placeholders, substitution lists, and the folding machinery
// that rewrites type and region positions inside compound values.
//
// Types in this package are immutable values. A type containing a
// TyInfer or ReVar is an in-progress inference artifact and must never
// escape the function being checked; the writeback pass guarantees that
// by replacing every placeholder with its solution (or an error
// sentinel) before results reach the global arena.
package types

import (
	"fmt"
	"strings"

	"github.com/rowan-lang/rowan/internal/hir"
)

// TyVarID identifies a type inference variable.
type TyVarID uint32

// RegionVarID identifies a region inference variable.
type RegionVarID uint32

// Ty is the interface for all types in the system.
type Ty interface {
	// SuperFold rebuilds the type with every child type position passed
	// through f.FoldTy and every region position through f.FoldRegion.
	// It does not invoke f on the receiver itself; that is the caller's
	// decision.
	SuperFold(f Folder) Ty
	// NeedsInfer reports whether any inference placeholder remains.
	NeedsInfer() bool
	String() string
	isTy()
}

// =============================================================================
// Primitives
// =============================================================================

// PrimKind enumerates the built-in scalar types. Scalars are never
// operator-overloadable.
type PrimKind int

const (
	PrimBool PrimKind = iota
	PrimChar
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimISize
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimUSize
	PrimF32
	PrimF64
)

func (k PrimKind) String() string {
	names := []string{
		"bool", "char", "i8", "i16", "i32", "i64", "isize",
		"u8", "u16", "u32", "u64", "usize", "f32", "f64",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("prim(%d)", int(k))
}

// TyPrim is a built-in scalar type.
type TyPrim struct {
	Kind PrimKind
}

func (t TyPrim) SuperFold(f Folder) Ty { return t }
func (t TyPrim) NeedsInfer() bool      { return false }
func (t TyPrim) String() string        { return t.Kind.String() }
func (t TyPrim) isTy()                 {}

// Commonly used primitive types.
var (
	BoolTy  = TyPrim{Kind: PrimBool}
	CharTy  = TyPrim{Kind: PrimChar}
	I32Ty   = TyPrim{Kind: PrimI32}
	I64Ty   = TyPrim{Kind: PrimI64}
	U32Ty   = TyPrim{Kind: PrimU32}
	UsizeTy = TyPrim{Kind: PrimUSize}
	F64Ty   = TyPrim{Kind: PrimF64}
)

// UnitTy is the empty tuple.
var UnitTy = TyTuple{}

// =============================================================================
// Placeholders and sentinels
// =============================================================================

// TyInfer is an unresolved type inference variable.
type TyInfer struct {
	ID TyVarID
}

func (t TyInfer) SuperFold(f Folder) Ty { return t }
func (t TyInfer) NeedsInfer() bool      { return true }
func (t TyInfer) String() string        { return fmt.Sprintf("?%d", t.ID) }
func (t TyInfer) isTy()                 {}

// TyError is the error sentinel substituted for types that could not be
// resolved. It folds to itself and silences downstream cascades.
type TyError struct{}

func (t TyError) SuperFold(f Folder) Ty { return t }
func (t TyError) NeedsInfer() bool      { return false }
func (t TyError) String() string        { return "{type error}" }
func (t TyError) isTy()                 {}

// ErrTy is the shared error sentinel.
var ErrTy = TyError{}

// TyParam is a reference to a generic type parameter of the enclosing
// item, by declaration index.
type TyParam struct {
	Index uint32
	Name  string
}

func (t TyParam) SuperFold(f Folder) Ty { return t }
func (t TyParam) NeedsInfer() bool      { return false }
func (t TyParam) String() string        { return t.Name }
func (t TyParam) isTy()                 {}

// =============================================================================
// Compound types
// =============================================================================

// TyRef is a reference `&'r T` or `&'r mut T`.
type TyRef struct {
	Region  Region
	Elem    Ty
	Mutable bool
}

func (t TyRef) SuperFold(f Folder) Ty {
	return TyRef{
		Region:  f.FoldRegion(t.Region),
		Elem:    f.FoldTy(t.Elem),
		Mutable: t.Mutable,
	}
}

func (t TyRef) NeedsInfer() bool {
	return t.Region.NeedsInfer() || t.Elem.NeedsInfer()
}

func (t TyRef) String() string {
	if t.Mutable {
		return fmt.Sprintf("&%s mut %s", t.Region, t.Elem)
	}
	return fmt.Sprintf("&%s %s", t.Region, t.Elem)
}

func (t TyRef) isTy() {}

// TyRawPtr is a raw pointer `*const T` or `*mut T`.
type TyRawPtr struct {
	Elem    Ty
	Mutable bool
}

func (t TyRawPtr) SuperFold(f Folder) Ty {
	return TyRawPtr{Elem: f.FoldTy(t.Elem), Mutable: t.Mutable}
}

func (t TyRawPtr) NeedsInfer() bool { return t.Elem.NeedsInfer() }

func (t TyRawPtr) String() string {
	if t.Mutable {
		return fmt.Sprintf("*mut %s", t.Elem)
	}
	return fmt.Sprintf("*const %s", t.Elem)
}

func (t TyRawPtr) isTy() {}

// TySlice is a slice `[T]`.
type TySlice struct {
	Elem Ty
}

func (t TySlice) SuperFold(f Folder) Ty { return TySlice{Elem: f.FoldTy(t.Elem)} }
func (t TySlice) NeedsInfer() bool      { return t.Elem.NeedsInfer() }
func (t TySlice) String() string        { return fmt.Sprintf("[%s]", t.Elem) }
func (t TySlice) isTy()                 {}

// TyTuple is a tuple `(T0, T1, ...)`; the empty tuple is unit.
type TyTuple struct {
	Elems []Ty
}

func (t TyTuple) SuperFold(f Folder) Ty {
	if len(t.Elems) == 0 {
		return t
	}
	elems := make([]Ty, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = f.FoldTy(e)
	}
	return TyTuple{Elems: elems}
}

func (t TyTuple) NeedsInfer() bool {
	for _, e := range t.Elems {
		if e.NeedsInfer() {
			return true
		}
	}
	return false
}

func (t TyTuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t TyTuple) isTy() {}

// FnSig is a function signature: parameter types and return type.
type FnSig struct {
	Params []Ty
	Return Ty
}

// Fold rebuilds the signature with every type position passed through f.
func (s FnSig) Fold(f Folder) FnSig {
	params := make([]Ty, len(s.Params))
	for i, p := range s.Params {
		params[i] = f.FoldTy(p)
	}
	return FnSig{Params: params, Return: f.FoldTy(s.Return)}
}

// NeedsInfer reports whether any inference placeholder remains.
func (s FnSig) NeedsInfer() bool {
	for _, p := range s.Params {
		if p.NeedsInfer() {
			return true
		}
	}
	return s.Return != nil && s.Return.NeedsInfer()
}

func (s FnSig) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(params, ", "), s.Return)
}

// TyFunc is a function pointer type.
type TyFunc struct {
	Sig FnSig
}

func (t TyFunc) SuperFold(f Folder) Ty { return TyFunc{Sig: t.Sig.Fold(f)} }
func (t TyFunc) NeedsInfer() bool      { return t.Sig.NeedsInfer() }
func (t TyFunc) String() string        { return t.Sig.String() }
func (t TyFunc) isTy()                 {}

// TyAdt is a nominal type (struct or enum) applied to substitutions.
type TyAdt struct {
	Def    hir.DefID
	Name   string
	Substs Substs
}

func (t TyAdt) SuperFold(f Folder) Ty {
	return TyAdt{Def: t.Def, Name: t.Name, Substs: t.Substs.Fold(f)}
}

func (t TyAdt) NeedsInfer() bool { return t.Substs.NeedsInfer() }

func (t TyAdt) String() string {
	if t.Substs.IsEmpty() {
		return t.Name
	}
	return fmt.Sprintf("%s<%s>", t.Name, t.Substs)
}

func (t TyAdt) isTy() {}

// TyClosure is the anonymous type of a closure expression.
type TyClosure struct {
	Def hir.DefID
	Sig FnSig
}

func (t TyClosure) SuperFold(f Folder) Ty {
	return TyClosure{Def: t.Def, Sig: t.Sig.Fold(f)}
}

func (t TyClosure) NeedsInfer() bool { return t.Sig.NeedsInfer() }
func (t TyClosure) String() string   { return fmt.Sprintf("closure@%d %s", t.Def, t.Sig) }
func (t TyClosure) isTy()            {}

// IsScalar reports whether the type is a built-in scalar primitive.
// Operators on scalars are never user overloads.
func IsScalar(t Ty) bool {
	_, ok := t.(TyPrim)
	return ok
}
