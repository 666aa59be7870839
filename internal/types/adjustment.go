// Adjustments (implicit coercions), upvar captures, closure kinds, and
// cast classifications recorded by type checking.

package types

import "fmt"

// AdjustKind classifies an adjustment.
type AdjustKind int

const (
	// AdjustNeverToAny coerces the never type to an arbitrary type.
	AdjustNeverToAny AdjustKind = iota
	// AdjustReifyFnPointer reifies a function item to a function pointer.
	AdjustReifyFnPointer
	// AdjustUnsafeFnPointer converts a safe fn pointer to an unsafe one.
	AdjustUnsafeFnPointer
	// AdjustClosureFnPointer converts a non-capturing closure to a fn
	// pointer.
	AdjustClosureFnPointer
	// AdjustMutToConstPointer converts *mut T to *const T.
	AdjustMutToConstPointer
	// AdjustDerefRef is the general auto-deref / auto-ref / unsize
	// coercion.
	AdjustDerefRef
)

func (k AdjustKind) String() string {
	switch k {
	case AdjustNeverToAny:
		return "NeverToAny"
	case AdjustReifyFnPointer:
		return "ReifyFnPointer"
	case AdjustUnsafeFnPointer:
		return "UnsafeFnPointer"
	case AdjustClosureFnPointer:
		return "ClosureFnPointer"
	case AdjustMutToConstPointer:
		return "MutToConstPointer"
	case AdjustDerefRef:
		return "DerefRef"
	default:
		return "unknown"
	}
}

// AutoBorrow is the reference taken at the end of an auto-deref chain.
type AutoBorrow struct {
	Region  Region
	Mutable bool
}

// Adjustment is an implicit conversion attached to an expression node.
// For AdjustDerefRef, Autoderefs counts the deref steps; each step that
// invoked an overloaded Deref has its own method-table entry keyed by
// (node, step).
type Adjustment struct {
	Kind       AdjustKind
	Autoderefs int
	Autoref    *AutoBorrow // nil if no reference is taken
	Unsize     bool
	Target     Ty
}

// Fold rebuilds the adjustment with its type and region positions passed
// through f. Only DerefRef carries a region (in the autoref).
func (a Adjustment) Fold(f Folder) Adjustment {
	out := a
	if a.Kind == AdjustDerefRef && a.Autoref != nil {
		out.Autoref = &AutoBorrow{
			Region:  f.FoldRegion(a.Autoref.Region),
			Mutable: a.Autoref.Mutable,
		}
	}
	out.Target = f.FoldTy(a.Target)
	return out
}

// NeedsInfer reports whether any inference placeholder remains.
func (a Adjustment) NeedsInfer() bool {
	if a.Autoref != nil && a.Autoref.Region.NeedsInfer() {
		return true
	}
	return a.Target != nil && a.Target.NeedsInfer()
}

func (a Adjustment) String() string {
	if a.Kind == AdjustDerefRef {
		return fmt.Sprintf("DerefRef(%d) -> %s", a.Autoderefs, a.Target)
	}
	return fmt.Sprintf("%s -> %s", a.Kind, a.Target)
}

// BorrowKind classifies a by-reference capture or borrow.
type BorrowKind int

const (
	// ImmBorrow is a shared borrow.
	ImmBorrow BorrowKind = iota
	// UniqueImmBorrow is a unique immutable borrow (closure upvars only).
	UniqueImmBorrow
	// MutBorrow is a mutable borrow.
	MutBorrow
)

func (k BorrowKind) String() string {
	switch k {
	case ImmBorrow:
		return "&"
	case UniqueImmBorrow:
		return "&uniq"
	case MutBorrow:
		return "&mut"
	default:
		return "?"
	}
}

// UpvarCaptureKind distinguishes by-value from by-reference captures.
type UpvarCaptureKind int

const (
	CaptureByValue UpvarCaptureKind = iota
	CaptureByRef
)

// UpvarBorrow is the borrow backing a by-reference capture.
type UpvarBorrow struct {
	Kind   BorrowKind
	Region Region
}

// UpvarCapture records how a closure captures one variable. Borrow is
// meaningful only for CaptureByRef.
type UpvarCapture struct {
	Kind   UpvarCaptureKind
	Borrow UpvarBorrow
}

func (c UpvarCapture) String() string {
	if c.Kind == CaptureByValue {
		return "by-value"
	}
	return fmt.Sprintf("by-ref(%s %s)", c.Borrow.Kind, c.Borrow.Region)
}

// ClosureKind is the functional trait a closure implements. It is
// decided during checking proper (not inferred through a variable) and
// is copied through writeback unchanged.
type ClosureKind int

const (
	ClosureKindFn ClosureKind = iota
	ClosureKindFnMut
	ClosureKindFnOnce
)

func (k ClosureKind) String() string {
	switch k {
	case ClosureKindFn:
		return "Fn"
	case ClosureKindFnMut:
		return "FnMut"
	case ClosureKindFnOnce:
		return "FnOnce"
	default:
		return "unknown"
	}
}

// CastKind classifies an explicit cast expression. Decided during
// checking; carried through writeback unchanged.
type CastKind int

const (
	CastNumeric CastKind = iota
	CastEnumToInt
	CastPtrToPtr
	CastPtrToInt
	CastIntToPtr
	CastFnPtrToPtr
	CastUnsize
)

func (k CastKind) String() string {
	names := []string{
		"numeric", "enum-to-int", "ptr-to-ptr", "ptr-to-int",
		"int-to-ptr", "fnptr-to-ptr", "unsize",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}
