package types

import "testing"

func TestNeedsInfer(t *testing.T) {
	tests := []struct {
		name string
		ty   Ty
		want bool
	}{
		{"primitive", I32Ty, false},
		{"error sentinel", ErrTy, false},
		{"parameter", TyParam{Index: 0, Name: "T"}, false},
		{"bare variable", TyInfer{ID: 1}, true},
		{"variable in slice", TySlice{Elem: TyInfer{ID: 1}}, true},
		{"variable in tuple", TyTuple{Elems: []Ty{I32Ty, TyInfer{ID: 2}}}, true},
		{"region variable in ref", TyRef{Region: ReVar{ID: 1}, Elem: I32Ty}, true},
		{"resolved ref", TyRef{Region: StaticRegion, Elem: I32Ty}, false},
		{"variable in signature", TyFunc{Sig: FnSig{Params: []Ty{TyInfer{ID: 3}}, Return: UnitTy}}, true},
		{"variable in substs", TyAdt{Def: 1, Name: "Vec", Substs: Substs{Types: []Ty{TyInfer{ID: 4}}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ty.NeedsInfer(); got != tt.want {
				t.Errorf("NeedsInfer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTyString(t *testing.T) {
	tests := []struct {
		ty   Ty
		want string
	}{
		{I32Ty, "i32"},
		{UnitTy, "()"},
		{ErrTy, "{type error}"},
		{TyInfer{ID: 7}, "?7"},
		{TySlice{Elem: BoolTy}, "[bool]"},
		{TyRef{Region: StaticRegion, Elem: I32Ty, Mutable: true}, "&'static mut i32"},
		{TyRawPtr{Elem: U32Ty}, "*const u32"},
		{TyTuple{Elems: []Ty{I32Ty, BoolTy}}, "(i32, bool)"},
		{TyAdt{Def: 1, Name: "Vec", Substs: Substs{Types: []Ty{I32Ty}}}, "Vec<i32>"},
		{TyAdt{Def: 2, Name: "Unit"}, "Unit"},
	}

	for _, tt := range tests {
		if got := tt.ty.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsScalar(t *testing.T) {
	if !IsScalar(I32Ty) || !IsScalar(BoolTy) || !IsScalar(F64Ty) {
		t.Error("primitives should be scalar")
	}
	if IsScalar(TyAdt{Def: 1, Name: "Matrix"}) {
		t.Error("nominal types are not scalar")
	}
	if IsScalar(TyRef{Region: StaticRegion, Elem: I32Ty}) {
		t.Error("references are not scalar")
	}
	if IsScalar(TyInfer{ID: 1}) {
		t.Error("inference variables are not scalar")
	}
}

func TestFoldRegionsIn(t *testing.T) {
	input := TyRef{
		Region: ReFree{ScopeDef: 1, BoundDef: 2, Name: "a"},
		Elem: TyTuple{Elems: []Ty{
			TyRef{Region: ReScope{Scope: 5}, Elem: I32Ty},
			BoolTy,
		}},
	}

	got := FoldRegionsIn(input, func(Region) Region { return StaticRegion })

	want := "&'static (&'static i32, bool)"
	if got.String() != want {
		t.Errorf("FoldRegionsIn = %s, want %s", got, want)
	}
}

func TestIdentityFolder(t *testing.T) {
	input := TyRef{Region: StaticRegion, Elem: TySlice{Elem: I32Ty}}
	got := IdentityFolder{}.FoldTy(input)
	if got.String() != input.String() {
		t.Errorf("identity fold changed the type: %s -> %s", input, got)
	}
}

func TestSubstsIsNoop(t *testing.T) {
	tests := []struct {
		name   string
		substs Substs
		want   bool
	}{
		{"empty", Substs{}, true},
		{"matching params", Substs{
			Types:   []Ty{TyParam{Index: 0, Name: "T"}, TyParam{Index: 1, Name: "U"}},
			Regions: []Region{ReEarlyBound{Index: 0, Name: "a"}},
		}, true},
		{"concrete type", Substs{Types: []Ty{I32Ty}}, false},
		{"swapped params", Substs{
			Types: []Ty{TyParam{Index: 1, Name: "U"}, TyParam{Index: 0, Name: "T"}},
		}, false},
		{"region at wrong index", Substs{
			Regions: []Region{ReEarlyBound{Index: 1, Name: "b"}},
		}, false},
		{"static for lifetime", Substs{Regions: []Region{StaticRegion}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.substs.IsNoop(); got != tt.want {
				t.Errorf("IsNoop() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdjustmentFold(t *testing.T) {
	adj := Adjustment{
		Kind:       AdjustDerefRef,
		Autoderefs: 2,
		Autoref:    &AutoBorrow{Region: ReVar{ID: 1}, Mutable: true},
		Target:     TyRef{Region: ReVar{ID: 1}, Elem: TyInfer{ID: 3}},
	}
	if !adj.NeedsInfer() {
		t.Fatal("adjustment with variables should need inference")
	}

	folder := resolveAllFolder{}
	got := adj.Fold(folder)
	if got.NeedsInfer() {
		t.Errorf("folded adjustment still needs inference: %s", got)
	}
	if !got.Autoref.Mutable {
		t.Error("fold dropped mutability")
	}
	if got.Autoref.Region != Region(StaticRegion) {
		t.Errorf("autoref region = %s, want 'static", got.Autoref.Region)
	}
	// The original is untouched.
	if adj.Autoref.Region != Region(ReVar{ID: 1}) {
		t.Error("fold mutated the original adjustment")
	}
}

// resolveAllFolder replaces every variable with a fixed solution.
type resolveAllFolder struct{}

func (f resolveAllFolder) FoldTy(t Ty) Ty {
	if _, ok := t.(TyInfer); ok {
		return I32Ty
	}
	return t.SuperFold(f)
}

func (f resolveAllFolder) FoldRegion(r Region) Region {
	if _, ok := r.(ReVar); ok {
		return StaticRegion
	}
	return r
}

func TestFreeRegionMapFold(t *testing.T) {
	var m FreeRegionMap
	m.Relate(ReVar{ID: 1}, StaticRegion)
	m.Relate(ReFree{ScopeDef: 1, BoundDef: 2, Name: "a"}, ReVar{ID: 2})

	got := m.Fold(resolveAllFolder{})
	if len(got.Relations) != 2 {
		t.Fatalf("relations = %d, want 2", len(got.Relations))
	}
	if got.Relations[0].Sub != Region(StaticRegion) {
		t.Errorf("sub = %s, want 'static", got.Relations[0].Sub)
	}
	if got.Relations[1].Sup != Region(StaticRegion) {
		t.Errorf("sup = %s, want 'static", got.Relations[1].Sup)
	}
}
