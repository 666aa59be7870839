package position

import "testing"

func pos(line, col, offset int) Position {
	return Position{Filename: "test.rw", Line: line, Column: col, Offset: offset}
}

func TestPositionString(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want string
	}{
		{"with filename", pos(3, 7, 50), "test.rw:3:7"},
		{"without filename", Position{Line: 2, Column: 4}, "2:4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPositionOrdering(t *testing.T) {
	a := pos(1, 1, 0)
	b := pos(1, 5, 4)

	if !a.Before(b) {
		t.Error("a should come before b")
	}
	if !b.After(a) {
		t.Error("b should come after a")
	}
	if a.Before(a) {
		t.Error("a should not come before itself")
	}
}

func TestSpanIsValid(t *testing.T) {
	tests := []struct {
		name string
		span Span
		want bool
	}{
		{"valid span", NewSpan(pos(1, 1, 0), pos(1, 5, 4)), true},
		{"zero span", Span{}, false},
		{"end before start", NewSpan(pos(1, 5, 4), pos(1, 1, 0)), false},
		{"cross-file", NewSpan(pos(1, 1, 0), Position{Filename: "other.rw", Line: 1, Column: 2, Offset: 1}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanContains(t *testing.T) {
	span := NewSpan(pos(1, 1, 0), pos(1, 11, 10))

	if !span.Contains(pos(1, 5, 4)) {
		t.Error("span should contain an interior position")
	}
	if span.Contains(pos(1, 11, 10)) {
		t.Error("span end is exclusive")
	}
	if !span.Contains(pos(1, 1, 0)) {
		t.Error("span start is inclusive")
	}
}

func TestSpanUnion(t *testing.T) {
	a := NewSpan(pos(1, 1, 0), pos(1, 5, 4))
	b := NewSpan(pos(1, 3, 2), pos(1, 11, 10))

	got := a.Union(b)
	if got.Start != a.Start || got.End != b.End {
		t.Errorf("Union = %s, want %s to %s", got, a.Start, b.End)
	}
	if got.Length() != 10 {
		t.Errorf("Length() = %d, want 10", got.Length())
	}

	if got := a.Union(Span{}); got != a {
		t.Errorf("union with invalid span = %s, want %s", got, a)
	}
}
