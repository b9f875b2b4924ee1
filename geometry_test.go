package grid

import "testing"

func TestRect_Intersects(t *testing.T) {
	type tc struct {
		a, b Rect
		want bool
	}

	tests := map[string]tc{
		"overlapping": {
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(5, 5, 10, 10),
			want: true,
		},
		"contained": {
			a:    NewRect(0, 0, 100, 100),
			b:    NewRect(10, 10, 5, 5),
			want: true,
		},
		"disjoint horizontally": {
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(20, 0, 10, 10),
			want: false,
		},
		"disjoint vertically": {
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(0, 20, 10, 10),
			want: false,
		},
		"touching edges do not overlap": {
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(10, 0, 10, 10),
			want: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects(%+v, %+v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Intersection is symmetric.
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects(%+v, %+v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestRect_Expand(t *testing.T) {
	type tc struct {
		r      Rect
		margin float64
		want   Rect
	}

	tests := map[string]tc{
		"grow": {
			r:      NewRect(10, 10, 20, 20),
			margin: 5,
			want:   NewRect(5, 5, 30, 30),
		},
		"shrink": {
			r:      NewRect(10, 10, 20, 20),
			margin: -5,
			want:   NewRect(15, 15, 10, 10),
		},
		"zero": {
			r:      NewRect(1, 2, 3, 4),
			margin: 0,
			want:   NewRect(1, 2, 3, 4),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.r.Expand(tt.margin); got != tt.want {
				t.Errorf("Expand(%v) = %+v, want %+v", tt.margin, got, tt.want)
			}
		})
	}
}

func TestRect_EdgesAndEmpty(t *testing.T) {
	r := NewRect(2, 3, 4, 5)
	if got := r.Right(); got != 6 {
		t.Errorf("Right() = %v, want 6", got)
	}
	if got := r.Bottom(); got != 8 {
		t.Errorf("Bottom() = %v, want 8", got)
	}
	if r.IsEmpty() {
		t.Error("IsEmpty() = true for a non-empty rect")
	}
	if !NewRect(0, 0, 0, 10).IsEmpty() {
		t.Error("IsEmpty() = false for a zero-width rect")
	}
}
