package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, want 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, want 25", r.Bottom())
	}
}

func TestRectCenter(t *testing.T) {
	tests := []struct {
		name   string
		r      Rect
		cx, cy int
	}{
		{"even dimensions", NewRect(0, 0, 10, 10), 5, 5},
		{"odd dimensions", NewRect(0, 0, 7, 5), 3, 2},
		{"offset origin", NewRect(5, 10, 20, 15), 15, 17},
		{"unit rect", NewRect(3, 4, 1, 1), 3, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cx, cy := tc.r.Center()
			if cx != tc.cx || cy != tc.cy {
				t.Errorf("Center() = (%d, %d), want (%d, %d)", cx, cy, tc.cx, tc.cy)
			}
		})
	}
}
