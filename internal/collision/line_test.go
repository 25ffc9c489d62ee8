package collision

import (
	"math"
	"testing"
)

func TestLineSegmentIntersection(t *testing.T) {
	tests := []struct {
		name      string
		a, b      LineSegment
		expectHit bool
		expectX   float64
		expectY   float64
	}{
		{
			name:      "perpendicular cross",
			a:         NewLineSegment(0, 0, 10, 0),
			b:         NewLineSegment(5, -5, 5, 5),
			expectHit: true,
			expectX:   5,
			expectY:   0,
		},
		{
			name:      "diagonal cross",
			a:         NewLineSegment(0, 0, 10, 10),
			b:         NewLineSegment(0, 10, 10, 0),
			expectHit: true,
			expectX:   5,
			expectY:   5,
		},
		{
			name:      "segments too short to reach",
			a:         NewLineSegment(0, 0, 4, 0),
			b:         NewLineSegment(5, -5, 5, 5),
			expectHit: false,
		},
		{
			name:      "parallel segments",
			a:         NewLineSegment(0, 0, 10, 0),
			b:         NewLineSegment(0, 5, 10, 5),
			expectHit: false,
		},
		{
			name:      "collinear overlapping segments report no hit",
			a:         NewLineSegment(0, 0, 10, 0),
			b:         NewLineSegment(5, 0, 15, 0),
			expectHit: false,
		},
		{
			name:      "endpoint touch",
			a:         NewLineSegment(0, 0, 5, 5),
			b:         NewLineSegment(5, 5, 10, 0),
			expectHit: true,
			expectX:   5,
			expectY:   5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := tc.a.Intersection(tc.b)
			if ok != tc.expectHit {
				t.Fatalf("Intersection() hit = %v, expected %v", ok, tc.expectHit)
			}
			if !ok {
				return
			}
			if math.Abs(p.X-tc.expectX) > 1e-9 || math.Abs(p.Y-tc.expectY) > 1e-9 {
				t.Errorf("Intersection() = %+v, expected {%v %v}", p, tc.expectX, tc.expectY)
			}
		})
	}
}
