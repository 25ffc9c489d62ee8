package collision

import (
	"math"
	"testing"

	"github.com/arcadekit/engine/internal/core"
)

func TestAABBIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     AABB
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewAABB(0, 0, 50, 50),
			b:        NewAABB(25, 25, 50, 50),
			expected: true,
		},
		{
			name:     "separated horizontally",
			a:        NewAABB(0, 0, 50, 50),
			b:        NewAABB(100, 0, 50, 50),
			expected: false,
		},
		{
			name:     "separated vertically",
			a:        NewAABB(0, 0, 50, 50),
			b:        NewAABB(0, 100, 50, 50),
			expected: false,
		},
		{
			name:     "sharing exactly one edge",
			a:        NewAABB(0, 0, 50, 50),
			b:        NewAABB(50, 0, 50, 50),
			expected: false,
		},
		{
			name:     "sharing exactly one corner",
			a:        NewAABB(0, 0, 50, 50),
			b:        NewAABB(50, 50, 50, 50),
			expected: false,
		},
		{
			name:     "contained box",
			a:        NewAABB(0, 0, 100, 100),
			b:        NewAABB(25, 25, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			// Symmetry
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestAABBMTV(t *testing.T) {
	a := NewAABB(0, 0, 50, 50)
	b := NewAABB(25, 40, 50, 50)

	mtv, ok := a.MTV(b)
	if !ok {
		t.Fatal("MTV() reported no intersection for overlapping boxes")
	}

	// Penetration is 25 on x and 10 on y, so the correction must be along y.
	if mtv.X != 0 {
		t.Errorf("MTV().X = %v, expected 0", mtv.X)
	}
	if math.Abs(mtv.Y) != 10 {
		t.Errorf("|MTV().Y| = %v, expected 10", math.Abs(mtv.Y))
	}

	// Applying the MTV to a must separate the pair.
	moved := NewAABB(a.X+mtv.X, a.Y+mtv.Y, a.W, a.H)
	if moved.Intersects(b) {
		t.Errorf("boxes still intersect after applying MTV %+v", mtv)
	}
}

func TestAABBMTVNonIntersecting(t *testing.T) {
	a := NewAABB(0, 0, 10, 10)
	b := NewAABB(50, 50, 10, 10)

	if _, ok := a.MTV(b); ok {
		t.Error("MTV() reported an intersection for separated boxes")
	}
	if n := a.Normal(b); n != (core.Vec2{}) {
		t.Errorf("Normal() = %+v, expected zero vector for separated boxes", n)
	}
	if _, ok := a.ContactPoint(b); ok {
		t.Error("ContactPoint() reported an intersection for separated boxes")
	}
}

func TestAABBMTVTieBreak(t *testing.T) {
	// Equal penetration on both axes: the x axis wins.
	a := NewAABB(0, 0, 50, 50)
	b := NewAABB(40, 40, 50, 50)

	mtv, ok := a.MTV(b)
	if !ok {
		t.Fatal("MTV() reported no intersection")
	}
	if mtv.Y != 0 || mtv.X != -10 {
		t.Errorf("MTV() = %+v, expected {-10 0}", mtv)
	}
}

func TestAABBNormalPointsFromAToB(t *testing.T) {
	a := NewAABB(0, 0, 50, 50)
	b := NewAABB(25, 40, 50, 50) // b below a, smallest push is along y

	n := a.Normal(b)
	if n.X != 0 || n.Y != 1 {
		t.Errorf("Normal() = %+v, expected {0 1}", n)
	}
}

func TestAABBContactPoint(t *testing.T) {
	a := NewAABB(0, 0, 50, 50)
	b := NewAABB(40, 40, 50, 50)

	p, ok := a.ContactPoint(b)
	if !ok {
		t.Fatal("ContactPoint() reported no intersection")
	}
	// Overlap rectangle is [40,50]x[40,50].
	if p.X != 45 || p.Y != 45 {
		t.Errorf("ContactPoint() = %+v, expected {45 45}", p)
	}
}
