// Package collision provides pure 2D collision detection and response
// primitives: AABB, circle and line segment tests, minimum translation
// vectors, contact normals and impulse resolution.
//
// All functions are deterministic, allocate nothing beyond returned values
// and never panic on degenerate input; non-intersecting or degenerate pairs
// yield sentinel results (ok=false, zero vectors) because these run in hot
// per-frame paths where such cases are expected.
package collision

import "github.com/arcadekit/engine/internal/core"

// AABB is an axis-aligned bounding box described by its top-left corner and
// size. Always passed and returned by value.
type AABB struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewAABB creates a box with the given position and dimensions.
func NewAABB(x, y, w, h float64) AABB {
	return AABB{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (a AABB) Right() float64 { return a.X + a.W }

// Bottom returns the y-coordinate of the bottom edge.
func (a AABB) Bottom() float64 { return a.Y + a.H }

// Center returns the center point of the box.
func (a AABB) Center() core.Vec2 {
	return core.Vec2{X: a.X + a.W/2, Y: a.Y + a.H/2}
}

// Intersects reports whether two boxes overlap.
// Boxes whose edges exactly coincide do not intersect (strict inequality);
// circles use the opposite convention, see Circle.Intersects.
func (a AABB) Intersects(b AABB) bool {
	if a.X >= b.Right() || b.X >= a.Right() {
		return false
	}
	if a.Y >= b.Bottom() || b.Y >= a.Bottom() {
		return false
	}
	return true
}

// MTV returns the minimum translation vector: the smallest displacement
// that, applied to a, separates it from b. Returns ok=false if the boxes do
// not intersect. When the penetrations on both axes are exactly equal the
// x axis wins.
func (a AABB) MTV(b AABB) (core.Vec2, bool) {
	if !a.Intersects(b) {
		return core.Vec2{}, false
	}

	overlapX := min(a.Right(), b.Right()) - max(a.X, b.X)
	overlapY := min(a.Bottom(), b.Bottom()) - max(a.Y, b.Y)

	if overlapX <= overlapY {
		if a.Center().X < b.Center().X {
			return core.Vec2{X: -overlapX}, true
		}
		return core.Vec2{X: overlapX}, true
	}
	if a.Center().Y < b.Center().Y {
		return core.Vec2{Y: -overlapY}, true
	}
	return core.Vec2{Y: overlapY}, true
}

// Normal returns the unit contact normal pointing from a toward b, the
// sign-inverted normalized MTV. Returns the zero vector if the boxes do not
// intersect.
func (a AABB) Normal(b AABB) core.Vec2 {
	mtv, ok := a.MTV(b)
	if !ok {
		return core.Vec2{}
	}
	return mtv.Scale(-1).Normalized()
}

// ContactPoint approximates the contact point as the center of the overlap
// rectangle. Returns ok=false if the boxes do not intersect.
func (a AABB) ContactPoint(b AABB) (core.Vec2, bool) {
	if !a.Intersects(b) {
		return core.Vec2{}, false
	}
	left := max(a.X, b.X)
	right := min(a.Right(), b.Right())
	top := max(a.Y, b.Y)
	bottom := min(a.Bottom(), b.Bottom())
	return core.Vec2{X: (left + right) / 2, Y: (top + bottom) / 2}, true
}
