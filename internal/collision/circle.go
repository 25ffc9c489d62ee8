package collision

import "github.com/arcadekit/engine/internal/core"

// Circle is a circle described by its center and radius.
type Circle struct {
	Center core.Vec2
	Radius float64
}

// NewCircle creates a circle at (x, y) with the given radius.
func NewCircle(x, y, r float64) Circle {
	return Circle{Center: core.Vec2{X: x, Y: y}, Radius: r}
}

// Intersects reports whether two circles overlap.
// Exactly touching circles do intersect (non-strict comparison); this is
// deliberately asymmetric with the AABB edge convention.
func (c Circle) Intersects(o Circle) bool {
	rr := c.Radius + o.Radius
	return c.Center.Sub(o.Center).LengthSq() <= rr*rr
}

// Normal returns the unit contact normal pointing from c's center toward
// o's center. Falls back to (1, 0) when the centers coincide so callers
// never receive a degenerate zero vector.
func (c Circle) Normal(o Circle) core.Vec2 {
	n := o.Center.Sub(c.Center)
	if n.X == 0 && n.Y == 0 {
		return core.Vec2{X: 1}
	}
	return n.Normalized()
}

// MTV returns the smallest displacement that, applied to c, separates it
// from o. Returns ok=false if the circles do not intersect.
func (c Circle) MTV(o Circle) (core.Vec2, bool) {
	if !c.Intersects(o) {
		return core.Vec2{}, false
	}
	penetration := c.Radius + o.Radius - c.Center.Sub(o.Center).Length()
	return c.Normal(o).Scale(-penetration), true
}

// IntersectsAABB reports whether the circle overlaps the box.
// The circle center is clamped to the box extents to find the closest point,
// which is then distance-tested against the radius (non-strict, matching the
// circle convention).
func (c Circle) IntersectsAABB(b AABB) bool {
	closest := core.Vec2{
		X: core.ClampF(c.Center.X, b.X, b.Right()),
		Y: core.ClampF(c.Center.Y, b.Y, b.Bottom()),
	}
	return c.Center.Sub(closest).LengthSq() <= c.Radius*c.Radius
}
