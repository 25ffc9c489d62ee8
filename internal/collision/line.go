package collision

import (
	"math"

	"github.com/arcadekit/engine/internal/core"
)

// parallelEpsilon is the cross-product threshold below which two segments
// are treated as parallel.
const parallelEpsilon = 1e-4

// LineSegment is a segment between two endpoints.
type LineSegment struct {
	Start, End core.Vec2
}

// NewLineSegment creates a segment between (x1, y1) and (x2, y2).
func NewLineSegment(x1, y1, x2, y2 float64) LineSegment {
	return LineSegment{
		Start: core.Vec2{X: x1, Y: y1},
		End:   core.Vec2{X: x2, Y: y2},
	}
}

// Intersection returns the point where two segments cross, using the
// standard parametric cross-product method. Parallel segments report no
// intersection even when collinear and overlapping.
func (l LineSegment) Intersection(o LineSegment) (core.Vec2, bool) {
	d1 := l.End.Sub(l.Start)
	d2 := o.End.Sub(o.Start)

	denom := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(denom) < parallelEpsilon {
		return core.Vec2{}, false
	}

	diff := o.Start.Sub(l.Start)
	t := (diff.X*d2.Y - diff.Y*d2.X) / denom
	u := (diff.X*d1.Y - diff.Y*d1.X) / denom

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return core.Vec2{}, false
	}
	return l.Start.Add(d1.Scale(t)), true
}

// Intersects reports whether two segments cross.
func (l LineSegment) Intersects(o LineSegment) bool {
	_, ok := l.Intersection(o)
	return ok
}
