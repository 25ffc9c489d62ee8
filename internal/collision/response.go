package collision

import "github.com/arcadekit/engine/internal/core"

// Response computes the post-collision velocities of two bodies using a 1D
// impulse exchange along the contact normal. The normal must point from
// body 1 toward body 2; restitution ranges from 0 (fully inelastic) to 1
// (fully elastic).
//
// Inputs are returned unchanged when the bodies are already separating
// along the normal, when either mass is non-positive, or when the normal is
// degenerate.
func Response(v1, v2 core.Vec2, m1, m2 float64, normal core.Vec2, restitution float64) (core.Vec2, core.Vec2) {
	if m1 <= 0 || m2 <= 0 {
		return v1, v2
	}
	n := normal.Normalized()
	if n.X == 0 && n.Y == 0 {
		return v1, v2
	}

	// Relative velocity along the normal; positive means separating.
	velAlongNormal := v2.Sub(v1).Dot(n)
	if velAlongNormal > 0 {
		return v1, v2
	}

	j := -(1 + restitution) * velAlongNormal / (1/m1 + 1/m2)

	return v1.Sub(n.Scale(j / m1)), v2.Add(n.Scale(j / m2))
}

// Reflect bounces a velocity off a fixed surface with the given unit normal,
// applying the restitution coefficient to the normal component. This is the
// fixed-obstacle counterpart of Response, used for walls and paddles.
//
// The velocity is returned unchanged when it already points away from the
// surface or when the normal is degenerate.
func Reflect(v core.Vec2, normal core.Vec2, restitution float64) core.Vec2 {
	n := normal.Normalized()
	if n.X == 0 && n.Y == 0 {
		return v
	}

	dot := v.Dot(n)
	if dot >= 0 {
		return v
	}
	return v.Sub(n.Scale((1 + restitution) * dot))
}
