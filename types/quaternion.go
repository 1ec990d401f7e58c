package types

import "math"

// Unit quaternion used for composing camera rotations.
type Quat struct {
	V Vec3
	W float32
}

func QuatIdent() Quat {
	return Quat{W: 1.0}
}

// Create a quaternion describing a rotation of angle radians around axis.
// The axis is expected to be a unit vector.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	half := float64(angle) * 0.5
	return Quat{
		V: axis.Mul(float32(math.Sin(half))),
		W: float32(math.Cos(half)),
	}
}

// Compose two rotations. q.Mul(p) rotates by p first, then by q; the order
// matters.
func (q Quat) Mul(p Quat) Quat {
	return Quat{
		V: q.V.Cross(p.V).Add(p.V.Mul(q.W)).Add(q.V.Mul(p.W)),
		W: q.W*p.W - q.V.Dot(p.V),
	}
}

func (q Quat) Len() float32 {
	return float32(math.Sqrt(float64(q.V.Dot(q.V) + q.W*q.W)))
}

// Scale the quaternion back to unit length. A zero quaternion collapses to
// the identity.
func (q Quat) Normalize() Quat {
	length := q.Len()

	delta := 1 - length
	if delta < 0 {
		delta = -delta
	}
	if delta < floatCmpEpsilon {
		return q
	}
	if length == 0 {
		return QuatIdent()
	}

	inv := 1 / length
	return Quat{V: q.V.Mul(inv), W: q.W * inv}
}

// Rotate v by the rotation the quaternion represents.
func (q Quat) Rotate(v Vec3) Vec3 {
	cross := q.V.Cross(v)
	return v.Add(cross.Mul(2 * q.W)).Add(q.V.Mul(2).Cross(cross))
}
