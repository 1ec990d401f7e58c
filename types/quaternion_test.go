package types

import (
	"math"
	"testing"
)

func TestQuatRotate(t *testing.T) {
	// A quarter turn around +y carries +z onto +x.
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)
	got := q.Rotate(Vec3{0, 0, 1})
	if !ApproxEqual(got, Vec3{1, 0, 0}, 1e-5) {
		t.Fatalf("expected rotated vector (1,0,0); got %v", got)
	}
}

func TestQuatMulComposes(t *testing.T) {
	quarter := QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)
	half := quarter.Mul(quarter)

	got := half.Rotate(Vec3{0, 0, 1})
	if !ApproxEqual(got, Vec3{0, 0, -1}, 1e-5) {
		t.Fatalf("expected two quarter turns to invert +z; got %v", got)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{V: Vec3{0, 2, 0}, W: 2}.Normalize()
	if delta := q.Len() - 1; delta < -1e-5 || delta > 1e-5 {
		t.Fatalf("expected unit length after normalization; got %f", q.Len())
	}

	ident := Quat{}.Normalize()
	if ident.W != 1 || ident.V != (Vec3{}) {
		t.Fatalf("expected zero quaternion to normalize to the identity; got %+v", ident)
	}
}
