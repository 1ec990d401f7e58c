package scene

import "github.com/spectra-render/spectra/types"

const triEpsilon = 1e-7

// The Intersector interface is the only way tracers touch scene geometry.
type Intersector interface {
	// Find the nearest committed intersection along a ray, honoring the
	// ray's trace flags and t-range. Returns false on a miss.
	Intersect(ray *Ray) (Intersection, bool)
}

// Find the nearest committed intersection for a ray. Rays are transformed
// into each instance's object space; since the transform is linear, hit
// distances parameterize identically in both spaces and can be compared
// directly across instances.
func (s *Scene) Intersect(ray *Ray) (Intersection, bool) {
	var nearest Intersection
	found := false
	closestT := ray.TMax

	for instIdx := range s.Instances {
		instance := &s.Instances[instIdx]
		object := &s.Objects[instance.ObjectIndex]

		origin := instance.invTransform.Mul4x1(ray.Origin.Vec4(1)).Vec3()
		dir := instance.invTransform.Mul4x1(ray.Dir.Vec4(0)).Vec3()

		var prim uint32
		for prim = 0; prim < object.TriangleCount; prim++ {
			tri := s.Indices[object.IndexOffset+prim]
			v0 := s.Vertices[tri[0]]
			v1 := s.Vertices[tri[1]]
			v2 := s.Vertices[tri[2]]

			t, u, v, hit := intersectTriangle(origin, dir, v0, v1, v2, ray.Flags)
			if !hit || t < ray.TMin || t > closestT {
				continue
			}

			nearest = Intersection{
				T:              t,
				PrimitiveIndex: prim,
				InstanceIndex:  uint32(instIdx),
				Barycentrics:   types.Vec2{u, v},
				ObjectToWorld:  instance.Transform,
			}
			found = true
			closestT = t

			if ray.Flags&TerminateOnFirstHit != 0 {
				return nearest, true
			}
		}
	}

	return nearest, found
}

// Moller-Trumbore ray/triangle intersection. Returns the hit distance and
// barycentric u/v coordinates.
func intersectTriangle(origin, dir, v0, v1, v2 types.Vec3, flags TraceFlag) (t, u, v float32, hit bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	pvec := dir.Cross(e2)
	det := e1.Dot(pvec)

	if flags&CullBackFacing != 0 {
		if det < triEpsilon {
			return 0, 0, 0, false
		}
	} else if det > -triEpsilon && det < triEpsilon {
		return 0, 0, 0, false
	}

	invDet := 1.0 / det
	tvec := origin.Sub(v0)
	u = tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	qvec := tvec.Cross(e1)
	v = dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = e2.Dot(qvec) * invDet
	if t < 0 {
		return 0, 0, 0, false
	}

	return t, u, v, true
}
