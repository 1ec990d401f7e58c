package scene

import "github.com/spectra-render/spectra/types"

// Object maps an instance to a range of triangles in the scene index table
// and a range of entries in the material map.
type Object struct {
	// Offset into the index table for the instance's first triangle.
	IndexOffset uint32

	// Number of triangles owned by the instance.
	TriangleCount uint32

	// Offset into the material map. Per-triangle material slots are
	// resolved as MaterialMap[MaterialOffset+slot].
	MaterialOffset uint32
}

// A placed copy of an object in the world.
type Instance struct {
	// Index into the scene object table. Reported back as the custom
	// instance index on intersections.
	ObjectIndex uint32

	// Object to world transform.
	Transform types.Mat4

	// Cached world to object transform.
	invTransform types.Mat4
}

// Resolve the interpolated, world-space surface normal for an intersection.
func (s *Scene) HitNormal(isect *Intersection) types.Vec3 {
	instance := &s.Instances[isect.InstanceIndex]
	object := &s.Objects[instance.ObjectIndex]
	tri := s.Indices[object.IndexOffset+isect.PrimitiveIndex]

	u := isect.Barycentrics[0]
	v := isect.Barycentrics[1]
	w := 1.0 - u - v

	n := s.Normals[tri[0]].Mul(w).
		Add(s.Normals[tri[1]].Mul(u)).
		Add(s.Normals[tri[2]].Mul(v))

	// Rotate into world space using the instance basis. Uniform scaling
	// is handled by the final normalization.
	worldN := isect.ObjectToWorld.Mul4x1(n.Vec4(0)).Vec3()
	return worldN.Normalize()
}

// Resolve the material for an intersection through the instance's material
// map range. Out-of-range slots yield an out-of-range material index which
// the scatter model shades with the diagnostic sentinel.
func (s *Scene) HitMaterial(isect *Intersection) (Material, bool) {
	instance := &s.Instances[isect.InstanceIndex]
	object := &s.Objects[instance.ObjectIndex]
	tri := s.Indices[object.IndexOffset+isect.PrimitiveIndex]

	matIndex := object.MaterialOffset + tri[3]
	if matIndex >= uint32(len(s.MaterialMap)) {
		return Material{}, false
	}

	mapped := s.MaterialMap[matIndex]
	if mapped >= uint32(len(s.Materials)) {
		return Material{}, false
	}

	return s.Materials[mapped], true
}
