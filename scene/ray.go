package scene

import "github.com/spectra-render/spectra/types"

type TraceFlag uint32

// Flags controlling how the acceleration structure processes a ray.
const (
	// Intersect both front and back facing triangles.
	CullNone TraceFlag = 0

	// Skip triangles whose geometric normal faces away from the ray.
	CullBackFacing TraceFlag = 1 << iota

	// Only consider opaque geometry.
	OpaqueOnly

	// Accept the first committed intersection instead of searching for
	// the nearest one. Used for occlusion queries.
	TerminateOnFirstHit
)

// A ray segment submitted to the acceleration structure.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3

	// The [TMin, TMax] range limits accepted hit distances.
	TMin float32
	TMax float32

	Flags TraceFlag
}

// A committed intersection returned by the acceleration structure. Instances
// are produced and consumed within a single bounce iteration.
type Intersection struct {
	// Distance to the hit point along the ray direction.
	T float32

	// Index of the intersected triangle within its instance geometry.
	PrimitiveIndex uint32

	// The custom index assigned to the intersected instance. Instances
	// map to entries of the scene object table.
	InstanceIndex uint32

	// Barycentric u/v coordinates of the hit.
	Barycentrics types.Vec2

	// Object to world transform of the intersected instance.
	ObjectToWorld types.Mat4
}
