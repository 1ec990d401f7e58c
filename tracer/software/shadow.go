package software

import (
	"github.com/spectra-render/spectra/scene"
	"github.com/spectra-render/spectra/types"
)

// Offset applied along the surface normal before casting occlusion rays to
// avoid immediate self-intersection.
const shadowBias float32 = 0.001

// Estimate the direct contribution of the directional light at a lambertian
// hit: a binary hard-shadow visibility test toward the light, scaled by the
// surface's cosine term and floored by the ambient term. Returns the
// radiance to add for this hit (zero when occluded).
func estimateDirectLight(in scene.Intersector, light *scene.Light, point, normal, albedo, throughput types.Vec3) types.Vec3 {
	toLight := light.Direction.Neg().Normalize()

	coeff := light.AmbientScale * toLight.Dot(normal)
	if coeff < light.AmbientFloor {
		coeff = light.AmbientFloor
	}
	if coeff <= 0 {
		return types.Vec3{}
	}

	ray := scene.Ray{
		Origin: point.Add(normal.Mul(shadowBias)),
		Dir:    toLight,
		TMin:   rayTMin,
		TMax:   rayTMax,
		Flags:  scene.TerminateOnFirstHit | scene.OpaqueOnly | scene.CullBackFacing,
	}

	if _, hit := in.Intersect(&ray); hit {
		return types.Vec3{}
	}

	return albedo.Mul(coeff).MulVec(throughput)
}
