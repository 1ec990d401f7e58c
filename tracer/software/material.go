package software

import (
	"math"

	"github.com/spectra-render/spectra/scene"
	"github.com/spectra-render/spectra/types"
)

// Shaded with materials whose kind is unmapped or out of range. The
// saturated magenta makes data-authoring defects visible instead of
// failing the pass.
var sentinelColor = types.Vec3{1, 0, 1}

// The output of the scatter model for a single hit.
type scatterResult struct {
	emission    types.Vec3
	attenuation types.Vec3
	direction   types.Vec3
	scattered   bool
}

// Evaluate the material model for a hit. inDir is the incoming ray
// direction, normal the world-space surface normal at the hit point.
func scatterMaterial(mat scene.Material, known bool, inDir, normal types.Vec3, st *RandomState) scatterResult {
	if !known {
		return scatterResult{emission: sentinelColor}
	}

	switch mat.Kind {
	case scene.Lambertian:
		return scatterLambertian(mat, inDir, normal, st)
	case scene.Metallic:
		return scatterMetallic(mat, inDir, normal, st)
	case scene.Dielectric:
		return scatterDielectric(mat, inDir, normal, st)
	case scene.DiffuseLight:
		return scatterResult{emission: mat.Color}
	default:
		return scatterResult{emission: sentinelColor}
	}
}

func scatterLambertian(mat scene.Material, inDir, normal types.Vec3, st *RandomState) scatterResult {
	dir := normal.Add(st.UnitSphere())
	if dir.LenSq() < 1e-6 {
		// The sphere sample cancelled the normal out.
		dir = normal
	} else {
		dir = dir.Normalize()
	}

	return scatterResult{
		attenuation: mat.Color,
		direction:   dir,
		// Reject rays that approach from behind the surface; guards
		// against shading on approximate box normals.
		scattered: inDir.Dot(normal) < 0,
	}
}

func scatterMetallic(mat scene.Material, inDir, normal types.Vec3, st *RandomState) scatterResult {
	reflected := inDir.Normalize().Reflect(normal)
	dir := reflected.Add(st.UnitSphere().Mul(mat.Fuzziness))

	return scatterResult{
		attenuation: mat.Color,
		direction:   dir,
		// Fuzz can push the reflection below the surface; such rays
		// are absorbed.
		scattered: dir.Dot(normal) > 0,
	}
}

func scatterDielectric(mat scene.Material, inDir, normal types.Vec3, st *RandomState) scatterResult {
	unitDir := inDir.Normalize()

	n := normal
	ratio := 1.0 / mat.RefractionIndex
	if unitDir.Dot(normal) > 0 {
		// Exiting the medium.
		n = normal.Neg()
		ratio = mat.RefractionIndex
	}

	cosTheta := -unitDir.Dot(n)
	if cosTheta > 1 {
		cosTheta = 1
	}

	dir := refract(unitDir, n, ratio)
	if dir.LenSq() == 0 {
		// Total internal reflection.
		dir = unitDir.Reflect(n)
	} else if schlick(cosTheta, ratio) > st.NextFloat() {
		dir = unitDir.Reflect(n)
	}

	return scatterResult{
		attenuation: mat.Color,
		direction:   dir,
		scattered:   true,
	}
}

// Snell refraction. Returns the zero vector when total internal reflection
// occurs, matching the GLSL refract convention.
func refract(in, n types.Vec3, ratio float32) types.Vec3 {
	cosI := n.Dot(in)
	k := 1 - ratio*ratio*(1-cosI*cosI)
	if k < 0 {
		return types.Vec3{}
	}
	return in.Mul(ratio).Sub(n.Mul(ratio*cosI + float32(math.Sqrt(float64(k)))))
}

// Schlick's approximation of Fresnel reflectance.
func schlick(cosTheta, ratio float32) float32 {
	r0 := (1 - ratio) / (1 + ratio)
	r0 *= r0
	return r0 + (1-r0)*float32(math.Pow(float64(1-cosTheta), 5))
}
