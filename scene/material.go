package scene

import "github.com/spectra-render/spectra/types"

type MaterialKind uint32

// The set of supported material models. Kind values outside of this range
// are shaded with a diagnostic sentinel color by the integrator.
const (
	Lambertian MaterialKind = iota
	Metallic
	Dielectric
	Isotropic
	DiffuseLight
	numMaterialKinds
)

// Implements Stringer.
func (k MaterialKind) String() string {
	switch k {
	case Lambertian:
		return "lambertian"
	case Metallic:
		return "metallic"
	case Dielectric:
		return "dielectric"
	case Isotropic:
		return "isotropic"
	case DiffuseLight:
		return "diffuse light"
	}
	return "unknown"
}

// Defines a surface material. Materials are immutable for the duration of a
// frame and referenced by primitives through the scene's material map.
type Material struct {
	// The material model.
	Kind MaterialKind

	// Base color. Albedo for reflective models, radiance for emitters.
	Color types.Vec3

	// Reflection cone radius for metallic materials.
	Fuzziness float32

	// Index of refraction for dielectric materials.
	RefractionIndex float32
}

// Create a new lambertian material.
func NewLambertian(color types.Vec3) Material {
	return Material{Kind: Lambertian, Color: color}
}

// Create a new metallic material. Fuzziness controls reflection sharpness;
// 0 yields a perfect mirror.
func NewMetallic(color types.Vec3, fuzziness float32) Material {
	return Material{Kind: Metallic, Color: color, Fuzziness: fuzziness}
}

// Create a new dielectric material. Water has a refraction index of about
// 1.33, glass about 1.5.
func NewDielectric(color types.Vec3, refractionIndex float32) Material {
	return Material{Kind: Dielectric, Color: color, RefractionIndex: refractionIndex}
}

// Create a new emissive material. Brightness scales the base color so that
// emitters can exceed the [0, 1] range.
func NewDiffuseLight(color types.Vec3, brightness float32) Material {
	return Material{Kind: DiffuseLight, Color: color.Mul(brightness)}
}
