package scene

import "github.com/spectra-render/spectra/types"

// Describes the directional light and sky parameters for a scene. The light
// data is immutable for the duration of a frame.
type Light struct {
	// The minimum amount of light every surface receives.
	AmbientFloor float32

	// Scale factor for the directional light contribution.
	AmbientScale float32

	// Direction the light travels in. Does not need to be normalized.
	Direction types.Vec3

	// The color rays fade to when they miss all scene geometry. Also
	// visible through reflections and refractions.
	SkyColor types.Vec3
}

// Create a light with the default midday-sun parameters.
func DefaultLight() Light {
	return Light{
		AmbientFloor: 0.03,
		AmbientScale: 1.0,
		Direction:    types.Vec3{0, -1, 0},
		SkyColor:     types.Vec3{0.5, 0.7, 1.0},
	}
}
