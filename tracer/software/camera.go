package software

import (
	"github.com/spectra-render/spectra/scene"
	"github.com/spectra-render/spectra/types"
)

const (
	// Primary and scatter ray t-range.
	rayTMin float32 = 0.001
	rayTMax float32 = 10000.0
)

// Per-frame camera data in the form the ray generator consumes: world-from-
// view and view-from-clip matrices plus lens parameters. Immutable once
// derived.
type rayCamera struct {
	viewInv types.Mat4
	projInv types.Mat4

	aperture      float32
	focusDistance float32
	samples       uint32
	bounces       uint32

	eyePos types.Vec3
}

// Derive the ray generator camera from the scene camera. Out-of-range
// values are normalized: at least one sample per pixel.
func newRayCamera(c *scene.Camera) *rayCamera {
	samples := c.Samples
	if samples < 1 {
		samples = 1
	}

	viewInv := c.InvViewMat()
	return &rayCamera{
		viewInv:       viewInv,
		projInv:       c.InvProjMat(),
		aperture:      c.Aperture,
		focusDistance: c.FocusDistance,
		samples:       samples,
		bounces:       c.Bounces,
		eyePos:        viewInv.Mul4x1(types.Vec4{0, 0, 0, 1}).Vec3(),
	}
}

// Generate the primary ray for a sample within a pixel. Sample 0 uses the
// pixel center so that low-sample renders remain deterministic; subsequent
// samples jitter uniformly within the pixel footprint. A non-zero aperture
// offsets the ray origin on the lens disk and re-aims the ray through the
// unperturbed ray's point on the focal plane, keeping that plane sharp.
func (cam *rayCamera) primaryRay(x, y, sample, frameW, frameH uint32, st *RandomState) scene.Ray {
	jitter := types.Vec2{0.5, 0.5}
	if sample > 0 {
		jitter = types.Vec2{st.NextFloat(), st.NextFloat()}
	}

	ndc := types.Vec2{
		(float32(x)+jitter[0])/float32(frameW)*2 - 1,
		1 - (float32(y)+jitter[1])/float32(frameH)*2,
	}

	target := cam.projInv.Mul4x1(types.Vec4{ndc[0], ndc[1], 1, 1})
	viewDir := target.Vec3().Mul(1.0 / target[3]).Normalize()
	dir := cam.viewInv.Mul4x1(viewDir.Vec4(0)).Vec3().Normalize()

	origin := cam.eyePos
	if cam.aperture > 0 {
		lens := st.UnitDisk().Mul(cam.aperture / 2)
		offset := cam.viewInv.Mul4x1(types.Vec4{lens[0], lens[1], 0, 0}).Vec3()
		focusPoint := origin.Add(dir.Mul(cam.focusDistance))

		origin = origin.Add(offset)
		dir = focusPoint.Sub(origin).Normalize()
	}

	return scene.Ray{
		Origin: origin,
		Dir:    dir,
		TMin:   rayTMin,
		TMax:   rayTMax,
		Flags:  scene.CullNone,
	}
}
