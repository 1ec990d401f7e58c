package scene

import (
	"github.com/spectra-render/spectra/types"
)

type CameraDirection uint8

const (
	Forward CameraDirection = iota
	Backward
	Left
	Right
)

// The camera type controls the scene camera.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3
	Pitch    float32
	Yaw      float32

	ViewMat types.Mat4
	ProjMat types.Mat4

	// Camera FOV (degrees).
	FOV float32

	// Lens aperture. A zero aperture produces a pinhole camera with
	// everything in focus.
	Aperture float32

	// Distance to the focal plane along the view direction.
	FocusDistance float32

	// The number of radiance samples per pixel.
	Samples uint32

	// The maximum number of indirect bounces per sample.
	Bounces uint32
}

// Create a new camera with the default lens parameters.
func NewCamera(fov float32) *Camera {
	return &Camera{
		ViewMat:       types.Ident4(),
		ProjMat:       types.Ident4(),
		Position:      types.Vec3{0, 0, 0},
		LookAt:        types.Vec3{0, 0, -1},
		Up:            types.Vec3{0, 1, 0},
		FOV:           fov,
		Aperture:      0.0,
		FocusDistance: 3.4,
		Samples:       5,
		Bounces:       3,
	}
}

// Setup camera projection matrix.
func (c *Camera) SetupProjection(aspect float32) {
	c.ProjMat = types.Perspective4(c.FOV, aspect, 0.001, 10000)
	c.Update()
}

// Update the view matrix after a position or orientation change. Pitch and
// yaw deltas are consumed and folded into the look-at target.
func (c *Camera) Update() {
	dir := c.LookAt.Sub(c.Position).Normalize()
	pitchAxis := dir.Cross(c.Up)
	pitchQuat := types.QuatFromAxisAngle(pitchAxis, c.Pitch)
	yawQuat := types.QuatFromAxisAngle(c.Up, c.Yaw)

	orientQuat := pitchQuat.Mul(yawQuat).Normalize()

	dir = orientQuat.Rotate(dir)
	c.LookAt = c.Position.Add(dir)
	c.Pitch = 0
	c.Yaw = 0

	c.ViewMat = types.LookAtV(c.Position, c.LookAt, c.Up)
}

// Move the camera along one of its local axes.
func (c *Camera) Move(dir CameraDirection, speed float32) {
	viewDir := c.LookAt.Sub(c.Position).Normalize()

	var delta types.Vec3
	switch dir {
	case Forward:
		delta = viewDir.Mul(speed)
	case Backward:
		delta = viewDir.Mul(-speed)
	case Left:
		delta = viewDir.Cross(c.Up).Normalize().Mul(-speed)
	case Right:
		delta = viewDir.Cross(c.Up).Normalize().Mul(speed)
	}

	c.Position = c.Position.Add(delta)
	c.LookAt = c.LookAt.Add(delta)
	c.Update()
}

// Get the world-from-view matrix.
func (c *Camera) InvViewMat() types.Mat4 {
	return c.ViewMat.Inv()
}

// Get the view-from-clip matrix.
func (c *Camera) InvProjMat() types.Mat4 {
	return c.ProjMat.Inv()
}
