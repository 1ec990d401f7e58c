package software

import "github.com/spectra-render/spectra/types"

// A linear RGBA float image. One independent unit of work per pixel; within
// a pass no pixel depends on another pixel's result from that same pass.
type Image struct {
	W, H uint32
	Pix  []float32
}

// Create a new zeroed image.
func NewImage(w, h uint32) *Image {
	return &Image{
		W:   w,
		H:   h,
		Pix: make([]float32, w*h*4),
	}
}

// Read the RGB components at (x, y). Coordinates are clamped to the image
// bounds.
func (img *Image) At(x, y int) types.Vec3 {
	off := img.clampOffset(x, y)
	return types.Vec3{img.Pix[off], img.Pix[off+1], img.Pix[off+2]}
}

// Read the full RGBA texel at (x, y). Coordinates are clamped to the image
// bounds.
func (img *Image) At4(x, y int) types.Vec4 {
	off := img.clampOffset(x, y)
	return types.Vec4{img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3]}
}

// Write the RGB components at (x, y), leaving alpha at 1.
func (img *Image) Set(x, y int, v types.Vec3) {
	off := img.clampOffset(x, y)
	img.Pix[off] = v[0]
	img.Pix[off+1] = v[1]
	img.Pix[off+2] = v[2]
	img.Pix[off+3] = 1
}

// Write the full RGBA texel at (x, y).
func (img *Image) Set4(x, y int, v types.Vec4) {
	off := img.clampOffset(x, y)
	img.Pix[off] = v[0]
	img.Pix[off+1] = v[1]
	img.Pix[off+2] = v[2]
	img.Pix[off+3] = v[3]
}

// Zero all texels.
func (img *Image) Clear() {
	for i := range img.Pix {
		img.Pix[i] = 0
	}
}

func (img *Image) clampOffset(x, y int) int {
	if x < 0 {
		x = 0
	} else if x >= int(img.W) {
		x = int(img.W) - 1
	}
	if y < 0 {
		y = 0
	} else if y >= int(img.H) {
		y = int(img.H) - 1
	}
	return (y*int(img.W) + x) * 4
}

// The set of images a tracer renders into. The radiance image holds this
// frame's per-pixel estimate, accum the blended history and the g-buffer
// images the auxiliary data produced by the integrator's primary hits and
// consumed by the edge-aware denoiser. The secondary pair is ping-ponged
// between denoiser passes.
type bufferSet struct {
	radiance *Image
	accum    *Image

	albedo   *Image
	normal   *Image
	position *Image

	secondary [2]*Image
}

func newBufferSet(w, h uint32) *bufferSet {
	return &bufferSet{
		radiance:  NewImage(w, h),
		accum:     NewImage(w, h),
		albedo:    NewImage(w, h),
		normal:    NewImage(w, h),
		position:  NewImage(w, h),
		secondary: [2]*Image{NewImage(w, h), NewImage(w, h)},
	}
}
