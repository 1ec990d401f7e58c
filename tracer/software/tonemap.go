package software

import (
	"math"

	"github.com/spectra-render/spectra/tracer"
)

const gamma = 2.2

// Tonemap one row of the denoised image into the shared 8-bit RGBA
// framebuffer. Exposure is applied in stops, the result is compressed with
// the Reinhard operator and gamma corrected.
func tonemapRow(y int, req *tracer.BlockRequest, src *Image, frameBuffer []uint8) {
	scale := float32(math.Exp2(float64(req.Exposure)))
	invGamma := 1.0 / float64(gamma)

	for x := 0; x < int(req.FrameW); x++ {
		c := src.At(x, y).Mul(scale)
		off := (y*int(req.FrameW) + x) << 2
		for ch := 0; ch < 3; ch++ {
			mapped := c[ch] / (1.0 + c[ch])
			frameBuffer[off+ch] = uint8(math.Pow(float64(mapped), invGamma)*255.0 + 0.5)
		}
		frameBuffer[off+3] = 255
	}
}
