package software

import (
	"github.com/spectra-render/spectra/tracer"
	"github.com/spectra-render/spectra/types"
)

// Number of frames rendered from a static camera before the temporal blend
// starts folding new frames into the history.
const accumWarmupFrames = 2

// The accumulator maintains the per-pixel radiance history. Before the
// warm-up threshold (or with temporal blending disabled) the frame estimate
// overwrites the history; afterwards it is folded in as a running mean:
//
//	new = (old*frameIndex + estimate) / (frameIndex + 1)
//
// Invalidation on camera movement is the renderer's responsibility; it
// resets the request's frame counter which drops the blend back to
// overwrite mode.
type accumulator struct {
	temporal bool
}

func (acc *accumulator) accumulateRow(y uint32, req *tracer.BlockRequest, radiance, accum *Image) {
	blend := acc.temporal && req.FrameCount >= accumWarmupFrames
	frame := float32(req.FrameCount)

	var x uint32
	for x = 0; x < req.FrameW; x++ {
		estimate := radiance.At(int(x), int(y))

		if blend {
			old := accum.At(int(x), int(y))
			estimate = old.Mul(frame).Add(estimate).Mul(1.0 / (frame + 1))
		}

		accum.Set(int(x), int(y), estimate)
	}
}

// Preserve the alpha channel variant used by the separable denoiser: the
// accumulated image's alpha carries the primary-hit discriminator derived
// from the g-buffer (object-feature hash) so the filter can gate neighbor
// acceptance without extra buffers.
func surfaceDiscriminator(albedo, normal types.Vec3) float32 {
	return albedo[0] + albedo[1] + albedo[2] + 0.5*(normal[0]+normal[1]+normal[2])
}

func (acc *accumulator) tagRow(y uint32, req *tracer.BlockRequest, albedo, normal, accum *Image) {
	var x uint32
	for x = 0; x < req.FrameW; x++ {
		texel := accum.At4(int(x), int(y))
		texel[3] = surfaceDiscriminator(albedo.At(int(x), int(y)), normal.At(int(x), int(y)))
		accum.Set4(int(x), int(y), texel)
	}
}
