package software

import "github.com/spectra-render/spectra/tracer"

type DenoiserKind uint8

// The selectable denoiser strategies. The bilateral and a-trous variants
// trade quality for cost differently; it is worth trying both for a given
// scene and sample count.
const (
	// Pass the accumulated estimate through unfiltered.
	DenoiseNone DenoiserKind = iota

	// Separable two-pass filter gated by the surface discriminator
	// carried in the alpha channel. Fast, decent quality.
	DenoiseBilateral

	// Edge-avoiding a-trous wavelet filter (Dammertz et al. 2010) over
	// the g-buffer. Good quality, still fast.
	DenoiseATrous
)

// Implements Stringer.
func (k DenoiserKind) String() string {
	switch k {
	case DenoiseNone:
		return "none"
	case DenoiseBilateral:
		return "bilateral"
	case DenoiseATrous:
		return "a-trous"
	}
	return "unknown"
}

type DenoiserOptions struct {
	Kind DenoiserKind

	// Largest filter step for the a-trous variant.
	FilterSize uint32
}

// Runs a per-row kernel over the rows of the current block, inserting a
// full barrier before returning so that a subsequent pass observes every
// written texel.
type rowRunner func(fn func(y uint32))

// A denoiser consumes the accumulated radiance estimate plus the auxiliary
// buffers and produces the image to tonemap. Implementations ping-pong
// between the buffer set's secondary images across passes and return the
// image holding the final pass output.
type denoiser interface {
	Denoise(req *tracer.BlockRequest, buffers *bufferSet, input *Image, runRows rowRunner) *Image
}

// Create the denoiser for the requested strategy.
func newDenoiser(opts DenoiserOptions) denoiser {
	switch opts.Kind {
	case DenoiseBilateral:
		return newBilateralDenoiser()
	case DenoiseATrous:
		size := opts.FilterSize
		if size < 1 {
			size = 1
		}
		return newATrousDenoiser(size)
	default:
		return noneDenoiser{}
	}
}

type noneDenoiser struct{}

func (noneDenoiser) Denoise(_ *tracer.BlockRequest, _ *bufferSet, input *Image, _ rowRunner) *Image {
	return input
}

// Clamp a filter tap coordinate to the block's row range.
func clampTap(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
