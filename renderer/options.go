package renderer

import (
	"errors"

	"github.com/spectra-render/spectra/tracer/software"
)

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of samples per pixel and frame; zero falls back to the scene
	// camera's sample count. In interactive mode refinement stops once this
	// many frames have been accumulated, or never when zero.
	SamplesPerPixel uint32

	// Exposure for tonemapping.
	Exposure float32

	// Number of tracers sharing the frame.
	NumTracers int

	// Denoiser selection.
	Denoiser software.DenoiserOptions

	// Blend consecutive frames from a static camera.
	Accumulate bool
}

func (o *Options) Validate() error {
	if o.FrameW == 0 || o.FrameH == 0 {
		return errors.New("renderer: invalid frame dimensions")
	}
	if o.NumTracers <= 0 {
		o.NumTracers = 1
	}
	if uint32(o.NumTracers) > o.FrameH {
		return errors.New("renderer: more tracers than frame rows")
	}
	return nil
}
