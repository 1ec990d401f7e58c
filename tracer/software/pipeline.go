package software

import (
	"time"

	"github.com/spectra-render/spectra/tracer"
)

// An alias for functions that can be used as part of the rendering pipeline.
type PipelineStage func(tr *Tracer, blockReq *tracer.BlockRequest) (time.Duration, error)

// The list of pluggable stages that are used to render the scene.
type Pipeline struct {
	// Reset the tracer state. This stage is executed whenever the
	// sample history is invalidated (first frame, camera move).
	Reset PipelineStage

	// This stage implements an integrator function that estimates
	// per-pixel radiance and fills in the auxiliary g-buffer.
	Integrator PipelineStage

	// A set of post-processing stages that are executed prior to
	// syncing the final frame.
	PostProcess []PipelineStage
}

// Create the default rendering pipeline: path trace, blend into the sample
// history and denoise with the selected strategy.
func DefaultPipeline(denoiserOpts DenoiserOptions, temporalAccum bool) *Pipeline {
	pipeline := &Pipeline{
		Reset:      ClearHistory(),
		Integrator: MonteCarloIntegrator(),
		PostProcess: []PipelineStage{
			AccumulateSamples(temporalAccum),
		},
	}

	if denoiserOpts.Kind == DenoiseBilateral {
		pipeline.PostProcess = append(pipeline.PostProcess, TagSurfaces())
	}
	pipeline.PostProcess = append(pipeline.PostProcess, Denoise(denoiserOpts))

	return pipeline
}

// Clear the sample history and the g-buffer.
func ClearHistory() PipelineStage {
	return func(tr *Tracer, blockReq *tracer.BlockRequest) (time.Duration, error) {
		start := time.Now()
		tr.buffers.accum.Clear()
		tr.buffers.albedo.Clear()
		tr.buffers.normal.Clear()
		tr.buffers.position.Clear()
		return time.Since(start), nil
	}
}

// Use a montecarlo pathtracer implementation.
func MonteCarloIntegrator() PipelineStage {
	return func(tr *Tracer, blockReq *tracer.BlockRequest) (time.Duration, error) {
		start := time.Now()
		in := &integrator{
			sc:      tr.sceneData,
			cam:     tr.camera,
			light:   &tr.sceneData.Light,
			buffers: tr.buffers,
		}
		tr.runRows(blockReq, func(y uint32) {
			in.renderRow(y, blockReq)
		})
		return time.Since(start), nil
	}
}

// Blend this frame's estimate into the per-pixel sample history.
func AccumulateSamples(temporal bool) PipelineStage {
	acc := &accumulator{temporal: temporal}
	return func(tr *Tracer, blockReq *tracer.BlockRequest) (time.Duration, error) {
		start := time.Now()
		tr.runRows(blockReq, func(y uint32) {
			acc.accumulateRow(y, blockReq, tr.buffers.radiance, tr.buffers.accum)
		})
		return time.Since(start), nil
	}
}

// Write the surface discriminator into the history's alpha channel.
func TagSurfaces() PipelineStage {
	acc := &accumulator{}
	return func(tr *Tracer, blockReq *tracer.BlockRequest) (time.Duration, error) {
		start := time.Now()
		tr.runRows(blockReq, func(y uint32) {
			acc.tagRow(y, blockReq, tr.buffers.albedo, tr.buffers.normal, tr.buffers.accum)
		})
		return time.Since(start), nil
	}
}

// Filter the accumulated history with the selected denoiser and publish the
// result as the tracer's displayable output.
func Denoise(opts DenoiserOptions) PipelineStage {
	dn := newDenoiser(opts)
	return func(tr *Tracer, blockReq *tracer.BlockRequest) (time.Duration, error) {
		start := time.Now()
		tr.output = dn.Denoise(blockReq, tr.buffers, tr.buffers.accum, func(fn func(y uint32)) {
			tr.runRows(blockReq, fn)
		})
		return time.Since(start), nil
	}
}
