package renderer

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spectra-render/spectra/log"
	"github.com/spectra-render/spectra/scene"
	"github.com/spectra-render/spectra/tracer"
	"github.com/spectra-render/spectra/tracer/software"
)

// The default renderer splits the frame into horizontal blocks, fans them
// out to a pool of tracers and syncs the tonemapped result into a shared
// RGBA frame buffer.
type defaultRenderer struct {
	logger log.Logger

	options Options

	sc        *scene.Scene
	scheduler tracer.BlockScheduler

	tracers          []tracer.Tracer
	blockAssignments []uint32

	// The shared RGBA frame buffer tracers sync their blocks into.
	frameBuffer []uint8

	// Number of sequential frames rendered from the current camera
	// position. Resetting to zero invalidates the sample history.
	frameCount uint32

	stats FrameStats
}

// Create a new frame renderer using the specified block scheduler and
// tracing pipeline.
func NewDefault(sc *scene.Scene, scheduler tracer.BlockScheduler, pipeline *software.Pipeline, opts Options) (Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}

	sc.Camera.SetupProjection(float32(opts.FrameW) / float32(opts.FrameH))
	sc.Camera.Update()

	r := &defaultRenderer{
		logger:      log.New("renderer"),
		options:     opts,
		sc:          sc,
		scheduler:   scheduler,
		frameBuffer: make([]uint8, opts.FrameW*opts.FrameH*4),
	}

	for i := 0; i < opts.NumTracers; i++ {
		tr := software.NewTracer(fmt.Sprintf("tracer-%d", i), pipeline)
		if err := tr.Init(); err != nil {
			r.Close()
			return nil, err
		}

		updates := []struct {
			updateType tracer.UpdateType
			data       interface{}
		}{
			{tracer.FrameDimensions, [2]uint32{opts.FrameW, opts.FrameH}},
			{tracer.SceneData, sc},
			{tracer.CameraData, sc.Camera},
			{tracer.FrameBuffer, r.frameBuffer},
		}
		for _, update := range updates {
			if _, err := tr.UpdateState(tracer.Synchronous, update.updateType, update.data); err != nil {
				tr.Close()
				r.Close()
				return nil, err
			}
		}

		r.tracers = append(r.tracers, tr)
	}

	r.stats.Tracers = make([]TracerStat, len(r.tracers))
	return r, nil
}

// Render next frame.
func (r *defaultRenderer) Render() error {
	err := r.renderFrame(r.frameCount)
	if err != nil {
		return err
	}
	r.frameCount++
	return nil
}

// Shutdown renderer and any attached tracer.
func (r *defaultRenderer) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
	r.tracers = nil
}

// Get render statistics.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

// Get the rendered RGBA frame data.
func (r *defaultRenderer) FrameData() []uint8 {
	return r.frameBuffer
}

// Render a single frame. Each tracer renders its assigned block in
// parallel; once every block completes the tonemapped data is synced into
// the shared frame buffer.
func (r *defaultRenderer) renderFrame(frameCount uint32) error {
	if len(r.tracers) == 0 {
		return ErrNoTracers
	}

	start := time.Now()
	r.blockAssignments = r.scheduler.Schedule(r.tracers, r.options.FrameH)

	reqs := make([]tracer.BlockRequest, len(r.tracers))
	errChan := make(chan error, len(r.tracers))

	var blockY uint32
	for idx, tr := range r.tracers {
		reqs[idx] = tracer.BlockRequest{
			FrameW:          r.options.FrameW,
			FrameH:          r.options.FrameH,
			BlockY:          blockY,
			BlockH:          r.blockAssignments[idx],
			SamplesPerPixel: r.options.SamplesPerPixel,
			Exposure:        r.options.Exposure,
			Seed:            rand.Uint32(),
			FrameCount:      frameCount,
		}
		blockY += r.blockAssignments[idx]

		go func(tr tracer.Tracer, req *tracer.BlockRequest) {
			_, err := tr.Trace(req)
			errChan <- err
		}(tr, &reqs[idx])
	}

	for range r.tracers {
		if err := <-errChan; err != nil {
			return err
		}
	}

	for idx, tr := range r.tracers {
		if _, err := tr.SyncFramebuffer(&reqs[idx]); err != nil {
			return err
		}
	}

	// Update stats
	frameArea := float32(r.options.FrameH)
	for idx, tr := range r.tracers {
		trStats := tr.Stats()
		r.stats.Tracers[idx] = TracerStat{
			Id:           tr.Id(),
			Primary:      idx == 0,
			BlockH:       trStats.BlockH,
			FramePercent: 100.0 * float32(trStats.BlockH) / frameArea,
			RenderTime:   trStats.RenderTime,
		}
	}
	r.stats.RenderTime = time.Since(start)

	return nil
}
