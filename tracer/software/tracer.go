package software

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/spectra-render/spectra/log"
	"github.com/spectra-render/spectra/scene"
	"github.com/spectra-render/spectra/tracer"
)

// A block request paired with a channel for reporting the render outcome
// back to the caller.
type traceRequest struct {
	blockReq *tracer.BlockRequest
	errChan  chan error
}

// A CPU-bound tracer. Rendering fans the rows of each block out to a pool
// of worker goroutines; a full barrier separates consecutive pipeline
// stages so every stage observes the complete output of the previous one.
type Tracer struct {
	logger log.Logger

	sync.Mutex
	wg sync.WaitGroup

	// The tracer id.
	id string

	// Number of row workers.
	numWorkers int

	// A buffer for queuing updates. Updates are grouped by type and
	// latest updates always overwrite the previous ones.
	updateBuffer map[tracer.UpdateType]interface{}

	// A channel for receiving block requests from the renderer.
	blockReqChan chan traceRequest

	// A channel for signaling the worker to exit.
	closeChan chan struct{}

	// Statistics for last rendered frame.
	stats *tracer.Stats

	// The tracer rendering pipeline.
	pipeline *Pipeline

	// Frame dims.
	frameW uint32
	frameH uint32

	// The uploaded scene and camera data.
	sceneData *scene.Scene
	camera    *rayCamera

	// The render targets.
	buffers *bufferSet
	output  *Image

	// The attached RGBA frame buffer that SyncFramebuffer writes to.
	frameBuffer []uint8
}

// Create a new software tracer.
func NewTracer(id string, pipeline *Pipeline) *Tracer {
	numWorkers := runtime.NumCPU()
	loggerName := fmt.Sprintf("software tracer (%d workers)", numWorkers)

	return &Tracer{
		logger:       log.New(loggerName),
		id:           id,
		numWorkers:   numWorkers,
		updateBuffer: make(map[tracer.UpdateType]interface{}, 0),
		blockReqChan: make(chan traceRequest, 0),
		stats:        &tracer.Stats{},
		pipeline:     pipeline,
	}
}

// Get tracer id.
func (tr *Tracer) Id() string {
	return tr.id
}

// Get the computation speed estimate.
func (tr *Tracer) Speed() uint32 {
	return uint32(tr.numWorkers)
}

// Initialize tracer and start its worker.
func (tr *Tracer) Init() error {
	tr.Lock()
	defer tr.Unlock()

	if tr.closeChan != nil {
		return ErrAlreadyInitialized
	}

	tr.startWorker()
	return nil
}

// Shutdown and cleanup tracer.
func (tr *Tracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	if tr.closeChan == nil {
		return
	}

	close(tr.closeChan)
	tr.wg.Wait()
	tr.closeChan = nil
}

// Queue a state change. Synchronous changes are applied before this call
// returns; asynchronous ones before the next frame.
func (tr *Tracer) UpdateState(mode tracer.UpdateMode, updateType tracer.UpdateType, data interface{}) (time.Duration, error) {
	start := time.Now()

	tr.Lock()
	defer tr.Unlock()

	if mode == tracer.Asynchronous {
		tr.updateBuffer[updateType] = data
		return time.Since(start), nil
	}

	err := tr.applyUpdate(updateType, data)
	return time.Since(start), err
}

// Run the tracing pipeline for a block request.
func (tr *Tracer) Trace(blockReq *tracer.BlockRequest) (time.Duration, error) {
	start := time.Now()

	req := traceRequest{
		blockReq: blockReq,
		errChan:  make(chan error, 0),
	}

	tr.Lock()
	if tr.closeChan == nil {
		tr.Unlock()
		return 0, ErrNotInitialized
	}
	tr.Unlock()

	tr.blockReqChan <- req
	err := <-req.errChan

	elapsed := time.Since(start)
	tr.stats.BlockH = blockReq.BlockH
	tr.stats.RenderTime = elapsed
	return elapsed, err
}

// Copy the tracer's tonemapped block into the attached frame buffer.
func (tr *Tracer) SyncFramebuffer(blockReq *tracer.BlockRequest) (time.Duration, error) {
	start := time.Now()

	tr.Lock()
	defer tr.Unlock()

	if tr.frameBuffer == nil {
		return time.Since(start), ErrNoFrameBuffer
	}
	if tr.output == nil {
		return time.Since(start), ErrNoSceneData
	}

	tr.runRows(blockReq, func(y uint32) {
		tonemapRow(int(y), blockReq, tr.output, tr.frameBuffer)
	})
	return time.Since(start), nil
}

// Retrieve last frame statistics.
func (tr *Tracer) Stats() *tracer.Stats {
	return tr.stats
}

// Apply a state change. This method is meant to be called while holding
// tr.Lock().
func (tr *Tracer) applyUpdate(updateType tracer.UpdateType, data interface{}) error {
	switch updateType {
	case tracer.FrameDimensions:
		dims, ok := data.([2]uint32)
		if !ok {
			return ErrInvalidUpdateData
		}
		tr.frameW, tr.frameH = dims[0], dims[1]
		tr.buffers = newBufferSet(tr.frameW, tr.frameH)
		tr.output = nil
	case tracer.SceneData:
		sc, ok := data.(*scene.Scene)
		if !ok {
			return ErrInvalidUpdateData
		}
		tr.sceneData = sc
		if sc.Camera != nil {
			tr.camera = newRayCamera(sc.Camera)
		}
	case tracer.CameraData:
		camera, ok := data.(*scene.Camera)
		if !ok {
			return ErrInvalidUpdateData
		}
		tr.camera = newRayCamera(camera)
	case tracer.LightData:
		light, ok := data.(scene.Light)
		if !ok {
			return ErrInvalidUpdateData
		}
		if tr.sceneData == nil {
			return ErrNoSceneData
		}
		tr.sceneData.Light = light
	case tracer.FrameBuffer:
		fb, ok := data.([]uint8)
		if !ok {
			return ErrInvalidUpdateData
		}
		tr.frameBuffer = fb
	default:
		return ErrUnsupportedUpdateType
	}
	return nil
}

// Commit queued changes. This method is meant to be called while holding
// tr.Lock().
func (tr *Tracer) commitUpdates() error {
	for updateType, data := range tr.updateBuffer {
		if err := tr.applyUpdate(updateType, data); err != nil {
			return err
		}
	}
	tr.updateBuffer = make(map[tracer.UpdateType]interface{}, 0)
	return nil
}

// Spawn a go-routine to process block render requests.
func (tr *Tracer) startWorker() {
	tr.closeChan = make(chan struct{}, 0)

	readyChan := make(chan struct{}, 0)
	tr.wg.Add(1)
	go func() {
		defer tr.wg.Done()
		close(readyChan)
		for {
			select {
			case req := <-tr.blockReqChan:
				req.errChan <- tr.renderBlock(req.blockReq)
			case <-tr.closeChan:
				return
			}
		}
	}()

	// Wait for go-routine to start
	<-readyChan
}

// Render block.
func (tr *Tracer) renderBlock(blockReq *tracer.BlockRequest) error {
	tr.Lock()
	defer tr.Unlock()

	// Apply any pending changes
	if len(tr.updateBuffer) != 0 {
		if err := tr.commitUpdates(); err != nil {
			return err
		}
	}

	if tr.sceneData == nil {
		return ErrNoSceneData
	}
	if tr.camera == nil {
		return ErrNoCameraData
	}
	if tr.buffers == nil {
		return ErrNotInitialized
	}

	// Execute pipeline
	if blockReq.FrameCount == 0 && tr.pipeline.Reset != nil {
		if _, err := tr.pipeline.Reset(tr, blockReq); err != nil {
			return err
		}
	}
	if _, err := tr.pipeline.Integrator(tr, blockReq); err != nil {
		return err
	}
	for _, stage := range tr.pipeline.PostProcess {
		if _, err := stage(tr, blockReq); err != nil {
			return err
		}
	}

	return nil
}

// Run fn for every row of the request's block, fanning the rows out to the
// worker pool and blocking until all of them complete.
func (tr *Tracer) runRows(blockReq *tracer.BlockRequest, fn func(y uint32)) {
	rowChan := make(chan uint32, blockReq.BlockH)
	for y := blockReq.BlockY; y < blockReq.BlockY+blockReq.BlockH; y++ {
		rowChan <- y
	}
	close(rowChan)

	var wg sync.WaitGroup
	for worker := 0; worker < tr.numWorkers; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rowChan {
				fn(y)
			}
		}()
	}
	wg.Wait()
}
