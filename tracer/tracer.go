package tracer

import "time"

type UpdateMode uint8

const (
	// Block until the tracer has applied the state change.
	Synchronous UpdateMode = iota

	// Queue the state change to be applied before the next traced frame.
	Asynchronous
)

type UpdateType uint8

// The tracer state that can be updated between frames. Queued updates are
// grouped by type; later updates of the same type overwrite earlier ones.
const (
	FrameDimensions UpdateType = iota
	SceneData
	CameraData
	LightData
	FrameBuffer
)

// A unit of work that is processed by a tracer.
type BlockRequest struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Block start row and height.
	BlockY uint32
	BlockH uint32

	// The number of emitted rays per traced pixel.
	SamplesPerPixel uint32

	// The exposure value controls HDR -> LDR mapping.
	Exposure float32

	// A seed value for the tracer's random number generator.
	Seed uint32

	// Number of sequential rendered frames from the current camera
	// position; drives temporal sample accumulation.
	FrameCount uint32
}

// Tracer statistics.
type Stats struct {
	// The rendered block height.
	BlockH uint32

	// The time for rendering this block.
	RenderTime time.Duration
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Get the tracer's computation speed estimate compared to a baseline
	// single-worker implementation.
	Speed() uint32

	// Initialize the tracer and start its worker.
	Init() error

	// Shutdown and cleanup tracer.
	Close()

	// Queue a state change. Synchronous changes are applied before this
	// call returns; asynchronous ones before the next frame.
	UpdateState(UpdateMode, UpdateType, interface{}) (time.Duration, error)

	// Run the tracing pipeline for a block request.
	Trace(*BlockRequest) (time.Duration, error)

	// Copy the tracer's tonemapped block into the attached frame buffer.
	SyncFramebuffer(*BlockRequest) (time.Duration, error)

	// Retrieve last frame statistics.
	Stats() *Stats
}
