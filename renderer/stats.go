package renderer

import "time"

// Per-tracer breakdown of the last rendered frame.
type TracerStat struct {
	// Tracer id.
	Id string

	// True when this tracer rendered the first block of the frame.
	Primary bool

	// Rows assigned to the tracer and the share of the frame they cover.
	BlockH       uint32
	FramePercent float32

	// Time the tracer spent tracing its block.
	RenderTime time.Duration
}

type FrameStats struct {
	Tracers []TracerStat

	// Wall time for the whole frame, including framebuffer sync.
	RenderTime time.Duration
}
