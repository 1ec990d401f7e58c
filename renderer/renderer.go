package renderer

type Renderer interface {
	// Render frame.
	Render() error

	// Shutdown renderer and any attached tracer.
	Close()

	// Get render statistics.
	Stats() FrameStats

	// Get the rendered RGBA frame data.
	FrameData() []uint8
}
