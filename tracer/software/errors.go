package software

import "errors"

var (
	ErrAlreadyInitialized    = errors.New("tracer: already initialized")
	ErrNotInitialized        = errors.New("tracer: not initialized")
	ErrNoSceneData           = errors.New("tracer: no scene data uploaded")
	ErrNoCameraData          = errors.New("tracer: no camera data uploaded")
	ErrNoFrameBuffer         = errors.New("tracer: no frame buffer attached")
	ErrInvalidUpdateData     = errors.New("tracer: invalid data for update type")
	ErrUnsupportedUpdateType = errors.New("tracer: unsupported update type")
)
