package renderer

import "errors"

// Errors reported while setting up or orchestrating a frame.
var (
	ErrNoTracers        = errors.New("renderer: no tracers available")
	ErrSceneNotDefined  = errors.New("renderer: scene has not been defined")
	ErrCameraNotDefined = errors.New("renderer: scene defines no camera")
)
