package imagepkg

import "errors"

var (
	ErrDimensionMismatch = errors.New("front and back images must have the same size")
	ErrInvalidAnchor     = errors.New("anchor values must be between 0 and 1")
	ErrOutOfBounds       = errors.New("overlay out of borders")
	ErrOversizedOverlay  = errors.New("overlay exceeds card size")
)
