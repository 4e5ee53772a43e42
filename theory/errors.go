package theory

import "errors"

var (
	ErrInvalidDegree   = errors.New("scale degree must be positive")
	ErrNotInKey        = errors.New("pitch is not in key")
	ErrInvalidKey      = errors.New("invalid key")
	ErrInvalidNoteName = errors.New("invalid note name")
)
