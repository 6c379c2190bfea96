package pixelcipher

import "errors"

var (
	// ErrInvalidDimensions is returned when a grid has no pixels.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrChannelMismatch is returned when a grid is not 3-channel RGB or its buffer has the wrong length.
	ErrChannelMismatch = errors.New("channel mismatch")
	// ErrEmptyKey is returned when a transform is asked to run with an empty key.
	ErrEmptyKey = errors.New("empty key")
	// ErrUnknownFormat is returned for a stream format that is not pinned by this package.
	ErrUnknownFormat = errors.New("unknown stream format")
)
