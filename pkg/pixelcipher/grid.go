package pixelcipher

import (
	"bytes"
	"fmt"
	"math"
)

// Channels is the number of samples per pixel. Channel order is R, G, B.
const Channels = 3

// Grid is an in-memory RGB image with 8-bit samples.
// The sample for channel c at (x, y) is Pix[(y*Width+x)*Channels+c].
type Grid struct {
	Height   int
	Width    int
	Channels int
	Pix      []uint8
}

// NewGrid allocates a zeroed RGB grid of the given size.
func NewGrid(height, width int) (Grid, error) {
	if err := checkDimensions(height, width); err != nil {
		return Grid{}, err
	}

	return Grid{
		Height:   height,
		Width:    width,
		Channels: Channels,
		Pix:      make([]uint8, height*width*Channels),
	}, nil
}

// Validate reports whether g is a non-empty RGB grid with a consistent buffer.
func (g Grid) Validate() error {
	if err := checkDimensions(g.Height, g.Width); err != nil {
		return err
	}

	if g.Channels != Channels {
		return fmt.Errorf("%w: got %d channels, want %d", ErrChannelMismatch, g.Channels, Channels)
	}

	if want := g.Pixels() * Channels; len(g.Pix) != want {
		return fmt.Errorf("%w: buffer holds %d samples, want %d", ErrChannelMismatch, len(g.Pix), want)
	}

	return nil
}

// checkDimensions rejects empty sizes and sizes whose sample count overflows int.
func checkDimensions(height, width int) error {
	if height <= 0 || width <= 0 || height > math.MaxInt/width/Channels {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	return nil
}

// Pixels returns H*W.
func (g Grid) Pixels() int {
	return g.Height * g.Width
}

// Equal reports whether both grids have the same shape and samples.
func (g Grid) Equal(other Grid) bool {
	return g.Height == other.Height &&
		g.Width == other.Width &&
		g.Channels == other.Channels &&
		bytes.Equal(g.Pix, other.Pix)
}

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	out := g
	out.Pix = bytes.Clone(g.Pix)

	return out
}

// like allocates an empty grid with the shape of g.
func (g Grid) like() Grid {
	return Grid{
		Height:   g.Height,
		Width:    g.Width,
		Channels: g.Channels,
		Pix:      make([]uint8, len(g.Pix)),
	}
}
