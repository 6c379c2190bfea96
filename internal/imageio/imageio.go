// Package imageio converts between encoded image files and pixelcipher grids.
package imageio

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	"image/png"
	"io"
	"slices"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/idelchi/pixelc/pkg/pixelcipher"
)

// ErrUnsupportedFormat is returned when asked to write a format that is not lossless.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formats that can be written. Lossy formats would break decryption.
const (
	PNG  = "png"
	BMP  = "bmp"
	TIFF = "tiff"
)

// OutputFormats lists the accepted output format names.
func OutputFormats() []string {
	return []string{PNG, BMP, TIFF}
}

// ValidOutput reports whether format can be written.
func ValidOutput(format string) bool {
	return slices.Contains(OutputFormats(), strings.ToLower(format))
}

// MaxPixels is the default pixel limit of Decode.
const MaxPixels = 1 << 30

// ErrTooManyPixels is returned when an image declares more pixels than allowed.
var ErrTooManyPixels = errors.New("image has too many pixels")

// Decode reads any registered image format and flattens it to 8-bit RGB,
// refusing images larger than MaxPixels. It returns the grid and the name of the detected format.
func Decode(r io.Reader) (pixelcipher.Grid, string, error) {
	return DecodeLimit(r, MaxPixels)
}

// DecodeLimit is Decode with a custom pixel limit. The header is checked against
// maxPixels before any pixel data is decoded.
func DecodeLimit(r io.Reader, maxPixels int) (pixelcipher.Grid, string, error) {
	var header bytes.Buffer

	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return pixelcipher.Grid{}, "", fmt.Errorf("decoding image: %w", err)
	}

	if cfg.Width > 0 && cfg.Height > maxPixels/cfg.Width {
		return pixelcipher.Grid{}, "", fmt.Errorf("%w: %dx%d exceeds %d", ErrTooManyPixels, cfg.Width, cfg.Height, maxPixels)
	}

	img, format, err := image.Decode(io.MultiReader(&header, r))
	if err != nil {
		return pixelcipher.Grid{}, "", fmt.Errorf("decoding image: %w", err)
	}

	grid, err := ToGrid(img)
	if err != nil {
		return pixelcipher.Grid{}, format, err
	}

	return grid, format, nil
}

// ToGrid copies img into an RGB grid. Alpha is dropped without premultiplying,
// so translucent pixels keep their stored color.
func ToGrid(img image.Image) (pixelcipher.Grid, error) {
	bounds := img.Bounds()

	grid, err := pixelcipher.NewGrid(bounds.Dy(), bounds.Dx())
	if err != nil {
		return pixelcipher.Grid{}, err
	}

	switch src := img.(type) {
	case *image.NRGBA:
		copyRows(grid, src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y):], src.Stride)

		return grid, nil
	case *image.RGBA:
		if src.Opaque() {
			copyRows(grid, src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y):], src.Stride)

			return grid, nil
		}
	}

	for y := range grid.Height {
		for x := range grid.Width {
			c, _ := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)

			dst := (y*grid.Width + x) * pixelcipher.Channels
			grid.Pix[dst], grid.Pix[dst+1], grid.Pix[dst+2] = c.R, c.G, c.B
		}
	}

	return grid, nil
}

// copyRows copies the RGB bytes of 4-byte-per-pixel rows starting at pix[0].
func copyRows(grid pixelcipher.Grid, pix []uint8, stride int) {
	for y := range grid.Height {
		row := pix[y*stride : y*stride+grid.Width*4]

		for x := range grid.Width {
			dst := (y*grid.Width + x) * pixelcipher.Channels
			copy(grid.Pix[dst:dst+pixelcipher.Channels], row[x*4:x*4+3])
		}
	}
}

// FromGrid converts a grid into an opaque RGBA image.
func FromGrid(grid pixelcipher.Grid) (*image.RGBA, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, grid.Width, grid.Height))

	for i := range grid.Pixels() {
		src := i * pixelcipher.Channels
		dst := i * 4

		copy(img.Pix[dst:dst+3], grid.Pix[src:src+pixelcipher.Channels])
		img.Pix[dst+3] = 0xff
	}

	return img, nil
}

// Encode writes grid to w in the given lossless format.
func Encode(w io.Writer, grid pixelcipher.Grid, format string) error {
	img, err := FromGrid(grid)
	if err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case PNG:
		err = png.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q (valid: %s)", ErrUnsupportedFormat, format, strings.Join(OutputFormats(), ", "))
	}

	if err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}

	return nil
}

// DataURI encodes grid as PNG and returns it as a base64 data URI.
func DataURI(grid pixelcipher.Grid) (string, error) {
	var buf bytes.Buffer

	if err := Encode(&buf, grid, PNG); err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
