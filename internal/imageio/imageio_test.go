package imageio_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/idelchi/pixelc/internal/imageio"
	"github.com/idelchi/pixelc/pkg/pixelcipher"
)

func gradient(t *testing.T, height, width int) pixelcipher.Grid {
	t.Helper()

	grid, err := pixelcipher.NewGrid(height, width)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	for i := range grid.Pix {
		grid.Pix[i] = uint8(i * 7) //nolint:gosec // wraps on purpose
	}

	return grid
}

func TestEncodeDecodeLossless(t *testing.T) {
	t.Parallel()

	for _, format := range imageio.OutputFormats() {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			want := gradient(t, 9, 13)

			var buf bytes.Buffer
			if err := imageio.Encode(&buf, want, format); err != nil {
				t.Fatalf("Encode: %v", err)
			}

			got, detected, err := imageio.Decode(&buf)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}

			if detected != format {
				t.Errorf("detected format %q, want %q", detected, format)
			}

			if !got.Equal(want) {
				t.Error("decoded grid differs from the encoded one")
			}
		})
	}
}

func TestEncodeRejectsLossyFormat(t *testing.T) {
	t.Parallel()

	err := imageio.Encode(&bytes.Buffer{}, gradient(t, 2, 2), "jpeg")
	if !errors.Is(err, imageio.ErrUnsupportedFormat) {
		t.Errorf("Encode(jpeg) error = %v, want ErrUnsupportedFormat", err)
	}

	if imageio.ValidOutput("jpeg") {
		t.Error("jpeg reported as a valid output format")
	}

	if !imageio.ValidOutput("PNG") {
		t.Error("PNG not reported as a valid output format")
	}
}

func TestDecodeDropsAlpha(t *testing.T) {
	t.Parallel()

	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	src.SetNRGBA(2, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 0})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	grid, _, err := imageio.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if grid.Channels != pixelcipher.Channels {
		t.Fatalf("Channels = %d, want %d", grid.Channels, pixelcipher.Channels)
	}

	// Stored colors survive regardless of alpha.
	want := []uint8{10, 20, 30, 200, 100, 50, 200, 100, 50}
	if !bytes.Equal(grid.Pix, want) {
		t.Errorf("Pix = %v, want %v", grid.Pix, want)
	}
}

func TestToGridGray(t *testing.T) {
	t.Parallel()

	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.SetGray(0, 0, color.Gray{Y: 77})
	src.SetGray(1, 0, color.Gray{Y: 255})

	grid, err := imageio.ToGrid(src)
	if err != nil {
		t.Fatalf("ToGrid: %v", err)
	}

	if want := []uint8{77, 77, 77, 255, 255, 255}; !bytes.Equal(grid.Pix, want) {
		t.Errorf("Pix = %v, want %v", grid.Pix, want)
	}
}

func TestDecodeLimit(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, gradient(t, 4, 5), imageio.PNG); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if _, _, err := imageio.DecodeLimit(bytes.NewReader(buf.Bytes()), 19); !errors.Is(err, imageio.ErrTooManyPixels) {
		t.Errorf("DecodeLimit(19) error = %v, want ErrTooManyPixels", err)
	}

	grid, format, err := imageio.DecodeLimit(bytes.NewReader(buf.Bytes()), 20)
	if err != nil {
		t.Fatalf("DecodeLimit(20): %v", err)
	}

	if format != imageio.PNG || !grid.Equal(gradient(t, 4, 5)) {
		t.Errorf("DecodeLimit(20) = %s %dx%d, want the original png", format, grid.Width, grid.Height)
	}
}

func TestDecodeSubImage(t *testing.T) {
	t.Parallel()

	full := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range full.Pix {
		full.Pix[i] = 0xff
	}

	full.SetRGBA(2, 2, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	sub, ok := full.SubImage(image.Rect(2, 2, 4, 4)).(*image.RGBA)
	if !ok {
		t.Fatal("SubImage is not *image.RGBA")
	}

	grid, err := imageio.ToGrid(sub)
	if err != nil {
		t.Fatalf("ToGrid: %v", err)
	}

	if grid.Height != 2 || grid.Width != 2 {
		t.Fatalf("size = %dx%d, want 2x2", grid.Width, grid.Height)
	}

	if !bytes.Equal(grid.Pix[:3], []uint8{1, 2, 3}) {
		t.Errorf("first pixel = %v, want [1 2 3]", grid.Pix[:3])
	}
}

func TestDecodeJPEG(t *testing.T) {
	t.Parallel()

	img, err := imageio.FromGrid(gradient(t, 8, 8))
	if err != nil {
		t.Fatalf("FromGrid: %v", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}

	grid, format, err := imageio.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if format != "jpeg" || grid.Height != 8 || grid.Width != 8 {
		t.Errorf("got %s %dx%d, want jpeg 8x8", format, grid.Width, grid.Height)
	}
}

func TestDecodeGarbage(t *testing.T) {
	t.Parallel()

	if _, _, err := imageio.Decode(strings.NewReader("not an image")); err == nil {
		t.Error("Decode accepted garbage")
	}
}

func TestDataURI(t *testing.T) {
	t.Parallel()

	uri, err := imageio.DataURI(gradient(t, 3, 3))
	if err != nil {
		t.Fatalf("DataURI: %v", err)
	}

	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("DataURI = %q, missing PNG data prefix", uri[:min(len(uri), 32)])
	}
}
