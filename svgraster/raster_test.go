package svgraster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/benoitkugler/iconkit/svgtree"
	"github.com/srwiley/oksvg"
)

const redSquare = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
	<rect width="10" height="10" fill="#ff0000"/>
</svg>`

const smallDot = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">
	<circle cx="50" cy="50" r="10" fill="#0000ff"/>
</svg>`

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	if !bytes.HasPrefix(data, pngHeader) {
		t.Fatal("output does not have PNG header")
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("can't decode png: %s", err)
	}
	return img
}

func near(a, b uint32) bool {
	if a > b {
		a, b = b, a
	}
	return b-a < 0x0800
}

func assertColor(t *testing.T, img image.Image, x, y int, want color.Color) {
	t.Helper()
	r, g, b, a := img.At(x, y).RGBA()
	wr, wg, wb, wa := want.RGBA()
	if !near(r, wr) || !near(g, wg) || !near(b, wb) || !near(a, wa) {
		t.Errorf("pixel (%d, %d): expected %v, got %v", x, y, want, img.At(x, y))
	}
}

func TestRasterize(t *testing.T) {
	data, err := Rasterize(redSquare, 0)
	if err != nil {
		t.Fatalf("can't raster image: %s", err)
	}
	img := decode(t, data)
	if b := img.Bounds(); b.Dx() != DefaultSize || b.Dy() != DefaultSize {
		t.Errorf("expected %dx%d, got %dx%d", DefaultSize, DefaultSize, b.Dx(), b.Dy())
	}
	assertColor(t, img, 256, 256, color.NRGBA{R: 0xff, A: 0xff})
}

func TestRasterizeSizes(t *testing.T) {
	for _, size := range []int{16, 64, 128, 64} {
		data, err := Rasterize(smallDot, size)
		if err != nil {
			t.Fatalf("size %d: %s", size, err)
		}
		img := decode(t, data)
		if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
			t.Errorf("expected %dx%d, got %dx%d", size, size, b.Dx(), b.Dy())
		}
		// surfaces are reused: a previous drawing must not leak through
		assertColor(t, img, 0, 0, color.Transparent)
	}
}

func TestRasterizeBackground(t *testing.T) {
	data, err := Rasterize(smallDot, 100, WithBackground(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}))
	if err != nil {
		t.Fatalf("can't raster image: %s", err)
	}
	img := decode(t, data)
	assertColor(t, img, 2, 2, color.White)
	assertColor(t, img, 50, 50, color.NRGBA{B: 0xff, A: 0xff})
}

func TestRasterizeErrors(t *testing.T) {
	for _, tc := range []struct {
		svg  string
		size int
		want error
	}{
		{"not valid svg at all", 64, ErrImageLoad},
		{"<svg><g></svg>", 64, ErrImageLoad},
		{"", 64, ErrImageLoad},
		{redSquare, -1, ErrSurface},
		{redSquare, MaxSize + 1, ErrSurface},
	} {
		_, err := Rasterize(tc.svg, tc.size)
		if !errors.Is(err, tc.want) {
			t.Errorf("%.20q at %d: expected %v, got %v", tc.svg, tc.size, tc.want, err)
		}
	}

	_, err := Rasterize("<svg><g></svg>", 64)
	if !svgtree.IsParseError(err) {
		t.Errorf("expected the parse error to be wrapped, got %v", err)
	}
}

func TestRasterizeErrorMode(t *testing.T) {
	const labelled = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect width="10" height="10"/><text>A</text></svg>`
	if _, err := Rasterize(labelled, 8); err != nil {
		t.Fatalf("unsupported elements should be skipped by default: %v", err)
	}
	_, err := Rasterize(labelled, 8, WithErrorMode(oksvg.StrictErrorMode))
	if !errors.Is(err, ErrImageLoad) {
		t.Errorf("expected ErrImageLoad in strict mode, got %v", err)
	}
}

func TestRasterSVGIconToImage(t *testing.T) {
	img, err := RasterSVGIconToImage(strings.NewReader(redSquare), 32)
	if err != nil {
		t.Fatalf("can't raster image: %s", err)
	}
	if img.Bounds().Dx() != 32 {
		t.Errorf("unexpected width %d", img.Bounds().Dx())
	}
	assertColor(t, img, 16, 16, color.NRGBA{R: 0xff, A: 0xff})

	if _, err := RasterSVGIconToImage(strings.NewReader("<svg"), 32); !errors.Is(err, ErrImageLoad) {
		t.Errorf("expected ErrImageLoad, got %v", err)
	}
}

func TestEncodeError(t *testing.T) {
	// png rejects images with an empty bounding box
	_, err := encode(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	if !errors.Is(err, ErrEncode) {
		t.Errorf("expected ErrEncode, got %v", err)
	}
}
