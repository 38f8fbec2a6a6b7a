// Implements a raster backend turning SVG icons into
// square PNG images, by wrapping oksvg and rasterx.
package svgraster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/benoitkugler/iconkit/svgtree"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const (
	// DefaultSize is the side, in pixels, used when a zero size is requested.
	DefaultSize = 512
	// MaxSize bounds the side of the drawing surface.
	MaxSize = 8192
)

// The three failure classes of a rasterization.
var (
	ErrSurface   = errors.New("svgraster: drawing surface unavailable")
	ErrImageLoad = errors.New("svgraster: can't load svg image")
	ErrEncode    = errors.New("svgraster: can't encode png")
)

// Option configures a rasterization.
type Option func(*config)

type config struct {
	background color.Color
	errMode    oksvg.ErrorMode
}

func defaultConfig() *config {
	return &config{background: color.Transparent, errMode: oksvg.IgnoreErrorMode}
}

// WithBackground fills the surface with c before drawing the icon.
// The default is a transparent surface.
func WithBackground(c color.Color) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.background = c
		}
	}
}

// WithErrorMode selects how unsupported SVG elements are handled
// (ignored, logged or rejected). The default ignores them.
func WithErrorMode(mode oksvg.ErrorMode) Option {
	return func(cfg *config) { cfg.errMode = mode }
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func checkSize(size int) (int, error) {
	if size == 0 {
		return DefaultSize, nil
	}
	if size < 0 || size > MaxSize {
		return 0, fmt.Errorf("%w: invalid size %d", ErrSurface, size)
	}
	return size, nil
}

// loadIcon checks that the markup is well-formed, then parses it as an icon.
func loadIcon(data []byte, errMode oksvg.ErrorMode) (*oksvg.SvgIcon, error) {
	if _, err := svgtree.Parse(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageLoad, err)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), errMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageLoad, err)
	}
	return icon, nil
}

// paint draws icon stretched over the whole of dst.
func paint(dst *image.RGBA, icon *oksvg.SvgIcon, background color.Color) {
	bounds := dst.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	draw.Draw(dst, bounds, image.NewUniform(background), image.Point{}, draw.Src)

	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		// no usable view box nor width/height: draw in surface units
		icon.ViewBox.W, icon.ViewBox.H = float64(w), float64(h)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, dst, bounds)
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
}

// RasterSVGIconToImage renders the icon read from r into
// a new size x size image and returns it.
func RasterSVGIconToImage(r io.Reader, size int, opts ...Option) (*image.RGBA, error) {
	cfg := newConfig(opts)
	size, err := checkSize(size)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageLoad, err)
	}
	icon, err := loadIcon(data, cfg.errMode)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	paint(img, icon, cfg.background)
	return img, nil
}

// Rasterize renders svg into a size x size PNG image.
// A zero size means DefaultSize.
// Errors wrap one of ErrSurface, ErrImageLoad or ErrEncode.
func Rasterize(svg string, size int, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	size, err := checkSize(size)
	if err != nil {
		return nil, err
	}
	icon, err := loadIcon([]byte(svg), cfg.errMode)
	if err != nil {
		return nil, err
	}

	surf := acquire(size)
	defer surf.release()

	paint(surf.img, icon, cfg.background)
	return encode(surf.img)
}

func encode(img image.Image) ([]byte, error) {
	var b bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&b, img); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if b.Len() == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrEncode)
	}
	return b.Bytes(), nil
}
