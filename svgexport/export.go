// Package svgexport builds the files and clipboard payloads
// offered for an icon: SVG text and PNG rasters.
package svgexport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/iconkit/svgraster"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
)

// MIME types of the outputs.
const (
	SVGContentType = "image/svg+xml"
	PNGContentType = "image/png"
	TextMIME       = "text/plain"
)

// Format is a download format.
type Format string

const (
	SVG Format = "SVG"
	PNG Format = "PNG"
)

// ParseFormat accepts "svg" and "png", in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToUpper(strings.TrimSpace(s))); f {
	case SVG, PNG:
		return f, nil
	}
	return "", fmt.Errorf("svgexport: unknown format %q", s)
}

// Ext returns the file extension of the format, with its dot.
func (f Format) Ext() string { return "." + strings.ToLower(string(f)) }

// File is a downloadable output.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ClipboardItem is a typed clipboard payload.
type ClipboardItem struct {
	MIME string
	Data []byte
}

// Filename returns name + ext, with path separators replaced,
// falling back to "icon" for an empty name.
func Filename(name string, f Format) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		name = "icon"
	}
	return name + f.Ext()
}

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc(SVGContentType, svg.Minify)
	return m
}

// Minify returns a compact version of the markup.
func Minify(markup string) (string, error) {
	out, err := minifier.String(SVGContentType, markup)
	if err != nil {
		return "", fmt.Errorf("svgexport: minify: %w", err)
	}
	return out, nil
}

// SVGFile returns <name>.svg holding markup, optionally minified.
func SVGFile(name, markup string, minified bool) (File, error) {
	if minified {
		var err error
		if markup, err = Minify(markup); err != nil {
			return File{}, err
		}
	}
	return File{Name: Filename(name, SVG), ContentType: SVGContentType, Data: []byte(markup)}, nil
}

// PNGFile rasterizes markup into <name>.png, size pixels wide.
func PNGFile(name, markup string, size int, opts ...svgraster.Option) (File, error) {
	data, err := svgraster.Rasterize(markup, size, opts...)
	if err != nil {
		return File{}, err
	}
	return File{Name: Filename(name, PNG), ContentType: PNGContentType, Data: data}, nil
}

// SVGClipboard returns markup as a text clipboard item.
func SVGClipboard(markup string) ClipboardItem {
	return ClipboardItem{MIME: TextMIME, Data: []byte(markup)}
}

// PNGClipboard returns markup rasterized as an image clipboard item.
func PNGClipboard(markup string, size int, opts ...svgraster.Option) (ClipboardItem, error) {
	data, err := svgraster.Rasterize(markup, size, opts...)
	if err != nil {
		return ClipboardItem{}, err
	}
	return ClipboardItem{MIME: PNGContentType, Data: data}, nil
}

// Save writes the file into dir and returns its path.
func (f File) Save(dir string) (string, error) {
	path := filepath.Join(dir, f.Name)
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return "", fmt.Errorf("svgexport: %w", err)
	}
	return path, nil
}
