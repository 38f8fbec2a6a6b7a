// Package editor implements the state of the SVG tools page:
// free form markup edition with well-formedness feedback,
// export settings and SVG/PNG outputs.
package editor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/benoitkugler/iconkit/assets"
	"github.com/benoitkugler/iconkit/i18n"
	"github.com/benoitkugler/iconkit/svgcolor"
	"github.com/benoitkugler/iconkit/svgexport"
	"github.com/benoitkugler/iconkit/svgraster"
	"github.com/benoitkugler/iconkit/svgtree"
)

// Defaults used when the page is opened without parameters.
const (
	DefaultSVG = `<svg width="100" height="100" xmlns="http://www.w3.org/2000/svg">
  <circle cx="50" cy="50" r="40" fill="#3b82f6" />
</svg>`
	DefaultName        = "icon"
	DefaultIconSize    = 64
	DefaultBackground  = "#ffffff"
	DefaultPreviewSize = 128
)

// Query parameters of the tools page.
const (
	ParamSVG  = "svg"
	ParamName = "name"
)

// ToolsPath is the route of the tools page, before base path.
const ToolsPath = "/tools"

// State is the set of values edited on the page.
type State struct {
	SVG         string
	Name        string
	IconSize    int
	Background  string
	PreviewSize int
}

// Editor is the tools page state. It is not safe for concurrent use.
type Editor struct {
	initial State
	current State
	err     string
	msgs    *i18n.Catalog
	minify  bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithMessages selects the language of the validation message.
func WithMessages(c *i18n.Catalog) Option {
	return func(e *Editor) { e.msgs = c }
}

// WithMinifiedSVG makes DownloadSVG minify the markup.
func WithMinifiedSVG(on bool) Option {
	return func(e *Editor) { e.minify = on }
}

// decodeSVG undoes the extra percent encoding applied by callers
// which encode the value before building the query.
func decodeSVG(v string) string {
	if !strings.HasPrefix(strings.ToLower(v), "%3c") {
		return v
	}
	if dec, err := url.QueryUnescape(v); err == nil {
		return dec
	}
	return v
}

// decodeName is decodeSVG for names: a name still holding a %XX
// escape is decoded once more. A lone '+' is kept as written.
func decodeName(v string) string {
	if !hasEscape(v) {
		return v
	}
	if dec, err := url.PathUnescape(v); err == nil {
		return dec
	}
	return v
}

func hasEscape(s string) bool {
	for i := 0; i+2 < len(s); i++ {
		if s[i] == '%' && isHex(s[i+1]) && isHex(s[i+2]) {
			return true
		}
	}
	return false
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// New opens the page with the given query. Missing svg and name
// parameters fall back to DefaultSVG and DefaultName.
func New(query url.Values, opts ...Option) *Editor {
	start := State{
		SVG:         DefaultSVG,
		Name:        DefaultName,
		IconSize:    DefaultIconSize,
		Background:  DefaultBackground,
		PreviewSize: DefaultPreviewSize,
	}
	if v := query.Get(ParamSVG); v != "" {
		start.SVG = decodeSVG(v)
	}
	if v := query.Get(ParamName); v != "" {
		start.Name = decodeName(v)
	}
	e := &Editor{initial: start, msgs: i18n.Match()}
	for _, opt := range opts {
		opt(e)
	}
	e.Reset()
	return e
}

// FromRawQuery parses an encoded query string, such as
// "svg=%3Csvg...&name=github", and opens the page with it.
func FromRawQuery(raw string, opts ...Option) (*Editor, error) {
	q, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return nil, fmt.Errorf("editor: invalid query: %w", err)
	}
	return New(q, opts...), nil
}

// ToolsURL returns the link opening the tools page on svg and name.
func ToolsURL(r assets.Resolver, svg, name string) string {
	q := url.Values{ParamSVG: {svg}, ParamName: {name}}
	return r.Path(ToolsPath) + "?" + q.Encode()
}

// State returns the current values.
func (e *Editor) State() State { return e.current }

// Initial returns the values the page was opened with.
func (e *Editor) Initial() State { return e.initial }

// SVG returns the current markup.
func (e *Editor) SVG() string { return e.current.SVG }

// Name returns the current icon name.
func (e *Editor) Name() string { return e.current.Name }

// Error returns the localized validation message of the current markup,
// or an empty string when it is well-formed.
func (e *Editor) Error() string { return e.err }

// SetSVG replaces the markup. Edition goes on even when it is not
// well-formed: the problem is only reported by Error.
func (e *Editor) SetSVG(markup string) {
	e.current.SVG = markup
	e.validate()
}

func (e *Editor) validate() {
	e.err = ""
	if _, err := svgtree.ParseString(e.current.SVG); err != nil {
		e.err = e.msgs.Message(i18n.SVGFormatError)
	}
}

// SetName changes the name used for the downloaded files.
func (e *Editor) SetName(name string) { e.current.Name = name }

// SetIconSize sets the side of the exported PNG.
func (e *Editor) SetIconSize(size int) error {
	if size <= 0 || size > svgraster.MaxSize {
		return fmt.Errorf("editor: invalid icon size %d", size)
	}
	e.current.IconSize = size
	return nil
}

// SetPreviewSize sets the side of the preview.
func (e *Editor) SetPreviewSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("editor: invalid preview size %d", size)
	}
	e.current.PreviewSize = size
	return nil
}

// SetBackground sets the color filling the exported PNG.
func (e *Editor) SetBackground(c string) error {
	if _, err := svgcolor.Parse(c); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	e.current.Background = c
	return nil
}

// Reset restores the values the page was opened with.
func (e *Editor) Reset() {
	e.current = e.initial
	e.validate()
}

// DownloadSVG returns <name>.svg with the current markup.
func (e *Editor) DownloadSVG() (svgexport.File, error) {
	return svgexport.SVGFile(e.current.Name, e.current.SVG, e.minify)
}

// DownloadPNG rasterizes the current markup at the icon size,
// over the background color.
func (e *Editor) DownloadPNG() (svgexport.File, error) {
	bg, err := svgcolor.Parse(e.current.Background)
	if err != nil {
		return svgexport.File{}, fmt.Errorf("editor: %w", err)
	}
	return svgexport.PNGFile(e.current.Name, e.current.SVG, e.current.IconSize, svgraster.WithBackground(bg))
}

// CopySVG returns the current markup as a clipboard item, with the
// localized confirmation message.
func (e *Editor) CopySVG() (svgexport.ClipboardItem, string) {
	return svgexport.SVGClipboard(e.current.SVG), e.msgs.Message(i18n.SVGCopied)
}
