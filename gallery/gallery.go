// Package gallery implements the state of the icon gallery page:
// a working copy of the catalog holding the color edits of the
// session, the single color editor, search and display settings,
// and the view, copy, download and edit actions of the icon cards.
//
// At most one icon is edited at a time: the gallery keeps a single
// "editing" key instead of per icon flags.
package gallery

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/benoitkugler/iconkit/assets"
	"github.com/benoitkugler/iconkit/catalog"
	"github.com/benoitkugler/iconkit/i18n"
	"github.com/benoitkugler/iconkit/svgcolor"
	"github.com/benoitkugler/iconkit/svgexport"
	"github.com/benoitkugler/iconkit/toast"
)

var (
	ErrUnknownIcon = errors.New("gallery: unknown icon")
	ErrNotEditing  = errors.New("gallery: icon is not being edited")
	ErrNoAsset     = errors.New("gallery: icon has no asset")
)

// Layout is the arrangement of the icon cards.
type Layout string

const (
	Grid    Layout = "grid"
	Compact Layout = "compact"
)

// EditState is the state of the color editor of one icon card.
type EditState uint8

const (
	Idle EditState = iota
	Editing
)

func (s EditState) String() string {
	if s == Editing {
		return "editing"
	}
	return "idle"
}

// EventKind is the kind of a state change.
type EventKind uint8

const (
	// ColorChanged is sent when the working color of Key changes.
	ColorChanged EventKind = iota
	// EditorChanged is sent when the edited icon changes; Key is
	// the newly edited icon, empty when the editor is closed.
	EditorChanged
)

// Event describes a state change.
type Event struct {
	Kind EventKind
	Key  string
}

// Gallery is the page state. It is not safe for concurrent use.
type Gallery struct {
	original []catalog.Icon
	working  []catalog.Icon
	index    map[string]int

	editing string // key of the edited icon, empty for none

	query  string
	format svgexport.Format
	layout Layout

	fetcher  assets.Fetcher
	resolver assets.Resolver
	pngSize  int
	minify   bool
	toasts   *toast.Queue
	msgs     *i18n.Catalog
	logger   *log.Logger

	subs   map[int]func(Event)
	nextID int
}

// Option configures a Gallery.
type Option func(*Gallery)

// WithFetcher sets the source of the icon assets.
// The default serves the embedded catalog assets.
func WithFetcher(f assets.Fetcher) Option {
	return func(g *Gallery) { g.fetcher = f }
}

// WithResolver sets the base path used in the links built by the gallery.
func WithResolver(r assets.Resolver) Option {
	return func(g *Gallery) { g.resolver = r }
}

// WithPNGSize sets the side of the PNG outputs (default 512).
func WithPNGSize(size int) Option {
	return func(g *Gallery) { g.pngSize = size }
}

// WithMinifiedSVG makes SVG downloads minified.
func WithMinifiedSVG(on bool) Option {
	return func(g *Gallery) { g.minify = on }
}

// WithToasts sets the queue receiving the action notifications.
func WithToasts(q *toast.Queue) Option {
	return func(g *Gallery) { g.toasts = q }
}

// WithMessages selects the language of the notifications.
func WithMessages(c *i18n.Catalog) Option {
	return func(g *Gallery) { g.msgs = c }
}

// WithLogger sets where action failures are logged.
func WithLogger(l *log.Logger) Option {
	return func(g *Gallery) { g.logger = l }
}

// New builds the page state for icons. The gallery keeps its own
// copies: one untouched, used by ResetColor, and the working copy.
func New(icons []catalog.Icon, opts ...Option) *Gallery {
	g := &Gallery{
		original: catalog.Clone(icons),
		working:  catalog.Clone(icons),
		index:    make(map[string]int, len(icons)),
		format:   svgexport.SVG,
		layout:   Grid,
		fetcher:  assets.FSFetcher{FS: catalog.Assets()},
		pngSize:  512,
		toasts:   toast.NewQueue(),
		msgs:     i18n.Match(),
		logger:   log.Default(),
		subs:     map[int]func(Event){},
	}
	for i, ic := range g.working {
		g.index[ic.Key()] = i
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gallery) lookup(key string) (int, error) {
	i, ok := g.index[key]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownIcon, key)
	}
	return i, nil
}

// Icon returns the working copy of the icon with the given key.
func (g *Gallery) Icon(key string) (catalog.Icon, bool) {
	i, ok := g.index[key]
	if !ok {
		return catalog.Icon{}, false
	}
	return g.working[i], true
}

// Original returns the icon as loaded from the catalog.
func (g *Gallery) Original(key string) (catalog.Icon, bool) {
	i, ok := g.index[key]
	if !ok {
		return catalog.Icon{}, false
	}
	return g.original[i], true
}

// Icons returns the working icons whose name contains the search
// query, ignoring case, in catalog order.
func (g *Gallery) Icons() []catalog.Icon {
	q := strings.ToLower(g.query)
	var out []catalog.Icon
	for _, ic := range g.working {
		if strings.Contains(strings.ToLower(ic.Name), q) {
			out = append(out, ic)
		}
	}
	return out
}

// Len returns the number of icons in the catalog.
func (g *Gallery) Len() int { return len(g.working) }

func (g *Gallery) SetQuery(q string)            { g.query = q }
func (g *Gallery) Query() string                { return g.query }
func (g *Gallery) SetFormat(f svgexport.Format) { g.format = f }
func (g *Gallery) Format() svgexport.Format     { return g.format }
func (g *Gallery) SetLayout(l Layout)           { g.layout = l }
func (g *Gallery) Layout() Layout               { return g.layout }

// Toasts returns the queue of the action notifications.
func (g *Gallery) Toasts() *toast.Queue { return g.toasts }

// SetMessages changes the language of the notifications.
func (g *Gallery) SetMessages(c *i18n.Catalog) { g.msgs = c }

// Editing returns the key of the icon whose color editor is open.
func (g *Gallery) Editing() (string, bool) {
	return g.editing, g.editing != ""
}

// EditState returns the editor state of the given icon.
func (g *Gallery) EditState(key string) EditState {
	if key != "" && key == g.editing {
		return Editing
	}
	return Idle
}

func (g *Gallery) setEditing(key string) {
	if g.editing == key {
		return
	}
	g.editing = key
	g.notify(Event{Kind: EditorChanged, Key: key})
}

// ToggleEditor handles a click on the color swatch of key: it opens the
// editor of that icon, closing any other one, or closes it if it was
// already open.
func (g *Gallery) ToggleEditor(key string) error {
	if _, err := g.lookup(key); err != nil {
		return err
	}
	if g.editing == key {
		g.setEditing("")
	} else {
		g.setEditing(key)
	}
	return nil
}

// CloseEditor closes the color editor, if any, without changing colors.
func (g *Gallery) CloseEditor() { g.setEditing("") }

// PointerDown handles a pointer press anywhere on the page: a press
// outside of the open editor closes it.
func (g *Gallery) PointerDown(insideEditor bool) {
	if !insideEditor {
		g.CloseEditor()
	}
}

// SetColor commits a new color for the edited icon. Only the icon
// whose editor is open may be changed. Setting the current color again
// is a no-op.
func (g *Gallery) SetColor(key, color string) error {
	i, err := g.lookup(key)
	if err != nil {
		return err
	}
	if g.editing != key {
		return fmt.Errorf("%w: %q", ErrNotEditing, key)
	}
	if g.working[i].Color == color {
		return nil
	}
	g.working[i].Color = color
	g.notify(Event{Kind: ColorChanged, Key: key})
	return nil
}

// ResetColor restores the catalog color of key and closes the editor.
func (g *Gallery) ResetColor(key string) error {
	i, err := g.lookup(key)
	if err != nil {
		return err
	}
	if c := g.original[i].Color; g.working[i].Color != c {
		g.working[i].Color = c
		g.notify(Event{Kind: ColorChanged, Key: key})
	}
	g.setEditing("")
	return nil
}

// SwatchTextColor returns the color of the text written over the
// swatch of key. It is false when the icon color is not a valid hex
// color: the default text color should be used.
func (g *Gallery) SwatchTextColor(key string) (string, bool) {
	ic, ok := g.Icon(key)
	if !ok {
		return "", false
	}
	return svgcolor.ContrastingTextColor(ic.Color)
}

// View returns the external link of key; false when the icon
// has none, in which case the action does nothing.
func (g *Gallery) View(key string) (string, bool) {
	ic, ok := g.Icon(key)
	if !ok {
		return "", false
	}
	u := ic.ExternalURL()
	return u, u != ""
}

// AssetPath returns the asset reference of key prefixed with the base path.
func (g *Gallery) AssetPath(key string) (string, bool) {
	ic, ok := g.Icon(key)
	if !ok || !ic.HasAsset() {
		return "", false
	}
	return g.resolver.Path(ic.Path), true
}

// Subscribe registers fn, called after every state change.
// The returned function removes the subscription.
func (g *Gallery) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := g.nextID
	g.nextID++
	g.subs[id] = fn
	return func() { delete(g.subs, id) }
}

func (g *Gallery) notify(e Event) {
	ids := make([]int, 0, len(g.subs))
	for id := range g.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		// a subscriber may have removed a later one
		if fn, ok := g.subs[id]; ok {
			fn(e)
		}
	}
}
