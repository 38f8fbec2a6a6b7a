package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/srwiley/oksvg"

	"github.com/benoitkugler/iconkit/config"
	"github.com/benoitkugler/iconkit/editor"
	"github.com/benoitkugler/iconkit/gallery"
	"github.com/benoitkugler/iconkit/i18n"
	"github.com/benoitkugler/iconkit/svgcolor"
	"github.com/benoitkugler/iconkit/svgexport"
	"github.com/benoitkugler/iconkit/svgraster"
	"github.com/benoitkugler/iconkit/svgrecolor"
	"github.com/benoitkugler/iconkit/theme"
)

// swatch renders color as a badge, written with its contrasting
// text color. Invalid colors are printed plain.
func swatch(r *lipgloss.Renderer, color string) string {
	style := r.NewStyle().Padding(0, 1)
	if text, ok := svgcolor.ContrastingTextColor(color); ok {
		style = style.Background(lipgloss.Color(color)).Foreground(lipgloss.Color(text))
	}
	return style.Render(color)
}

func runList(cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	query := fs.String("q", "", "filter icons by name")
	lang := fs.String("lang", cfg.Lang, "description language")
	if err := fs.Parse(args); err != nil {
		return err
	}

	g, err := newGallery(cfg, *lang)
	if err != nil {
		return err
	}
	g.SetQuery(*query)
	code := i18n.Match(*lang).Lang()

	r := lipgloss.NewRenderer(stdout)
	name := r.NewStyle().Width(14)
	for _, ic := range g.Icons() {
		glyph := "   "
		if !ic.HasAsset() {
			glyph = "[" + ic.Placeholder() + "]"
		}
		fmt.Fprintf(stdout, "%s %s %s  %s  %s\n", glyph, name.Render(ic.Name), swatch(r, ic.Color),
			ic.LocalizedDescription(code), ic.ExternalURL())
	}
	return nil
}

func runContrast(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: iconkit contrast <color>...")
	}
	r := lipgloss.NewRenderer(stdout)
	for _, c := range args {
		text, ok := svgcolor.ContrastingTextColor(c)
		if !ok {
			fmt.Fprintf(stdout, "%s\tno contrast available\n", c)
			continue
		}
		fmt.Fprintf(stdout, "%s\t%s\t%s\n", c, text, swatch(r, c))
	}
	return nil
}

func runRecolor(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("recolor", flag.ExitOnError)
	input := fs.String("i", "", "input SVG file (- or omit for stdin)")
	output := fs.String("o", "", "output SVG file (omit for stdout)")
	color := fs.String("c", "", "new color")
	all := fs.Bool("all", false, "recolor every painted element, not only the root fill")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *color == "" {
		return errors.New("recolor: missing -c color")
	}

	svg, err := readInput(*input)
	if err != nil {
		return err
	}
	recolor := svgrecolor.SetRootFill
	if *all {
		recolor = svgrecolor.RecolorAll
	}
	out, err := recolor(string(svg), *color)
	if err != nil {
		return err
	}
	return writeOutput(stdout, *output, []byte(out))
}

func runPNG(cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("png", flag.ExitOnError)
	input := fs.String("i", "", "input SVG file (- or omit for stdin)")
	output := fs.String("o", "", "output PNG file (omit for stdout)")
	color := fs.String("c", "", "root fill color applied before rendering")
	size := fs.Int("size", cfg.PNGSize, "side of the image, in pixels")
	bg := fs.String("bg", "", "background color (transparent when empty)")
	strict := fs.Bool("strict", false, "reject unsupported SVG elements instead of skipping them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := readInput(*input)
	if err != nil {
		return err
	}
	svg := string(data)
	if *color != "" {
		if svg, err = svgrecolor.SetRootFill(svg, *color); err != nil {
			return err
		}
	}
	var opts []svgraster.Option
	if *strict {
		opts = append(opts, svgraster.WithErrorMode(oksvg.StrictErrorMode))
	}
	if *bg != "" {
		c, err := svgcolor.Parse(*bg)
		if err != nil {
			return err
		}
		opts = append(opts, svgraster.WithBackground(c))
	}
	img, err := svgraster.Rasterize(svg, *size, opts...)
	if err != nil {
		return err
	}
	return writeOutput(stdout, *output, img)
}

// findIcon returns the key of the icon named name, ignoring case.
func findIcon(g *gallery.Gallery, name string) (string, error) {
	for _, ic := range g.Icons() {
		if strings.EqualFold(ic.Name, name) {
			return ic.Key(), nil
		}
	}
	return "", fmt.Errorf("%w %q", gallery.ErrUnknownIcon, name)
}

// openIcon finds the icon named name and applies color to it,
// the way the color editor of the gallery does.
func openIcon(cfg config.Config, name, color, lang string, opts ...gallery.Option) (*gallery.Gallery, string, error) {
	if name == "" {
		return nil, "", errors.New("missing -name")
	}
	g, err := newGallery(cfg, lang, opts...)
	if err != nil {
		return nil, "", err
	}
	key, err := findIcon(g, name)
	if err != nil {
		return nil, "", err
	}
	if color != "" {
		if err := g.ToggleEditor(key); err != nil {
			return nil, "", err
		}
		if err := g.SetColor(key, color); err != nil {
			return nil, "", err
		}
		g.CloseEditor()
	}
	return g, key, nil
}

// actionError replaces the error of an action with the message shown
// to the user, when the action ended with a toast or is a no-op.
func actionError(g *gallery.Gallery, lang string, err error) error {
	if errors.Is(err, gallery.ErrNoAsset) {
		return errors.New(i18n.Match(lang).Message(i18n.NoAsset))
	}
	if active := g.Toasts().Active(); len(active) != 0 {
		return errors.New(active[len(active)-1].Message)
	}
	return err
}

func runDownload(cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	name := fs.String("name", "", "icon name")
	format := fs.String("format", "svg", "output format: svg or png")
	color := fs.String("c", "", "icon color (catalog color when empty)")
	dir := fs.String("o", ".", "output directory")
	lang := fs.String("lang", cfg.Lang, "message language")
	minified := fs.Bool("minify", false, "minify SVG output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := svgexport.ParseFormat(*format)
	if err != nil {
		return err
	}

	g, key, err := openIcon(cfg, *name, *color, *lang, gallery.WithMinifiedSVG(*minified))
	if err != nil {
		return err
	}
	g.SetFormat(f)
	file, err := g.Download(context.Background(), key)
	if err != nil {
		return actionError(g, *lang, err)
	}
	path, err := file.Save(*dir)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, path)
	return nil
}

func runEditURL(cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("edit-url", flag.ExitOnError)
	name := fs.String("name", "", "icon name")
	color := fs.String("c", "", "icon color (catalog color when empty)")
	lang := fs.String("lang", cfg.Lang, "message language")
	if err := fs.Parse(args); err != nil {
		return err
	}

	g, key, err := openIcon(cfg, *name, *color, *lang)
	if err != nil {
		return err
	}
	u, err := g.EditURL(context.Background(), key)
	if err != nil {
		return actionError(g, *lang, err)
	}
	fmt.Fprintln(stdout, u)
	return nil
}

func runTools(cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("tools", flag.ExitOnError)
	query := fs.String("q", "", "tools page query, such as 'svg=%3Csvg...&name=github'")
	format := fs.String("format", "svg", "output format: svg or png")
	size := fs.Int("size", editor.DefaultIconSize, "PNG side, in pixels")
	bg := fs.String("bg", editor.DefaultBackground, "PNG background color")
	dir := fs.String("o", ".", "output directory")
	lang := fs.String("lang", cfg.Lang, "message language")
	minified := fs.Bool("minify", false, "minify SVG output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := svgexport.ParseFormat(*format)
	if err != nil {
		return err
	}

	e, err := editor.FromRawQuery(*query,
		editor.WithMessages(i18n.Match(*lang)),
		editor.WithMinifiedSVG(*minified),
	)
	if err != nil {
		return err
	}
	if msg := e.Error(); msg != "" {
		return errors.New(msg)
	}
	if err := e.SetIconSize(*size); err != nil {
		return err
	}
	if err := e.SetBackground(*bg); err != nil {
		return err
	}

	var file svgexport.File
	if f == svgexport.PNG {
		file, err = e.DownloadPNG()
	} else {
		file, err = e.DownloadSVG()
	}
	if err != nil {
		return err
	}
	path, err := file.Save(*dir)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, path)
	return nil
}

func runTheme(cfg config.Config, args []string, stdout io.Writer) error {
	path, err := cfg.ThemePath()
	if err != nil {
		return err
	}
	st, err := theme.Load(theme.FileStorage{Path: path})
	if err != nil {
		return err
	}
	if len(args) > 0 {
		m, ok := theme.ParseMode(args[0])
		if !ok {
			return fmt.Errorf("theme: invalid mode %q (expected light, dark or auto)", args[0])
		}
		if err := st.Set(m); err != nil {
			return err
		}
	}
	prefersDark := lipgloss.NewRenderer(stdout).HasDarkBackground()
	fmt.Fprintf(stdout, "%s (%s)\n", st.Mode(), st.Resolve(prefersDark))
	return nil
}
