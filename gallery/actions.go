package gallery

import (
	"context"
	"errors"
	"fmt"

	"github.com/benoitkugler/iconkit/editor"
	"github.com/benoitkugler/iconkit/i18n"
	"github.com/benoitkugler/iconkit/svgexport"
	"github.com/benoitkugler/iconkit/svgrecolor"
	"github.com/benoitkugler/iconkit/toast"
)

// fetch loads the asset of key. Icons without asset are reported
// with ErrNoAsset.
func (g *Gallery) fetch(ctx context.Context, key string) (string, string, error) {
	i, err := g.lookup(key)
	if err != nil {
		return "", "", err
	}
	ic := g.working[i]
	if !ic.HasAsset() {
		return "", "", fmt.Errorf("%w: %q", ErrNoAsset, key)
	}
	data, err := g.fetcher.Fetch(ctx, ic.Path)
	if err != nil {
		return "", "", fmt.Errorf("gallery: fetching %s: %w", ic.Path, err)
	}
	return string(data), ic.Color, nil
}

// fail logs err and raises an error toast. Actions on icons without
// asset are no-ops and stay silent.
func (g *Gallery) fail(action string, key string, err error, msg i18n.Key) {
	if errors.Is(err, ErrNoAsset) {
		return
	}
	g.logger.Printf("%s %q: %v", action, key, err)
	g.toasts.Show(g.msgs.Message(msg), toast.Error)
}

// Download returns the asset of key recolored with its working color,
// in the current format. Every painted element receives the color.
// Failures are logged and notified with an error toast.
func (g *Gallery) Download(ctx context.Context, key string) (svgexport.File, error) {
	f, err := g.download(ctx, key, g.format)
	if err != nil {
		g.fail("download", key, err, i18n.DownloadFailed)
		return svgexport.File{}, err
	}
	g.toasts.Show(g.msgs.Messagef(i18n.Downloaded, f.Name), toast.Success)
	return f, nil
}

func (g *Gallery) download(ctx context.Context, key string, format svgexport.Format) (svgexport.File, error) {
	svg, color, err := g.fetch(ctx, key)
	if err != nil {
		return svgexport.File{}, err
	}
	recolored, err := svgrecolor.RecolorAll(svg, color)
	if err != nil {
		return svgexport.File{}, err
	}
	ic, _ := g.Icon(key)
	if format == svgexport.PNG {
		return svgexport.PNGFile(ic.Name, recolored, g.pngSize)
	}
	return svgexport.SVGFile(ic.Name, recolored, g.minify)
}

// DownloadAll downloads the visible icons having an asset, in the
// current format. It stops at the first failure.
func (g *Gallery) DownloadAll(ctx context.Context) ([]svgexport.File, error) {
	var out []svgexport.File
	for _, ic := range g.Icons() {
		if !ic.HasAsset() {
			continue
		}
		f, err := g.download(ctx, ic.Key(), g.format)
		if err != nil {
			g.fail("download", ic.Key(), err, i18n.DownloadFailed)
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// rootFilled returns the asset of key with its working color set on the
// root element only.
func (g *Gallery) rootFilled(ctx context.Context, key string) (string, error) {
	svg, color, err := g.fetch(ctx, key)
	if err != nil {
		return "", err
	}
	return svgrecolor.SetRootFill(svg, color)
}

// CopySVG returns the asset of key as a text clipboard item, with the
// working color set as root fill.
func (g *Gallery) CopySVG(ctx context.Context, key string) (svgexport.ClipboardItem, error) {
	svg, err := g.rootFilled(ctx, key)
	if err != nil {
		g.fail("copy svg", key, err, i18n.CopyFailed)
		return svgexport.ClipboardItem{}, err
	}
	g.toasts.Show(g.msgs.Message(i18n.SVGCopied), toast.Success)
	return svgexport.SVGClipboard(svg), nil
}

// CopyPNG is like CopySVG, but rasterizes the icon into a PNG
// clipboard item.
func (g *Gallery) CopyPNG(ctx context.Context, key string) (svgexport.ClipboardItem, error) {
	svg, err := g.rootFilled(ctx, key)
	if err == nil {
		var item svgexport.ClipboardItem
		if item, err = svgexport.PNGClipboard(svg, g.pngSize); err == nil {
			g.toasts.Show(g.msgs.Message(i18n.PNGCopied), toast.Success)
			return item, nil
		}
	}
	g.fail("copy png", key, err, i18n.CopyFailed)
	return svgexport.ClipboardItem{}, err
}

// EditURL returns the link opening the tools page on the recolored
// asset of key.
func (g *Gallery) EditURL(ctx context.Context, key string) (string, error) {
	svg, err := g.rootFilled(ctx, key)
	if err != nil {
		g.fail("edit", key, err, i18n.EditFailed)
		return "", err
	}
	ic, _ := g.Icon(key)
	return editor.ToolsURL(g.resolver, svg, ic.Name), nil
}
