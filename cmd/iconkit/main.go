// Command iconkit browses the brand icon catalog and works on SVG icons.
//
// Usage:
//
//	iconkit list -q co -lang zh                 # search the catalog
//	iconkit contrast '#6d28d9' fff              # text color over swatches
//	iconkit recolor -i in.svg -c '#ff0000'      # root fill, stdout
//	iconkit recolor -i in.svg -c red -all -o out.svg
//	iconkit png -i in.svg -size 256 -bg white -o out.png
//	iconkit download -name Cobalt -format png -c '#00ff00' -o dist
//	iconkit theme dark                          # store the theme preference
//	iconkit edit-url -name Aurora
//	iconkit tools -q 'svg=%3Csvg...&name=github' -format png -o dist
//
// Settings are read from ICONKIT_* environment variables.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/benoitkugler/iconkit/assets"
	"github.com/benoitkugler/iconkit/catalog"
	"github.com/benoitkugler/iconkit/config"
	"github.com/benoitkugler/iconkit/gallery"
	"github.com/benoitkugler/iconkit/i18n"
)

const usage = `usage: iconkit <command> [flags]

Commands:
  list      List the catalog icons
  contrast  Print the text color readable over colors
  recolor   Recolor an SVG file
  png       Rasterize an SVG file
  download  Download a catalog icon
  theme     Show or store the theme preference
  edit-url  Print the tools page link of a catalog icon
  tools     Export the icon described by a tools page query`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "iconkit: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%s", usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	command, args := args[0], args[1:]
	switch command {
	case "list":
		return runList(cfg, args, stdout)
	case "contrast":
		return runContrast(args, stdout)
	case "recolor":
		return runRecolor(args, stdout)
	case "png":
		return runPNG(cfg, args, stdout)
	case "download":
		return runDownload(cfg, args, stdout)
	case "theme":
		return runTheme(cfg, args, stdout)
	case "edit-url":
		return runEditURL(cfg, args, stdout)
	case "tools":
		return runTools(cfg, args, stdout)
	default:
		return fmt.Errorf("unknown command %q\n\n%s", command, usage)
	}
}

func loadCatalog(cfg config.Config) ([]catalog.Icon, error) {
	if cfg.Catalog != "" {
		return catalog.LoadFile(cfg.Catalog)
	}
	return catalog.Default()
}

func resolver(cfg config.Config) assets.Resolver {
	return assets.Resolver{BasePath: cfg.EffectiveBasePath()}
}

// newGallery opens the catalog with the asset source and the
// language selected by cfg; lang overrides cfg.Lang when set.
func newGallery(cfg config.Config, lang string, opts ...gallery.Option) (*gallery.Gallery, error) {
	icons, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	fetcher, err := assets.NewFetcher(assets.Source{
		Dir:      cfg.AssetDir,
		BaseURL:  cfg.AssetURL,
		Resolver: resolver(cfg),
		Timeout:  cfg.FetchTimeout,
	}, catalog.Assets())
	if err != nil {
		return nil, err
	}
	if lang == "" {
		lang = cfg.Lang
	}
	return gallery.New(icons, append([]gallery.Option{
		gallery.WithFetcher(fetcher),
		gallery.WithResolver(resolver(cfg)),
		gallery.WithPNGSize(cfg.PNGSize),
		gallery.WithMessages(i18n.Match(lang)),
		gallery.WithLogger(log.New(os.Stderr, "iconkit: ", 0)),
	}, opts...)...), nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
