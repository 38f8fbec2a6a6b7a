// Package i18n provides the user-facing messages of the gallery
// in the supported languages.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	"golang.org/x/text/language"
)

// Key identifies a message.
type Key string

const (
	SVGFormatError Key = "svgFormatError"
	SVGCopied      Key = "svgCopied"
	PNGCopied      Key = "pngCopied"
	CopyFailed     Key = "copyFailed"
	DownloadFailed Key = "downloadFailed"
	Downloaded     Key = "downloaded"
	EditFailed     Key = "editFailed"
	NoAsset        Key = "noAsset"
)

// supported languages; the first one is the fallback
var supported = []struct {
	tag  language.Tag
	code string
}{
	{language.English, "en"},
	{language.Chinese, "zh"},
}

//go:embed locales/*.json
var localesFS embed.FS

// Catalog holds the messages of one language.
type Catalog struct {
	code     string
	messages map[Key]string
	fallback *Catalog
}

var (
	catalogs = mustLoad()
	matcher  = newMatcher()
)

func newMatcher() language.Matcher {
	tags := make([]language.Tag, len(supported))
	for i, s := range supported {
		tags[i] = s.tag
	}
	return language.NewMatcher(tags)
}

func mustLoad() []*Catalog {
	out := make([]*Catalog, len(supported))
	for i, s := range supported {
		data, err := localesFS.ReadFile("locales/" + s.code + ".json")
		if err != nil {
			panic(fmt.Sprintf("i18n: missing locale %s: %s", s.code, err))
		}
		c := &Catalog{code: s.code}
		if err := json.Unmarshal(data, &c.messages); err != nil {
			panic(fmt.Sprintf("i18n: invalid locale %s: %s", s.code, err))
		}
		if i > 0 {
			c.fallback = out[0]
		}
		out[i] = c
	}
	return out
}

// Match returns the catalog best matching the given language
// preferences (BCP 47 tags, most preferred first). Unparsable
// entries are ignored; with no match, English is used.
func Match(langs ...string) *Catalog {
	var tags []language.Tag
	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	_, index, _ := matcher.Match(tags...)
	return catalogs[index]
}

// Lang returns the language code of the catalog, such as "en".
func (c *Catalog) Lang() string { return c.code }

// Message returns the text for k, falling back to English,
// then to the key itself.
func (c *Catalog) Message(k Key) string {
	if m, ok := c.messages[k]; ok {
		return m
	}
	if c.fallback != nil {
		return c.fallback.Message(k)
	}
	return string(k)
}

// Messagef formats the message for k with args.
func (c *Catalog) Messagef(k Key, args ...any) string {
	return fmt.Sprintf(c.Message(k), args...)
}
