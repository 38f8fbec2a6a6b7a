// Implements the color helpers shared by the gallery:
// hex normalization, WCAG relative luminance and the
// choice of a readable text color over a swatch.
package svgcolor

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Text colors returned by ContrastingTextColor.
const (
	DarkText  = "#111111"
	LightText = "#ffffff"
)

// luminanceThreshold separates light backgrounds (dark text)
// from dark ones (light text). A luminance equal to the
// threshold yields LightText.
const luminanceThreshold = 0.55

var errInvalidColor = errors.New("invalid color")

// NormalizeHex reduces a #RGB, #RRGGBB or #RRGGBBAA string
// (leading '#' optional, surrounding spaces ignored) to its
// six lower-case hex digits. Alpha is dropped.
func NormalizeHex(s string) (string, bool) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	var hex string
	switch len(raw) {
	case 3:
		var b strings.Builder
		for _, c := range raw {
			b.WriteRune(c)
			b.WriteRune(c)
		}
		hex = b.String()
	case 6:
		hex = raw
	case 8:
		hex = raw[:6]
	default:
		return "", false
	}
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return "", false
		}
	}
	return strings.ToLower(hex), true
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// linearize applies the inverse sRGB gamma to a channel in [0, 1].
func linearize(c float64) float64 {
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// Luminance returns the relative luminance of the given hex color,
// in [0, 1]. The boolean is false when s is not a valid hex color.
func Luminance(s string) (float64, bool) {
	hex, ok := NormalizeHex(s)
	if !ok {
		return 0, false
	}
	var ch [3]float64
	for i := range ch {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return 0, false
		}
		ch[i] = linearize(float64(v) / 255)
	}
	return 0.2126*ch[0] + 0.7152*ch[1] + 0.0722*ch[2], true
}

// ContrastingTextColor returns DarkText or LightText, whichever reads
// better on a background of color bg. The boolean is false for
// malformed input, in which case the caller should keep its default
// text color.
func ContrastingTextColor(bg string) (string, bool) {
	l, ok := Luminance(bg)
	if !ok {
		return "", false
	}
	if l > luminanceThreshold {
		return DarkText, true
	}
	return LightText, true
}

// Parse accepts the hex forms supported by NormalizeHex
// (keeping the alpha channel of #RRGGBBAA) and the SVG 1.1 color names.
func Parse(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if cn, ok := colornames.Map[v]; ok {
		return color.NRGBA{R: cn.R, G: cn.G, B: cn.B, A: cn.A}, nil
	}
	hex, ok := NormalizeHex(v)
	if !ok {
		return color.NRGBA{}, fmt.Errorf("%w: %q", errInvalidColor, s)
	}
	rgb, _ := strconv.ParseUint(hex, 16, 32)
	out := color.NRGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff}
	if raw := strings.TrimPrefix(v, "#"); len(raw) == 8 {
		a, err := strconv.ParseUint(raw[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", errInvalidColor, s)
		}
		out.A = uint8(a)
	}
	return out, nil
}
