package raster

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/logictree/pkg/errors"
)

// named covers the CSS color keywords that show up in diagram styles.
// Anything more exotic should be given as a hex string.
var named = map[string]color.RGBA{
	"black":   {0x00, 0x00, 0x00, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"red":     {0xff, 0x00, 0x00, 0xff},
	"green":   {0x00, 0x80, 0x00, 0xff},
	"blue":    {0x00, 0x00, 0xff, 0xff},
	"yellow":  {0xff, 0xff, 0x00, 0xff},
	"cyan":    {0x00, 0xff, 0xff, 0xff},
	"magenta": {0xff, 0x00, 0xff, 0xff},
	"orange":  {0xff, 0xa5, 0x00, 0xff},
	"purple":  {0x80, 0x00, 0x80, 0xff},
	"gray":    {0x80, 0x80, 0x80, 0xff},
	"grey":    {0x80, 0x80, 0x80, 0xff},
	"silver":  {0xc0, 0xc0, 0xc0, 0xff},
	"maroon":  {0x80, 0x00, 0x00, 0xff},
	"navy":    {0x00, 0x00, 0x80, 0xff},
	"teal":    {0x00, 0x80, 0x80, 0xff},
	"olive":   {0x80, 0x80, 0x00, 0xff},
	"lime":    {0x00, 0xff, 0x00, 0xff},
	"none":    {0x00, 0x00, 0x00, 0x00},
}

// ParseColor converts a CSS color keyword or hex string (#rgb, #rrggbb,
// #rrggbbaa) into a concrete color for the raster backend.
func ParseColor(s string) (color.Color, error) {
	if c, ok := named[strings.ToLower(s)]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unrecognized color %q", s)
}

func parseHex(s string) (color.Color, error) {
	hex := s[1:]
	switch len(hex) {
	case 3:
		// #rgb expands each nibble.
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[2*i], expanded[2*i+1] = hex[i], hex[i]
		}
		hex = string(expanded)
	case 6, 8:
	default:
		return nil, errors.New(errors.ErrCodeInvalidStyle, "invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStyle, err, "invalid hex color %q", s)
	}

	if len(hex) == 8 {
		return color.RGBA{
			R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v),
		}, nil
	}
	return color.RGBA{
		R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff,
	}, nil
}
