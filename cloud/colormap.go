package cloud

import (
	"image/color"
	"strings"
)

// palettes maps colormap names to color stops. The names mirror the
// matplotlib schemes users know; the stops are sampled, not interpolated —
// the renderer cycles through them by word rank.
var palettes = map[string][]color.Color{
	"viridis": {
		color.RGBA{0x44, 0x01, 0x54, 0xff},
		color.RGBA{0x3b, 0x52, 0x8b, 0xff},
		color.RGBA{0x21, 0x91, 0x8c, 0xff},
		color.RGBA{0x5e, 0xc9, 0x62, 0xff},
		color.RGBA{0xfd, 0xe7, 0x25, 0xff},
	},
	"plasma": {
		color.RGBA{0x0d, 0x08, 0x87, 0xff},
		color.RGBA{0x7e, 0x03, 0xa8, 0xff},
		color.RGBA{0xcc, 0x47, 0x78, 0xff},
		color.RGBA{0xf8, 0x96, 0x40, 0xff},
		color.RGBA{0xf0, 0xf9, 0x21, 0xff},
	},
	"inferno": {
		color.RGBA{0x00, 0x00, 0x04, 0xff},
		color.RGBA{0x57, 0x10, 0x6e, 0xff},
		color.RGBA{0xbc, 0x37, 0x54, 0xff},
		color.RGBA{0xf9, 0x87, 0x0f, 0xff},
		color.RGBA{0xfc, 0xff, 0xa4, 0xff},
	},
	"magma": {
		color.RGBA{0x00, 0x00, 0x04, 0xff},
		color.RGBA{0x51, 0x12, 0x7c, 0xff},
		color.RGBA{0xb7, 0x37, 0x79, 0xff},
		color.RGBA{0xfc, 0x8a, 0x61, 0xff},
		color.RGBA{0xfc, 0xfd, 0xbf, 0xff},
	},
	"cividis": {
		color.RGBA{0x00, 0x22, 0x4e, 0xff},
		color.RGBA{0x3c, 0x4d, 0x6e, 0xff},
		color.RGBA{0x7d, 0x7c, 0x78, 0xff},
		color.RGBA{0xbc, 0xaf, 0x6f, 0xff},
		color.RGBA{0xfd, 0xea, 0x45, 0xff},
	},
	"rainbow": {
		color.RGBA{0x8b, 0x00, 0xff, 0xff},
		color.RGBA{0x00, 0x00, 0xff, 0xff},
		color.RGBA{0x00, 0xff, 0x00, 0xff},
		color.RGBA{0xff, 0xff, 0x00, 0xff},
		color.RGBA{0xff, 0x00, 0x00, 0xff},
	},
}

// palette returns the named colormap, falling back to viridis.
func palette(name string) []color.Color {
	if p, ok := palettes[strings.ToLower(name)]; ok {
		return p
	}
	return palettes["viridis"]
}

// parseColor turns "#rrggbb" (or a handful of names) into a color. Unknown
// values fall back to the given default — styling inputs are opaque
// strings and never rejected.
func parseColor(s string, fallback color.Color) color.Color {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "white":
		return color.White
	case "black":
		return color.Black
	}
	if len(s) == 7 && s[0] == '#' {
		var rgb [3]uint8
		ok := true
		for i := 0; i < 3; i++ {
			hi, ok1 := hexVal(s[1+i*2])
			lo, ok2 := hexVal(s[2+i*2])
			if !ok1 || !ok2 {
				ok = false
				break
			}
			rgb[i] = hi<<4 | lo
		}
		if ok {
			return color.RGBA{rgb[0], rgb[1], rgb[2], 0xff}
		}
	}
	return fallback
}

func hexVal(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	}
	return 0, false
}
