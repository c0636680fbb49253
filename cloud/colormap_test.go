package cloud

import (
	"image/color"
	"testing"
)

func TestPalette(t *testing.T) {
	for _, name := range []string{"viridis", "plasma", "inferno", "magma", "cividis", "rainbow"} {
		if len(palette(name)) == 0 {
			t.Errorf("palette(%q) is empty", name)
		}
	}
	if len(palette("no-such-scheme")) == 0 {
		t.Error("unknown scheme must fall back to viridis")
	}
}

func TestParseColor(t *testing.T) {
	c := parseColor("#ff0080", color.Black)
	if c != (color.RGBA{0xff, 0x00, 0x80, 0xff}) {
		t.Errorf("parseColor hex = %v", c)
	}
	if parseColor("white", color.Black) != color.White {
		t.Error("named white")
	}
	if parseColor("not a color", color.White) != color.White {
		t.Error("opaque junk must fall back, not fail")
	}
}
