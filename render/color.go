package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette
var (
	colorBackground = mustHex("#0b0b14")
	colorObstacle   = mustHex("#c0c0d0")
	colorHUD        = mustHex("#e0e0e0")
	colorDim        = mustHex("#5a5a6e")
	colorCoin       = mustHex("#ffd75f")
	colorEnergy     = mustHex("#5fd7ff")
	colorProjectile = mustHex("#ffffaf")
	colorWarning    = mustHex("#ff5f5f")
	colorPopup      = mustHex("#afff5f")
)

// eliteColors is indexed by elite kind name
var eliteColors = map[string]colorful.Color{
	"sentinel": mustHex("#5f87ff"),
	"phantom":  mustHex("#af5fff"),
	"titan":    mustHex("#ff5f00"),
	"swarm":    mustHex("#87ff5f"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("render: bad palette color " + s)
	}
	return c
}

// hexOr parses s, returning fallback for malformed input
func hexOr(s string, fallback colorful.Color) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	return c
}

// tc converts a colorful color to a tcell true color
func tc(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// fade blends c toward the background by t in [0,1]
func fade(c colorful.Color, t float64) colorful.Color {
	return c.BlendLab(colorBackground, clamp01(t)).Clamped()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// fg is a foreground style on the field background
func fg(c colorful.Color) tcell.Style {
	return tcell.StyleDefault.Background(tc(colorBackground)).Foreground(tc(c))
}
