package core

import "strings"

// Color is a foreground color for a screen cell, rendered with ANSI 256-color codes.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
)

var colorNames = map[string]Color{
	"default":       ColorDefault,
	"red":           ColorRed,
	"green":         ColorGreen,
	"yellow":        ColorYellow,
	"blue":          ColorBlue,
	"magenta":       ColorMagenta,
	"cyan":          ColorCyan,
	"white":         ColorWhite,
	"bright-red":    ColorBrightRed,
	"bright-green":  ColorBrightGreen,
	"bright-yellow": ColorBrightYellow,
	"bright-cyan":   ColorBrightCyan,
	"orange":        ColorOrange,
	"gray":          ColorGray,
}

// ParseColor looks up a color by its settings name, e.g. "bright-green".
// Names are case-insensitive; "grey" is accepted as "gray".
func ParseColor(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "grey" {
		name = "gray"
	}
	c, ok := colorNames[name]
	return c, ok
}
