package figstyle

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var errParamMismatch = errors.New("invalid color")

// Color is an optional color: a nil value means "no paint" (SVG "none").
type Color = *color.NRGBA

// ParseColor reads an hexadecimal (#rgb, #rrggbb, #rrggbbaa)
// or named color. "none" (and "") return a nil color.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "none" || s == "":
		return nil, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	}
	c, ok := colornames.Map[s]
	if !ok {
		return nil, fmt.Errorf("%w: unknown color name %q", errParamMismatch, s)
	}
	return &color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

// MustColor is like ParseColor but panics on invalid input.
// It is meant for literal colors.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(hex string) (Color, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("%w: #%s", errParamMismatch, hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: #%s", errParamMismatch, hex)
	}
	return &color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Hex returns the #rrggbb form of c, or "none".
func Hex(c Color) string {
	if c == nil {
		return "none"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
