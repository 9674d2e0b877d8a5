package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned by ParseColor for input it cannot interpret.
var ErrInvalidColor = errors.New("invalid color")

// Color represents an RGB color
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return c.colorful().Hex()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func (c Color) String() string {
	return c.Hex()
}

// ParseColor parses "#rgb", "#rrggbb" and "rgb(r, g, b)" notations.
func ParseColor(raw string) (Color, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return Color{}, ErrInvalidColor
	}

	if strings.HasPrefix(raw, "rgb(") && strings.HasSuffix(raw, ")") {
		parts := strings.Split(raw[4:len(raw)-1], ",")
		if len(parts) != 3 {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
		}
		var rgb [3]uint8
		for i, p := range parts {
			n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
			}
			rgb[i] = uint8(n)
		}
		return RGB(rgb[0], rgb[1], rgb[2]), nil
	}

	if !strings.HasPrefix(raw, "#") {
		raw = "#" + raw
	}
	c, err := colorful.Hex(raw)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}
