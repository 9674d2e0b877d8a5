package model

import (
	"fmt"

	"golang.org/x/image/font"
)

// Font describes the typeface of a run.
type Font struct {
	Family string
	Size   float64 // points
	Weight font.Weight
	Style  font.Style
}

// Bold reports whether the weight is semi-bold or heavier.
func (f Font) Bold() bool {
	return f.Weight >= font.WeightSemiBold
}

// Italic reports whether the style is italic or oblique.
func (f Font) Italic() bool {
	return f.Style != font.StyleNormal
}

// WithWeight returns a copy of f with the given weight.
func (f Font) WithWeight(w font.Weight) Font {
	f.Weight = w
	return f
}

// WithStyle returns a copy of f with the given style.
func (f Font) WithStyle(s font.Style) Font {
	f.Style = s
	return f
}

// WithSize returns a copy of f with the given point size.
func (f Font) WithSize(size float64) Font {
	f.Size = size
	return f
}

func (f Font) String() string {
	s := fmt.Sprintf("%s %gpt", f.Family, f.Size)
	if f.Bold() {
		s += " bold"
	}
	if f.Italic() {
		s += " italic"
	}
	return s
}
