package model

import "reflect"

// AttributeKey names a style attribute attached to a run of text.
type AttributeKey string

const (
	// KeyFont holds a Font value.
	KeyFont AttributeKey = "font"
	// KeyForegroundColor holds a Color value.
	KeyForegroundColor AttributeKey = "foregroundColor"
	// KeyUnderline holds a bool.
	KeyUnderline AttributeKey = "underline"
)

// Attributes maps attribute keys to values for a single run.
type Attributes map[AttributeKey]any

// Clone returns a copy of the map. Values are copied by assignment.
func (a Attributes) Clone() Attributes {
	if len(a) == 0 {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Equal reports whether both maps hold the same keys with deeply equal values.
// A nil map equals an empty one.
func (a Attributes) Equal(b Attributes) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || !reflect.DeepEqual(v, w) {
			return false
		}
	}
	return true
}

// Font returns the font attribute, if present and of type Font.
func (a Attributes) Font() (Font, bool) {
	f, ok := a[KeyFont].(Font)
	return f, ok
}

// ForegroundColor returns the foreground color attribute, if present and of type Color.
func (a Attributes) ForegroundColor() (Color, bool) {
	c, ok := a[KeyForegroundColor].(Color)
	return c, ok
}

// Underline reports whether the underline attribute is set to true.
func (a Attributes) Underline() bool {
	u, _ := a[KeyUnderline].(bool)
	return u
}
