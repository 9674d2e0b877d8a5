// Package model provides the styled-text value at the center of a rich-text
// document.
//
// A [StyledText] is an ordered sequence of [Run] values. Each run carries a
// piece of text and the [Attributes] that apply to all of it. Runs partition
// the text exactly: there are no gaps, no overlaps, and no empty runs.
//
//	st := model.NewStyledText()
//	st.Append("Hello, ", model.Attributes{model.KeyFont: model.Font{Family: "Helvetica", Size: 12}})
//	st.Append("world", model.Attributes{model.KeyForegroundColor: model.RGB(200, 0, 0)})
//
// # Attributes
//
// Attribute values are opaque to the model, with two exceptions:
//
//   - [KeyFont] holds a [Font] (family, size, weight, style)
//   - [KeyForegroundColor] holds a [Color] (8-bit RGB)
//
// Hosts may attach any other keys; they are carried through slicing, joining
// and copying but dropped by serializers that cannot represent them.
//
// # Offsets
//
// All offsets and lengths are measured in Unicode code points, not bytes.
//
// # Equality
//
// Adjacent runs with identical attributes may be stored as one run or
// several. [StyledText.Equal] compares normalized forms, so the split never
// affects equality.
package model
