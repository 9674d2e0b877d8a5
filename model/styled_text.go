package model

import (
	"strings"
	"unicode/utf8"
)

// Run is a contiguous piece of text sharing one set of attributes.
type Run struct {
	Text  string
	Attrs Attributes
}

// Len returns the run length in code points.
func (r Run) Len() int {
	return utf8.RuneCountInString(r.Text)
}

// StyledText is an ordered sequence of styled runs. The zero value is empty
// and ready to use.
type StyledText struct {
	runs []Run
}

// NewStyledText creates an empty styled text.
func NewStyledText() *StyledText {
	return &StyledText{}
}

// NewString creates a styled text holding a single run.
func NewString(text string, attrs Attributes) *StyledText {
	st := &StyledText{}
	st.Append(text, attrs)
	return st
}

// FromRuns creates a styled text from runs, skipping empty ones.
func FromRuns(runs ...Run) *StyledText {
	st := &StyledText{}
	for _, r := range runs {
		st.Append(r.Text, r.Attrs)
	}
	return st
}

// Len returns the total length in code points.
func (s *StyledText) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, r := range s.runs {
		n += r.Len()
	}
	return n
}

// IsEmpty reports whether the text has zero length.
func (s *StyledText) IsEmpty() bool {
	return s == nil || len(s.runs) == 0
}

// String returns the plain-text projection.
func (s *StyledText) String() string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	for _, r := range s.runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Runs returns a copy of the runs in order.
func (s *StyledText) Runs() []Run {
	if s == nil {
		return nil
	}
	out := make([]Run, len(s.runs))
	for i, r := range s.runs {
		out[i] = Run{Text: r.Text, Attrs: r.Attrs.Clone()}
	}
	return out
}

// RunCount returns the number of stored runs.
func (s *StyledText) RunCount() int {
	if s == nil {
		return 0
	}
	return len(s.runs)
}

// Append adds text with the given attributes at the end. Empty text is ignored.
func (s *StyledText) Append(text string, attrs Attributes) {
	if text == "" {
		return
	}
	s.runs = append(s.runs, Run{Text: text, Attrs: attrs.Clone()})
}

// AppendStyled appends a copy of every run of other.
func (s *StyledText) AppendStyled(other *StyledText) {
	if other == nil {
		return
	}
	for _, r := range other.runs {
		s.Append(r.Text, r.Attrs)
	}
}

// Slice returns the attributed substring [start, end), clamped to the text.
func (s *StyledText) Slice(start, end int) *StyledText {
	out := &StyledText{}
	if s == nil {
		return out
	}
	if start < 0 {
		start = 0
	}
	if end > s.Len() {
		end = s.Len()
	}
	if start >= end {
		return out
	}

	pos := 0
	for _, r := range s.runs {
		n := r.Len()
		runStart, runEnd := pos, pos+n
		pos = runEnd
		if runEnd <= start {
			continue
		}
		if runStart >= end {
			break
		}
		lo := max(start, runStart) - runStart
		hi := min(end, runEnd) - runStart
		out.Append(runeSlice(r.Text, lo, hi), r.Attrs)
	}
	return out
}

// AttributesAt returns a copy of the attributes at code point i, or nil when
// i is out of range.
func (s *StyledText) AttributesAt(i int) Attributes {
	if s == nil || i < 0 {
		return nil
	}
	pos := 0
	for _, r := range s.runs {
		pos += r.Len()
		if i < pos {
			return r.Attrs.Clone()
		}
	}
	return nil
}

// EnumerateRuns calls fn for each run in order with its [start, end) range
// and a copy of its attributes. Returning false stops the enumeration.
func (s *StyledText) EnumerateRuns(fn func(start, end int, attrs Attributes) bool) {
	if s == nil {
		return
	}
	pos := 0
	for _, r := range s.runs {
		n := r.Len()
		attrs := r.Attrs.Clone()
		if attrs == nil {
			attrs = Attributes{}
		}
		if !fn(pos, pos+n, attrs) {
			return
		}
		pos += n
	}
}

// TransformRuns calls fn once per run, in order, with the run's own
// attribute map. fn may modify the map in place; it is never nil.
func (s *StyledText) TransformRuns(fn func(attrs Attributes)) {
	if s == nil {
		return
	}
	for i := range s.runs {
		if s.runs[i].Attrs == nil {
			s.runs[i].Attrs = make(Attributes)
		}
		fn(s.runs[i].Attrs)
		if len(s.runs[i].Attrs) == 0 {
			s.runs[i].Attrs = nil
		}
	}
}

// SetAttribute sets key to value on every run.
func (s *StyledText) SetAttribute(key AttributeKey, value any) {
	s.TransformRuns(func(attrs Attributes) {
		attrs[key] = value
	})
}

// RemoveAttribute deletes key from every run.
func (s *StyledText) RemoveAttribute(key AttributeKey) {
	s.TransformRuns(func(attrs Attributes) {
		delete(attrs, key)
	})
}

// Normalize merges adjacent runs with equal attributes.
func (s *StyledText) Normalize() {
	if s == nil || len(s.runs) < 2 {
		return
	}
	merged := s.runs[:1]
	for _, r := range s.runs[1:] {
		last := &merged[len(merged)-1]
		if last.Attrs.Equal(r.Attrs) {
			last.Text += r.Text
			continue
		}
		merged = append(merged, r)
	}
	s.runs = merged
}

// Clone returns an independent copy.
func (s *StyledText) Clone() *StyledText {
	out := &StyledText{}
	if s == nil {
		return out
	}
	out.runs = s.Runs()
	return out
}

// Equal reports whether both texts have the same characters and the same
// attributes at every position, regardless of how runs are split.
func (s *StyledText) Equal(other *StyledText) bool {
	a, b := s.Clone(), other.Clone()
	a.Normalize()
	b.Normalize()
	if len(a.runs) != len(b.runs) {
		return false
	}
	for i := range a.runs {
		if a.runs[i].Text != b.runs[i].Text || !a.runs[i].Attrs.Equal(b.runs[i].Attrs) {
			return false
		}
	}
	return true
}

// Concat joins parts in order, inserting separator (with no attributes)
// between consecutive parts.
func Concat(parts []*StyledText, separator string) *StyledText {
	out := &StyledText{}
	for i, p := range parts {
		if i > 0 {
			out.Append(separator, nil)
		}
		out.AppendStyled(p)
	}
	return out
}

// runeSlice returns s[lo:hi] measured in code points.
func runeSlice(s string, lo, hi int) string {
	i, start, end := 0, len(s), len(s)
	for byteIdx := range s {
		if i == lo {
			start = byteIdx
		}
		if i == hi {
			end = byteIdx
			break
		}
		i++
	}
	return s[start:end]
}
