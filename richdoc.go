// Package richdoc provides an editable rich-text document model.
//
// A Document owns one styled-text value, serializes it to and from RTF and
// tells subscribed observers about every change. Derived views such as the
// paragraph list and the default title are computed on demand.
//
// Basic usage:
//
//	doc := richdoc.FromBytes(data)
//	fmt.Println(doc.DefaultTitle())
//
//	sub := doc.Subscribe(func(c richdoc.Change) {
//	    redraw(c.Document.Content())
//	})
//	defer sub.Unsubscribe()
//
//	doc.ApplyTypography(model.Font{Family: "Helvetica", Size: 12}, nil)
//	saved := doc.ToBytes()
//
// FromBytes and ToBytes never fail: undecodable input yields an empty
// document and an encoding failure yields no bytes. Decode and Encode report
// those failures instead.
//
// The lower-level model, rtf and htmldoc packages are also available.
package richdoc

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := richdoc.Must(richdoc.Load("notes.rtf"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
