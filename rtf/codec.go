package rtf

import "github.com/tsawler/richdoc/model"

// Codec adapts the package functions to a value usable as a document codec.
type Codec struct{}

// Encode writes st as RTF.
func (Codec) Encode(st *model.StyledText) ([]byte, error) {
	return Encode(st)
}

// Decode parses RTF data.
func (Codec) Decode(data []byte) (*model.StyledText, error) {
	return Decode(data)
}
