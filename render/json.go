package render

import (
	"encoding/json"
	"io"

	sent "github.com/revelaction/namefocus/sentence"
)

// JSONRenderer writes docs as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes docs as a JSON array.
func (r *JSONRenderer) Render(docs []sent.Doc) error {
	if docs == nil {
		docs = []sent.Doc{}
	}
	return json.NewEncoder(r.W).Encode(docs)
}
