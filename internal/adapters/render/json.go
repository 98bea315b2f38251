// Package render serializes query results for the command surface.
package render

import (
	"bytes"
	"encoding/json"
	"io"

	"hotel_catalog/internal/domain"
)

// JSON writes hotels as a JSON array indented with four spaces, followed by a newline.
// A nil or empty result is written as [].
func JSON(w io.Writer, hotels []domain.Hotel) error {
	if hotels == nil {
		hotels = []domain.Hotel{}
	}
	b, err := marshal(hotels)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// marshal renders v without HTML escaping, so URLs and captions stay readable.
// The result ends with a newline.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
