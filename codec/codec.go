// Package codec centralizes structured encoding for prost artifacts.
//
// The term database, JSON search results and the embedding service wire format
// all go through a Codec. Persisted term databases record the codec name in
// their header, so changing the default codec does not break older files.
package codec

import (
	"fmt"
	"io"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Encode marshals v with c and writes the bytes to w.
// A nil codec selects Default.
func Encode(w io.Writer, c Codec, v any) error {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		return fmt.Errorf("codec %s: marshal: %w", c.Name(), err)
	}
	_, err = w.Write(b)
	return err
}

// Decode reads all of r and unmarshals it into v with c.
// A nil codec selects Default.
func Decode(r io.Reader, c Codec, v any) error {
	if c == nil {
		c = Default
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if err := c.Unmarshal(b, v); err != nil {
		return fmt.Errorf("codec %s: unmarshal: %w", c.Name(), err)
	}
	return nil
}
