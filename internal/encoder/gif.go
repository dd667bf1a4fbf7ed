package encoder

import (
	"bytes"
	"image"
	"image/gif"
)

// GIFEncoder encodes indexed images to GIF using Go's standard library.
// Paletted input within the 256-color limit passes through without
// requantization, so the palette lands in the file byte for byte.
type GIFEncoder struct{}

func (e *GIFEncoder) Format() string    { return "gif" }
func (e *GIFEncoder) Extension() string { return "gif" }
func (e *GIFEncoder) Available() bool   { return true }

func (e *GIFEncoder) Encode(pm *image.Paletted) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(64 * 1024)

	err := gif.Encode(&buf, pm, &gif.Options{NumColors: 256})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
