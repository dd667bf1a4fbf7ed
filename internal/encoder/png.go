package encoder

import (
	"bytes"
	"image"
	"image/png"
)

// PNGEncoder encodes indexed images to PNG using Go's standard library.
// Paletted input becomes a PLTE chunk plus tRNS for alpha entries, so
// partial transparency survives where GIF and BMP drop it.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }
func (e *PNGEncoder) Available() bool   { return true }

func (e *PNGEncoder) Encode(pm *image.Paletted) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(128 * 1024) // pre-alloc 128KB

	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	err := enc.Encode(&buf, pm)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
