package encoder

import (
	"bytes"
	"image"

	"golang.org/x/image/bmp"
)

// BMPEncoder encodes indexed images as 8-bit paletted BMP. The format has
// no palette alpha; the registry steers transparent images to PNG.
type BMPEncoder struct{}

func (e *BMPEncoder) Format() string    { return "bmp" }
func (e *BMPEncoder) Extension() string { return "bmp" }
func (e *BMPEncoder) Available() bool   { return true }

func (e *BMPEncoder) Encode(pm *image.Paletted) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(128 * 1024)

	err := bmp.Encode(&buf, pm)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
