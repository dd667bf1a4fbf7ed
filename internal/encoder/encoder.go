package encoder

import (
	"image"
)

// Encoder serializes an indexed image to a specific output format.
type Encoder interface {
	// Format returns the output format name (e.g. "gif", "png", "bmp").
	Format() string

	// Encode writes the indexed image, palette included, as format bytes.
	Encode(pm *image.Paletted) ([]byte, error)

	// Available reports whether the encoder is ready to use.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}
