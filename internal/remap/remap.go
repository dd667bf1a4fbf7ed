// Package remap renders pixel sources as indexed images over a fixed
// palette.
package remap

import (
	"fmt"
	"image"

	"github.com/AnyUserName/palimg-cli/internal/pixel"
	"github.com/AnyUserName/palimg-cli/internal/quant"
)

// Paletted maps every pixel of src to its palette entry and returns the
// indexed image. The palette must be nonempty, fit the 256-entry limit of
// indexed formats, and cover every color in src; palettes built from the
// same source always cover it.
func Paletted(src pixel.Source, p *quant.Palette) (*image.Paletted, error) {
	if p.Len() == 0 {
		return nil, fmt.Errorf("remap: empty palette")
	}
	if p.Len() > 256 {
		return nil, fmt.Errorf("remap: palette has %d entries, indexed images hold at most 256", p.Len())
	}

	w, h := src.Width(), src.Height()
	pm := image.NewPaletted(image.Rect(0, 0, w, h), p.ColorPalette())
	row := make([]uint32, w)
	for y := 0; y < h; y++ {
		src.Row(y, row)
		for x, argb := range row {
			idx := p.Index(argb)
			if idx < 0 {
				return nil, fmt.Errorf("remap: color %08x not in palette", argb)
			}
			pm.Pix[y*pm.Stride+x] = uint8(idx)
		}
	}
	return pm, nil
}
