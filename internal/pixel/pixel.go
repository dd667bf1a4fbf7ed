// Package pixel provides row-major access to 8-bit ARGB pixel data for any
// image.Image.
//
// Performance design:
//   - Packed 0xAARRGGBB uint32 per pixel, one reusable row buffer per caller
//   - Fast paths for NRGBA, RGBA, YCbCr, Gray, Paletted with zero
//     image.At calls
//   - RGBA un-premultiply and YCbCr conversion reproduce the standard
//     library's color model math bit for bit, so every fast path yields the
//     same values as the generic path
//   - Honors non-zero Bounds().Min (sub-images)
package pixel

import (
	"image"
	"image/color"
)

// Source is a rectangular grid of packed 0xAARRGGBB pixels.
type Source interface {
	Width() int
	Height() int

	// Row fills dst[:Width()] with the packed ARGB values of row y.
	// y is relative to the source's own origin, 0 <= y < Height().
	Row(y int, dst []uint32)
}

// FromImage adapts a decoded image to a Source, selecting a fast path for
// the common in-memory formats and falling back to image.At otherwise.
func FromImage(img image.Image) Source {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.NRGBA:
		return &nrgbaSource{pix: src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], stride: src.Stride, w: w, h: h}
	case *image.RGBA:
		return &rgbaSource{pix: src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], stride: src.Stride, w: w, h: h}
	case *image.YCbCr:
		return &ycbcrSource{img: src, minX: b.Min.X, minY: b.Min.Y, w: w, h: h}
	case *image.Gray:
		return &graySource{pix: src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], stride: src.Stride, w: w, h: h}
	case *image.Paletted:
		return newPalettedSource(src, b, w, h)
	default:
		return &genericSource{img: img, minX: b.Min.X, minY: b.Min.Y, w: w, h: h}
	}
}

// ─── NRGBA (PNG) ─────────────────────────────────────────────

type nrgbaSource struct {
	pix    []uint8
	stride int
	w, h   int
}

func (s *nrgbaSource) Width() int  { return s.w }
func (s *nrgbaSource) Height() int { return s.h }

func (s *nrgbaSource) Row(y int, dst []uint32) {
	off := y * s.stride
	for x := 0; x < s.w; x++ {
		dst[x] = uint32(s.pix[off+3])<<24 | uint32(s.pix[off])<<16 |
			uint32(s.pix[off+1])<<8 | uint32(s.pix[off+2])
		off += 4
	}
}

// ─── RGBA (premultiplied) ────────────────────────────────────

type rgbaSource struct {
	pix    []uint8
	stride int
	w, h   int
}

func (s *rgbaSource) Width() int  { return s.w }
func (s *rgbaSource) Height() int { return s.h }

func (s *rgbaSource) Row(y int, dst []uint32) {
	off := y * s.stride
	for x := 0; x < s.w; x++ {
		r, g, b, a := s.pix[off], s.pix[off+1], s.pix[off+2], s.pix[off+3]
		switch a {
		case 0xff:
			dst[x] = 0xff000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
		case 0:
			dst[x] = 0
		default:
			// Un-premultiply at 16-bit precision, exactly like
			// color.NRGBAModel: (c*0x101*0xffff/(a*0x101))>>8 reduces to
			// (c*0xffff/a)>>8.
			rr := uint32(r) * 0xffff / uint32(a) >> 8
			gg := uint32(g) * 0xffff / uint32(a) >> 8
			bb := uint32(b) * 0xffff / uint32(a) >> 8
			dst[x] = uint32(a)<<24 | rr<<16 | gg<<8 | bb
		}
		off += 4
	}
}

// ─── YCbCr (JPEG) ────────────────────────────────────────────

type ycbcrSource struct {
	img        *image.YCbCr
	minX, minY int
	w, h       int
}

func (s *ycbcrSource) Width() int  { return s.w }
func (s *ycbcrSource) Height() int { return s.h }

func (s *ycbcrSource) Row(y int, dst []uint32) {
	sy := s.minY + y
	yOff := s.img.YOffset(s.minX, sy)
	for x := 0; x < s.w; x++ {
		ci := s.img.COffset(s.minX+x, sy)
		r, g, b := color.YCbCrToRGB(s.img.Y[yOff+x], s.img.Cb[ci], s.img.Cr[ci])
		dst[x] = 0xff000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	}
}

// ─── Gray ────────────────────────────────────────────────────

type graySource struct {
	pix    []uint8
	stride int
	w, h   int
}

func (s *graySource) Width() int  { return s.w }
func (s *graySource) Height() int { return s.h }

func (s *graySource) Row(y int, dst []uint32) {
	off := y * s.stride
	for x := 0; x < s.w; x++ {
		v := uint32(s.pix[off+x])
		dst[x] = 0xff000000 | v<<16 | v<<8 | v
	}
}

// ─── Paletted (GIF, indexed PNG) ─────────────────────────────

type palettedSource struct {
	pix    []uint8
	stride int
	w, h   int
	lut    []uint32 // palette index → packed ARGB
}

func newPalettedSource(src *image.Paletted, b image.Rectangle, w, h int) *palettedSource {
	lut := make([]uint32, len(src.Palette))
	for i, c := range src.Palette {
		lut[i] = fromColor(c)
	}
	return &palettedSource{
		pix:    src.Pix[src.PixOffset(b.Min.X, b.Min.Y):],
		stride: src.Stride,
		w:      w, h: h,
		lut: lut,
	}
}

func (s *palettedSource) Width() int  { return s.w }
func (s *palettedSource) Height() int { return s.h }

func (s *palettedSource) Row(y int, dst []uint32) {
	off := y * s.stride
	for x := 0; x < s.w; x++ {
		dst[x] = s.lut[s.pix[off+x]]
	}
}

// ─── generic fallback (interface dispatch per pixel) ─────────

type genericSource struct {
	img        image.Image
	minX, minY int
	w, h       int
}

func (s *genericSource) Width() int  { return s.w }
func (s *genericSource) Height() int { return s.h }

func (s *genericSource) Row(y int, dst []uint32) {
	sy := s.minY + y
	for x := 0; x < s.w; x++ {
		dst[x] = fromColor(s.img.At(s.minX+x, sy))
	}
}

func fromColor(c color.Color) uint32 {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return uint32(nc.A)<<24 | uint32(nc.R)<<16 | uint32(nc.G)<<8 | uint32(nc.B)
}

// ─── HasAlpha ────────────────────────────────────────────────

// HasAlpha reports whether any pixel has alpha < fully opaque.
// For paletted images the palette entries are checked.
func HasAlpha(img image.Image) bool {
	switch src := img.(type) {
	case *image.NRGBA:
		for i := 3; i < len(src.Pix); i += 4 {
			if src.Pix[i] < 255 {
				return true
			}
		}
		return false
	case *image.RGBA:
		for i := 3; i < len(src.Pix); i += 4 {
			if src.Pix[i] < 255 {
				return true
			}
		}
		return false
	case *image.Paletted:
		for _, c := range src.Palette {
			if _, _, _, a := c.RGBA(); a < 65535 {
				return true
			}
		}
		return false
	case *image.YCbCr, *image.Gray:
		return false
	default:
		bounds := img.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				if a < 65535 {
					return true
				}
			}
		}
		return false
	}
}
