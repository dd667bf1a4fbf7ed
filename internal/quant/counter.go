package quant

import (
	"github.com/AnyUserName/palimg-cli/internal/pixel"
)

// ColorCount pairs one distinct packed ARGB value with the number of source
// pixels that mapped to it.
type ColorCount struct {
	ARGB  uint32
	Count int64
}

// channelMask drops the low `bits` bits of every channel, replicated
// across all four channel positions.
func channelMask(bits uint) uint32 {
	m := uint32(0xff & (0xff << bits))
	return m<<24 | m<<16 | m<<8 | m
}

// countColors scans src row by row and returns one ColorCount per distinct
// color, in first-seen order. If the distinct count would exceed bound it
// retries with progressively coarser channel masks (dropping one low bit
// per attempt); with 8-bit channels the coarsest mask collapses each
// channel to two values, so failing all eight masks means bound itself is
// degenerate and ErrTooManyColors is returned.
//
// With ignoreAlpha the alpha byte is zeroed before masking, merging colors
// that differ only in alpha.
//
// First-seen ordering makes the result, and everything derived from it,
// independent of anything but the pixel data.
func countColors(src pixel.Source, bound int, ignoreAlpha, verbose bool) ([]ColorCount, error) {
	row := make([]uint32, src.Width())
	for i := uint(0); i < 8; i++ {
		mask := channelMask(i)
		if verbose {
			logf("counting with mask %08x", mask)
		}
		if entries, ok := countMasked(src, row, mask, bound, ignoreAlpha); ok {
			return entries, nil
		}
	}
	return nil, ErrTooManyColors
}

func countMasked(src pixel.Source, row []uint32, mask uint32, bound int, ignoreAlpha bool) ([]ColorCount, bool) {
	index := make(map[uint32]int)
	var entries []ColorCount

	w, h := src.Width(), src.Height()
	for y := 0; y < h; y++ {
		src.Row(y, row)
		for x := 0; x < w; x++ {
			argb := row[x]
			if ignoreAlpha {
				argb &= 0x00ffffff
			}
			argb &= mask

			if i, ok := index[argb]; ok {
				entries[i].Count++
				continue
			}
			index[argb] = len(entries)
			entries = append(entries, ColorCount{ARGB: argb, Count: 1})
			if len(entries) > bound {
				return nil, false
			}
		}
	}
	return entries, true
}
