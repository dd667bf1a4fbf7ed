package quant

import "image/color"

// Palette is the immutable result of a quantization run: the ordered
// representative colors plus the lookup structure that maps any trained
// pixel back to its index.
type Palette struct {
	colors      []uint32
	pops        []int64
	distinct    int
	ignoreAlpha bool

	// Exact color -> index map. Non-nil iff the palette is lossless.
	exact map[uint32]int

	// Cut tree for reduced palettes. groups[root] is the box holding every
	// counted color; leaves carry palette indices.
	groups []group
	root   int
}

func newExactPalette(counts []ColorCount, ignoreAlpha bool) *Palette {
	colors := make([]uint32, len(counts))
	pops := make([]int64, len(counts))
	exact := make(map[uint32]int, len(counts))
	for i, cc := range counts {
		c := cc.ARGB
		if ignoreAlpha {
			c |= 0xff000000
		}
		colors[i] = c
		pops[i] = cc.Count
		exact[c] = i
	}
	return &Palette{
		colors:      colors,
		pops:        pops,
		distinct:    len(counts),
		ignoreAlpha: ignoreAlpha,
		exact:       exact,
		root:        -1,
	}
}

// Len returns the number of palette entries.
func (p *Palette) Len() int { return len(p.colors) }

// Lossless reports whether every source color survived exactly.
func (p *Palette) Lossless() bool { return p.exact != nil }

// DistinctColors returns the number of distinct colors observed while
// training (after alpha zeroing when alpha is ignored).
func (p *Palette) DistinctColors() int { return p.distinct }

// Color returns the packed ARGB of entry i. Out-of-range i is a caller
// bug and panics like any slice index.
func (p *Palette) Color(i int) uint32 { return p.colors[i] }

// Population returns how many source pixels entry i represents.
func (p *Palette) Population(i int) int64 { return p.pops[i] }

// Index maps a packed ARGB pixel to its palette index.
//
// For lossless palettes this is a map hit; colors never seen during
// training return -1. For reduced palettes the recorded cuts are replayed
// from the root box down to a leaf, which is exact for every trained
// pixel. When alpha is ignored the query's alpha byte is irrelevant.
func (p *Palette) Index(argb uint32) int {
	if p.ignoreAlpha {
		argb |= 0xff000000
	}
	if p.exact != nil {
		if i, ok := p.exact[argb]; ok {
			return i
		}
		return -1
	}
	return p.leaf(argb).paletteIndex
}

// leaf walks the cut tree to the leaf group argb routes to.
func (p *Palette) leaf(argb uint32) *group {
	g := &p.groups[p.root]
	for g.hasCut {
		c := &g.cut
		if int(c.channel.Component(argb)) <= c.limit {
			g = &p.groups[c.low]
		} else {
			g = &p.groups[c.high]
		}
	}
	return g
}

// ColorPalette adapts the entries to the standard library palette type
// (non-premultiplied), in index order, for building image.Paletted and
// encoder color tables.
func (p *Palette) ColorPalette() color.Palette {
	out := make(color.Palette, len(p.colors))
	for i, c := range p.colors {
		out[i] = color.NRGBA{
			R: uint8(c >> 16),
			G: uint8(c >> 8),
			B: uint8(c),
			A: uint8(c >> 24),
		}
	}
	return out
}
