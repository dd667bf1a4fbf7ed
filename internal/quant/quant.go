// Package quant reduces true-color images to bounded palettes using the
// median cut algorithm, and answers per-pixel palette lookups for every
// color the palette was trained on.
//
// Shape of the algorithm:
//   - Count distinct colors scanning row-major, retrying with progressively
//     coarser channel masks if a caller-supplied bound is exceeded
//   - If the image already fits the budget, the palette is exact (lossless)
//     and lookup is a direct map
//   - Otherwise, repeatedly pick the box with the widest channel spread
//     (total spread breaks ties) and bisect its pixel population along that
//     channel at the weighted median
//   - Leaves become palette entries, each the occurrence-weighted mean of
//     its colors; lookups replay the recorded cuts from the root
//
// Determinism: for fixed pixels and parameters the palette and every index
// assignment are bit-identical across runs. Counting preserves first-seen
// scan order, every sort is stable, and the priority and channel tie-break
// rules are fixed (alpha > red > green > blue, blue the fallback).
package quant

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/AnyUserName/palimg-cli/internal/pixel"
)

var (
	// ErrTooManyColors means no channel mask kept the distinct color count
	// within the requested bound. Unreachable with a sane bound: the
	// coarsest mask leaves at most two values per channel.
	ErrTooManyColors = errors.New("quant: no channel mask bounds the distinct color count")

	// ErrEmptyGroup means a color group was constructed with no entries.
	// Indicates a defect in the splitting logic, not bad input.
	ErrEmptyGroup = errors.New("quant: empty color group")

	// ErrPaletteTooLarge means the splitting loop produced more palette
	// entries than distinct input colors. Defect indicator.
	ErrPaletteTooLarge = errors.New("quant: palette larger than distinct color count")
)

// Quantizer holds the two knobs of a quantization run. The zero value
// considers alpha and runs silently.
type Quantizer struct {
	// IgnoreAlpha treats every pixel as fully opaque: alpha is zeroed
	// before counting (merging colors that differ only in alpha), excluded
	// from all split decisions, and forced to 0xFF in every palette entry.
	IgnoreAlpha bool

	// Verbose enables progress diagnostics on stderr. Never affects the
	// result.
	Verbose bool
}

// Quantize builds a palette of at most maxColors entries for src.
// The palette is exact when src has no more distinct colors than
// maxColors; otherwise colors are reduced by median cut. A single
// invocation is synchronous and allocates only transient state, so
// concurrent calls for different images are independent.
func (q Quantizer) Quantize(src pixel.Source, maxColors int) (*Palette, error) {
	if maxColors < 1 {
		return nil, fmt.Errorf("quant: max colors must be at least 1, got %d", maxColors)
	}

	counts, err := countColors(src, math.MaxInt, q.IgnoreAlpha, q.Verbose)
	if err != nil {
		return nil, err
	}
	distinct := len(counts)
	if q.Verbose {
		logf("distinct colors: %d (budget %d)", distinct, maxColors)
	}

	if distinct <= maxColors {
		return newExactPalette(counts, q.IgnoreAlpha), nil
	}
	return q.reduce(counts, maxColors)
}

// reduce runs the median cut loop over the counted colors.
func (q Quantizer) reduce(counts []ColorCount, maxColors int) (*Palette, error) {
	ar := &arena{ignoreAlpha: q.IgnoreAlpha}
	root, err := ar.add(counts)
	if err != nil {
		return nil, err
	}

	active := []int{root}
	for len(active) < maxColors {
		// Highest split priority first: widest spread, then largest total
		// spread. Stable, so equal groups keep insertion order.
		sort.SliceStable(active, func(i, j int) bool {
			gi, gj := &ar.groups[active[i]], &ar.groups[active[j]]
			if gi.maxDiff != gj.maxDiff {
				return gi.maxDiff > gj.maxDiff
			}
			return gi.diffTotal > gj.diffTotal
		})

		sel := active[0]
		g := &ar.groups[sel]
		if g.maxDiff == 0 {
			// Every remaining box is a single point in color space.
			break
		}
		ch := splitChannel(g, q.IgnoreAlpha)
		if q.Verbose {
			logf("cutting %d colors on %s (spread %d)", len(g.colors), ch, g.maxDiff)
		}
		if err := ar.split(sel, ch); err != nil {
			return nil, err
		}
		c := ar.groups[sel].cut
		active = append(active[1:], c.low, c.high)
	}

	colors := make([]uint32, len(active))
	pops := make([]int64, len(active))
	for i, h := range active {
		g := &ar.groups[h]
		if len(g.colors) == 0 {
			return nil, ErrEmptyGroup
		}
		colors[i] = g.meanColor(q.IgnoreAlpha)
		pops[i] = g.countTotal()
		g.paletteIndex = i
	}
	if len(colors) > len(counts) {
		return nil, ErrPaletteTooLarge
	}
	if q.Verbose {
		logf("palette size: %d", len(colors))
	}

	return &Palette{
		colors:      colors,
		pops:        pops,
		distinct:    len(counts),
		ignoreAlpha: q.IgnoreAlpha,
		groups:      ar.groups,
		root:        root,
	}, nil
}

func logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[palimg] "+format+"\n", args...)
}
