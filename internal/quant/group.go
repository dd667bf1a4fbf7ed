package quant

import "math"

// group is an axis-aligned box in ARGB space: a non-empty set of counted
// colors plus per-channel min/max and spread statistics. Statistics are
// computed once at construction and never change; the only later mutations
// are attaching a single cut when the group is split and assigning a
// palette index when it ends up a leaf.
type group struct {
	colors []ColorCount

	minAlpha, maxAlpha int
	minRed, maxRed     int
	minGreen, maxGreen int
	minBlue, maxBlue   int

	alphaDiff int
	redDiff   int
	greenDiff int
	blueDiff  int
	maxDiff   int
	diffTotal int

	cut    cut
	hasCut bool

	paletteIndex int
}

func newGroup(colors []ColorCount, ignoreAlpha bool) (group, error) {
	if len(colors) == 0 {
		return group{}, ErrEmptyGroup
	}
	g := group{
		colors:       colors,
		minAlpha:     255,
		minRed:       255,
		minGreen:     255,
		minBlue:      255,
		paletteIndex: -1,
	}
	for _, cc := range colors {
		alpha := int(ChannelAlpha.Component(cc.ARGB))
		red := int(ChannelRed.Component(cc.ARGB))
		green := int(ChannelGreen.Component(cc.ARGB))
		blue := int(ChannelBlue.Component(cc.ARGB))

		g.minAlpha = min(g.minAlpha, alpha)
		g.maxAlpha = max(g.maxAlpha, alpha)
		g.minRed = min(g.minRed, red)
		g.maxRed = max(g.maxRed, red)
		g.minGreen = min(g.minGreen, green)
		g.maxGreen = max(g.maxGreen, green)
		g.minBlue = min(g.minBlue, blue)
		g.maxBlue = max(g.maxBlue, blue)
	}
	g.alphaDiff = g.maxAlpha - g.minAlpha
	g.redDiff = g.maxRed - g.minRed
	g.greenDiff = g.maxGreen - g.minGreen
	g.blueDiff = g.maxBlue - g.minBlue

	if ignoreAlpha {
		g.maxDiff = max(g.redDiff, max(g.greenDiff, g.blueDiff))
		g.diffTotal = g.redDiff + g.greenDiff + g.blueDiff
	} else {
		g.maxDiff = max(max(g.alphaDiff, g.redDiff), max(g.greenDiff, g.blueDiff))
		g.diffTotal = g.alphaDiff + g.redDiff + g.greenDiff + g.blueDiff
	}
	return g, nil
}

// contains reports whether argb falls inside the box on every considered
// channel. Alpha is skipped when ignored, matching the forced-opaque
// entries such palettes carry.
func (g *group) contains(argb uint32, ignoreAlpha bool) bool {
	if !ignoreAlpha {
		alpha := int(ChannelAlpha.Component(argb))
		if alpha < g.minAlpha || alpha > g.maxAlpha {
			return false
		}
	}
	red := int(ChannelRed.Component(argb))
	if red < g.minRed || red > g.maxRed {
		return false
	}
	green := int(ChannelGreen.Component(argb))
	if green < g.minGreen || green > g.maxGreen {
		return false
	}
	blue := int(ChannelBlue.Component(argb))
	return blue >= g.minBlue && blue <= g.maxBlue
}

// meanColor is the group's representative color: the occurrence-weighted
// per-channel mean, rounded half up. Alpha is forced opaque when ignored.
func (g *group) meanColor(ignoreAlpha bool) uint32 {
	var countTotal, alphaTotal, redTotal, greenTotal, blueTotal int64
	for _, cc := range g.colors {
		countTotal += cc.Count
		alphaTotal += cc.Count * int64(ChannelAlpha.Component(cc.ARGB))
		redTotal += cc.Count * int64(ChannelRed.Component(cc.ARGB))
		greenTotal += cc.Count * int64(ChannelGreen.Component(cc.ARGB))
		blueTotal += cc.Count * int64(ChannelBlue.Component(cc.ARGB))
	}

	alpha := 0xff
	if !ignoreAlpha {
		alpha = int(math.Round(float64(alphaTotal) / float64(countTotal)))
	}
	red := int(math.Round(float64(redTotal) / float64(countTotal)))
	green := int(math.Round(float64(greenTotal) / float64(countTotal)))
	blue := int(math.Round(float64(blueTotal) / float64(countTotal)))

	return uint32(alpha)<<24 | uint32(red)<<16 | uint32(green)<<8 | uint32(blue)
}

func (g *group) countTotal() int64 {
	var total int64
	for _, cc := range g.colors {
		total += cc.Count
	}
	return total
}

// arena owns every group of one quantization run. Cuts reference children
// by index into it, so the whole lookup tree is two flat slices away from
// being serializable and carries no pointer cycles.
type arena struct {
	groups      []group
	ignoreAlpha bool
}

// add constructs a group from colors and returns its handle.
func (a *arena) add(colors []ColorCount) (int, error) {
	g, err := newGroup(colors, a.ignoreAlpha)
	if err != nil {
		return -1, err
	}
	a.groups = append(a.groups, g)
	return len(a.groups) - 1, nil
}
