package quant

import "sort"

// cut records how a group was split: queries with the channel's component
// <= limit belong to the low child, the rest to the high child.
type cut struct {
	channel Channel
	limit   int
	low     int // arena handles
	high    int
}

// splitChannel picks the channel to cut along, by fixed priority on the
// group's spreads: alpha only when considered and strictly wider than all
// of red, green and blue; red when strictly wider than green and blue;
// green when strictly wider than blue; blue for everything else, including
// all remaining ties.
func splitChannel(g *group, ignoreAlpha bool) Channel {
	switch {
	case !ignoreAlpha && g.alphaDiff > g.redDiff && g.alphaDiff > g.greenDiff && g.alphaDiff > g.blueDiff:
		return ChannelAlpha
	case g.redDiff > g.greenDiff && g.redDiff > g.blueDiff:
		return ChannelRed
	case g.greenDiff > g.blueDiff:
		return ChannelGreen
	default:
		return ChannelBlue
	}
}

// split partitions the group at handle gh along ch so that the two halves
// carry as equal a pixel population as the entry granularity allows, then
// attaches the cut to the parent. Both children are always non-empty.
func (a *arena) split(gh int, ch Channel) error {
	colors := a.groups[gh].colors

	var countTotal int64
	for _, cc := range colors {
		countTotal += cc.Count
	}

	// Entries with equal channel values keep their relative order; the
	// stable sort is what makes the whole run deterministic.
	sort.SliceStable(colors, func(i, j int) bool {
		return ch.Component(colors[i].ARGB) < ch.Component(colors[j].ARGB)
	})

	countHalf := (countTotal + 1) / 2

	var oldCount, newCount int64
	medianIndex := 0
	for ; medianIndex < len(colors); medianIndex++ {
		newCount += colors[medianIndex].Count
		if newCount < countHalf {
			oldCount = newCount
			continue
		}
		break
	}

	// Boundary adjustment, decrement only. At the last index the high side
	// would be empty. Otherwise move the cut back one entry when the
	// pre-crossing population sits strictly closer to half; both
	// differences are nonnegative because the walk stopped at the first
	// sum >= half.
	if medianIndex == len(colors)-1 {
		medianIndex--
	} else if medianIndex > 0 {
		if countHalf-oldCount < newCount-countHalf {
			medianIndex--
		}
	}

	low, err := a.add(colors[:medianIndex+1])
	if err != nil {
		return err
	}
	high, err := a.add(colors[medianIndex+1:])
	if err != nil {
		return err
	}

	// Re-take the pointer: the adds above may have grown the arena.
	g := &a.groups[gh]
	g.cut = cut{
		channel: ch,
		limit:   int(ch.Component(colors[medianIndex].ARGB)),
		low:     low,
		high:    high,
	}
	g.hasCut = true
	return nil
}
