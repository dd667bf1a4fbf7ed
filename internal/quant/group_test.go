package quant

import (
	"errors"
	"testing"
)

func TestChannelComponent(t *testing.T) {
	const argb = 0xaabbccdd
	cases := []struct {
		ch   Channel
		want uint8
	}{
		{ChannelAlpha, 0xaa},
		{ChannelRed, 0xbb},
		{ChannelGreen, 0xcc},
		{ChannelBlue, 0xdd},
	}
	for _, c := range cases {
		if got := c.ch.Component(argb); got != c.want {
			t.Errorf("%s component of %08x: got %02x, want %02x", c.ch, argb, got, c.want)
		}
	}
}

func TestChannelString(t *testing.T) {
	names := map[Channel]string{
		ChannelAlpha: "alpha",
		ChannelRed:   "red",
		ChannelGreen: "green",
		ChannelBlue:  "blue",
	}
	for ch, want := range names {
		if got := ch.String(); got != want {
			t.Errorf("Channel(%d).String(): got %q, want %q", ch, got, want)
		}
	}
}

func TestNewGroup_Stats(t *testing.T) {
	colors := []ColorCount{
		{ARGB: 0xff102030, Count: 1},
		{ARGB: 0x80405060, Count: 2},
	}

	g, err := newGroup(colors, false)
	if err != nil {
		t.Fatalf("newGroup: %v", err)
	}
	if g.minAlpha != 0x80 || g.maxAlpha != 0xff || g.alphaDiff != 0x7f {
		t.Errorf("alpha range: got [%02x,%02x] diff %d", g.minAlpha, g.maxAlpha, g.alphaDiff)
	}
	if g.minRed != 0x10 || g.maxRed != 0x40 || g.redDiff != 0x30 {
		t.Errorf("red range: got [%02x,%02x] diff %d", g.minRed, g.maxRed, g.redDiff)
	}
	if g.maxDiff != 0x7f {
		t.Errorf("maxDiff: got %d, want %d", g.maxDiff, 0x7f)
	}
	if want := 0x7f + 3*0x30; g.diffTotal != want {
		t.Errorf("diffTotal: got %d, want %d", g.diffTotal, want)
	}

	// With alpha excluded both aggregates drop to the color channels.
	g, err = newGroup(colors, true)
	if err != nil {
		t.Fatalf("newGroup: %v", err)
	}
	if g.maxDiff != 0x30 {
		t.Errorf("ignore-alpha maxDiff: got %d, want %d", g.maxDiff, 0x30)
	}
	if g.diffTotal != 3*0x30 {
		t.Errorf("ignore-alpha diffTotal: got %d, want %d", g.diffTotal, 3*0x30)
	}
}

func TestNewGroup_Empty(t *testing.T) {
	if _, err := newGroup(nil, false); !errors.Is(err, ErrEmptyGroup) {
		t.Fatalf("got %v, want ErrEmptyGroup", err)
	}
}

func TestGroupContains(t *testing.T) {
	g, err := newGroup([]ColorCount{
		{ARGB: 0xff102030, Count: 1},
		{ARGB: 0xff405060, Count: 1},
	}, false)
	if err != nil {
		t.Fatalf("newGroup: %v", err)
	}
	if !g.contains(0xff253040, false) {
		t.Error("interior color not contained")
	}
	if g.contains(0xff503040, false) {
		t.Error("out-of-range red reported as contained")
	}
	if g.contains(0x80253040, false) {
		t.Error("out-of-range alpha reported as contained")
	}
	// The alpha test is skipped when alpha is ignored.
	if !g.contains(0x80253040, true) {
		t.Error("alpha mismatch should not matter with alpha ignored")
	}
}

func TestGroupCountTotal(t *testing.T) {
	g, err := newGroup([]ColorCount{
		{ARGB: 0xff000000, Count: 3},
		{ARGB: 0xffffffff, Count: 4},
	}, false)
	if err != nil {
		t.Fatalf("newGroup: %v", err)
	}
	if got := g.countTotal(); got != 7 {
		t.Errorf("countTotal: got %d, want 7", got)
	}
}

func TestGroupMeanColor(t *testing.T) {
	cases := []struct {
		name        string
		colors      []ColorCount
		ignoreAlpha bool
		want        uint32
	}{
		{
			name: "equal weights round half up",
			colors: []ColorCount{
				{ARGB: 0xff000000, Count: 1},
				{ARGB: 0xffffffff, Count: 1},
			},
			want: 0xff808080,
		},
		{
			name: "population weighted",
			colors: []ColorCount{
				{ARGB: 0xff000000, Count: 1},
				{ARGB: 0xffffffff, Count: 3},
			},
			want: 0xffbfbfbf,
		},
		{
			name: "alpha averaged when honored",
			colors: []ColorCount{
				{ARGB: 0x00102030, Count: 1},
				{ARGB: 0xff102030, Count: 1},
			},
			want: 0x80102030,
		},
		{
			name: "alpha forced opaque when ignored",
			colors: []ColorCount{
				{ARGB: 0x00ff0000, Count: 5},
			},
			ignoreAlpha: true,
			want:        0xffff0000,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := newGroup(c.colors, c.ignoreAlpha)
			if err != nil {
				t.Fatalf("newGroup: %v", err)
			}
			if got := g.meanColor(c.ignoreAlpha); got != c.want {
				t.Errorf("meanColor: got %08x, want %08x", got, c.want)
			}
		})
	}
}
