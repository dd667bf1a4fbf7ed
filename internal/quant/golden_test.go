package quant

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// rgbCube8 holds the eight corners of the RGB cube, one pixel each.
func rgbCube8() *gridSource {
	return grid(4, 2,
		0xff000000, 0xffff0000, 0xff00ff00, 0xff0000ff,
		0xffffff00, 0xff00ffff, 0xffff00ff, 0xffffffff,
	)
}

// noiseImage fills w x h with seeded pseudo-random opaque colors.
func noiseImage(w, h int, seed int64) *gridSource {
	rng := rand.New(rand.NewSource(seed))
	pix := make([]uint32, w*h)
	for i := range pix {
		pix[i] = 0xff000000 | uint32(rng.Intn(1<<24))
	}
	return &gridSource{w: w, h: h, pix: pix}
}

func TestGoldenPalettes(t *testing.T) {
	cases := []struct {
		name      string
		src       *gridSource
		maxColors int
		colors    []uint32
		pops      []int64
	}{
		{
			name:      "rgb cube to four",
			src:       rgbCube8(),
			maxColors: 4,
			colors:    []uint32{0xff800000, 0xff80ff00, 0xff8000ff, 0xff80ffff},
			pops:      []int64{2, 2, 2, 2},
		},
		{
			name:      "gray ramp to four",
			src:       grayRamp256(),
			maxColors: 4,
			colors:    []uint32{0xff202020, 0xff606060, 0xffa0a0a0, 0xffe0e0e0},
			pops:      []int64{64, 64, 64, 64},
		},
		{
			name: "primaries to two",
			src: grid(2, 2,
				0xff000000, 0xffffffff,
				0xffff0000, 0xff0000ff,
			),
			maxColors: 2,
			colors:    []uint32{0xff800000, 0xff8080ff},
			pops:      []int64{2, 2},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := Quantizer{}.Quantize(c.src, c.maxColors)
			if err != nil {
				t.Fatalf("Quantize: %v", err)
			}
			colors := make([]uint32, p.Len())
			pops := make([]int64, p.Len())
			for i := range colors {
				colors[i] = p.Color(i)
				pops[i] = p.Population(i)
			}
			if diff := cmp.Diff(c.colors, colors); diff != "" {
				t.Errorf("palette mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(c.pops, pops); diff != "" {
				t.Errorf("population mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGoldenIndexes(t *testing.T) {
	p, err := Quantizer{}.Quantize(rgbCube8(), 4)
	if err != nil {
		t.Fatalf("Quantize: %v", err)
	}
	lookups := map[uint32]int{
		0xff000000: 0, // black joins red: blue and green both low
		0xffff0000: 0,
		0xff00ff00: 1,
		0xffffff00: 1,
		0xff0000ff: 2,
		0xffff00ff: 2,
		0xff00ffff: 3,
		0xffffffff: 3,
	}
	for argb, want := range lookups {
		if got := p.Index(argb); got != want {
			t.Errorf("Index(%08x): got %d, want %d", argb, got, want)
		}
	}
}

// TestLeafContainment checks that every source pixel resolves to a group
// whose bounding box contains it. The fixtures keep channel values unique
// around each cut; boxes sharing a value across a cut boundary are the
// known exception and are pinned by TestQuantize_ReduceBoundaryTies.
func TestLeafContainment(t *testing.T) {
	cases := []struct {
		name      string
		src       *gridSource
		maxColors int
	}{
		{"rgb cube", rgbCube8(), 4},
		{"gray ramp 16", grayRamp256(), 16},
		{"gray ramp 3", grayRamp256(), 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := Quantizer{}.Quantize(c.src, c.maxColors)
			if err != nil {
				t.Fatalf("Quantize: %v", err)
			}
			row := make([]uint32, c.src.Width())
			for y := 0; y < c.src.Height(); y++ {
				c.src.Row(y, row)
				for x, argb := range row {
					g := p.leaf(argb)
					if g == nil {
						t.Fatalf("pixel (%d,%d): no leaf", x, y)
					}
					if !g.contains(argb, false) {
						t.Errorf("pixel (%d,%d) %08x escapes its group box", x, y, argb)
					}
				}
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	src := noiseImage(64, 64, 7)
	ref, err := Quantizer{}.Quantize(src, 16)
	if err != nil {
		t.Fatalf("Quantize: %v", err)
	}
	for run := 0; run < 20; run++ {
		p, err := Quantizer{}.Quantize(src, 16)
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		assertSamePalette(t, ref, p, src)
	}
}

func TestDeterminism_Concurrent(t *testing.T) {
	src := noiseImage(48, 48, 11)
	ref, err := Quantizer{}.Quantize(src, 32)
	if err != nil {
		t.Fatalf("Quantize: %v", err)
	}

	const goroutines = 16
	const iterations = 25

	var wg sync.WaitGroup
	errs := make(chan string, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				p, err := Quantizer{}.Quantize(src, 32)
				if err != nil {
					errs <- err.Error()
					return
				}
				if !samePalette(ref, p, src) {
					errs <- "palette diverged across goroutines"
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
}

func samePalette(a, b *Palette, src *gridSource) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.Color(i) != b.Color(i) || a.Population(i) != b.Population(i) {
			return false
		}
	}
	for _, argb := range src.pix {
		if a.Index(argb) != b.Index(argb) {
			return false
		}
	}
	return true
}

func assertSamePalette(t *testing.T, want, got *Palette, src *gridSource) {
	t.Helper()
	if !samePalette(want, got, src) {
		t.Fatal("palette diverged between runs")
	}
}

func TestNoPanic_SizeSweep(t *testing.T) {
	sizes := []struct{ w, h int }{
		{1, 1}, {1, 7}, {7, 1}, {3, 5}, {17, 13}, {64, 1},
	}
	budgets := []int{1, 2, 3, 7, 16, 256}
	for _, sz := range sizes {
		src := noiseImage(sz.w, sz.h, int64(sz.w*100+sz.h))
		for _, n := range budgets {
			p, err := Quantizer{}.Quantize(src, n)
			if err != nil {
				t.Fatalf("%dx%d budget %d: %v", sz.w, sz.h, n, err)
			}
			if p.Len() < 1 || p.Len() > n {
				t.Fatalf("%dx%d budget %d: palette size %d", sz.w, sz.h, n, p.Len())
			}
			for _, argb := range src.pix {
				if idx := p.Index(argb); idx < 0 || idx >= p.Len() {
					t.Fatalf("%dx%d budget %d: index %d out of range", sz.w, sz.h, n, idx)
				}
			}
		}
	}
}
