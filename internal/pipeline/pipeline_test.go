package pipeline

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/palimg-cli/internal/profile"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

// quadLogo is an 8x8 image with one flat color per quadrant.
func quadLogo() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	quads := []color.NRGBA{
		{R: 0x15, G: 0x7a, B: 0xc9, A: 0xff},
		{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		{R: 0xe8, G: 0x3e, B: 0x2d, A: 0xff},
		{R: 0x1c, G: 0x1c, B: 0x1c, A: 0xff},
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, quads[(y/4)*2+x/4])
		}
	}
	return img
}

// gradient is a 16x16 image with 256 distinct colors.
func gradient() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 17), G: uint8(y * 17), B: 0x40, A: 0xff,
			})
		}
	}
	return img
}

func TestScanImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), quadLogo())
	writePNG(t, filepath.Join(dir, "sub", "b.png"), quadLogo())
	writePNG(t, filepath.Join(dir, ".hidden", "c.png"), quadLogo())
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := ScanImages(dir)
	if err != nil {
		t.Fatalf("ScanImages: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("got %d sources, want 2: %+v", len(sources), sources)
	}
	if sources[0].Key != "a" || sources[1].Key != "sub/b" {
		t.Errorf("keys: got %q, %q", sources[0].Key, sources[1].Key)
	}
	if sources[0].Format != "png" {
		t.Errorf("format: got %q", sources[0].Format)
	}
	if sources[0].Size == 0 {
		t.Error("size not captured")
	}
}

func TestScanImages_NormalizesFormats(t *testing.T) {
	dir := t.TempDir()
	// Content irrelevant for the scan; extension drives the format.
	for _, name := range []string{"x.JPG", "y.tif"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	sources, err := ScanImages(dir)
	if err != nil {
		t.Fatalf("ScanImages: %v", err)
	}
	got := map[string]string{}
	for _, s := range sources {
		got[s.Key] = s.Format
	}
	if got["x"] != "jpeg" || got["y"] != "tiff" {
		t.Errorf("normalized formats: got %v", got)
	}
}

func TestPipeline_Run(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writePNG(t, filepath.Join(in, "logos", "quad.png"), quadLogo())
	writePNG(t, filepath.Join(in, "grad.png"), gradient())

	cfg := Config{
		InputDir:  in,
		OutputDir: out,
		Profile: profile.Profile{
			Name:    "test",
			Colors:  []int{8},
			Formats: []string{"gif", "png"},
		},
		Workers: 2,
	}
	m, err := New(cfg).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(m.Assets) != 2 {
		t.Fatalf("assets: got %d, want 2", len(m.Assets))
	}

	quad, ok := m.Assets["logos/quad"]
	if !ok {
		t.Fatal("asset logos/quad missing")
	}
	if quad.DistinctColors != 4 {
		t.Errorf("quad distinct colors: got %d, want 4", quad.DistinctColors)
	}
	if len(quad.Variants) != 2 {
		t.Fatalf("quad variants: got %d, want 2", len(quad.Variants))
	}
	for _, v := range quad.Variants {
		if !v.Lossless || v.PaletteSize != 4 || v.Colors != 8 {
			t.Errorf("quad variant: got %+v", v)
		}
		if v.PaletteHash == "" || len(v.Hash) != 16 {
			t.Errorf("quad variant hashes: got %+v", v)
		}
	}
	if len(quad.PalettePreview) != 4 {
		t.Errorf("quad preview: got %v", quad.PalettePreview)
	}

	grad, ok := m.Assets["grad"]
	if !ok {
		t.Fatal("asset grad missing")
	}
	if grad.DistinctColors != 256 {
		t.Errorf("grad distinct colors: got %d, want 256", grad.DistinctColors)
	}
	for _, v := range grad.Variants {
		if v.Lossless || v.PaletteSize > 8 {
			t.Errorf("grad variant: got %+v", v)
		}
	}
	if len(grad.PalettePreview) != 8 {
		t.Errorf("grad preview: got %v", grad.PalettePreview)
	}

	// Every variant file must exist with the recorded size.
	total := 0
	for _, a := range m.Assets {
		for _, v := range a.Variants {
			total++
			st, err := os.Stat(filepath.Join(out, filepath.FromSlash(v.Path)))
			if err != nil {
				t.Errorf("variant file missing: %v", err)
				continue
			}
			if st.Size() != v.Size {
				t.Errorf("%s: size %d on disk, %d in manifest", v.Path, st.Size(), v.Size)
			}
		}
	}
	if m.Stats.TotalVariants != total || m.Stats.TotalAssets != 2 {
		t.Errorf("stats: got %+v", m.Stats)
	}
}

func TestPipeline_RunIsDeterministic(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "grad.png"), gradient())

	cfg := Config{
		InputDir: in,
		Profile: profile.Profile{
			Name:    "test",
			Colors:  []int{16, 4},
			Formats: []string{"png"},
		},
		Workers: 4,
	}

	cfg.OutputDir = t.TempDir()
	m1, err := New(cfg).Run()
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	cfg.OutputDir = t.TempDir()
	m2, err := New(cfg).Run()
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	v1 := m1.Assets["grad"].Variants
	v2 := m2.Assets["grad"].Variants
	if len(v1) != len(v2) {
		t.Fatalf("variant counts differ: %d vs %d", len(v1), len(v2))
	}
	for i := range v1 {
		if v1[i] != v2[i] {
			t.Errorf("variant %d diverged:\n%+v\n%+v", i, v1[i], v2[i])
		}
	}
}

func TestPipeline_AlphaGetsPNGFallback(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			a := uint8(0xff)
			if x == 0 {
				a = 0x80
			}
			img.SetNRGBA(x, y, color.NRGBA{R: 0xff, A: a})
		}
	}
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "badge.png"), img)

	cfg := Config{
		InputDir:  in,
		OutputDir: t.TempDir(),
		Profile: profile.Profile{
			Name:    "test",
			Colors:  []int{4},
			Formats: []string{"gif"},
		},
		Workers: 1,
	}
	m, err := New(cfg).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	a := m.Assets["badge"]
	if !a.Original.HasAlpha {
		t.Error("alpha not detected")
	}
	formats := map[string]bool{}
	for _, v := range a.Variants {
		formats[v.Format] = true
	}
	if !formats["gif"] || !formats["png"] {
		t.Errorf("formats: got %v, want gif and png", formats)
	}
}

func TestPipeline_ManifestOnly(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writePNG(t, filepath.Join(in, "logos", "quad.png"), quadLogo())

	cfg := Config{
		InputDir:  in,
		OutputDir: out,
		Profile: profile.Profile{
			Name:    "test",
			Colors:  []int{8},
			Formats: []string{"png"},
		},
		Workers:      1,
		ManifestOnly: true,
	}
	m, err := New(cfg).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	a := m.Assets["logos/quad"]
	if len(a.Variants) != 1 {
		t.Fatalf("variants: got %d, want 1", len(a.Variants))
	}
	v := a.Variants[0]
	if v.Size == 0 || len(v.Hash) != 16 {
		t.Errorf("variant metadata incomplete: %+v", v)
	}

	// The output tree must stay untouched.
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("output dir not empty: %v", entries)
	}
}

func TestPipeline_NoImages(t *testing.T) {
	cfg := Config{
		InputDir:  t.TempDir(),
		OutputDir: t.TempDir(),
		Profile:   profile.Get("web-indexed"),
	}
	if _, err := New(cfg).Run(); err == nil {
		t.Fatal("expected an error for an empty input dir")
	}
}
