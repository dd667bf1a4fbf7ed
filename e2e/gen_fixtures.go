//go:build ignore

// gen_fixtures creates small test images for the E2E smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "sprites"), 0o755)

	// Banner (JPEG, 400x225): thousands of distinct colors, lossy at any
	// practical palette depth.
	writeJPEG(filepath.Join(dir, "banner.jpg"), gradient(400, 225))

	// Sprites (PNG, 200x150 each): two flat colors plus a border.
	for i := 1; i <= 3; i++ {
		name := fmt.Sprintf("sprite-%d.png", i)
		writeImage(filepath.Join(dir, "sprites", name), solidWithBorder(200, 150, uint8(i*60)))
	}

	// Tile sheet (PNG, 64x64): exactly eight colors, lossless even at
	// shallow depths.
	writeImage(filepath.Join(dir, "tiles.png"), pixelArt(64, 64))

	// Small alpha image: forces the PNG fallback.
	writeImage(filepath.Join(dir, "logo.png"), alphaGradient(100, 100))

	// Photo-like noise: worst case for palette reduction.
	writeImage(filepath.Join(dir, "photo.png"), noise(160, 120))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 7 fixtures in %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func solidWithBorder(w, h int, base uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255}
			if x < 4 || x >= w-4 || y < 4 || y >= h-4 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func pixelArt(w, h int) *image.NRGBA {
	tiles := []color.NRGBA{
		{R: 0x1a, G: 0x1c, B: 0x2c, A: 0xff},
		{R: 0x5d, G: 0x27, B: 0x5d, A: 0xff},
		{R: 0xb1, G: 0x3e, B: 0x53, A: 0xff},
		{R: 0xef, G: 0x7d, B: 0x57, A: 0xff},
		{R: 0xff, G: 0xcd, B: 0x75, A: 0xff},
		{R: 0xa7, G: 0xf0, B: 0x70, A: 0xff},
		{R: 0x38, G: 0xb7, B: 0x64, A: 0xff},
		{R: 0x25, G: 0x71, B: 0x79, A: 0xff},
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, tiles[(x/8+y/8)%len(tiles)])
		}
	}
	return img
}

func noise(w, h int) *image.NRGBA {
	rng := rand.New(rand.NewSource(1))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func writeImage(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		panic(err)
	}
}
