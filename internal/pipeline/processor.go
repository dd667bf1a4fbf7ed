package pipeline

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/palimg-cli/internal/encoder"
	"github.com/AnyUserName/palimg-cli/internal/hasher"
	"github.com/AnyUserName/palimg-cli/internal/manifest"
	"github.com/AnyUserName/palimg-cli/internal/pixel"
	"github.com/AnyUserName/palimg-cli/internal/quant"
	"github.com/AnyUserName/palimg-cli/internal/remap"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key            string
	asset          manifest.Asset
	err            error
	skippedRegress int // variants skipped because larger than original
}

// processImage handles a single source image: decode, quantize at each
// palette budget, remap, encode.
func processImage(src Source, cfg Config, registry *encoder.Registry) processResult {
	result := processResult{key: src.Key}

	// Open and decode image.
	f, err := os.Open(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("open %s: %w", src.RelPath, err)
		return result
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	bounds := img.Bounds()
	origW := bounds.Dx()
	origH := bounds.Dy()
	hasAlpha := pixel.HasAlpha(img)

	// Downscale oversized sources before any palette work.
	if cfg.Profile.MaxWidth > 0 && origW > cfg.Profile.MaxWidth {
		img = imaging.Resize(img, cfg.Profile.MaxWidth, 0, imaging.Lanczos)
		bounds = img.Bounds()
	}
	outW := bounds.Dx()
	outH := bounds.Dy()

	psrc := pixel.FromImage(img)
	quantizer := quant.Quantizer{IgnoreAlpha: cfg.Profile.IgnoreAlpha}

	palettes := map[int]*quant.Palette{}
	quantizeAt := func(n int) (*quant.Palette, error) {
		if p, ok := palettes[n]; ok {
			return p, nil
		}
		p, err := quantizer.Quantize(psrc, n)
		if err == nil {
			palettes[n] = p
		}
		return p, err
	}

	// The distinct color count is exact at any budget; probe with the
	// first budget so the palette gets reused below.
	probeBudget := 256
	for _, n := range cfg.Profile.Colors {
		if n >= 1 {
			probeBudget = min(n, 256)
			break
		}
	}
	probe, err := quantizeAt(probeBudget)
	if err != nil {
		result.err = fmt.Errorf("quantize %s: %w", src.RelPath, err)
		return result
	}
	distinct := probe.DistinctColors()

	// Fill original info.
	result.asset = manifest.Asset{
		Original: manifest.OriginalInfo{
			Width:    origW,
			Height:   origH,
			Format:   src.Format,
			Size:     src.Size,
			HasAlpha: hasAlpha,
		},
		DistinctColors: distinct,
		AspectRatio:    float64(origW) / float64(origH),
	}

	// Determine palette budgets and output formats. Ignoring alpha makes
	// every output opaque, so GIF and BMP stay usable for those.
	budgets := cfg.Profile.EffectiveColors(distinct)
	alphaOut := hasAlpha && !cfg.Profile.IgnoreAlpha
	formats := registry.ResolveFormats(cfg.Profile.Formats, alphaOut)

	// Ensure output subdirectory exists.
	keyDir := filepath.Dir(src.Key)
	if keyDir != "." && !cfg.ManifestOnly {
		os.MkdirAll(filepath.Join(cfg.OutputDir, keyDir), 0o755)
	}

	// Generate variants.
	for _, n := range budgets {
		p, err := quantizeAt(n)
		if err != nil {
			if cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[palimg] warn: quantize %s@%dc: %v\n", src.Key, n, err)
			}
			continue
		}

		pm, err := remap.Paletted(psrc, p)
		if err != nil {
			if cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[palimg] warn: remap %s@%dc: %v\n", src.Key, n, err)
			}
			continue
		}

		colors := make([]uint32, p.Len())
		for i := range colors {
			colors[i] = p.Color(i)
		}
		paletteHash := hasher.PaletteHash(colors)

		for _, format := range formats {
			enc := registry.Get(format)
			if enc == nil {
				continue
			}

			// Encode.
			data, err := enc.Encode(pm)
			if err != nil {
				if cfg.Verbose {
					fmt.Fprintf(os.Stderr, "[palimg] warn: encode %s@%dc as %s: %v\n",
						src.Key, n, format, err)
				}
				continue
			}

			// Skip variant if encoded size >= original (--no-regress-size).
			if cfg.NoRegressSize && int64(len(data)) >= src.Size {
				if cfg.Verbose {
					fmt.Fprintf(os.Stderr, "[palimg] skip: %s@%dc %s: encoded %d >= original %d bytes\n",
						src.Key, n, format, len(data), src.Size)
				}
				result.skippedRegress++
				continue
			}

			// Content hash for filename.
			contentHash := hasher.ContentHash(data, 16)

			// Build filename: key.<n>c.hash.ext
			fileName := fmt.Sprintf("%s.%dc.%s.%s",
				filepath.Base(src.Key), n, contentHash[:8], enc.Extension())
			relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

			// Write file (skipped for manifest-only runs).
			if !cfg.ManifestOnly {
				outPath := filepath.Join(cfg.OutputDir, relPath)
				if err := os.WriteFile(outPath, data, 0o644); err != nil {
					result.err = fmt.Errorf("write %s: %w", relPath, err)
					return result
				}
			}

			result.asset.Variants = append(result.asset.Variants, manifest.Variant{
				Format:      format,
				Colors:      n,
				PaletteSize: p.Len(),
				Lossless:    p.Lossless(),
				PaletteHash: paletteHash,
				Width:       outW,
				Height:      outH,
				Size:        int64(len(data)),
				Hash:        contentHash,
				Path:        relPath,
			})
		}
	}

	result.asset.PalettePreview = palettePreview(palettes, budgets)

	return result
}

// palettePreview summarizes the smallest built palette as up to eight
// #aarrggbb strings, most populous entries first.
func palettePreview(palettes map[int]*quant.Palette, budgets []int) []string {
	smallest := 0
	for _, n := range budgets {
		if _, ok := palettes[n]; !ok {
			continue
		}
		if smallest == 0 || n < smallest {
			smallest = n
		}
	}
	if smallest == 0 {
		return nil
	}
	p := palettes[smallest]

	type entry struct {
		argb uint32
		pop  int64
	}
	entries := make([]entry, p.Len())
	for i := range entries {
		entries[i] = entry{argb: p.Color(i), pop: p.Population(i)}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].pop > entries[j].pop
	})

	limit := len(entries)
	if limit > 8 {
		limit = 8
	}
	preview := make([]string, limit)
	for i := 0; i < limit; i++ {
		preview[i] = fmt.Sprintf("#%08x", entries[i].argb)
	}
	return preview
}
