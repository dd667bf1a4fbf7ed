package cmd

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/AnyUserName/palimg-cli/internal/pixel"
	"github.com/AnyUserName/palimg-cli/internal/quant"
	"github.com/spf13/cobra"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	paletteColors      int
	paletteIgnoreAlpha bool
	paletteJSON        bool
)

var paletteCmd = &cobra.Command{
	Use:   "palette <image>",
	Short: "Build and print the palette for a single image",
	Long: `Decodes one image, builds a median-cut palette at the requested depth,
and prints the entries with their pixel populations.`,
	Args: cobra.ExactArgs(1),
	RunE: runPalette,
}

func init() {
	paletteCmd.Flags().IntVarP(&paletteColors, "colors", "n", 256, "palette budget")
	paletteCmd.Flags().BoolVar(&paletteIgnoreAlpha, "ignore-alpha", false, "build an opaque palette")
	paletteCmd.Flags().BoolVar(&paletteJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(paletteCmd)
}

type paletteEntry struct {
	Index      int     `json:"index"`
	Color      string  `json:"color"`
	Population int64   `json:"population"`
	Share      float64 `json:"share"`
}

type paletteReport struct {
	Image          string         `json:"image"`
	Width          int            `json:"width"`
	Height         int            `json:"height"`
	DistinctColors int            `json:"distinct_colors"`
	Budget         int            `json:"budget"`
	PaletteSize    int            `json:"palette_size"`
	Lossless       bool           `json:"lossless"`
	IgnoreAlpha    bool           `json:"ignore_alpha"`
	Entries        []paletteEntry `json:"entries"`
}

func runPalette(_ *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	src := pixel.FromImage(img)
	q := quant.Quantizer{IgnoreAlpha: paletteIgnoreAlpha, Verbose: verbose}
	p, err := q.Quantize(src, paletteColors)
	if err != nil {
		return fmt.Errorf("quantize %s: %w", path, err)
	}

	var total int64
	for i := 0; i < p.Len(); i++ {
		total += p.Population(i)
	}

	report := paletteReport{
		Image:          path,
		Width:          src.Width(),
		Height:         src.Height(),
		DistinctColors: p.DistinctColors(),
		Budget:         paletteColors,
		PaletteSize:    p.Len(),
		Lossless:       p.Lossless(),
		IgnoreAlpha:    paletteIgnoreAlpha,
	}
	for i := 0; i < p.Len(); i++ {
		share := float64(0)
		if total > 0 {
			share = float64(p.Population(i)) / float64(total) * 100
		}
		report.Entries = append(report.Entries, paletteEntry{
			Index:      i,
			Color:      fmt.Sprintf("#%08x", p.Color(i)),
			Population: p.Population(i),
			Share:      share,
		})
	}

	if paletteJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	mode := "lossy"
	if report.Lossless {
		mode = "lossless"
	}

	fmt.Println()
	fmt.Printf("  Image:     %s (%dx%d)\n", report.Image, report.Width, report.Height)
	fmt.Printf("  Distinct:  %d colors\n", report.DistinctColors)
	fmt.Printf("  Budget:    %d\n", report.Budget)
	fmt.Printf("  Palette:   %d entries (%s)\n", report.PaletteSize, mode)
	if report.IgnoreAlpha {
		fmt.Printf("  Alpha:     ignored\n")
	}
	fmt.Println()
	for _, e := range report.Entries {
		fmt.Printf("    %3d  %s  %8d px  %5.1f%%\n", e.Index, e.Color, e.Population, e.Share)
	}
	fmt.Println()
	return nil
}
