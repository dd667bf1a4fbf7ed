package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AnyUserName/palimg-cli/internal/manifest"
	"github.com/AnyUserName/palimg-cli/internal/pipeline"
	"github.com/AnyUserName/palimg-cli/internal/profile"
	"github.com/spf13/cobra"
)

var (
	buildOutDir       string
	buildProfile      string
	buildWorkers      int
	buildColors       []int
	buildFormats      []string
	buildMaxWidth     int
	buildIgnoreAlpha  bool
	buildNoRegress    bool
	buildManifestOnly bool
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Quantize images and generate indexed variants + manifest",
	Long: `Scans input directory for images (png, jpg, jpeg, webp, gif, bmp, tiff),
builds a median-cut palette per requested depth, and writes indexed
GIF/PNG/BMP variants plus a manifest file.

Output filenames are content-addressed: <key>.<colors>c.<hash>.ext`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./palimg_out", "output directory")
	buildCmd.Flags().StringVarP(&buildProfile, "profile", "p", "web-indexed",
		fmt.Sprintf("processing profile (%s)", strings.Join(profile.Names(), ", ")))
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().IntSliceVar(&buildColors, "colors", nil, "palette budgets (overrides profile)")
	buildCmd.Flags().StringSliceVar(&buildFormats, "formats", nil, "output formats (overrides profile)")
	buildCmd.Flags().IntVar(&buildMaxWidth, "max-width", 0, "downscale wider sources (overrides profile)")
	buildCmd.Flags().BoolVar(&buildIgnoreAlpha, "ignore-alpha", false, "build opaque palettes (overrides profile)")
	buildCmd.Flags().BoolVar(&buildNoRegress, "no-regress-size", true, "skip variants larger than original file")
	buildCmd.Flags().BoolVar(&buildManifestOnly, "manifest-only", false, "compute sizes and hashes, write no image files")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	// Load profile, then apply flag overrides.
	prof := profile.Get(buildProfile)
	if buildColors != nil {
		prof.Colors = buildColors
	}
	if buildFormats != nil {
		prof.Formats = buildFormats
	}
	if cmd.Flags().Changed("max-width") {
		prof.MaxWidth = buildMaxWidth
	}
	if cmd.Flags().Changed("ignore-alpha") {
		prof.IgnoreAlpha = buildIgnoreAlpha
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (colors=%v, formats=%v, ignore-alpha=%v)",
		prof.Name, prof.Colors, prof.Formats, prof.IgnoreAlpha)

	// Create output dir.
	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Run pipeline.
	p := pipeline.New(pipeline.Config{
		InputDir:      absInput,
		OutputDir:     absOutput,
		Profile:       prof,
		Workers:       buildWorkers,
		Verbose:       verbose,
		NoRegressSize: buildNoRegress,
		ManifestOnly:  buildManifestOnly,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	// Write manifest.
	manifestPath := filepath.Join(absOutput, manifest.Filename)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	elapsed := time.Since(start)

	// Print report.
	printBuildReport(m, elapsed)

	return nil
}

func printBuildReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║              palimg build complete               ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	stats := m.Stats
	ratio := float64(0)
	if stats.TotalInputBytes > 0 {
		ratio = float64(stats.TotalOutputBytes) / float64(stats.TotalInputBytes) * 100
	}

	fmt.Printf("  Assets:      %d\n", stats.TotalAssets)
	fmt.Printf("  Variants:    %d\n", stats.TotalVariants)
	if stats.TotalVariants > 0 {
		fmt.Printf("  Lossless:    %d of %d variants\n", stats.LosslessVariants, stats.TotalVariants)
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(stats.TotalOutputBytes))
	fmt.Printf("  Ratio:       %.1f%% of original\n", ratio)
	if stats.SkippedRegress > 0 {
		fmt.Printf("  Skipped:     %d variants (larger than original)\n", stats.SkippedRegress)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))

	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	// Top 10 heaviest assets.
	if len(m.Assets) > 0 {
		type assetSize struct {
			key        string
			inputSize  int64
			outputSize int64
		}
		var items []assetSize
		for key, a := range m.Assets {
			var outSum int64
			for _, v := range a.Variants {
				outSum += v.Size
			}
			items = append(items, assetSize{key, a.Original.Size, outSum})
		}
		sort.Slice(items, func(i, j int) bool {
			return items[i].inputSize > items[j].inputSize
		})
		n := len(items)
		if n > 10 {
			n = 10
		}
		fmt.Printf("  Top %d heaviest (original → optimized):\n", n)
		for _, it := range items[:n] {
			saved := float64(0)
			if it.inputSize > 0 {
				saved = (1 - float64(it.outputSize)/float64(it.inputSize)) * 100
			}
			fmt.Printf("    %-40s %8s → %8s  (−%.0f%%)\n",
				truncKey(it.key, 40),
				formatBytes(it.inputSize),
				formatBytes(it.outputSize),
				saved,
			)
		}
		fmt.Println()
	}

	// Format support info.
	fmts := detectOutputFormats(m)
	fmt.Printf("  Formats:     %s\n", strings.Join(fmts, ", "))
	if buildManifestOnly {
		fmt.Println("  Note:        manifest-only run, no image files written")
	}
	fmt.Println()

	// Manifest path.
	data, _ := json.Marshal(m)
	fmt.Printf("  Manifest:    %s (%s)\n", manifest.Filename, formatBytes(int64(len(data))))
	fmt.Println()
}

func detectOutputFormats(m *manifest.Manifest) []string {
	set := map[string]bool{}
	for _, a := range m.Assets {
		for _, v := range a.Variants {
			set[v.Format] = true
		}
	}
	var out []string
	for _, f := range []string{"gif", "png", "bmp"} {
		if set[f] {
			out = append(out, f)
		}
	}
	return out
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
