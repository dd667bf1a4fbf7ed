package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/palimg-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a built asset directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for manifest inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifest.Filename)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	printStats(&m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
		if m.BuildInfo.IgnoreAlpha {
			fmt.Printf("  Alpha:            ignored (opaque palettes)\n")
		}
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total assets:     %d\n", s.TotalAssets)
	fmt.Printf("  Total variants:   %d\n", s.TotalVariants)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))

	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Printf("  Compression:      %.1f%% of original\n", ratio)
	}
	fmt.Println()

	// Per-format breakdown.
	formatStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, a := range m.Assets {
		for _, v := range a.Variants {
			fs := formatStats[v.Format]
			fs.count++
			fs.bytes += v.Size
			formatStats[v.Format] = fs
		}
	}

	fmt.Println("  Format breakdown:")
	for _, f := range []string{"gif", "png", "bmp"} {
		if fs, ok := formatStats[f]; ok {
			fmt.Printf("    %-6s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
		}
	}
	fmt.Println()

	// Per-depth breakdown.
	depthStats := map[int]int{}
	for _, a := range m.Assets {
		for _, v := range a.Variants {
			depthStats[v.Colors]++
		}
	}
	var depths []int
	for d := range depthStats {
		depths = append(depths, d)
	}
	sort.Ints(depths)
	fmt.Println("  Palette depth breakdown:")
	for _, d := range depths {
		fmt.Printf("    %5dc  %4d variants\n", d, depthStats[d])
	}
	fmt.Println()

	// Lossless coverage and palette reuse.
	lossless := 0
	variants := 0
	paletteHashes := map[string]bool{}
	for _, a := range m.Assets {
		for _, v := range a.Variants {
			variants++
			if v.Lossless {
				lossless++
			}
			if v.PaletteHash != "" {
				paletteHashes[v.PaletteHash] = true
			}
		}
	}
	fmt.Printf("  Lossless coverage: %d / %d variants\n", lossless, variants)
	fmt.Printf("  Distinct palettes: %d\n", len(paletteHashes))

	// Largest assets by output bytes.
	type outInfo struct {
		key   string
		bytes int64
	}
	var outs []outInfo
	for key, a := range m.Assets {
		var sum int64
		for _, v := range a.Variants {
			sum += v.Size
		}
		outs = append(outs, outInfo{key, sum})
	}
	sort.Slice(outs, func(i, j int) bool {
		if outs[i].bytes != outs[j].bytes {
			return outs[i].bytes > outs[j].bytes
		}
		return outs[i].key < outs[j].key
	})
	n := len(outs)
	if n > 5 {
		n = 5
	}
	if n > 0 {
		fmt.Println()
		fmt.Printf("  Top %d by output size:\n", n)
		for _, o := range outs[:n] {
			fmt.Printf("    %-40s %8s\n", truncKey(o.key, 40), formatBytes(o.bytes))
		}
	}

	// Warnings.
	var warnings []string
	for key, a := range m.Assets {
		if len(a.Variants) == 0 {
			warnings = append(warnings, fmt.Sprintf("asset %q has no variants", key))
		}
		for i, v := range a.Variants {
			if v.PaletteHash == "" {
				warnings = append(warnings, fmt.Sprintf("asset %q variant[%d] missing palette hash", key, i))
			}
		}
	}
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}
