package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/palimg-cli/internal/hasher"
	"github.com/AnyUserName/palimg-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a palimg manifest and check referenced files",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "treat warnings as failures")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	manifestPath := args[0]

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	baseDir := filepath.Dir(manifestPath)
	errors, warnings := validateManifest(&m, baseDir)
	if validateStrict {
		errors = append(errors, warnings...)
		warnings = nil
	}

	for _, w := range warnings {
		fmt.Printf("  ⚠ %s\n", w)
	}

	if len(errors) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d assets, %d variants, all files present and hashes match\n",
			m.Stats.TotalAssets, m.Stats.TotalVariants)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}

// validateManifest separates hard errors from warnings. Warnings cover
// states a correct build can produce: a manifest from a newer palimg, or
// an asset whose variants were all skipped for regressing in size.
func validateManifest(m *manifest.Manifest, baseDir string) (errs, warns []string) {
	// Check version.
	if m.Version != manifest.SupportedManifestVersion {
		warns = append(warns, fmt.Sprintf("manifest version %d, this palimg supports %d",
			m.Version, manifest.SupportedManifestVersion))
	}

	// Check each asset.
	for key, asset := range m.Assets {
		// Check original dimensions.
		if asset.Original.Width <= 0 || asset.Original.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid original dimensions %dx%d",
				key, asset.Original.Width, asset.Original.Height))
		}

		// Check distinct color count.
		if asset.DistinctColors <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid distinct color count %d",
				key, asset.DistinctColors))
		}

		// Check aspect ratio.
		if asset.AspectRatio <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid aspect ratio %.4f", key, asset.AspectRatio))
		}

		// Check variants. Zero variants is legitimate when every encode
		// regressed in size.
		if len(asset.Variants) == 0 {
			warns = append(warns, fmt.Sprintf("asset %q: no variants", key))
		}

		seenPaths := map[string]bool{}
		for i, v := range asset.Variants {
			// Check variant fields.
			if v.Format == "" {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: empty format", key, i))
			}
			if v.Width <= 0 || v.Height <= 0 {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: invalid dimensions %dx%d",
					key, i, v.Width, v.Height))
			}
			if v.Colors < 1 || v.Colors > 256 {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: palette budget %d out of range",
					key, i, v.Colors))
			}
			if v.PaletteSize < 1 || v.PaletteSize > 256 {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: palette size %d out of range",
					key, i, v.PaletteSize))
			} else if v.PaletteSize > v.Colors {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: palette size %d exceeds budget %d",
					key, i, v.PaletteSize, v.Colors))
			}
			if v.PaletteHash == "" {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: missing palette hash", key, i))
			}
			if v.Hash == "" {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: missing hash", key, i))
			}
			if v.Path == "" {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: missing path", key, i))
				continue
			}

			// Check duplicate paths.
			if seenPaths[v.Path] {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: duplicate path %q", key, i, v.Path))
			}
			seenPaths[v.Path] = true

			// Check file exists, then that content matches the recorded hash.
			fullPath := filepath.Join(baseDir, filepath.FromSlash(v.Path))
			info, err := os.Stat(fullPath)
			if err != nil {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: file not found: %s", key, i, v.Path))
				continue
			}
			if v.Size > 0 && info.Size() != v.Size {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: size mismatch: manifest=%d, disk=%d",
					key, i, v.Size, info.Size()))
				continue
			}
			if v.Hash != "" {
				if got, err := hashFile(fullPath); err == nil && got != v.Hash {
					errs = append(errs, fmt.Sprintf("asset %q variant[%d]: content hash mismatch: manifest=%s, disk=%s",
						key, i, v.Hash, got))
				}
			}
		}
	}

	// Verify stats consistency.
	assetCount := len(m.Assets)
	variantCount := 0
	losslessCount := 0
	for _, a := range m.Assets {
		variantCount += len(a.Variants)
		for _, v := range a.Variants {
			if v.Lossless {
				losslessCount++
			}
		}
	}
	if m.Stats.TotalAssets != assetCount {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, assetCount))
	}
	if m.Stats.TotalVariants != variantCount {
		errs = append(errs, fmt.Sprintf("stats.total_variants mismatch: %d != %d", m.Stats.TotalVariants, variantCount))
	}
	if m.Stats.LosslessVariants != losslessCount {
		errs = append(errs, fmt.Sprintf("stats.lossless_variants mismatch: %d != %d", m.Stats.LosslessVariants, losslessCount))
	}

	return errs, warns
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return hasher.ContentHashReader(f, 16)
}
