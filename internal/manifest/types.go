package manifest

// Manifest is the top-level output of a palimg build.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	BasePath    string           `json:"base_path"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers     int  `json:"workers"`
	IgnoreAlpha bool `json:"ignore_alpha"`
}

// Asset describes a single source image and all its indexed variants.
type Asset struct {
	Original       OriginalInfo `json:"original"`
	DistinctColors int          `json:"distinct_colors"`
	AspectRatio    float64      `json:"aspect_ratio"` // width / height
	// PalettePreview holds up to eight entries of the smallest variant
	// palette as #aarrggbb strings, most populous first.
	PalettePreview []string  `json:"palette_preview,omitempty"`
	Variants       []Variant `json:"variants"`
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
	HasAlpha bool   `json:"has_alpha"`
}

// Variant is one encoded output of an asset at a specific palette depth
// and format.
type Variant struct {
	Format      string `json:"format"` // "gif", "png", "bmp"
	Colors      int    `json:"colors"` // requested palette budget
	PaletteSize int    `json:"palette_size"`
	Lossless    bool   `json:"lossless"`
	PaletteHash string `json:"palette_hash"` // xxhash64 of the packed palette
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Size        int64  `json:"size"` // bytes on disk
	Hash        string `json:"hash"` // first 16 hex chars of xxhash64
	Path        string `json:"path"` // relative to base_path
}

// Stats aggregates build metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalAssets      int   `json:"total_assets"`
	TotalVariants    int   `json:"total_variants"`
	LosslessVariants int   `json:"lossless_variants"`
	SkippedRegress   int   `json:"skipped_regress,omitempty"` // variants skipped (larger than original)
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// Filename is the manifest file written at the output root.
const Filename = "palimg.manifest.json"
