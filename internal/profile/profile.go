package profile

import "sort"

// Profile defines palette and output parameters for a target use case.
type Profile struct {
	Name        string
	Colors      []int    // palette budgets, priority order
	Formats     []string // output formats in priority order
	MaxWidth    int      // downscale wider sources to this width, 0 keeps size
	IgnoreAlpha bool     // collapse alpha before building palettes
}

// Built-in profiles.
var profiles = map[string]Profile{
	"web-indexed": {
		Name:    "web-indexed",
		Colors:  []int{256, 64},
		Formats: []string{"gif", "png"},
	},
	"banner-gif": {
		Name:        "banner-gif",
		Colors:      []int{128},
		Formats:     []string{"gif"},
		MaxWidth:    960,
		IgnoreAlpha: true,
	},
	"icon-16": {
		Name:    "icon-16",
		Colors:  []int{16},
		Formats: []string{"png", "bmp"},
	},
}

// Get returns a profile by name. Falls back to web-indexed if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["web-indexed"]
	p.Name = name // preserve requested name
	return p
}

// Names returns the built-in profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// EffectiveColors filters the budget list for one image. Budgets are
// clamped to the 256-entry limit of indexed formats and deduplicated.
// Budgets at or past the distinct color count all land on the same
// lossless palette, so only the first of those survives.
func (p Profile) EffectiveColors(distinct int) []int {
	seen := map[int]bool{}
	var result []int
	lossless := false

	for _, n := range p.Colors {
		if n < 1 {
			continue
		}
		if n > 256 {
			n = 256
		}
		if distinct > 0 && n >= distinct {
			if lossless {
				continue
			}
			lossless = true
		}
		if !seen[n] {
			seen[n] = true
			result = append(result, n)
		}
	}

	// An empty budget list still produces one variant sized to the
	// image itself.
	if len(result) == 0 && distinct > 0 {
		n := distinct
		if n > 256 {
			n = 256
		}
		result = append(result, n)
	}

	return result
}
