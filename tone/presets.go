package tone

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Preset is a named parameter combination.
type Preset struct {
	// Name identifies the preset in reports and output file names.
	Name string `json:"name" yaml:"name"`
	// Description explains what the preset is for.
	Description string `json:"description" yaml:"description"`
	// Settings are the filter parameters to apply.
	Settings Settings `json:"settings" yaml:"settings"`
}

// Filter builds a filter configured with the preset's parameters.
func (p Preset) Filter() *ShadowHighlightFilter {
	return NewShadowHighlightFilter(
		p.Settings.ShadowAmount,
		p.Settings.HighlightAmount,
		p.Settings.TonalWidth,
		p.Settings.BlurRadius,
	)
}

// ComparisonPresets returns the standard set of presets used for
// side-by-side result comparison.
func ComparisonPresets() []Preset {
	return []Preset{
		{
			Name:        "shadows_50",
			Description: "Shadow lightening only (50%)",
			Settings:    Settings{ShadowAmount: 0.5, HighlightAmount: 0.0, TonalWidth: 0.5, BlurRadius: 15},
		},
		{
			Name:        "highlights_40",
			Description: "Highlight darkening only (40%)",
			Settings:    Settings{ShadowAmount: 0.0, HighlightAmount: 0.4, TonalWidth: 0.5, BlurRadius: 15},
		},
		{
			Name:        "both_30_20",
			Description: "Combined correction (30% shadows, 20% highlights)",
			Settings:    Settings{ShadowAmount: 0.3, HighlightAmount: 0.2, TonalWidth: 0.5, BlurRadius: 15},
		},
		{
			Name:        "strong_70_50",
			Description: "Strong correction (70% shadows, 50% highlights)",
			Settings:    Settings{ShadowAmount: 0.7, HighlightAmount: 0.5, TonalWidth: 0.5, BlurRadius: 15},
		},
	}
}

// OptimalPreset returns the tuned preset used by the single-result run.
func OptimalPreset() Preset {
	return Preset{
		Name:        "optimal",
		Description: "Balanced correction with tightened tonal width",
		Settings:    Settings{ShadowAmount: 0.2, HighlightAmount: 0.2, TonalWidth: 0.4, BlurRadius: 10},
	}
}

// LoadPresets reads a preset list from a JSON file.
//
// Arguments:
// - path: Path to a JSON file containing an array of presets.
//
// Returns:
// - The decoded presets; parameters are clamped when Filter is called.
// - An error if the file cannot be read or parsed, or is empty.
func LoadPresets(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading preset file")
	}

	var presets []Preset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, errors.Wrap(err, "parsing preset file")
	}
	if len(presets) == 0 {
		return nil, errors.Errorf("preset file %s contains no presets", path)
	}

	return presets, nil
}
