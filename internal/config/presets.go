package config

import (
	"sort"

	"github.com/san-kum/vtkview/internal/colormap"
)

var Presets = map[string]map[string]*Config{
	"flow": {
		"pressure": {
			Colormap: "Viridis", Field: "pressure", AutoRange: true,
			Render: RenderConfig{Format: "png", CellSize: 8, Width: 16, Height: 12, Legend: true},
		},
		"velocity": {
			Colormap: "Turbo", Field: "velocity_magnitude", AutoRange: true,
			Render: RenderConfig{Format: "png", CellSize: 8, Width: 16, Height: 12, Legend: true},
		},
		"vorticity": {
			Colormap: "Cool", Field: "vorticity", AutoRange: false,
			Range:  colormap.Range{Min: -1, Max: 1},
			Render: RenderConfig{Format: "png", CellSize: 8, Width: 16, Height: 12, Legend: true},
		},
	},
	"thermal": {
		"temperature": {
			Colormap: "Inferno", Field: "temperature", AutoRange: true,
			Render: RenderConfig{Format: "png", CellSize: 8, Width: 16, Height: 12, Legend: true},
		},
		"heat": {
			Colormap: "Reds", Field: "temperature", AutoRange: true,
			Render: RenderConfig{Format: "svg", CellSize: 8, Width: 16, Height: 12, Legend: true},
		},
	},
	"print": {
		"grayscale": {
			Colormap: "Greys", AutoRange: true,
			Render: RenderConfig{Format: "pdf", CellSize: 4, Width: 12, Height: 9, Legend: true},
		},
		"colorblind": {
			Colormap: "Cividis", AutoRange: true,
			Render: RenderConfig{Format: "svg", CellSize: 4, Width: 12, Height: 9, Legend: true},
		},
	},
	"web": {
		"interactive": {
			Colormap: "Viridis", AutoRange: true,
			Render: RenderConfig{Format: "html", CellSize: 8, Width: 16, Height: 12, Legend: true},
		},
	},
}

// GetPreset returns a copy of the named preset, with view and batch
// settings taken from the defaults, or nil when it does not exist.
func GetPreset(category, preset string) *Config {
	categoryPresets, ok := Presets[category]
	if !ok {
		return nil
	}
	cfg, ok := categoryPresets[preset]
	if !ok {
		return nil
	}
	out := *cfg
	def := DefaultConfig()
	out.View = def.View
	out.Batch = def.Batch
	if out.AutoRange {
		out.Range = def.Range
	}
	return &out
}

func ListPresets(category string) []string {
	categoryPresets, ok := Presets[category]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(categoryPresets))
	for name := range categoryPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListCategories() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
