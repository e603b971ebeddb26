package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/vtkview/internal/colormap"
)

const (
	DefaultCellSize = 8
	DefaultFormat   = "png"
	DefaultTheme    = "default"
	DefaultWidth    = 16.0
	DefaultHeight   = 12.0
	DefaultWorkers  = 4
)

// Formats lists the output formats the render and batch commands accept.
var Formats = []string{"png", "svg", "pdf", "html", "csv", "json"}

type Config struct {
	Colormap  string         `yaml:"colormap"`
	Field     string         `yaml:"field"`
	AutoRange bool           `yaml:"auto_range"`
	Range     colormap.Range `yaml:"range"`
	Render    RenderConfig   `yaml:"render"`
	View      ViewConfig     `yaml:"view"`
	Batch     BatchConfig    `yaml:"batch"`
}

// RenderConfig controls file output. Width and Height are the plot size
// in centimetres; CellSize is the pixel size of one grid point when Raw
// is set.
type RenderConfig struct {
	Format   string  `yaml:"format"`
	CellSize int     `yaml:"cell_size"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Legend   bool    `yaml:"legend"`
	Title    string  `yaml:"title"`
	Raw      bool    `yaml:"raw"`
}

type ViewConfig struct {
	Theme   string `yaml:"theme"`
	Profile bool   `yaml:"profile"`
}

type BatchConfig struct {
	Workers int `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Colormap:  colormap.Default,
		AutoRange: true,
		Range:     colormap.Range{Min: 0, Max: 1},
		Render: RenderConfig{
			Format:   DefaultFormat,
			CellSize: DefaultCellSize,
			Width:    DefaultWidth,
			Height:   DefaultHeight,
			Legend:   true,
		},
		View: ViewConfig{
			Theme: DefaultTheme,
		},
		Batch: BatchConfig{
			Workers: DefaultWorkers,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the values a render depends on. The colormap name is
// not checked; unknown names select the default map.
func (c *Config) Validate() error {
	if !c.AutoRange && !c.Range.Valid() {
		return fmt.Errorf("config: range [%g, %g]: min must be less than max", c.Range.Min, c.Range.Max)
	}
	if c.Render.CellSize < 1 {
		return fmt.Errorf("config: cell_size must be positive, got %d", c.Render.CellSize)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("config: plot size must be positive, got %gx%g", c.Render.Width, c.Render.Height)
	}
	if !IsFormat(c.Render.Format) {
		return fmt.Errorf("config: unknown format %q", c.Render.Format)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("config: workers must be positive, got %d", c.Batch.Workers)
	}
	return nil
}

// ManualRange returns the configured range, or nil in auto mode.
func (c *Config) ManualRange() *colormap.Range {
	if c.AutoRange {
		return nil
	}
	r := c.Range
	return &r
}

func IsFormat(name string) bool {
	for _, f := range Formats {
		if f == name {
			return true
		}
	}
	return false
}
