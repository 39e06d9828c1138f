// Package config loads the edgelight daemon configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/edgelight"
)

// Config is the top-level configuration file.
type Config struct {
	Animation     Animation     `mapstructure:"animation"`
	Colors        Colors        `mapstructure:"colors"`
	Notifications Notifications `mapstructure:"notifications"`
	HTTP          HTTP          `mapstructure:"http"`
	Redis         Redis         `mapstructure:"redis"`
	Surface       Surface       `mapstructure:"surface"`
	Log           Log           `mapstructure:"log"`
}

// Animation configures the trail.
type Animation struct {
	Duration      time.Duration `mapstructure:"duration"`
	StrokeWidth   float64       `mapstructure:"stroke_width"`
	CornerRadius  float64       `mapstructure:"corner_radius"`
	Segments      int           `mapstructure:"segments"`
	TrailFraction float64       `mapstructure:"trail_fraction"`
	FrameRate     int           `mapstructure:"frame_rate"`
}

// Brand table names for Colors.Table.
const (
	TableFull     = "full"
	TableListener = "listener"
)

// Colors configures color resolution.
type Colors struct {
	// Table selects the built-in brand table: "full" or "listener", the
	// reduced messaging/social table.
	Table        string  `mapstructure:"table"`
	Default      string  `mapstructure:"default"`
	HashFallback bool    `mapstructure:"hash_fallback"`
	CacheSize    int     `mapstructure:"cache_size"`
	Brands       []Brand `mapstructure:"brands"`
}

// Brand is an extra brand rule, tried before the built-in table.
type Brand struct {
	Name  string   `mapstructure:"name"`
	Match []string `mapstructure:"match"`
	Color string   `mapstructure:"color"`
}

// Notifications configures the dispatcher filters.
type Notifications struct {
	Threshold int      `mapstructure:"threshold"`
	Ignore    []string `mapstructure:"ignore"`
}

// HTTP configures the HTTP ingress.
type HTTP struct {
	Addr string `mapstructure:"addr"`
}

// Redis configures the pub/sub ingress. An empty Addr disables it.
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

// Surface selects the drawing surface.
type Surface struct {
	Name   string `mapstructure:"name"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Output string `mapstructure:"output"`
}

// Log configures the application logger.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Animation: Animation{
			Duration:      2 * time.Second,
			StrokeWidth:   edgelight.DefaultStrokeWidth,
			CornerRadius:  edgelight.DefaultCornerRadius,
			Segments:      edgelight.DefaultSegments,
			TrailFraction: edgelight.DefaultTrailFraction,
			FrameRate:     60,
		},
		Colors: Colors{
			Table:        TableFull,
			Default:      edgelight.DefaultPurple.String(),
			HashFallback: true,
			CacheSize:    256,
		},
		HTTP:    HTTP{Addr: ":8080"},
		Redis:   Redis{Channel: "edgelight:notifications"},
		Surface: Surface{Name: "image", Width: 1080, Height: 2400, Output: "frames"},
		Log:     Log{Level: "info", Format: "text"},
	}
}

// Load reads path and overlays it on Default. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML data over Default and validates the result.
func Parse(data []byte) (Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be normalized silently.
func (c Config) Validate() error {
	var errs []error
	if c.Animation.Duration < 0 {
		errs = append(errs, fmt.Errorf("animation.duration: must not be negative, got %v", c.Animation.Duration))
	}
	if c.Animation.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("animation.frame_rate: must be positive, got %d", c.Animation.FrameRate))
	}
	switch c.Colors.Table {
	case "", TableFull, TableListener:
	default:
		errs = append(errs, fmt.Errorf("colors.table: want %q or %q, got %q", TableFull, TableListener, c.Colors.Table))
	}
	if c.Colors.Default != "" {
		if _, err := edgelight.ParseHex(c.Colors.Default); err != nil {
			errs = append(errs, fmt.Errorf("colors.default: %w", err))
		}
	}
	for i, b := range c.Colors.Brands {
		if len(b.Match) == 0 {
			errs = append(errs, fmt.Errorf("colors.brands[%d]: match is empty", i))
		}
		if _, err := edgelight.ParseHex(b.Color); err != nil {
			errs = append(errs, fmt.Errorf("colors.brands[%d].color: %w", i, err))
		}
	}
	if c.Colors.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("colors.cache_size: must not be negative, got %d", c.Colors.CacheSize))
	}
	if c.Surface.Width < 0 || c.Surface.Height < 0 {
		errs = append(errs, fmt.Errorf("surface: negative size %dx%d", c.Surface.Width, c.Surface.Height))
	}
	return errors.Join(errs...)
}

// Style converts the animation section.
func (c Config) Style() edgelight.Style {
	return edgelight.Style{
		StrokeWidth:   c.Animation.StrokeWidth,
		CornerRadius:  c.Animation.CornerRadius,
		Segments:      c.Animation.Segments,
		TrailFraction: c.Animation.TrailFraction,
	}
}

// ResolverOptions converts the colors section. The config must have
// passed Validate.
func (c Config) ResolverOptions() []edgelight.ResolverOption {
	opts := []edgelight.ResolverOption{edgelight.WithHashFallback(c.Colors.HashFallback)}
	if c.Colors.Table == TableListener {
		opts = append(opts, edgelight.WithBrands(edgelight.ListenerBrands()))
	}
	if def, err := edgelight.ParseHex(c.Colors.Default); err == nil {
		opts = append(opts, edgelight.WithDefaultColor(def))
	}
	var extra []edgelight.BrandRule
	for _, b := range c.Colors.Brands {
		col, err := edgelight.ParseHex(b.Color)
		if err != nil {
			continue
		}
		name := b.Name
		if name == "" {
			name = b.Match[0]
		}
		extra = append(extra, edgelight.BrandRule{Name: name, Match: edgelight.Contains(b.Match...), Color: col})
	}
	if len(extra) > 0 {
		opts = append(opts, edgelight.WithExtraBrands(extra...))
	}
	return opts
}
