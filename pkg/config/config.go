// Package config loads the cardpress configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/cardpress/config.toml
// unless a path is given. Every key is optional; missing keys keep their
// defaults, and command-line flags override both.
//
//	[print]
//	dpi = 300
//	orientation = "a4portrait"
//	crop = true
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	key_scope = "rsvg-2.58"
//
//	[themes.parchment]
//	base = "classic"
//	frame_bg = "#f4ecd8"
package config

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/render/card/theme"
	"github.com/matzehuels/cardpress/pkg/render/sheet"
)

const appName = "cardpress"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the whole configuration file.
type Config struct {
	Print  Print                     `toml:"print"`
	Raster Raster                    `toml:"raster"`
	Cache  Cache                     `toml:"cache"`
	Server Server                    `toml:"server"`
	Mongo  Mongo                     `toml:"mongo"`
	Themes map[string]map[string]any `toml:"themes"`

	// Undecoded lists keys in the file that no field consumed.
	Undecoded []string `toml:"-"`
}

// Print holds the sheet defaults for the print command.
type Print struct {
	DPI         int    `toml:"dpi"`
	Orientation string `toml:"orientation"`
	Cols        int    `toml:"cols"`
	Rows        int    `toml:"rows"`
	Margin      int    `toml:"margin"`
	Gutter      int    `toml:"gutter"`
	Crop        bool   `toml:"crop"`
	CardWidth   int    `toml:"card_width"`
	CardHeight  int    `toml:"card_height"`
}

// Raster selects the rasterizer.
type Raster struct {
	Backend string   `toml:"backend"`
	Timeout Duration `toml:"timeout"`
	Workers int      `toml:"workers"` // 0 means one per CPU
}

// Cache configures the raster cache.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"` // Empty means $XDG_CACHE_HOME/cardpress
	RedisURL string   `toml:"redis_url"`
	Prefix   string   `toml:"prefix"`
	KeyScope string   `toml:"key_scope"` // Namespaces raster keys in any backend
	TTL      Duration `toml:"ttl"`
}

// Server configures the HTTP service.
type Server struct {
	Addr string `toml:"addr"`
}

// Mongo points at a card collection.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Duration is a time.Duration written as a Go duration string ("60s").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Print: Print{
			DPI:         sheet.DefaultDPI,
			Orientation: string(sheet.A4Portrait),
			Cols:        sheet.DefaultCols,
			Rows:        sheet.DefaultRows,
			Margin:      sheet.DefaultMargin,
			Gutter:      sheet.DefaultGutter,
			CardWidth:   sheet.DefaultCardW,
			CardHeight:  sheet.DefaultCardH,
		},
		Raster: Raster{
			Backend: "rsvg",
			Timeout: Duration{60 * time.Second},
		},
		Cache: Cache{
			Backend: CacheFile,
			TTL:     Duration{720 * time.Hour},
		},
		Server: Server{Addr: ":8080"},
		Mongo:  Mongo{Collection: "cards"},
	}
}

// ConfigHome returns XDG_CONFIG_HOME or its default.
func ConfigHome() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

// DefaultPath returns the path of the default config file.
func DefaultPath() string {
	return filepath.Join(ConfigHome(), appName, "config.toml")
}

// Load reads the file at path over the defaults. With an empty path the
// default location is used, and a missing default file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config %s", path)
	}
	for _, k := range md.Undecoded() {
		cfg.Undecoded = append(cfg.Undecoded, k.String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	if _, err := sheet.ParseFormat(c.Print.Orientation); err != nil {
		return err
	}
	if c.Print.DPI <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "print.dpi must be positive, got %d", c.Print.DPI)
	}
	switch c.Raster.Backend {
	case "rsvg", "inkscape":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "raster.backend must be rsvg or inkscape, got %q", c.Raster.Backend)
	}
	if c.Raster.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "raster.workers must not be negative")
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis_url is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	return nil
}

// Spec converts the print section into a sheet spec.
func (p Print) Spec() (sheet.Spec, error) {
	format, err := sheet.ParseFormat(p.Orientation)
	if err != nil {
		return sheet.Spec{}, err
	}
	page, err := sheet.PageSize(format, p.DPI)
	if err != nil {
		return sheet.Spec{}, err
	}
	s := sheet.Spec{
		Page:      page,
		Cols:      p.Cols,
		Rows:      p.Rows,
		Margin:    p.Margin,
		Gutter:    p.Gutter,
		CardW:     p.CardWidth,
		CardH:     p.CardHeight,
		CropMarks: p.Crop,
	}
	return s, s.Validate()
}

// Registry returns the built-in themes plus every [themes.<name>] table.
// A table's "base" key names the theme it extends (classic by default);
// every other key is a theme override. Unknown override keys are returned
// as "<theme>.<key>".
func (c *Config) Registry() (*theme.Registry, []string, error) {
	reg := theme.NewRegistry()
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	var unknown []string
	for _, name := range names {
		table := c.Themes[name]
		base, _ := table["base"].(string)
		o := make(theme.Overrides, len(table))
		for k, v := range table {
			if k != "base" {
				o[k] = v
			}
		}
		bad, err := reg.Register(name, base, o)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "themes.%s", name)
		}
		for _, k := range bad {
			unknown = append(unknown, name+"."+k)
		}
	}
	return reg, unknown, nil
}
