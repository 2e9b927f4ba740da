package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Canvas  CanvasConfig
	Layout  LayoutConfig
	Store   StoreConfig
	Session SessionConfig
	Log     LogConfig
	Keys    []KeyBinding
}

// CanvasConfig maps canvas units to terminal cells.
type CanvasConfig struct {
	CellWidth  int `mapstructure:"cell_width"`
	CellHeight int `mapstructure:"cell_height"`
}

// LayoutConfig sizes the editor panels, in cells.
type LayoutConfig struct {
	Margin     int
	PanelWidth int `mapstructure:"panel_width"`
}

// StoreConfig holds drawing library settings.
type StoreConfig struct {
	Path string
}

// SessionConfig names the drawing the editor saves to.
type SessionConfig struct {
	Name     string
	Autoload bool
}

// LogConfig holds the debug log location. Empty disables logging.
type LogConfig struct {
	File string
}

// KeyBinding overrides the keys of one action within one scope.
type KeyBinding struct {
	Scope  string
	Action string
	Keys   []string
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "drawdemo")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "drawdemo")
}

func defaultPath() string {
	if p := os.Getenv("DRAWDEMO_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "drawdemo", "config.toml")
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("canvas.cell_width", 10)
	v.SetDefault("canvas.cell_height", 20)
	v.SetDefault("layout.margin", 1)
	v.SetDefault("layout.panel_width", 30)
	v.SetDefault("store.path", filepath.Join(dataDir(), "drawings.db"))
	v.SetDefault("session.name", "default")
	v.SetDefault("session.autoload", false)
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")
	v.SetEnvPrefix("DRAWDEMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from path (or the default location when path is
// empty) and the environment. Env var overrides use prefix DRAWDEMO_.
// A missing config file is not an error.
func Load(path string) (Config, error) {
	v := newViper()
	if path == "" {
		path = defaultPath()
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return normalize(c), nil
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	var c Config
	_ = newViper().Unmarshal(&c)
	return normalize(c)
}

func normalize(c Config) Config {
	if c.Canvas.CellWidth < 1 {
		c.Canvas.CellWidth = 10
	}
	if c.Canvas.CellHeight < 1 {
		c.Canvas.CellHeight = 20
	}
	if c.Layout.Margin < 0 {
		c.Layout.Margin = 0
	}
	if c.Layout.PanelWidth < 12 {
		c.Layout.PanelWidth = 12
	}
	c.Session.Name = strings.TrimSpace(c.Session.Name)
	if c.Session.Name == "" {
		c.Session.Name = "default"
	}
	return c
}

// Save writes cfg to path (or the default location), creating the directory
// if needed.
func Save(path string, cfg Config) error {
	if path == "" {
		path = defaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("canvas.cell_width", cfg.Canvas.CellWidth)
	v.Set("canvas.cell_height", cfg.Canvas.CellHeight)
	v.Set("layout.margin", cfg.Layout.Margin)
	v.Set("layout.panel_width", cfg.Layout.PanelWidth)
	v.Set("store.path", cfg.Store.Path)
	v.Set("session.name", cfg.Session.Name)
	v.Set("session.autoload", cfg.Session.Autoload)
	v.Set("log.file", cfg.Log.File)
	if len(cfg.Keys) > 0 {
		keys := make([]map[string]any, 0, len(cfg.Keys))
		for _, k := range cfg.Keys {
			keys = append(keys, map[string]any{"scope": k.Scope, "action": k.Action, "keys": k.Keys})
		}
		v.Set("keys", keys)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
