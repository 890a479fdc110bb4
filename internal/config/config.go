// Package config loads editor settings from a TOML file. A .env file in the
// working directory is read first so BEHAVIORMAP_CONFIG can point elsewhere.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// EnvConfigPath names the environment variable that overrides the config path.
const EnvConfigPath = "BEHAVIORMAP_CONFIG"

// Config holds behaviormap configuration.
type Config struct {
	Editor EditorConfig `toml:"editor"`
	Render RenderConfig `toml:"render"`
	Export ExportConfig `toml:"export"`
}

// EditorConfig controls the interactive editor.
type EditorConfig struct {
	Confirmations bool     `toml:"confirmations"`
	DemoNodes     []string `toml:"demo_nodes"`
	Margin        float64  `toml:"margin"`
	HitThreshold  float64  `toml:"hit_threshold"`
	ZoomStep      float64  `toml:"zoom_step"`
}

// RenderConfig controls connection drawing. Sizes are in world units.
type RenderConfig struct {
	LineWidth       float64 `toml:"line_width"`
	ArrowLength     float64 `toml:"arrow_length"`
	FontSize        float64 `toml:"font_size"`
	LabelBackground string  `toml:"label_background"`
	LabelForeground string  `toml:"label_foreground"`
}

// ExportConfig controls PNG snapshots.
type ExportConfig struct {
	Directory  string `toml:"directory"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Confirmations: true,
			DemoNodes:     []string{"Comportamento A", "Comportamento B", "Estímulo"},
			Margin:        100,
			HitThreshold:  8,
			ZoomStep:      0.1,
		},
		Render: RenderConfig{
			LineWidth:       3,
			ArrowLength:     12,
			FontSize:        12,
			LabelBackground: "#1e3a8ae6",
			LabelForeground: "#ffffff",
		},
		Export: ExportConfig{
			Width:      1280,
			Height:     800,
			Background: "#ffffff",
		},
	}
}

// Dir returns the behaviormap config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "behaviormap")
}

// Path returns the config file path, honoring EnvConfigPath.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// Load reads .env (if present) and then the config file at Path. A missing
// file yields the defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return LoadFile(Path())
}

// LoadFile reads the config file at path over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg and repairs out-of-range values.
func Parse(data []byte, cfg *Config) error {
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return err
	}
	cfg.sanitize()
	return nil
}

func (c *Config) sanitize() {
	def := Default()
	if c.Editor.Margin < 0 {
		c.Editor.Margin = def.Editor.Margin
	}
	if c.Editor.HitThreshold <= 0 {
		c.Editor.HitThreshold = def.Editor.HitThreshold
	}
	if c.Editor.ZoomStep <= 0 {
		c.Editor.ZoomStep = def.Editor.ZoomStep
	}
	names := c.Editor.DemoNodes[:0]
	for _, n := range c.Editor.DemoNodes {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	c.Editor.DemoNodes = names
	if c.Render.LineWidth <= 0 {
		c.Render.LineWidth = def.Render.LineWidth
	}
	if c.Render.ArrowLength <= 0 {
		c.Render.ArrowLength = def.Render.ArrowLength
	}
	if c.Render.FontSize <= 0 {
		c.Render.FontSize = def.Render.FontSize
	}
	if !isHexColor(c.Render.LabelBackground) {
		c.Render.LabelBackground = def.Render.LabelBackground
	}
	if !isHexColor(c.Render.LabelForeground) {
		c.Render.LabelForeground = def.Render.LabelForeground
	}
	if c.Export.Width <= 0 {
		c.Export.Width = def.Export.Width
	}
	if c.Export.Height <= 0 {
		c.Export.Height = def.Export.Height
	}
	if !isHexColor(c.Export.Background) {
		c.Export.Background = def.Export.Background
	}
	if strings.HasPrefix(c.Export.Directory, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			c.Export.Directory = filepath.Join(home, strings.TrimPrefix(c.Export.Directory, "~"))
		}
	}
}

func isHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") || (len(s) != 7 && len(s) != 9) {
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// ExportPath joins filename onto the export directory, creating it.
func (c *Config) ExportPath(filename string) (string, error) {
	if c.Export.Directory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.Export.Directory, 0755); err != nil {
		return "", err
	}
	return filepath.Join(c.Export.Directory, filename), nil
}
