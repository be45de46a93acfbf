package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig `yaml:"server"`
	App     AppConfig    `yaml:"app"`
	Render  RenderConfig `yaml:"render"`
	Fonts   []FontConfig `yaml:"fonts"`
	DataDir string       `yaml:"data_dir"`
	Fetch   FetchConfig  `yaml:"fetch"`
	Log     LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type AppConfig struct {
	Name string `yaml:"name"`
	Year int    `yaml:"year"`
}

type RenderConfig struct {
	PreviewSize     int     `yaml:"preview_size"`
	ExportSize      int     `yaml:"export_size"`
	MaxCount        int     `yaml:"max_count"`
	Workers         int     `yaml:"workers"`
	DefaultFontSize float64 `yaml:"default_font_size"`
	DefaultTheme    string  `yaml:"default_theme"`
	DefaultLanguage string  `yaml:"default_language"`
}

type FontConfig struct {
	Family string `yaml:"family"`
	Path   string `yaml:"path"`
}

type FetchConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "", Port: 8080},
		App:    AppConfig{Name: "subhasayah", Year: 2026},
		Render: RenderConfig{
			PreviewSize:     540,
			ExportSize:      1080,
			MaxCount:        10,
			Workers:         1,
			DefaultFontSize: 48,
			DefaultTheme:    "light",
			DefaultLanguage: "te",
		},
		DataDir: "data",
		Fetch:   FetchConfig{Timeout: 12 * time.Second},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads and parses the configuration file. Fields missing from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from the environment. PORT sets the listen port.
func (c *Config) ApplyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		c.Server.Port = p
	}
	return c.Validate()
}

// Validate checks if required configuration fields are set
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.Render.PreviewSize <= 0 {
		return fmt.Errorf("render.preview_size must be positive")
	}
	if c.Render.ExportSize <= 0 {
		return fmt.Errorf("render.export_size must be positive")
	}
	if c.Render.MaxCount < 1 {
		return fmt.Errorf("render.max_count must be at least 1")
	}
	if c.Render.Workers < 1 {
		return fmt.Errorf("render.workers must be at least 1")
	}
	for i, f := range c.Fonts {
		if f.Family == "" || f.Path == "" {
			return fmt.Errorf("fonts[%d]: family and path are required", i)
		}
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
