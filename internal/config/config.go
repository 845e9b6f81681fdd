// Package config loads partnerform settings from an optional YAML file,
// an optional .env file, and the process environment, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEndpoint      = "https://edison3pl-m6gx.vercel.app/api/forms/partner"
	DefaultUserAgent     = "go-partnerform/1.0"
	DefaultDevServerAddr = ":8089"
)

// Config holds every setting the commands need.
type Config struct {
	Endpoint    string          `yaml:"endpoint"`
	UserAgent   string          `yaml:"user_agent"`
	DismissIcon string          `yaml:"dismiss_icon"`
	Log         LogConfig       `yaml:"log"`
	Theme       ThemeConfig     `yaml:"theme"`
	DevServer   DevServerConfig `yaml:"devserver"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ThemeConfig is forwarded to the HTML renderer.
type ThemeConfig struct {
	Name    string            `yaml:"name"`
	Variant string            `yaml:"variant"`
	Tokens  map[string]string `yaml:"tokens"`
	// Manifest is an optional go-theme manifest file registered next to the
	// built-in theme.
	Manifest string `yaml:"manifest"`
}

// DevServerConfig configures the local endpoint stand-in.
type DevServerConfig struct {
	Addr         string `yaml:"addr"`
	ForcedStatus int    `yaml:"forced_status"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Endpoint:  DefaultEndpoint,
		UserAgent: DefaultUserAgent,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		DevServer: DevServerConfig{
			Addr: DefaultDevServerAddr,
		},
	}
}

// Options controls where Load looks.
type Options struct {
	// Path is the YAML file. Empty skips the file.
	Path string
	// EnvFiles are loaded with godotenv before the environment is read.
	// Missing files are ignored; existing variables are never overwritten.
	EnvFiles []string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(opts.Path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	for _, file := range opts.EnvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load env file %s: %w", file, err)
		}
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	applyEnv(cfg, lookup)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set("PARTNERFORM_ENDPOINT", &cfg.Endpoint)
	set("PARTNERFORM_USER_AGENT", &cfg.UserAgent)
	set("PARTNERFORM_LOG_LEVEL", &cfg.Log.Level)
	set("PARTNERFORM_LOG_FORMAT", &cfg.Log.Format)
	set("PARTNERFORM_THEME", &cfg.Theme.Name)
	set("PARTNERFORM_THEME_VARIANT", &cfg.Theme.Variant)
	set("PARTNERFORM_THEME_MANIFEST", &cfg.Theme.Manifest)
	set("PARTNERFORM_DEVSERVER_ADDR", &cfg.DevServer.Addr)
}

// Validate checks the resolved values.
func (c *Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.Endpoint))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: endpoint %q must be an absolute http(s) URL", c.Endpoint)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if s := c.DevServer.ForcedStatus; s != 0 && (s < 100 || s > 599) {
		return fmt.Errorf("config: forced_status %d out of range", s)
	}
	return nil
}

// NewLogger builds the slog logger described by the log section.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

func parseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", raw)
	}
}
