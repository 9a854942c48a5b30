// Package config loads bbf settings from defaults, a TOML file, the
// environment and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "BBF_"

// Config is the resolved CLI configuration.
type Config struct {
	Theme     string `koanf:"theme" toml:"theme"`
	Width     int    `koanf:"width" toml:"width"`
	OSC8      string `koanf:"osc8" toml:"osc8"`
	Boring    bool   `koanf:"boring" toml:"boring"`
	SoftWrap  bool   `koanf:"soft_wrap" toml:"soft_wrap"`
	Verbosity int    `koanf:"verbosity" toml:"verbosity"`
}

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	return map[string]any{
		"theme":     "default",
		"width":     0,
		"osc8":      "auto",
		"boring":    false,
		"soft_wrap": false,
		"verbosity": 0,
	}
}

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "bbf", "config.toml")
}

// Options controls Load.
type Options struct {
	// Path is the TOML file to read. Empty means DefaultPath, which may be
	// missing; an explicit Path must exist.
	Path string
	// Overrides are applied last, typically the flags the user set.
	Overrides map[string]any
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	path := opts.Path
	required := path != ""
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	} else if required || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config file: %w", err)
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("load overrides: %w", err)
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.OSC8 = strings.ToLower(strings.TrimSpace(c.OSC8))
	switch c.OSC8 {
	case "", "auto", "on", "off", "true", "false", "1", "0", "yes", "no":
	default:
		return fmt.Errorf("config: invalid osc8 %q: expected auto|on|off", c.OSC8)
	}
	if c.Width < 0 {
		return fmt.Errorf("config: width must not be negative, got %d", c.Width)
	}
	return nil
}
