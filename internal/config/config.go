// Package config loads the folio command line configuration from a YAML
// file, FOLIO_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// EnvPrefix is prepended to every environment override, FOLIO_WINDOW_WIDTH
// overrides window.width.
const EnvPrefix = "FOLIO"

// Config is the full command line configuration.
type Config struct {
	Window    WindowConfig    `mapstructure:"window"`
	Content   ContentConfig   `mapstructure:"content"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	SizeCheck SizeCheckConfig `mapstructure:"sizecheck"`
	Debug     bool            `mapstructure:"debug"`

	// File is the configuration file that was read, empty when only
	// defaults and the environment were used.
	File string `mapstructure:"-"`
}

type WindowConfig struct {
	Title   string `mapstructure:"title"`
	Width   int    `mapstructure:"width"`
	Height  int    `mapstructure:"height"`
	ShowFPS bool   `mapstructure:"show_fps"`
}

// ContentConfig selects the portfolio content. An empty File means the
// embedded default content.
type ContentConfig struct {
	File  string `mapstructure:"file"`
	Watch bool   `mapstructure:"watch"`
}

type SizeCheckConfig struct {
	Dir   string `mapstructure:"dir"`
	Limit int64  `mapstructure:"limit"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.title", "Portfolio")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 800)
	v.SetDefault("window.show_fps", false)
	v.SetDefault("content.file", "")
	v.SetDefault("content.watch", false)
	v.SetDefault("logging.level", "normal")
	v.SetDefault("sizecheck.dir", "build")
	v.SetDefault("sizecheck.limit", 50*1024)
	v.SetDefault("debug", false)
}

// Load reads the configuration. When file is empty folio.yaml is looked
// up in the working directory and its absence is not an error; an
// explicitly named file must exist.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		switch {
		case missing && file == "":
		case missing:
			return nil, fmt.Errorf("config file %s not found: %w", file, err)
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	var err error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.SizeCheck.Limit < 0 {
		err = multierr.Append(err, fmt.Errorf("sizecheck.limit must not be negative, got %d", c.SizeCheck.Limit))
	}
	if !validLevel(c.Logging.Level) {
		err = multierr.Append(err, fmt.Errorf("logging.level must be one of none, normal, debug, got %q", c.Logging.Level))
	}
	return err
}
