// Package config loads tool configuration with viper. Everything has a
// working default; a liblk.yaml file or LIBLK_* environment variables
// override it.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Duplicate-name policies applied while parsing an image.
const (
	// DuplicateError rejects the image on a repeated partition name.
	DuplicateError = "error"

	// DuplicateRename keeps parsing and renames collisions to
	// "name (n)". Some legacy images repeat certificate names, so this
	// is the compatible mode for old dumps.
	DuplicateRename = "rename"
)

// Trailing-garbage tolerance policies. Legacy images often carry
// unparsable bytes after the last real partition.
const (
	// TolerateAny stops quietly once at least one partition parsed.
	TolerateAny = "any"

	// TolerateLK stops quietly only when the last parsed partition was
	// "lk"; anything else propagates the parse error.
	TolerateLK = "lk-only"

	// TolerateNone always propagates trailing parse errors.
	TolerateNone = "none"
)

// Config holds the tool configuration.
type Config struct {
	Parser struct {
		DuplicatePolicy   string `mapstructure:"duplicate_policy"`
		TrailingTolerance string `mapstructure:"trailing_tolerance"`
	} `mapstructure:"parser"`
	Image struct {
		DefaultAlignment uint32 `mapstructure:"default_alignment"`
	} `mapstructure:"image"`
	Extract struct {
		OutputDir string `mapstructure:"output_dir"`
	} `mapstructure:"extract"`
}

// Load reads the configuration, falling back to defaults when no config
// file is present.
func Load() (*Config, error) {
	viper.SetConfigName("liblk")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.liblk")
	viper.AddConfigPath("/etc/liblk")

	viper.SetDefault("parser.duplicate_policy", DuplicateError)
	viper.SetDefault("parser.trailing_tolerance", TolerateAny)
	viper.SetDefault("image.default_alignment", 8)
	viper.SetDefault("extract.output_dir", "./partitions")

	viper.SetEnvPrefix("LIBLK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration without touching the
// filesystem. The library entry points use it when the caller passes no
// explicit options.
func Default() *Config {
	var cfg Config
	cfg.Parser.DuplicatePolicy = DuplicateError
	cfg.Parser.TrailingTolerance = TolerateAny
	cfg.Image.DefaultAlignment = 8
	cfg.Extract.OutputDir = "./partitions"
	return &cfg
}

func (c *Config) validate() error {
	switch c.Parser.DuplicatePolicy {
	case DuplicateError, DuplicateRename:
	default:
		return fmt.Errorf("unknown parser.duplicate_policy %q", c.Parser.DuplicatePolicy)
	}
	switch c.Parser.TrailingTolerance {
	case TolerateAny, TolerateLK, TolerateNone:
	default:
		return fmt.Errorf("unknown parser.trailing_tolerance %q", c.Parser.TrailingTolerance)
	}
	return nil
}
