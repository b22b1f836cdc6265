// SPDX-License-Identifier: MIT

package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/constellation/category"
	"github.com/katalvlaran/constellation/compiler"
)

const (
	envPrefix  = "CONSTELLATION"
	configName = "constellation"
)

var (
	// ErrUnknownFormat indicates an output format other than text, json or yaml.
	ErrUnknownFormat = errors.New("cli: unknown output format")

	// ErrNoCategories indicates that no category table was configured.
	ErrNoCategories = errors.New("cli: no category table")

	// ErrInvalidConfig indicates a configuration value out of range.
	ErrInvalidConfig = errors.New("cli: invalid configuration")
)

// OutputFormat selects how results are rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// UnmarshalText accepts text, json and yaml in any case.
func (f *OutputFormat) UnmarshalText(b []byte) error {
	switch v := OutputFormat(strings.ToLower(strings.TrimSpace(string(b)))); v {
	case "", FormatText:
		*f = FormatText
	case FormatJSON, FormatYAML:
		*f = v
	default:
		return errors.WithHint(
			errors.Wrapf(ErrUnknownFormat, "%q", string(b)),
			"use one of: text, json, yaml")
	}
	return nil
}

// Config is the merged view of flags, CONSTELLATION_* environment
// variables and constellation.yaml.
type Config struct {
	Categories     string       `mapstructure:"categories"`
	MaxCycles      int          `mapstructure:"max_cycles"`
	NumDesigns     int          `mapstructure:"num_designs"`
	Tolerance      int          `mapstructure:"tolerance"`
	Representation string       `mapstructure:"representation"`
	Format         OutputFormat `mapstructure:"format"`
	LogLevel       string       `mapstructure:"log_level"`
	Seed           uint64       `mapstructure:"seed"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"categories":     "categories",
	"max-cycles":     "max_cycles",
	"num-designs":    "num_designs",
	"tolerance":      "tolerance",
	"representation": "representation",
	"format":         "format",
	"log-level":      "log_level",
	"seed":           "seed",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("categories", "")
	v.SetDefault("max_cycles", 0)
	v.SetDefault("num_designs", 100)
	v.SetDefault("tolerance", 0)
	v.SetDefault("representation", compiler.EdgeRepresentation.String())
	v.SetDefault("format", string(FormatText))
	v.SetDefault("log_level", "warn")
	v.SetDefault("seed", 0)
	return v
}

// loadConfig binds the command's flags, reads the config file and decodes
// the result. A missing constellation.yaml is not an error; a missing file
// named by --config is.
func loadConfig(v *viper.Viper, cmd *cobra.Command, configFile string) (*Config, error) {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = errors.Wrapf(err, "bind flag %s", f.Name)
		}
	})
	if bindErr != nil {
		return nil, bindErr
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, configName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.WithHint(
				errors.Wrap(err, "read config"),
				"check the file passed with --config")
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Format == "" {
		c.Format = FormatText
	}
	if err := category.Tolerance(c.Tolerance).Validate(); err != nil {
		return errors.WithHint(err, "tolerance must be 0, 1 or 2")
	}
	if c.NumDesigns < 0 {
		return errors.WithHint(
			errors.Wrapf(ErrInvalidConfig, "num_designs %d", c.NumDesigns),
			"num_designs cannot be negative")
	}
	if _, err := compiler.ParseRepresentation(c.Representation); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.WithHint(
			errors.Wrapf(ErrInvalidConfig, "log_level %q", c.LogLevel),
			"use one of: debug, info, warn, error, fatal")
	}
	return nil
}

// loadCategories reads the category table at path, picking the decoder by
// file extension.
func loadCategories(path string) (category.Table, error) {
	if path == "" {
		return nil, errors.WithHint(ErrNoCategories,
			"pass --categories with a .json or .yaml file, or set categories in constellation.yaml")
	}
	var format category.Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = category.JSON
	case ".yaml", ".yml":
		format = category.YAML
	default:
		return nil, errors.WithHint(
			errors.Wrapf(category.ErrUnknownFormat, "%s", path),
			"category files must end in .json, .yaml or .yml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read categories")
	}
	table, err := category.Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "categories %s", path)
	}
	return table, nil
}
