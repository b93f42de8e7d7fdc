package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"furiganaparse/convert"
	"furiganaparse/tokenize"
)

// Config holds every setting, read from furigana.env and the environment.
type Config struct {
	Environment           string `mapstructure:"ENVIRONMENT"`
	LogLevel              string `mapstructure:"LOG_LEVEL"`
	LogDir                string `mapstructure:"LOG_DIR"`
	Dictionary            string `mapstructure:"DICTIONARY"`
	Workers               int    `mapstructure:"WORKERS"`
	IncludeFallbackParens bool   `mapstructure:"INCLUDE_FALLBACK_PARENS"`
	DotToEmphasis         bool   `mapstructure:"DOT_TO_EMPHASIS"`
	EmphasisTag           string `mapstructure:"EMPHASIS_TAG"`
	Mode                  string `mapstructure:"MODE"`
	OutputSuffix          string `mapstructure:"OUTPUT_SUFFIX"`
}

var defaults = map[string]any{
	"ENVIRONMENT":             "development",
	"LOG_LEVEL":               "info",
	"LOG_DIR":                 "logs",
	"DICTIONARY":              string(tokenize.IPA),
	"WORKERS":                 0,
	"INCLUDE_FALLBACK_PARENS": true,
	"DOT_TO_EMPHASIS":         false,
	"EMPHASIS_TAG":            "em",
	"MODE":                    string(convert.ModeAnnotate),
	"OUTPUT_SUFFIX":           "",
}

// LoadConfig reads furigana.env from path, if present, and lets FURIGANA_*
// environment variables override it.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("furigana")
	v.SetConfigType("env")
	v.SetEnvPrefix("FURIGANA")
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("read config: %w", err)
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("decode config: %w", err)
	}
	return config, config.Validate()
}

// Validate reports settings no component can work with.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("WORKERS must not be negative, got %d", c.Workers)
	}
	if err := tokenize.Dictionary(c.Dictionary).Validate(); err != nil {
		return err
	}
	return c.ConvertOptions().Validate()
}

// ConvertOptions maps the settings onto conversion options.
func (c Config) ConvertOptions() convert.Options {
	return convert.Options{
		IncludeFallbackParens: c.IncludeFallbackParens,
		DotToEmphasis:         c.DotToEmphasis,
		EmphasisTag:           c.EmphasisTag,
		Mode:                  convert.Mode(strings.ToLower(c.Mode)),
	}
}

// OutputName returns the name of the converted container for the input
// name, e.g. "book.epub" becomes "book_furigana.epub".
func (c Config) OutputName(name string) string {
	suffix := c.OutputSuffix
	if suffix == "" {
		suffix = "_furigana"
		if c.ConvertOptions().Mode == convert.ModeStrip {
			suffix = "_no_furigana"
		}
	}
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + suffix + ext
}
