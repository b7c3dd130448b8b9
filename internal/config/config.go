// Package config loads the extraction settings from a YAML file, WORDREFS_
// environment variables and command-line flags, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/wordrefs/column"
	"github.com/tsawler/wordrefs/layout"
	"github.com/tsawler/wordrefs/wordlist"
)

// EnvPrefix prefixes environment overrides, e.g. WORDREFS_INPUT_PATH.
const EnvPrefix = "WORDREFS"

// Config is the complete run configuration.
type Config struct {
	Input    InputConfig  `mapstructure:"input" yaml:"input"`
	Layout   LayoutConfig `mapstructure:"layout" yaml:"layout"`
	Output   OutputConfig `mapstructure:"output" yaml:"output"`
	Words    WordsConfig  `mapstructure:"words" yaml:"words"`
	Workers  int          `mapstructure:"workers" yaml:"workers"`
	LogLevel string       `mapstructure:"log_level" yaml:"log_level"`
}

// InputConfig selects the source document and pages.
type InputConfig struct {
	Path      string `mapstructure:"path" yaml:"path"`
	StartPage int    `mapstructure:"start_page" yaml:"start_page"`
	// EndPage 0 means the last page of the document.
	EndPage  int    `mapstructure:"end_page" yaml:"end_page"`
	Encoding string `mapstructure:"encoding" yaml:"encoding"`
}

// BandConfig is one column band as written in the file.
type BandConfig struct {
	Name string  `mapstructure:"name" yaml:"name"`
	Lo   float64 `mapstructure:"lo" yaml:"lo"`
	Hi   float64 `mapstructure:"hi" yaml:"hi"`
}

// LayoutConfig holds the column bands and the page layout tolerances.
type LayoutConfig struct {
	Bands         []BandConfig `mapstructure:"bands" yaml:"bands"`
	HeaderBlocks  []int        `mapstructure:"header_blocks" yaml:"header_blocks"`
	LineTolerance float64      `mapstructure:"line_tolerance" yaml:"line_tolerance"`
	ColumnGap     float64      `mapstructure:"column_gap" yaml:"column_gap"`
	BlockGap      float64      `mapstructure:"block_gap" yaml:"block_gap"`
}

// OutputConfig names the artifacts of an extraction run. An empty path
// disables that artifact.
type OutputConfig struct {
	RecordsJSON     string `mapstructure:"records_json" yaml:"records_json"`
	StatsText       string `mapstructure:"stats_text" yaml:"stats_text"`
	EmptyFieldsText string `mapstructure:"empty_fields_text" yaml:"empty_fields_text"`
	SQLite          string `mapstructure:"sqlite" yaml:"sqlite"`
}

// WordsConfig drives the accepted-word list extraction. Empty patterns
// take the wordlist defaults; an empty output path disables that output.
type WordsConfig struct {
	Path              string `mapstructure:"path" yaml:"path"`
	StartPage         int    `mapstructure:"start_page" yaml:"start_page"`
	EndPage           int    `mapstructure:"end_page" yaml:"end_page"`
	Encoding          string `mapstructure:"encoding" yaml:"encoding"`
	HeaderPattern     string `mapstructure:"header_pattern" yaml:"header_pattern"`
	DatePattern       string `mapstructure:"date_pattern" yaml:"date_pattern"`
	PageNumberPattern string `mapstructure:"page_number_pattern" yaml:"page_number_pattern"`
	WordsJSON         string `mapstructure:"words_json" yaml:"words_json"`
	PagesDir          string `mapstructure:"pages_dir" yaml:"pages_dir"`
	StatsText         string `mapstructure:"stats_text" yaml:"stats_text"`
}

// FlagBinding overrides a config key with a command-line flag when the
// flag is set.
type FlagBinding struct {
	Key  string
	Flag *pflag.Flag
}

// Load reads the configuration. When cfgFile is empty, wordrefs.yaml is
// looked up in the working directory and then in $HOME/.wordrefs; a
// missing file is not an error.
func Load(cfgFile string, flags ...FlagBinding) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, b := range flags {
		if b.Flag == nil {
			continue
		}
		if err := v.BindPFlag(b.Key, b.Flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", b.Flag.Name, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("wordrefs")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.wordrefs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("input.path", d.Input.Path)
	v.SetDefault("input.start_page", d.Input.StartPage)
	v.SetDefault("input.end_page", d.Input.EndPage)
	v.SetDefault("input.encoding", d.Input.Encoding)
	v.SetDefault("layout.bands", d.Layout.Bands)
	v.SetDefault("layout.header_blocks", d.Layout.HeaderBlocks)
	v.SetDefault("layout.line_tolerance", d.Layout.LineTolerance)
	v.SetDefault("layout.column_gap", d.Layout.ColumnGap)
	v.SetDefault("layout.block_gap", d.Layout.BlockGap)
	v.SetDefault("output.records_json", d.Output.RecordsJSON)
	v.SetDefault("output.stats_text", d.Output.StatsText)
	v.SetDefault("output.empty_fields_text", d.Output.EmptyFieldsText)
	v.SetDefault("output.sqlite", d.Output.SQLite)
	v.SetDefault("words.path", d.Words.Path)
	v.SetDefault("words.start_page", d.Words.StartPage)
	v.SetDefault("words.end_page", d.Words.EndPage)
	v.SetDefault("words.encoding", d.Words.Encoding)
	v.SetDefault("words.header_pattern", d.Words.HeaderPattern)
	v.SetDefault("words.date_pattern", d.Words.DatePattern)
	v.SetDefault("words.page_number_pattern", d.Words.PageNumberPattern)
	v.SetDefault("words.words_json", d.Words.WordsJSON)
	v.SetDefault("words.pages_dir", d.Words.PagesDir)
	v.SetDefault("words.stats_text", d.Words.StatsText)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("log_level", d.LogLevel)
}

// Validate checks the configuration and returns the column layout it
// describes.
func (c *Config) Validate() (column.Layout, error) {
	if c.Input.StartPage < 1 {
		return column.Layout{}, fmt.Errorf("input.start_page must be >= 1, got %d", c.Input.StartPage)
	}
	if c.Input.EndPage != 0 && c.Input.EndPage < c.Input.StartPage {
		return column.Layout{}, fmt.Errorf("input.end_page %d is before start_page %d", c.Input.EndPage, c.Input.StartPage)
	}
	if c.Workers < 1 {
		return column.Layout{}, fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return column.Layout{}, err
	}
	for _, idx := range c.Layout.HeaderBlocks {
		if idx < 0 {
			return column.Layout{}, fmt.Errorf("layout.header_blocks: negative index %d", idx)
		}
	}
	return c.ColumnLayout()
}

// ValidateWords checks the word list settings and compiles its cleaner.
func (c *Config) ValidateWords() (*wordlist.Cleaner, error) {
	w := c.Words
	if w.StartPage < 1 {
		return nil, fmt.Errorf("words.start_page must be >= 1, got %d", w.StartPage)
	}
	if w.EndPage != 0 && w.EndPage < w.StartPage {
		return nil, fmt.Errorf("words.end_page %d is before start_page %d", w.EndPage, w.StartPage)
	}
	cleaner, err := wordlist.NewCleaner(w.HeaderPattern, w.DatePattern, w.PageNumberPattern)
	if err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}
	return cleaner, nil
}

// ColumnLayout builds the validated band layout.
func (c *Config) ColumnLayout() (column.Layout, error) {
	bands := make([]column.Band, 0, len(c.Layout.Bands))
	for _, b := range c.Layout.Bands {
		kind, err := column.ParseKind(b.Name)
		if err != nil {
			return column.Layout{}, fmt.Errorf("layout.bands: %w", err)
		}
		bands = append(bands, column.Band{Kind: kind, Lo: b.Lo, Hi: b.Hi})
	}
	l, err := column.NewLayout(bands...)
	if err != nil {
		return column.Layout{}, fmt.Errorf("layout.bands: %w", err)
	}
	return l, nil
}

// Tolerances returns the page layout tolerances. Zero values fall back to
// the analyzer defaults.
func (c *Config) Tolerances() layout.Config {
	return layout.Config{
		LineTolerance: c.Layout.LineTolerance,
		ColumnGap:     c.Layout.ColumnGap,
		BlockGap:      c.Layout.BlockGap,
	}
}

// Level parses LogLevel. An empty level is Info.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// WriteDefault writes the default configuration as YAML to path. It
// refuses to overwrite an existing file.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal defaults: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists", path)
		}
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
