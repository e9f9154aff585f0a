/*
 * config.go, part of gostoich.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

// Package config loads the settings of the stoich command: built-in defaults,
// overridden by a YAML file, overridden by STOICH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix = "STOICH"

	// ConfigName is the file looked for when no path is given,
	// in the working directory and then in $HOME/.config/gostoich.
	ConfigName = "stoich"

	DefaultLogLevel    = "warn"
	DefaultOutput      = "text"
	DefaultWorkers     = 4
	DefaultChartWidth  = 12.0
	DefaultChartHeight = 9.0
)

var (
	ErrConfigFileNotFound = errors.New("config: file not found")
	ErrConfigParse        = errors.New("config: can't parse file")
	ErrConfigValidation   = errors.New("config: invalid configuration")
)

// Config holds the settings of the command.
type Config struct {
	LogLevel       string      `mapstructure:"log_level"`
	Output         string      `mapstructure:"output"`          //text, json or table
	MassTable      string      `mapstructure:"mass_table"`      //YAML file, empty for the built-in table
	OxidationTable string      `mapstructure:"oxidation_table"` //YAML file, empty for the built-in rules
	Workers        int         `mapstructure:"workers"`         //for batch
	Chart          ChartConfig `mapstructure:"chart"`
}

// ChartConfig is the size, in cm, of the charts.
type ChartConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	//Unmarshal only sees env variables for keys viper knows about.
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("mass_table", "")
	v.SetDefault("oxidation_table", "")
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("chart.width", DefaultChartWidth)
	v.SetDefault("chart.height", DefaultChartHeight)
	return v
}

// Load reads the configuration. If path is empty, a stoich.yaml file is
// searched for, and its absence is not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/gostoich")
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !(path == "" && errors.As(err, &nf)) {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}
	return unmarshal(v)
}

// Default returns the configuration from defaults and environment only.
func Default() (*Config, error) {
	return unmarshal(newViper())
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills the zero-valued fields of cfg.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Chart.Width == 0 {
		cfg.Chart.Width = DefaultChartWidth
	}
	if cfg.Chart.Height == 0 {
		cfg.Chart.Height = DefaultChartHeight
	}
}

// Validate returns the first problem found in c, wrapping ErrConfigValidation.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q, expected debug|info|warn|error", ErrConfigValidation, c.LogLevel)
	}
	if !ValidOutput(c.Output) {
		return fmt.Errorf("%w: output %q, expected text|json|table", ErrConfigValidation, c.Output)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrConfigValidation, c.Workers)
	}
	if c.Chart.Width < 0 || c.Chart.Height < 0 {
		return fmt.Errorf("%w: chart size must be positive, got %gx%g", ErrConfigValidation, c.Chart.Width, c.Chart.Height)
	}
	return nil
}

// ValidOutput returns true if format is one of the output formats of the command.
func ValidOutput(format string) bool {
	switch format {
	case "text", "json", "table":
		return true
	}
	return false
}
