package models

import "time"

// Config represents the main configuration
type Config struct {
	HTTP    HTTPConfig `mapstructure:"http"`
	Log     LogConfig  `mapstructure:"log"`
	UI      UIConfig   `mapstructure:"ui"`
	Sources []Source   `mapstructure:"sources"`
}

// HTTPConfig contains HTTP client settings
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
	File   string `mapstructure:"file"`
}

// UIConfig contains terminal panel settings
type UIConfig struct {
	MaxRows int `mapstructure:"max_rows"`
}

// Source is one dataset location, a URL or a file path
type Source struct {
	Name     string `mapstructure:"name"`
	Location string `mapstructure:"location"`
	Enabled  bool   `mapstructure:"enabled"`
}

// EnabledSources returns only enabled sources
func (c *Config) EnabledSources() []Source {
	var enabled []Source
	for _, s := range c.Sources {
		if s.Enabled {
			enabled = append(enabled, s)
		}
	}
	return enabled
}
