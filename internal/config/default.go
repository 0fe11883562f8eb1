package config

import (
	"fmt"
	"time"

	"github.com/MrSnakeDoc/skipsel/internal/models"
)

type Config struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
	MinSize  int           `yaml:"min_size"`
	MaxSize  int           `yaml:"max_size"`
	Postcode string        `yaml:"postcode"`
	Area     string        `yaml:"area"`
}

func baseConfig() Config {
	return Config{
		BaseURL: "https://app.wewantwaste.co.uk",
		Timeout: 15 * time.Second,
	}
}

// DefaultConfig is the listing setup used when no config file overrides it.
func DefaultConfig() Config {
	config := baseConfig()
	config.CacheTTL = 5 * time.Minute
	config.MinSize = 4
	config.MaxSize = 14
	config.Postcode = "NR32"
	config.Area = "Lowestoft"
	return config
}

// Merge overlays every non-zero field of o onto c.
func (c Config) Merge(o Config) Config {
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Timeout > 0 {
		c.Timeout = o.Timeout
	}
	if o.CacheTTL > 0 {
		c.CacheTTL = o.CacheTTL
	}
	if o.MinSize > 0 {
		c.MinSize = o.MinSize
	}
	if o.MaxSize > 0 {
		c.MaxSize = o.MaxSize
	}
	if o.Postcode != "" {
		c.Postcode = o.Postcode
	}
	if o.Area != "" {
		c.Area = o.Area
	}
	return c
}

func (c Config) Location() models.LocationParams {
	return models.LocationParams{Postcode: c.Postcode, Area: c.Area}
}

func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if c.MinSize > c.MaxSize {
		return fmt.Errorf("min_size (%d) is greater than max_size (%d)", c.MinSize, c.MaxSize)
	}
	return nil
}
