package estimator

import (
	"fmt"
	"time"
)

// Config holds the price service connection settings
type Config struct {
	// BaseURL is the price service root, e.g. http://127.0.0.1:5000
	BaseURL string `json:"base_url"`

	// LocationsPath is the GET endpoint listing valid locations
	LocationsPath string `json:"locations_path"`

	// EstimatePath is the form-encoded POST endpoint returning a price
	EstimatePath string `json:"estimate_path"`

	// Timeout for each HTTP request
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns the settings of a locally running price service
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       "http://127.0.0.1:5000",
		LocationsPath: "/get-location-names",
		EstimatePath:  "/get-estimated-price",
		Timeout:       30 * time.Second,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.LocationsPath == "" {
		return fmt.Errorf("locations path is required")
	}
	if c.EstimatePath == "" {
		return fmt.Errorf("estimate path is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
