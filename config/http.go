package config

import "fmt"

// HTTPConfig configures the prediction API server.
type HTTPConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `json:"addr"`
	// Token protects the prediction log endpoint. Empty disables the check.
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Validate checks mandatory fields.
func (c HTTPConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	return nil
}
