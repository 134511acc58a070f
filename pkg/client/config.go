// 20 Mar 2025
// Where the service lives and how we authenticate against it. The
// API key has to come from somewhere: an explicit value, or the
// BOLTZ2_API_KEY environment variable.

package client

import (
	"errors"
	"os"
	"time"
)

const DfltBaseURL = "https://health.api.nvidia.com/v1/biology/mit/boltz2/predict"

// Predictions take a while. Ten minutes covers a decent sized protein.
const DfltTimeout = 600 * time.Second

const noKeyMsg = `BOLTZ2_API_KEY not found. Set it using one of:
  1. Environment variable: export BOLTZ2_API_KEY='nvapi-xxx'
  2. The -key flag or api key argument
Get a key from: https://build.nvidia.com/mit/boltz-2`

// A Config is everything needed to talk to the prediction service.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// LoadConfig resolves the configuration. Explicit values win over the
// BOLTZ2_API_KEY and BOLTZ2_API_URL environment variables, which win
// over the defaults. No key from anywhere is an error.
func LoadConfig(apiKey, baseURL string, timeout time.Duration) (*Config, error) {
	if apiKey == "" {
		apiKey = os.Getenv("BOLTZ2_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New(noKeyMsg)
	}
	if baseURL == "" {
		baseURL = os.Getenv("BOLTZ2_API_URL")
	}
	if baseURL == "" {
		baseURL = DfltBaseURL
	}
	if timeout == 0 {
		timeout = DfltTimeout
	}
	return &Config{APIKey: apiKey, BaseURL: baseURL, Timeout: timeout}, nil
}
