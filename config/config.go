// Package config contains configuration for the Producer Pal control surface.
package config

import (
	"os"
	"strconv"
)

// Config carries call-time configuration. The holding area and silent audio
// asset are passed down to the arrangement engine per call so tests can
// substitute them.
type Config struct {
	HoldingAreaStart float64 // first beat of the arrangement scratch region
	SilentAudioPath  string  // pre-authored silent audio snippet for audio shortening (optional)
	HTTPAddr         string  // bind address for the tool HTTP surface
	BridgeAddr       string  // UDP address of the host-side device bridge
	SentryDSN        string  // Sentry DSN (optional)
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		HoldingAreaStart: 40000,
		HTTPAddr:         ":7380",
		BridgeAddr:       "127.0.0.1:7400",
	}
}

// FromEnv loads configuration from the environment, falling back to
// defaults for anything unset.
func FromEnv() Config {
	cfg := Default()
	if v := os.Getenv("PRODUCER_PAL_HOLDING_AREA_START"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.HoldingAreaStart = f
		}
	}
	if v := os.Getenv("PRODUCER_PAL_SILENT_AUDIO"); v != "" {
		cfg.SilentAudioPath = v
	}
	if v := os.Getenv("PRODUCER_PAL_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("PRODUCER_PAL_BRIDGE"); v != "" {
		cfg.BridgeAddr = v
	}
	if v := os.Getenv("SENTRY_DSN"); v != "" {
		cfg.SentryDSN = v
	}
	return cfg
}
