// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package recommend

import (
	"fmt"
	"time"
)

// Config tunes the engine.
type Config struct {
	// Neighbors is k in the nearest-neighbor lookup.
	Neighbors int `json:"neighbors"`

	// Workers bounds the goroutines used for pairwise similarity.
	// Zero means runtime.NumCPU().
	Workers int `json:"workers"`

	// RefreshTimeout bounds one refresh cycle end to end.
	RefreshTimeout time.Duration `json:"refresh_timeout"`

	// RequestTimeout bounds the compute path of one recommendation request.
	RequestTimeout time.Duration `json:"request_timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Neighbors:      DefaultNeighbors,
		RefreshTimeout: 10 * time.Minute,
		RequestTimeout: 15 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.Neighbors < 1 {
		return fmt.Errorf("neighbors must be at least 1, got %d", c.Neighbors)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.RefreshTimeout <= 0 {
		return fmt.Errorf("refresh_timeout must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	return nil
}
