// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package config

import (
	"strings"

	"github.com/tomtom215/vesseltracker/internal/validation"
)

// Validate checks that the configuration is within supported bounds
func (c *Config) Validate() error {
	c.normalize()

	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	return nil
}

// normalize lowercases enumerated string values so that "INFO" and "Json"
// pass the oneof checks.
func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Metrics.Textfile = strings.TrimSpace(c.Metrics.Textfile)
}
