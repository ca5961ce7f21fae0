// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package metrics

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

// MemorySampler returns the current memory usage of the process in bytes.
type MemorySampler func() (uint64, error)

// ProcessRSS returns a sampler for the resident set size of the current process.
func ProcessRSS() MemorySampler {
	proc, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // pid fits in int32
	return func() (uint64, error) {
		if err != nil {
			return 0, fmt.Errorf("open process: %w", err)
		}
		info, memErr := proc.MemoryInfo()
		if memErr != nil {
			return 0, fmt.Errorf("read memory info: %w", memErr)
		}
		return info.RSS, nil
	}
}
