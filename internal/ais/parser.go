// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

package ais

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vesseltracker/internal/models"
)

// Envelope and message field names.
const (
	FieldMessage      = "Message"
	FieldMessageID    = "MessageID"
	FieldUserID       = "UserID"
	FieldLatitude     = "Latitude"
	FieldLongitude    = "Longitude"
	FieldUTCTimeStamp = "UTCTimeStamp"
)

// PositionMessageTypes is the set of AIS message IDs that carry a position report.
var PositionMessageTypes = map[int64]struct{}{
	1:  {},
	2:  {},
	3:  {},
	18: {},
	19: {},
	27: {},
}

// IsPositionMessageType reports whether id is an accepted position-report type.
func IsPositionMessageType(id int64) bool {
	_, ok := PositionMessageTypes[id]
	return ok
}

// ParseLine decodes one raw input line and parses it as a position report.
// Text that is not a single JSON object is rejected.
func ParseLine(line []byte) (models.Position, bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return models.Position{}, false
	}

	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	var msg map[string]any
	if err := dec.Decode(&msg); err != nil {
		return models.Position{}, false
	}

	// Reject trailing content after the first value.
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return models.Position{}, false
	}

	return ParsePositionMessage(msg)
}

// ParsePositionMessage extracts a Position from a decoded AIS envelope.
// It returns false when the envelope is not an acceptable position report.
func ParsePositionMessage(msg map[string]any) (models.Position, bool) {
	body, ok := msg[FieldMessage].(map[string]any)
	if !ok {
		return models.Position{}, false
	}

	msgID, ok := toMessageID(body[FieldMessageID])
	if !ok || !IsPositionMessageType(msgID) {
		return models.Position{}, false
	}

	lat, ok := toFloat64(body[FieldLatitude])
	if !ok || lat < -90 || lat > 90 {
		return models.Position{}, false
	}

	lon, ok := toFloat64(body[FieldLongitude])
	if !ok || lon < -180 || lon > 180 {
		return models.Position{}, false
	}

	ts, ok := toTimestamp(msg[FieldUTCTimeStamp])
	if !ok {
		return models.Position{}, false
	}

	vesselID, ok := toVesselID(body[FieldUserID])
	if !ok {
		return models.Position{}, false
	}

	return models.Position{
		Latitude:  lat,
		Longitude: lon,
		Timestamp: ts,
		VesselID:  vesselID,
	}, true
}

// toMessageID accepts only numeric values with no fractional part.
func toMessageID(v any) (int64, bool) {
	var f float64
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n, true
		}
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = val
	case int64:
		return val, true
	case int:
		return int64(val), true
	default:
		return 0, false
	}
	return integral(f)
}

func toFloat64(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = val
	case int64:
		f = float64(val)
	case int:
		f = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toTimestamp truncates fractional seconds from numbers; strings must be integers.
func toTimestamp(v any) (int64, bool) {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n, true
		}
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return truncate(f)
	case float64:
		return truncate(val)
	case int64:
		return val, true
	case int:
		return int64(val), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func toVesselID(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		id := strings.TrimSpace(val)
		return id, id != ""
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return strconv.FormatInt(n, 10), true
		}
		f, err := val.Float64()
		if err != nil {
			return "", false
		}
		n, ok := integral(f)
		if !ok {
			return "", false
		}
		return strconv.FormatInt(n, 10), true
	case float64:
		n, ok := integral(val)
		if !ok {
			return "", false
		}
		return strconv.FormatInt(n, 10), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case int:
		return strconv.Itoa(val), true
	default:
		return "", false
	}
}

func integral(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return integral(math.Trunc(f))
}
