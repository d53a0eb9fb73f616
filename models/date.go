// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

package models

import (
	"strings"
	"time"
)

// DateLayout is the canonical record-date format used across the engine.
const DateLayout = "2006-01-02"

// TimeLayout is the canonical record-time format.
const TimeLayout = "15:04"

// NormalizeDate reduces any of the date shapes produced by the remote store
// to the canonical YYYY-MM-DD form. Accepted inputs are a bare date, an ISO
// timestamp ("2025-08-01T00:00:00.000Z" or RFC3339), or anything whose first
// ten characters parse as a date. Returns "" for values that carry no usable
// date, so callers can treat "" as "absent".
func NormalizeDate(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}

	if i := strings.IndexByte(v, 'T'); i > 0 {
		v = v[:i]
	}
	if len(v) > len(DateLayout) {
		v = v[:len(DateLayout)]
	}
	if _, err := time.Parse(DateLayout, v); err != nil {
		return ""
	}
	return v
}

// FormatDate renders a native time value in the canonical date form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NormalizeTime reduces "HH:MM", "HH:MM:SS" or an ISO timestamp to "HH:MM".
// Returns "" for values that carry no usable time of day.
func NormalizeTime(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}

	if i := strings.IndexByte(v, 'T'); i >= 0 {
		v = v[i+1:]
	}
	if len(v) > len(TimeLayout) {
		v = v[:len(TimeLayout)]
	}
	if _, err := time.Parse(TimeLayout, v); err != nil {
		return ""
	}
	return v
}
