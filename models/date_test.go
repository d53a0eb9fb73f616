package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare date", in: "2025-08-01", want: "2025-08-01"},
		{name: "iso timestamp with millis", in: "2025-08-01T00:00:00.000Z", want: "2025-08-01"},
		{name: "rfc3339", in: "2025-08-01T10:30:00+08:00", want: "2025-08-01"},
		{name: "date with trailing time no T", in: "2025-08-01 10:30:00", want: "2025-08-01"},
		{name: "surrounding whitespace", in: "  2025-08-01  ", want: "2025-08-01"},
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "   ", want: ""},
		{name: "garbage", in: "not-a-date", want: ""},
		{name: "month out of range", in: "2025-13-01", want: ""},
		{name: "truncated", in: "2025-08", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.in))
		})
	}
}

func TestNormalizeDate_AllShapesSelectSameDay(t *testing.T) {
	shapes := []string{
		"2025-08-01",
		"2025-08-01T00:00:00.000Z",
		"2025-08-01T23:59:59+08:00",
	}
	for _, shape := range shapes {
		assert.Equal(t, "2025-08-01", NormalizeDate(shape), "shape %q", shape)
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2026, 8, 27, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "2026-08-27", FormatDate(ts))
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare", in: "08:30", want: "08:30"},
		{name: "with seconds", in: "08:30:15", want: "08:30"},
		{name: "iso timestamp", in: "2025-08-01T08:30:00Z", want: "08:30"},
		{name: "empty", in: "", want: ""},
		{name: "garbage", in: "soon", want: ""},
		{name: "hour out of range", in: "25:00", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTime(tt.in))
		})
	}
}
