// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

package models

// RecencyKind distinguishes what a recency entry points at.
type RecencyKind string

const (
	RecencyStandard RecencyKind = "standard"
	RecencyCustom   RecencyKind = "custom"
)

// RecencyEntry is a reference to a recently used food. It deliberately holds
// no copy of the food's data: entries are resolved against the catalog or
// the custom-food collection at display time so later edits are always
// reflected.
//
// The legacy fields exist only to migrate snapshots written by early
// versions that stored full food copies; they are dropped on first load.
type RecencyEntry struct {
	Kind      RecencyKind `json:"kind,omitempty"`
	RefID     int64       `json:"ref_id,omitempty"`
	TouchedAt int64       `json:"touched_at,omitempty"`

	// Legacy full-copy shape.
	LegacyFoodID       int64 `json:"food_id,omitempty"`
	LegacyCustomFoodID int64 `json:"custom_food_id,omitempty"`
}

// IsLegacy reports whether the entry still carries the old full-copy shape.
func (e RecencyEntry) IsLegacy() bool {
	return e.Kind == "" || e.RefID == 0
}

// Migrate converts a legacy entry to the reference-only shape. The second
// return value is false when no reference can be recovered and the entry
// must be discarded.
func (e RecencyEntry) Migrate(touchedAt int64) (RecencyEntry, bool) {
	if !e.IsLegacy() {
		return e, true
	}
	if e.LegacyFoodID != 0 {
		return RecencyEntry{Kind: RecencyStandard, RefID: e.LegacyFoodID, TouchedAt: touchedAt}, true
	}
	if e.LegacyCustomFoodID != 0 {
		return RecencyEntry{Kind: RecencyCustom, RefID: e.LegacyCustomFoodID, TouchedAt: touchedAt}, true
	}
	return RecencyEntry{}, false
}

// RecencyItem is a resolved recency entry ready for display.
type RecencyItem struct {
	Kind       RecencyKind
	RefID      int64
	FoodName   string
	EnergyKcal float64
}
