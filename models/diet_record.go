// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

package models

// Diet record types. A record references exactly one nutrition source:
// a catalog food, a custom food, or its own quick-entry snapshot.
const (
	RecordTypeStandard = "standard"
	RecordTypeCustom   = "custom"
	RecordTypeQuick    = "quick"
)

// DietRecord is a single food intake entry.
//
// For standard and custom records QuantityG holds the consumed amount in
// grams and nutrition is resolved at aggregation time against the catalog or
// the custom-food collection. Quick records carry their own already-total
// nutrition snapshot and are never scaled.
type DietRecord struct {
	SyncMeta

	RecordType string `json:"record_type,omitempty"`

	// FoodID references a catalog item for standard records.
	FoodID int64 `json:"food_id,omitempty"`
	// CustomFoodID references a user-defined food for custom records.
	CustomFoodID int64 `json:"custom_food_id,omitempty"`

	QuantityG float64 `json:"quantity_g,omitempty"`

	// Quick-entry nutrition snapshot, populated only for quick records.
	QuickName    string  `json:"quick_food_name,omitempty"`
	QuickEnergy  float64 `json:"quick_energy_kcal,omitempty"`
	QuickProtein float64 `json:"quick_protein_g,omitempty"`
	QuickFat     float64 `json:"quick_fat_g,omitempty"`
	QuickCarbs   float64 `json:"quick_carbohydrate_g,omitempty"`

	RecordDate string `json:"record_date"`
	RecordTime string `json:"record_time,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

func (r *DietRecord) Date() string { return NormalizeDate(r.RecordDate) }

// Time returns the record time normalized to HH:MM.
func (r *DietRecord) Time() string { return NormalizeTime(r.RecordTime) }

// Kind infers the record type when the remote store omitted record_type,
// falling back to the populated reference field. Legacy rows with neither
// reference nor snapshot resolve to standard and contribute zero at
// aggregation time.
func (r *DietRecord) Kind() string {
	if r.RecordType != "" {
		return r.RecordType
	}
	switch {
	case r.FoodID != 0:
		return RecordTypeStandard
	case r.CustomFoodID != 0:
		return RecordTypeCustom
	case r.QuickEnergy != 0 || r.QuickName != "":
		return RecordTypeQuick
	}
	return RecordTypeStandard
}
