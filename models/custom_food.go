// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

package models

// CustomFood is a user-defined food with a per-100g nutrition basis. Unlike
// catalog items it is owned by the user and synchronized like any other
// entity.
type CustomFood struct {
	SyncMeta

	FoodName string `json:"food_name"`

	// Nutrition values per 100 g.
	EnergyKcal    float64 `json:"energy_kcal"`
	ProteinG      float64 `json:"protein_g"`
	FatG          float64 `json:"fat_g"`
	CarbohydrateG float64 `json:"carbohydrate_g"`

	// ImageURL is stored as a server-relative path; the full URL is
	// assembled by the presentation layer.
	ImageURL string `json:"image_url,omitempty"`
}

func (f *CustomFood) Date() string { return NormalizeDate(f.CreatedAt) }
