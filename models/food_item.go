// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

package models

// FoodItem is one row of the server-owned food nutrition catalog. Items are
// immutable once fetched and are only ever looked up, never mutated locally.
// Nutrition values use a per-100g basis.
type FoodItem struct {
	ID        int64  `json:"id"`
	FoodName  string `json:"food_name"`
	FoodGroup string `json:"food_group,omitempty"`

	EnergyKcal    float64 `json:"energy_kcal"`
	ProteinG      float64 `json:"protein_g"`
	FatG          float64 `json:"fat_g"`
	CarbohydrateG float64 `json:"carbohydrate_g"`
}
