// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

package service

import (
	"context"
	"math"
	"time"

	"github.com/nutrikeeper/go-diet-keeper/internal/logger"
	"github.com/nutrikeeper/go-diet-keeper/models"
)

// DefaultBMR is used when the profile lacks the attributes the Mifflin-St
// Jeor formula needs.
const DefaultBMR = 1500

// AggregationService derives display values from the local mirrors: per-day
// nutrition totals, exercise burn and the basal metabolic rate. It never
// touches the network beyond what the catalog and profile caches do.
type AggregationService struct {
	diet        *SyncService[models.DietRecord, *models.DietRecord]
	exercise    *SyncService[models.ExerciseRecord, *models.ExerciseRecord]
	customFoods *SyncService[models.CustomFood, *models.CustomFood]
	catalog     *CatalogService
	profile     *ProfileService
	clock       Clock
	logger      *logger.Logger
}

func NewAggregationService(
	diet *SyncService[models.DietRecord, *models.DietRecord],
	exercise *SyncService[models.ExerciseRecord, *models.ExerciseRecord],
	customFoods *SyncService[models.CustomFood, *models.CustomFood],
	catalog *CatalogService,
	profile *ProfileService,
	clock Clock,
	log *logger.Logger,
) *AggregationService {
	return &AggregationService{
		diet:        diet,
		exercise:    exercise,
		customFoods: customFoods,
		catalog:     catalog,
		profile:     profile,
		clock:       clock,
		logger:      log,
	}
}

// DailySummary totals the nutrition of every diet record on the given day.
// Records whose referenced food cannot be resolved contribute zero instead
// of failing the whole day. All totals are clamped at zero and rounded to
// two decimals.
func (a *AggregationService) DailySummary(ctx context.Context, date string) models.DailySummary {
	summary := models.DailySummary{Date: models.NormalizeDate(date)}

	for _, rec := range a.diet.ListByDate(date) {
		energy, protein, fat, carbs := a.recordNutrition(ctx, rec)
		summary.TotalCalories += energy
		summary.TotalProtein += protein
		summary.TotalFat += fat
		summary.TotalCarbs += carbs
		summary.RecordCount++
	}

	summary.TotalCalories = round2(clampZero(summary.TotalCalories))
	summary.TotalProtein = round2(clampZero(summary.TotalProtein))
	summary.TotalFat = round2(clampZero(summary.TotalFat))
	summary.TotalCarbs = round2(clampZero(summary.TotalCarbs))

	return summary
}

// ExerciseCalories returns the calories burned by the day's exercise
// records, rounded to two decimals.
func (a *AggregationService) ExerciseCalories(_ context.Context, date string) float64 {
	var total float64
	for _, rec := range a.exercise.ListByDate(date) {
		total += clampZero(rec.CaloriesBurned)
	}
	return round2(total)
}

// BMR computes the basal metabolic rate from the body profile using the
// Mifflin-St Jeor equation:
//
//	male:   10*weight + 6.25*height - 5*age + 5
//	female: 10*weight + 6.25*height - 5*age - 161
//
// When the profile or any required attribute is missing the conventional
// default of 1500 kcal is returned.
//
// Only the cached profile is consulted: the rate must be computable with the
// backend unreachable, same as every other aggregate.
func (a *AggregationService) BMR(ctx context.Context) float64 {
	profile, err := a.profile.Local(ctx)
	if err != nil {
		a.logger.Debug().
			Str("func", "AggregationService.BMR").
			Err(err).
			Msg("profile unavailable, using default BMR")
		return DefaultBMR
	}

	age, ok := ageAt(profile.Birthday, a.clock.Now())
	if !ok || profile.WeightKG <= 0 || profile.HeightCM <= 0 {
		return DefaultBMR
	}

	bmr := 10*profile.WeightKG + 6.25*profile.HeightCM - 5*float64(age)
	switch profile.Gender {
	case "male":
		bmr += 5
	case "female":
		bmr -= 161
	default:
		return DefaultBMR
	}

	if bmr <= 0 {
		return DefaultBMR
	}
	return math.Round(bmr)
}

// recordNutrition resolves one diet record to its nutrition contribution.
// Standard and custom records scale a per-100g basis by the consumed grams;
// quick records carry their totals verbatim.
func (a *AggregationService) recordNutrition(ctx context.Context, rec *models.DietRecord) (energy, protein, fat, carbs float64) {
	switch rec.Kind() {
	case models.RecordTypeQuick:
		return clampZero(rec.QuickEnergy), clampZero(rec.QuickProtein), clampZero(rec.QuickFat), clampZero(rec.QuickCarbs)

	case models.RecordTypeStandard:
		item, ok, err := a.catalog.FindByID(ctx, rec.FoodID)
		if err != nil || !ok {
			a.logger.Debug().
				Str("func", "AggregationService.recordNutrition").
				Int64("food_id", rec.FoodID).
				Msg("catalog item unresolved, contributing zero")
			return 0, 0, 0, 0
		}
		return scalePer100(item.EnergyKcal, item.ProteinG, item.FatG, item.CarbohydrateG, rec.QuantityG)

	case models.RecordTypeCustom:
		food, ok := a.customFoods.Get(rec.CustomFoodID)
		if !ok {
			a.logger.Debug().
				Str("func", "AggregationService.recordNutrition").
				Int64("custom_food_id", rec.CustomFoodID).
				Msg("custom food unresolved, contributing zero")
			return 0, 0, 0, 0
		}
		return scalePer100(food.EnergyKcal, food.ProteinG, food.FatG, food.CarbohydrateG, rec.QuantityG)
	}

	return 0, 0, 0, 0
}

func scalePer100(energy, protein, fat, carbs, grams float64) (float64, float64, float64, float64) {
	factor := clampZero(grams) / 100
	return clampZero(energy) * factor, clampZero(protein) * factor, clampZero(fat) * factor, clampZero(carbs) * factor
}

// ageAt returns the calendar-aware age in full years at the given moment.
func ageAt(birthday string, now time.Time) (int, bool) {
	born, err := time.Parse(models.DateLayout, models.NormalizeDate(birthday))
	if err != nil {
		return 0, false
	}

	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
