package models

// DailySummary is the aggregate of one day's diet records. All values are
// rounded to two decimals for display stability and are never negative.
type DailySummary struct {
	Date          string  `json:"date"`
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalFat      float64 `json:"total_fat"`
	TotalCarbs    float64 `json:"total_carbs"`
	RecordCount   int     `json:"record_count"`
}
