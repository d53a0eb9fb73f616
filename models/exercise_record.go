package models

// ExerciseRecord is a single workout entry. Calories are computed by the
// input surface (MET-based) before the record reaches the engine; the engine
// only stores and syncs the result.
type ExerciseRecord struct {
	SyncMeta

	ExerciseName   string  `json:"exercise_name"`
	DurationMin    float64 `json:"duration_min"`
	METUsed        float64 `json:"met_used,omitempty"`
	CaloriesBurned float64 `json:"calories_burned_kcal"`
	WeightAtTimeKG float64 `json:"weight_kg_at_time,omitempty"`
	RecordDate     string  `json:"record_date"`
	RecordTime     string  `json:"record_time,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

func (e *ExerciseRecord) Date() string { return NormalizeDate(e.RecordDate) }
