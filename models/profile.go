package models

// Profile holds the user attributes needed for derived metrics.
type Profile struct {
	Nickname string `json:"nickname,omitempty"`
	// Gender is "male" or "female".
	Gender string `json:"gender,omitempty"`
	// Birthday in YYYY-MM-DD form.
	Birthday string `json:"birthday,omitempty"`
	HeightCM float64 `json:"height_cm,omitempty"`
	WeightKG float64 `json:"weight_kg,omitempty"`
}
