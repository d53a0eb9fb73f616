package models

// Favorite is a saved recipe reference with a small display snapshot. The
// snapshot exists for list rendering only; the recipe itself is not mirrored
// locally.
type Favorite struct {
	SyncMeta

	RecipeName string  `json:"recipe_name"`
	ImageURL   string  `json:"image_url,omitempty"`
	Calories   float64 `json:"calories,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

func (f *Favorite) Date() string { return NormalizeDate(f.CreatedAt) }
