package models

// WeightRecord is a single body-weight measurement.
type WeightRecord struct {
	SyncMeta

	WeightKG   float64 `json:"weight_kg"`
	RecordDate string  `json:"record_date"`
	RecordTime string  `json:"record_time,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

func (w *WeightRecord) Date() string { return NormalizeDate(w.RecordDate) }
