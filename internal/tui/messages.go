package tui

import "github.com/nutrikeeper/go-diet-keeper/models"

// recordRow is one diet record prepared for display, with its food reference
// already resolved.
type recordRow struct {
	id     int64
	time   string
	label  string
	amount string
}

type dayLoadedMsg struct {
	date     string
	summary  models.DailySummary
	burned   float64
	bmr      float64
	rows     []recordRow
	recent   []models.RecencyItem
	weightKG float64
}

type searchDoneMsg struct {
	query string
	items []models.FoodItem
	err   error
}

// syncDoneMsg signals that a manual sync pass finished; per-collection
// failures are logged by the job itself.
type syncDoneMsg struct{}

type recordSavedMsg struct {
	err error
}

type recordDeletedMsg struct {
	err error
}

type weightSavedMsg struct {
	err error
}
