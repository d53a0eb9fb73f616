// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nutrikeeper/go-diet-keeper/internal/service"
	"github.com/nutrikeeper/go-diet-keeper/models"
)

type addStage int

const (
	addStageNone addStage = iota
	addStageQuick
	addStageSearch
	addStageGrams
	addStageWeight
)

// maxRecentShown caps the recent-foods list at the nine digit hotkeys.
const maxRecentShown = 9

// dashboardModel is the single screen of the client: one day's intake,
// exercise burn and energy balance, with inline flows for adding records.
type dashboardModel struct {
	ctx      context.Context
	services *service.Services

	date     string
	summary  models.DailySummary
	burned   float64
	bmr      float64
	rows     []recordRow
	recent   []models.RecencyItem
	weightKG float64

	idx     int
	loading bool
	syncing bool
	spinner spinner.Model
	status  string
	errMsg  string

	stage    addStage
	stageErr string
	saving   bool

	quickInputs []textinput.Model
	quickFocus  int

	searchInput   textinput.Model
	searchQuery   string
	searchResults []models.FoodItem
	searchIdx     int

	pendingKind  models.RecencyKind
	pendingRefID int64
	pendingName  string
	gramsInput   textinput.Model

	weightInput textinput.Model
}

func newDashboardModel(ctx context.Context, services *service.Services) dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return dashboardModel{
		ctx:      ctx,
		services: services,
		date:     time.Now().Format(models.DateLayout),
		loading:  true,
		spinner:  s,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.cmdLoadDay()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dayLoadedMsg:
		// a stale load for a day the user already left is dropped
		if msg.date != m.date {
			return m, nil
		}
		m.loading = false
		m.summary = msg.summary
		m.burned = msg.burned
		m.bmr = msg.bmr
		m.rows = msg.rows
		m.recent = msg.recent
		m.weightKG = msg.weightKG
		if m.idx >= len(m.rows) {
			m.idx = len(m.rows) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil

	case searchDoneMsg:
		if msg.err != nil {
			m.stageErr = msg.err.Error()
			return m, nil
		}
		m.stageErr = ""
		m.searchQuery = msg.query
		m.searchResults = msg.items
		m.searchIdx = 0
		if len(msg.items) == 0 {
			m.stageErr = "nothing found"
		}
		return m, nil

	case syncDoneMsg:
		m.syncing = false
		m.status = "sync complete"
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadDay()

	case recordSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("record not saved: %v", msg.err)
			m.resetStage()
			return m, nil
		}
		m.status = "record saved"
		m.errMsg = ""
		m.resetStage()
		m.loading = true
		return m, m.cmdLoadDay()

	case recordDeletedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("delete failed: %v", msg.err)
			return m, nil
		}
		m.status = "record deleted"
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadDay()

	case weightSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("weight not saved: %v", msg.err)
			m.resetStage()
			return m, nil
		}
		m.status = "weight logged"
		m.errMsg = ""
		m.resetStage()
		m.loading = true
		return m, m.cmdLoadDay()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.stage != addStageNone {
		return m.updateStage(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.rows)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.prevDay):
		return m.shiftDay(-1)
	case key.Matches(keyMsg, keys.nextDay):
		return m.shiftDay(+1)
	case key.Matches(keyMsg, keys.today):
		m.date = time.Now().Format(models.DateLayout)
		m.loading = true
		return m, m.cmdLoadDay()
	case key.Matches(keyMsg, keys.addQuick):
		m.startQuickAdd()
		return m, nil
	case key.Matches(keyMsg, keys.addFood):
		m.startSearch()
		return m, nil
	case key.Matches(keyMsg, keys.weight):
		m.startWeight()
		return m, nil
	case key.Matches(keyMsg, keys.sync):
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.status = "syncing..."
		m.errMsg = ""
		return m, tea.Batch(m.spinner.Tick, m.cmdSync())
	case key.Matches(keyMsg, keys.delete):
		if m.idx < 0 || m.idx >= len(m.rows) {
			m.status = "no records"
			return m, nil
		}
		return m, m.cmdDeleteRecord(m.rows[m.idx].id)
	case key.Matches(keyMsg, keys.copy):
		if err := copySummary(m.date, m.summary, m.burned, m.bmr); err != nil {
			m.errMsg = fmt.Sprintf("copy failed: %v", err)
			return m, nil
		}
		m.status = "summary copied"
	}

	// digits 1-9 re-log a recently used food
	if s := keyMsg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		n := int(s[0] - '1')
		if n < len(m.recent) {
			item := m.recent[n]
			m.startGrams(item.Kind, item.RefID, item.FoodName)
		}
	}

	return m, nil
}

func (m dashboardModel) shiftDay(days int) (tea.Model, tea.Cmd) {
	day, err := time.Parse(models.DateLayout, m.date)
	if err != nil {
		day = time.Now()
	}
	m.date = day.AddDate(0, 0, days).Format(models.DateLayout)
	m.idx = 0
	m.loading = true
	return m, m.cmdLoadDay()
}

func (m dashboardModel) updateStage(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.stage {
	case addStageQuick:
		return m.updateQuick(msg)
	case addStageSearch:
		return m.updateSearch(msg)
	case addStageGrams:
		return m.updateGrams(msg)
	case addStageWeight:
		return m.updateWeight(msg)
	default:
		return m, nil
	}
}

func (m *dashboardModel) startQuickAdd() {
	name := textinput.New()
	name.Placeholder = "what did you eat"
	name.Width = 40
	name.Focus()

	kcal := textinput.New()
	kcal.Placeholder = "calories (kcal)"
	kcal.Width = 40

	protein := textinput.New()
	protein.Placeholder = "protein g (optional)"
	protein.Width = 40

	fat := textinput.New()
	fat.Placeholder = "fat g (optional)"
	fat.Width = 40

	carbs := textinput.New()
	carbs.Placeholder = "carbs g (optional)"
	carbs.Width = 40

	m.quickInputs = []textinput.Model{name, kcal, protein, fat, carbs}
	m.quickFocus = 0
	m.stage = addStageQuick
	m.stageErr = ""
	m.saving = false
}

func (m dashboardModel) updateQuick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.resetStage()
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.quickInputs[m.quickFocus].Blur()
			m.quickFocus = (m.quickFocus + 1) % len(m.quickInputs)
			m.quickInputs[m.quickFocus].Focus()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.quickInputs[m.quickFocus].Blur()
			m.quickFocus = (m.quickFocus - 1 + len(m.quickInputs)) % len(m.quickInputs)
			m.quickInputs[m.quickFocus].Focus()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.saving {
				return m, nil
			}

			name := strings.TrimSpace(m.quickInputs[0].Value())
			if name == "" {
				m.stageErr = "name is required"
				return m, nil
			}
			kcal, err := parseAmount(m.quickInputs[1].Value())
			if err != nil {
				m.stageErr = "calories must be a number"
				return m, nil
			}
			protein, err := parseOptionalAmount(m.quickInputs[2].Value())
			if err != nil {
				m.stageErr = "protein must be a number"
				return m, nil
			}
			fat, err := parseOptionalAmount(m.quickInputs[3].Value())
			if err != nil {
				m.stageErr = "fat must be a number"
				return m, nil
			}
			carbs, err := parseOptionalAmount(m.quickInputs[4].Value())
			if err != nil {
				m.stageErr = "carbs must be a number"
				return m, nil
			}

			rec := &models.DietRecord{
				RecordType:   models.RecordTypeQuick,
				QuickName:    name,
				QuickEnergy:  kcal,
				QuickProtein: protein,
				QuickFat:     fat,
				QuickCarbs:   carbs,
				RecordDate:   m.date,
				RecordTime:   time.Now().Format("15:04"),
			}

			m.stageErr = ""
			m.saving = true
			return m, m.cmdCreateDietRecord(rec)
		}
	}

	var cmd tea.Cmd
	m.quickInputs[m.quickFocus], cmd = m.quickInputs[m.quickFocus].Update(msg)
	return m, cmd
}

func (m *dashboardModel) startSearch() {
	input := textinput.New()
	input.Placeholder = "search the food catalog"
	input.Width = 40
	input.Focus()

	m.searchInput = input
	m.searchQuery = ""
	m.searchResults = nil
	m.searchIdx = 0
	m.stage = addStageSearch
	m.stageErr = ""
	m.saving = false
}

func (m dashboardModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.resetStage()
			return m, nil
		// plain arrow keys only: letters must reach the text input
		case keyMsg.String() == "up":
			if m.searchIdx > 0 {
				m.searchIdx--
			}
			return m, nil
		case keyMsg.String() == "down":
			if m.searchIdx < len(m.searchResults)-1 {
				m.searchIdx++
			}
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			query := strings.TrimSpace(m.searchInput.Value())
			if query == "" {
				m.stageErr = "type something to search"
				return m, nil
			}

			// enter searches; enter again on unchanged input picks
			if query != m.searchQuery {
				return m, m.cmdSearch(query)
			}
			if len(m.searchResults) == 0 {
				return m, nil
			}

			picked := m.searchResults[m.searchIdx]
			m.startGrams(models.RecencyStandard, picked.ID, picked.FoodName)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *dashboardModel) startGrams(kind models.RecencyKind, refID int64, name string) {
	input := textinput.New()
	input.Placeholder = "amount in grams"
	input.Width = 40
	input.Focus()

	m.pendingKind = kind
	m.pendingRefID = refID
	m.pendingName = name
	m.gramsInput = input
	m.stage = addStageGrams
	m.stageErr = ""
	m.saving = false
}

func (m dashboardModel) updateGrams(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.resetStage()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.saving {
				return m, nil
			}

			grams, err := parseAmount(m.gramsInput.Value())
			if err != nil || grams <= 0 {
				m.stageErr = "grams must be a positive number"
				return m, nil
			}

			rec := &models.DietRecord{
				QuantityG:  grams,
				RecordDate: m.date,
				RecordTime: time.Now().Format("15:04"),
			}
			switch m.pendingKind {
			case models.RecencyCustom:
				rec.RecordType = models.RecordTypeCustom
				rec.CustomFoodID = m.pendingRefID
			default:
				rec.RecordType = models.RecordTypeStandard
				rec.FoodID = m.pendingRefID
			}

			m.stageErr = ""
			m.saving = true
			return m, m.cmdCreateFoodRecord(rec, m.pendingKind, m.pendingRefID)
		}
	}

	var cmd tea.Cmd
	m.gramsInput, cmd = m.gramsInput.Update(msg)
	return m, cmd
}

func (m *dashboardModel) startWeight() {
	input := textinput.New()
	input.Placeholder = "weight in kg"
	input.Width = 40
	input.Focus()

	m.weightInput = input
	m.stage = addStageWeight
	m.stageErr = ""
	m.saving = false
}

func (m dashboardModel) updateWeight(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.resetStage()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.saving {
				return m, nil
			}

			kg, err := parseAmount(m.weightInput.Value())
			if err != nil || kg <= 0 {
				m.stageErr = "weight must be a positive number"
				return m, nil
			}

			rec := &models.WeightRecord{
				WeightKG:   kg,
				RecordDate: m.date,
				RecordTime: time.Now().Format("15:04"),
			}

			m.stageErr = ""
			m.saving = true
			return m, m.cmdCreateWeightRecord(rec)
		}
	}

	var cmd tea.Cmd
	m.weightInput, cmd = m.weightInput.Update(msg)
	return m, cmd
}

func (m *dashboardModel) resetStage() {
	m.stage = addStageNone
	m.stageErr = ""
	m.saving = false
	m.quickInputs = nil
	m.searchResults = nil
	m.searchQuery = ""
	m.pendingRefID = 0
	m.pendingName = ""
}

func (m dashboardModel) cmdLoadDay() tea.Cmd {
	ctx, svc, date := m.ctx, m.services, m.date

	return func() tea.Msg {
		msg := dayLoadedMsg{
			date:    date,
			summary: svc.Aggregation.DailySummary(ctx, date),
			burned:  svc.Aggregation.ExerciseCalories(ctx, date),
			bmr:     svc.Aggregation.BMR(ctx),
			recent:  svc.Recency.Items(ctx, maxRecentShown),
		}

		for _, rec := range svc.DietRecords.ListByDate(date) {
			msg.rows = append(msg.rows, resolveRow(ctx, svc, rec))
		}
		for _, w := range svc.WeightRecords.ListByDate(date) {
			msg.weightKG = w.WeightKG
		}

		return msg
	}
}

// resolveRow turns a diet record into its display row, resolving the food
// reference the same way aggregation does.
func resolveRow(ctx context.Context, svc *service.Services, rec *models.DietRecord) recordRow {
	row := recordRow{id: rec.EntityID(), time: valueOrDash(rec.Time())}

	switch rec.Kind() {
	case models.RecordTypeQuick:
		row.label = rec.QuickName + " (quick)"
		row.amount = fmtKcal(rec.QuickEnergy)
	case models.RecordTypeCustom:
		row.label = fmt.Sprintf("custom food #%d", rec.CustomFoodID)
		if food, ok := svc.CustomFoods.Get(rec.CustomFoodID); ok {
			row.label = food.FoodName
		}
		row.amount = fmtGrams(rec.QuantityG)
	default:
		row.label = fmt.Sprintf("food #%d", rec.FoodID)
		if item, ok, err := svc.Catalog.FindByID(ctx, rec.FoodID); err == nil && ok {
			row.label = item.FoodName
		}
		row.amount = fmtGrams(rec.QuantityG)
	}

	return row
}

// parseSearchInput splits the raw search text into a name keyword and an
// optional food-group facet: everything after "@" names the group, so
// "rice @grains" searches rice within grains and "@fruits" lists a group.
func parseSearchInput(input string) (keyword, group string) {
	keyword, group, found := strings.Cut(input, "@")
	if !found {
		return strings.TrimSpace(input), ""
	}
	return strings.TrimSpace(keyword), strings.TrimSpace(group)
}

func (m dashboardModel) cmdSearch(query string) tea.Cmd {
	ctx, svc := m.ctx, m.services

	return func() tea.Msg {
		keyword, group := parseSearchInput(query)
		items, err := svc.Catalog.Search(ctx, keyword, group)
		return searchDoneMsg{query: query, items: items, err: err}
	}
}

func (m dashboardModel) cmdSync() tea.Cmd {
	ctx, svc := m.ctx, m.services

	return func() tea.Msg {
		svc.SyncJob.RunOnce(ctx)
		return syncDoneMsg{}
	}
}

func (m dashboardModel) cmdCreateDietRecord(rec *models.DietRecord) tea.Cmd {
	ctx, svc := m.ctx, m.services

	return func() tea.Msg {
		return recordSavedMsg{err: svc.DietRecords.Create(ctx, rec)}
	}
}

func (m dashboardModel) cmdCreateFoodRecord(rec *models.DietRecord, kind models.RecencyKind, refID int64) tea.Cmd {
	ctx, svc := m.ctx, m.services

	return func() tea.Msg {
		if err := svc.DietRecords.Create(ctx, rec); err != nil {
			return recordSavedMsg{err: err}
		}
		return recordSavedMsg{err: svc.Recency.Touch(ctx, kind, refID)}
	}
}

func (m dashboardModel) cmdDeleteRecord(id int64) tea.Cmd {
	ctx, svc := m.ctx, m.services

	return func() tea.Msg {
		return recordDeletedMsg{err: svc.DietRecords.Delete(ctx, id)}
	}
}

func (m dashboardModel) cmdCreateWeightRecord(rec *models.WeightRecord) tea.Cmd {
	ctx, svc := m.ctx, m.services

	return func() tea.Msg {
		return weightSavedMsg{err: svc.WeightRecords.Create(ctx, rec)}
	}
}

func parseAmount(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative amount")
	}
	return v, nil
}

func parseOptionalAmount(raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return parseAmount(raw)
}
