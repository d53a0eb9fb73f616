package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/nutrikeeper/go-diet-keeper/models"
)

func (m dashboardModel) View() string {
	switch m.stage {
	case addStageQuick:
		return m.viewQuickAdd()
	case addStageSearch:
		return m.viewSearch()
	case addStageGrams:
		return m.viewGrams()
	case addStageWeight:
		return m.viewWeight()
	}

	title := "DIET KEEPER — " + m.date
	if m.date == time.Now().Format(models.DateLayout) {
		title += " (today)"
	}
	if m.syncing {
		title += "  " + m.spinner.View()
	}

	if m.loading {
		return renderPage(title, "Loading...", dashboardHotKeys)
	}

	var b strings.Builder

	net := m.summary.TotalCalories - m.bmr - m.burned
	b.WriteString("Intake    : " + fmtKcal(m.summary.TotalCalories))
	b.WriteString(fmt.Sprintf("  (P %.1f / F %.1f / C %.1f g)\n", m.summary.TotalProtein, m.summary.TotalFat, m.summary.TotalCarbs))
	b.WriteString("Burned    : " + fmtKcal(m.burned) + "\n")
	b.WriteString("BMR       : " + fmtKcal(m.bmr) + "\n")
	b.WriteString("Balance   : " + fmt.Sprintf("%+.1f kcal\n", net))
	if m.weightKG > 0 {
		b.WriteString("Weight    : " + fmt.Sprintf("%.1f kg\n", m.weightKG))
	}
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString("No records for this day\n")
	} else {
		b.WriteString("Time  │ Food                           │ Amount\n")
		b.WriteString("──────┼────────────────────────────────┼──────────────\n")
		for i, row := range m.rows {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s%-5s │ %-30s │ %s\n", cursor, row.time, fitText(row.label, 30), row.amount))
		}
	}

	if len(m.recent) > 0 {
		b.WriteString("\nRecent foods (1-9 to re-log):\n")
		for i, item := range m.recent {
			if i >= maxRecentShown {
				break
			}
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, fitText(item.FoodName, 36)))
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg) + "\n")
	} else if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), dashboardHotKeys)
}

const dashboardHotKeys = "a: quick add │ f: find food │ w: weight │ s: sync │ c: copy │ ctrl+d: delete │ ←/→: day │ t: today"

func (m dashboardModel) viewQuickAdd() string {
	labels := []string{"Name     ", "Calories ", "Protein  ", "Fat      ", "Carbs    "}

	var b strings.Builder
	for i, input := range m.quickInputs {
		b.WriteString(labels[i] + ": [ " + input.View() + " ]\n")
	}
	if m.stageErr != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.stageErr) + "\n")
	}
	if m.saving {
		b.WriteString("\nSaving...\n")
	}

	return renderPage("QUICK RECORD — "+m.date, strings.TrimRight(b.String(), "\n"),
		"tab: next field │ shift+tab: prev field │ enter: save │ esc: cancel")
}

func (m dashboardModel) viewSearch() string {
	var b strings.Builder
	b.WriteString("Search    : [ " + m.searchInput.View() + " ]\n")

	if len(m.searchResults) > 0 {
		b.WriteString("\n")
		for i, item := range m.searchResults {
			cursor := " "
			if i == m.searchIdx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %-30s %7.1f kcal/100g\n", cursor, fitText(item.FoodName, 30), item.EnergyKcal))
		}
	}
	if m.stageErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.stageErr) + "\n")
	}

	return renderPage("ADD FOOD — "+m.date, strings.TrimRight(b.String(), "\n"),
		"enter: search/pick │ ↑/↓: navigate │ @group filters │ esc: cancel")
}

func (m dashboardModel) viewGrams() string {
	var b strings.Builder
	b.WriteString("Food      : " + m.pendingName + "\n")
	b.WriteString("Amount    : [ " + m.gramsInput.View() + " ]\n")
	if m.stageErr != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.stageErr) + "\n")
	}
	if m.saving {
		b.WriteString("\nSaving...\n")
	}

	return renderPage("AMOUNT — "+m.date, strings.TrimRight(b.String(), "\n"), "enter: save │ esc: cancel")
}

func (m dashboardModel) viewWeight() string {
	var b strings.Builder
	b.WriteString("Weight    : [ " + m.weightInput.View() + " ]\n")
	if m.stageErr != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.stageErr) + "\n")
	}
	if m.saving {
		b.WriteString("\nSaving...\n")
	}

	return renderPage("LOG WEIGHT — "+m.date, strings.TrimRight(b.String(), "\n"), "enter: save │ esc: cancel")
}

func copySummary(date string, summary models.DailySummary, burned, bmr float64) error {
	text := fmt.Sprintf(
		"%s: %.1f kcal in (%d records), %.1f kcal burned, BMR %.0f, P %.1fg F %.1fg C %.1fg",
		date, summary.TotalCalories, summary.RecordCount, burned, bmr,
		summary.TotalProtein, summary.TotalFat, summary.TotalCarbs,
	)
	return clipboard.WriteAll(text)
}
