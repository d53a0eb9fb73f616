// Package tui renders the terminal dashboard of the diet keeper client. It
// is a thin presentation layer: every mutation goes through the domain
// services and the models reflect whatever the local mirrors hold, online or
// offline.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nutrikeeper/go-diet-keeper/internal/logger"
	"github.com/nutrikeeper/go-diet-keeper/internal/service"
)

type TUI struct {
	services *service.Services
}

func New(services *service.Services, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services}, nil
}

// MainLoop runs the dashboard until the user quits.
func (t *TUI) MainLoop(ctx context.Context) error {
	model := newDashboardModel(ctx, t.services)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
