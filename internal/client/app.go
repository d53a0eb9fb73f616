package client

import (
	"context"
	"fmt"

	"github.com/nutrikeeper/go-diet-keeper/internal/config"
	"github.com/nutrikeeper/go-diet-keeper/internal/logger"
	"github.com/nutrikeeper/go-diet-keeper/internal/service"
	"github.com/nutrikeeper/go-diet-keeper/internal/tui"
)

type App struct {
	services *service.Services
	ui       *tui.TUI
	workers  config.ClientWorkers
	logger   *logger.Logger
}

func NewApp(services *service.Services, ui *tui.TUI, workers config.ClientWorkers, log *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, fmt.Errorf("client app: services and ui are required")
	}
	return &App{services: services, ui: ui, workers: workers, logger: log}, nil
}

// Run reconciles whatever the last session left queued, starts the periodic
// sync job and hands control to the dashboard until the user quits. A failed
// startup sync is reported but never blocks the UI: the local mirrors serve
// regardless.
func (a *App) Run() error {
	ctx := context.Background()

	a.services.SyncJob.RunOnce(ctx)
	if _, err := a.services.Catalog.Items(ctx); err != nil {
		a.logger.Warn().
			Str("func", "App.Run").
			Err(err).
			Msg("catalog warm-up failed, dashboard starts without it")
	}
	// refresh the cached profile so BMR serves current numbers without the
	// dashboard ever reaching for the backend itself
	if _, err := a.services.Profile.Get(ctx); err != nil {
		a.logger.Warn().
			Str("func", "App.Run").
			Err(err).
			Msg("profile warm-up failed, BMR falls back to the default")
	}

	a.services.SyncJob.Start(ctx, a.workers.SyncInterval)
	defer a.services.SyncJob.Stop()

	return a.ui.MainLoop(ctx)
}
