// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/MKhiriev/go-fin-track/internal/config"
	"github.com/MKhiriev/go-fin-track/internal/logger"
	"github.com/MKhiriev/go-fin-track/internal/service"
	"github.com/MKhiriev/go-fin-track/internal/tui"
)

// App runs the TUI program and keeps the dashboard refresh job alive for
// the lifetime of the program.
type App struct {
	refreshJob      service.ClientRefreshJob
	refreshInterval time.Duration
	logger          *logger.Logger

	newProgram func(ctx context.Context) program
	isTerminal func() bool
}

func NewApp(services *service.ClientServices, ui *tui.TUI, cfg config.ClientWorkers, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client app needs services and ui")
	}

	return &App{
		refreshJob:      services.RefreshJob,
		refreshInterval: cfg.RefreshInterval,
		logger:          logger,
		newProgram: func(ctx context.Context) program {
			return ui.Program(ctx)
		},
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	if !a.isTerminal() {
		return ErrNotATerminal
	}

	p := a.newProgram(ctx)

	a.refreshJob.Start(ctx, a.refreshInterval, func(err error) {
		p.Send(tui.RefreshedMsg{Err: err})
	})
	defer a.refreshJob.Stop()

	a.logger.Info().Dur("refresh_interval", a.refreshInterval).Msg("client started")

	_, err := p.Run()
	switch {
	case err == nil:
		a.logger.Info().Msg("client exited")
		return nil
	case errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
		a.logger.Info().Err(ctx.Err()).Msg("client stopped by context")
		return nil
	default:
		return fmt.Errorf("run tui: %w", err)
	}
}
