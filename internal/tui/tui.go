// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the Bubble Tea front end of the client.
//
// A single appModel owns the screen state (loading, login, register,
// dashboard, edit) and talks to the services through commands, so every
// blocking call runs off the update loop and comes back as a message. The
// transaction list and totals are never copied into the model: each render
// reads a snapshot from the transaction service.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-fin-track/internal/logger"
	"github.com/MKhiriev/go-fin-track/internal/service"
	"github.com/MKhiriev/go-fin-track/models"
)

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	locale    string
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, locale string, logger *logger.Logger) *TUI {
	return &TUI{
		services:  services,
		buildInfo: buildInfo,
		locale:    locale,
		logger:    logger,
	}
}

// Program builds the program without starting it, so the caller can wire
// Send to background jobs before Run.
func (t *TUI) Program(ctx context.Context, opts ...tea.ProgramOption) *tea.Program {
	model := newAppModel(ctx, t.services, t.buildInfo, t.locale, t.logger)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	return tea.NewProgram(model, opts...)
}
