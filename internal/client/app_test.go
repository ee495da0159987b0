// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fin-track/internal/config"
	"github.com/MKhiriev/go-fin-track/internal/logger"
	"github.com/MKhiriev/go-fin-track/internal/mock"
	"github.com/MKhiriev/go-fin-track/internal/service"
	"github.com/MKhiriev/go-fin-track/internal/tui"
)

type fakeProgram struct {
	runErr error
	onRun  func()
	sent   []tea.Msg
}

func (p *fakeProgram) Run() (tea.Model, error) {
	if p.onRun != nil {
		p.onRun()
	}
	return nil, p.runErr
}

func (p *fakeProgram) Send(msg tea.Msg) {
	p.sent = append(p.sent, msg)
}

func newTestApp(job service.ClientRefreshJob, p *fakeProgram, terminal bool) *App {
	return &App{
		refreshJob:      job,
		refreshInterval: time.Minute,
		logger:          logger.Nop(),
		newProgram:      func(context.Context) program { return p },
		isTerminal:      func() bool { return terminal },
	}
}

func TestNewApp_RequiresDependencies(t *testing.T) {
	_, err := NewApp(nil, nil, config.ClientWorkers{}, logger.Nop())
	assert.Error(t, err)
}

func TestApp_Run_NotATerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := mock.NewMockClientRefreshJob(ctrl)

	a := newTestApp(job, &fakeProgram{}, false)

	err := a.Run(context.Background())
	assert.ErrorIs(t, err, ErrNotATerminal)
}

func TestApp_Run_WiresRefreshJobToProgram(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := mock.NewMockClientRefreshJob(ctrl)
	p := &fakeProgram{}

	var onDone func(error)
	gomock.InOrder(
		job.EXPECT().Start(gomock.Any(), time.Minute, gomock.Any()).
			Do(func(_ context.Context, _ time.Duration, fn func(error)) { onDone = fn }),
		job.EXPECT().Stop(),
	)

	boom := errors.New("boom")
	p.onRun = func() {
		// тикер отработал дважды, пока программа была запущена
		onDone(nil)
		onDone(boom)
	}

	a := newTestApp(job, p, true)
	require.NoError(t, a.Run(context.Background()))

	require.Len(t, p.sent, 2)
	assert.Equal(t, tui.RefreshedMsg{}, p.sent[0])
	assert.Equal(t, tui.RefreshedMsg{Err: boom}, p.sent[1])
}

func TestApp_Run_ProgramError(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := mock.NewMockClientRefreshJob(ctrl)
	job.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any())
	job.EXPECT().Stop()

	boom := errors.New("tty gone")
	a := newTestApp(job, &fakeProgram{runErr: boom}, true)

	err := a.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestApp_Run_CancelledContextIsCleanExit(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := mock.NewMockClientRefreshJob(ctrl)
	job.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any())
	job.EXPECT().Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	killed := fmt.Errorf("%w: %w", tea.ErrProgramKilled, context.Canceled)
	a := newTestApp(job, &fakeProgram{runErr: killed}, true)

	assert.NoError(t, a.Run(ctx))
}

func TestApp_Run_KilledWithoutCancelIsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := mock.NewMockClientRefreshJob(ctrl)
	job.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any())
	job.EXPECT().Stop()

	a := newTestApp(job, &fakeProgram{runErr: tea.ErrProgramKilled}, true)

	assert.ErrorIs(t, a.Run(context.Background()), tea.ErrProgramKilled)
}
