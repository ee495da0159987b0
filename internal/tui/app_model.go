package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-fin-track/internal/app"
	"github.com/MKhiriev/go-fin-track/internal/logger"
	"github.com/MKhiriev/go-fin-track/internal/service"
	"github.com/MKhiriev/go-fin-track/models"
)

const statusTTL = 3 * time.Second

type screen int

const (
	screenLoading screen = iota
	screenLogin
	screenRegister
	screenDashboard
	screenEdit
)

// routeFor maps the session state to the only screen group it may show:
// nothing but the loading screen until the session is restored, and the
// dashboard only with an identity.
func routeFor(state service.SessionState) screen {
	switch state {
	case service.SessionAuthenticated:
		return screenDashboard
	case service.SessionAnonymous:
		return screenLogin
	default:
		return screenLoading
	}
}

type appModel struct {
	ctx       context.Context
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	format    formatter
	logger    *logger.Logger
	now       func() time.Time

	currentScreen screen
	spinner       spinner.Model
	ticking       bool

	login     loginModel
	register  registerModel
	dashboard dashboardModel
	edit      transactionForm

	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	showBuildInfo bool
}

func newAppModel(ctx context.Context, services *service.ClientServices, buildInfo models.AppBuildInfo, locale string, log *logger.Logger) appModel {
	m := appModel{
		ctx:           ctx,
		services:      services,
		buildInfo:     buildInfo,
		format:        newFormatter(locale),
		logger:        log,
		now:           time.Now,
		currentScreen: screenLoading,
		spinner:       newSpinner(),
		ticking:       true,
		login:         newLoginModel(),
		register:      newRegisterModel(),
	}
	m.dashboard = dashboardModel{form: newTransactionForm(m.now())}
	return m
}

// Init restores the session in the background while the loading screen
// spins.
func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdRestore())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showBuildInfo {
			if key.Matches(keyMsg, keys.esc, keys.about) {
				m.showBuildInfo = false
			}
			return m, nil
		}
		if m.showError {
			if key.Matches(keyMsg, keys.enter, keys.esc) {
				m.showError = false
			}
			return m, nil
		}
		if m.showConfirm {
			return m.updateConfirm(keyMsg)
		}
	}

	switch msg := msg.(type) {
	case spinner.TickMsg:
		return m.updateSpinner(msg)
	case sessionRestoredMsg:
		return m.routeAfterRestore()
	case loginDoneMsg:
		return m.handleLoginDone(msg)
	case registerDoneMsg:
		return m.handleRegisterDone(msg)
	case loggedOutMsg:
		m = m.toLogin("")
		return m, textinput.Blink
	case refreshDoneMsg, RefreshedMsg:
		m, _ = m.guardSession()
		m.dashboard = m.dashboard.clamp(len(m.services.TransactionService.Snapshot().Transactions))
		return m, nil
	case createDoneMsg:
		return m.handleCreateDone(msg)
	case updateDoneMsg:
		return m.handleUpdateDone(msg)
	case deleteDoneMsg:
		m, _ = m.guardSession()
		m.dashboard = m.dashboard.clamp(len(m.services.TransactionService.Snapshot().Transactions))
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.logger.Err(msg.err).Str("func", "appModel.Update").Msg("clipboard write failed")
			m.showErrorf("Não foi possível copiar: " + msg.err.Error())
			return m, nil
		}
		m.dashboard.status = app.MsgCopied
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.dashboard.status = ""
		m.login.status = ""
		return m, nil
	}

	switch m.currentScreen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenRegister:
		return m.updateRegister(msg)
	case screenDashboard:
		return m.updateDashboard(msg)
	case screenEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}

	var body string
	switch m.currentScreen {
	case screenLoading:
		body = renderLoading(m.spinner.View())
	case screenLogin:
		body = m.login.View()
	case screenRegister:
		body = m.register.View()
	case screenDashboard, screenEdit:
		identity, ok := m.services.SessionService.CurrentIdentity()
		if !ok {
			body = m.login.View()
			break
		}
		if m.currentScreen == screenEdit {
			body = renderPage("EDITAR TRANSAÇÃO", m.edit.View(),
				"tab: próx. campo │ ←/→: tipo │ enter: salvar │ esc: cancelar")
			break
		}
		body = m.dashboard.View(identity, m.services.TransactionService.Snapshot(), m.format, m.spinner.View())
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

// startSpinner restarts the tick loop if it has stopped.
func (m *appModel) startSpinner() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return m.spinner.Tick
}

func (m appModel) updateSpinner(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	spinning := m.currentScreen == screenLoading ||
		((m.currentScreen == screenDashboard || m.currentScreen == screenEdit) &&
			m.services.TransactionService.Snapshot().Fetching)
	if !spinning {
		m.ticking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m appModel) routeAfterRestore() (tea.Model, tea.Cmd) {
	m.currentScreen = routeFor(m.services.SessionService.State())
	switch m.currentScreen {
	case screenDashboard:
		return m, tea.Batch(m.cmdRefresh(), m.startSpinner())
	case screenLogin:
		return m, textinput.Blink
	}
	return m, nil
}

// toLogin drops everything the previous user could see and opens the login
// screen with errMsg.
func (m appModel) toLogin(errMsg string) appModel {
	m.services.TransactionService.Reset()
	m.dashboard = dashboardModel{form: newTransactionForm(m.now())}
	m.edit = transactionForm{}
	m.showConfirm = false
	m.login = newLoginModel()
	m.login.errMsg = errMsg
	m.currentScreen = screenLogin
	return m
}

// guardSession sends the user to the login screen when an authenticated
// screen is open but the session has ended, e.g. after a 401.
func (m appModel) guardSession() (appModel, bool) {
	if m.currentScreen != screenDashboard && m.currentScreen != screenEdit {
		return m, false
	}
	if m.services.SessionService.State() == service.SessionAuthenticated {
		return m, false
	}
	return m.toLogin(app.MsgSessionExpired), true
}

func (m appModel) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	if m.currentScreen != screenLogin {
		return m, nil
	}
	m.login.submitting = false
	if msg.err != nil {
		m.login.errMsg = service.UserMessage(msg.err, app.MsgAuthFailed)
		return m, nil
	}

	m.services.TransactionService.Reset()
	m.dashboard = dashboardModel{form: newTransactionForm(m.now())}
	m.currentScreen = screenDashboard
	return m, tea.Batch(m.cmdRefresh(), m.startSpinner())
}

func (m appModel) handleRegisterDone(msg registerDoneMsg) (tea.Model, tea.Cmd) {
	if m.currentScreen != screenRegister {
		return m, nil
	}
	m.register.submitting = false
	if msg.err != nil {
		m.register.errMsg = service.UserMessage(msg.err, app.MsgAuthFailed)
		return m, nil
	}

	m.login = newLoginModel()
	m.login.inputs[0].SetValue(msg.email)
	m.login = m.login.moveFocus(1)
	m.login.status = app.MsgRegistered
	m.currentScreen = screenLogin
	return m, tea.Batch(textinput.Blink, cmdClearStatus())
}

func (m appModel) handleCreateDone(msg createDoneMsg) (tea.Model, tea.Cmd) {
	if m, expired := m.guardSession(); expired {
		return m, nil
	}
	if m.currentScreen != screenDashboard {
		return m, nil
	}

	m.dashboard.form.submitting = false
	if msg.err != nil {
		m.dashboard.form.errMsg = service.UserMessage(msg.err, app.MsgCreateFailed)
		return m, nil
	}
	m.dashboard.form = m.dashboard.form.reset()
	return m, nil
}

func (m appModel) handleUpdateDone(msg updateDoneMsg) (tea.Model, tea.Cmd) {
	if m, expired := m.guardSession(); expired {
		return m, nil
	}
	// the edit form was closed or replaced meanwhile
	if m.currentScreen != screenEdit || m.edit.id != msg.id {
		return m, nil
	}

	m.edit.submitting = false
	if msg.err != nil {
		m.edit.errMsg = service.UserMessage(msg.err, app.MsgUpdateFailed)
		return m, nil
	}
	m.edit = transactionForm{}
	m.currentScreen = screenDashboard
	return m, nil
}

func (m appModel) updateConfirm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.yes):
		m.showConfirm = false
		return m, m.cmdDelete(m.confirm.id)
	case key.Matches(keyMsg, keys.no):
		m.showConfirm = false
	}
	return m, nil
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m, tea.Quit
		case key.Matches(keyMsg, keys.signUp):
			// a login in flight would authenticate behind the register screen
			if m.login.submitting {
				return m, nil
			}
			m.register = newRegisterModel()
			m.currentScreen = screenRegister
			return m, textinput.Blink
		case key.Matches(keyMsg, keys.tab):
			m.login = m.login.moveFocus(1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login = m.login.moveFocus(-1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting {
				return m, nil
			}
			m.login.errMsg = ""
			m.login.status = ""
			m.login.submitting = true
			return m, m.cmdLogin(m.login.credentials())
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenLogin
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.register = m.register.moveFocus(1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.register = m.register.moveFocus(-1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.register.submitting {
				return m, nil
			}
			m.register.errMsg = ""
			m.register.submitting = true
			registration, confirm := m.register.registration()
			return m, m.cmdRegister(registration, confirm)
		}
	}

	var cmd tea.Cmd
	m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.dashboard.form.focused {
		return m.updateCreateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	view := m.services.TransactionService.Snapshot()
	switch {
	case key.Matches(keyMsg, keys.up):
		if m.dashboard.idx > 0 {
			m.dashboard.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.dashboard.idx < len(view.Transactions)-1 {
			m.dashboard.idx++
		}
	case key.Matches(keyMsg, keys.newItem):
		m.dashboard.form = m.dashboard.form.setFocused(true)
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.edit):
		tx, ok := m.dashboard.current(view)
		if !ok {
			return m, nil
		}
		m.edit = newEditForm(tx)
		m.currentScreen = screenEdit
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.delete):
		tx, ok := m.dashboard.current(view)
		if !ok || view.IsDeleting(tx.ID) {
			return m, nil
		}
		m.showConfirm = true
		m.confirm = confirmModel{message: tx.Description, id: tx.ID}
	case key.Matches(keyMsg, keys.refresh):
		return m, tea.Batch(m.cmdRefresh(), m.startSpinner())
	case key.Matches(keyMsg, keys.copy):
		tx, ok := m.dashboard.current(view)
		if !ok {
			return m, nil
		}
		return m, cmdCopyToClipboard(copyText(tx, m.format))
	case key.Matches(keyMsg, keys.logout):
		return m, m.cmdLogout()
	case key.Matches(keyMsg, keys.about):
		m.showBuildInfo = true
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}

	return m, nil
}

func (m appModel) updateCreateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.esc) {
		m.dashboard.form = m.dashboard.form.setFocused(false)
		return m, nil
	}

	form, cmd, submit := handleFormKey(m.dashboard.form, msg)
	if submit {
		in, problem := form.input()
		if problem != "" {
			form.errMsg = problem
		} else {
			form.errMsg = ""
			form.submitting = true
			cmd = m.cmdCreate(in)
		}
	}
	m.dashboard.form = form
	return m, cmd
}

func (m appModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.esc) {
		m.edit = transactionForm{}
		m.currentScreen = screenDashboard
		return m, nil
	}

	form, cmd, submit := handleFormKey(m.edit, msg)
	if submit {
		in, problem := form.input()
		if problem != "" {
			form.errMsg = problem
		} else {
			form.errMsg = ""
			form.submitting = true
			cmd = m.cmdUpdate(form.id, in)
		}
	}
	m.edit = form
	return m, cmd
}

// handleFormKey applies navigation keys to f and forwards the rest to the
// focused input. submit reports an enter on a form that is not already
// submitting.
func handleFormKey(f transactionForm, msg tea.Msg) (transactionForm, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.tab):
			return f.moveFocus(1), nil, false
		case key.Matches(keyMsg, keys.backtab):
			return f.moveFocus(-1), nil, false
		case key.Matches(keyMsg, keys.enter):
			return f, nil, !f.submitting
		case f.focus == fieldType:
			if key.Matches(keyMsg, keys.toggle) {
				f.txType = f.txType.Toggle()
			}
			return f, nil, false
		}
	}

	f, cmd := f.update(msg)
	return f, cmd, false
}

func (m appModel) cmdRestore() tea.Cmd {
	ctx := m.ctx
	session := m.services.SessionService
	return func() tea.Msg {
		session.Restore(ctx)
		return sessionRestoredMsg{}
	}
}

func (m appModel) cmdLogin(credentials models.Credentials) tea.Cmd {
	ctx := m.ctx
	auth := m.services.AuthService
	return func() tea.Msg {
		identity, err := auth.Login(ctx, credentials)
		return loginDoneMsg{identity: identity, err: err}
	}
}

func (m appModel) cmdRegister(registration models.Registration, confirm string) tea.Cmd {
	ctx := m.ctx
	auth := m.services.AuthService
	return func() tea.Msg {
		err := auth.Register(ctx, registration, confirm)
		return registerDoneMsg{email: registration.Email, err: err}
	}
}

func (m appModel) cmdLogout() tea.Cmd {
	ctx := m.ctx
	session := m.services.SessionService
	return func() tea.Msg {
		session.Logout(ctx)
		return loggedOutMsg{}
	}
}

func (m appModel) cmdRefresh() tea.Cmd {
	ctx := m.ctx
	svc := m.services.TransactionService
	return func() tea.Msg {
		return refreshDoneMsg{err: svc.Refresh(ctx)}
	}
}

func (m appModel) cmdCreate(in models.TransactionInput) tea.Cmd {
	ctx := m.ctx
	svc := m.services.TransactionService
	return func() tea.Msg {
		return createDoneMsg{err: svc.Create(ctx, in)}
	}
}

func (m appModel) cmdUpdate(id int64, in models.TransactionInput) tea.Cmd {
	ctx := m.ctx
	svc := m.services.TransactionService
	return func() tea.Msg {
		return updateDoneMsg{id: id, err: svc.Update(ctx, id, in)}
	}
}

func (m appModel) cmdDelete(id int64) tea.Cmd {
	ctx := m.ctx
	svc := m.services.TransactionService
	return func() tea.Msg {
		return deleteDoneMsg{id: id, err: svc.Remove(ctx, id)}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
