// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/MKhiriev/go-fin-track/models"
)

// loginModel is the e-mail + password form. Submission is driven by appModel.
type loginModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	status     string
}

func newLoginModel() loginModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "email@exemplo.com"
	emailInput.CharLimit = 254
	emailInput.Width = 40
	emailInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "senha"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return loginModel{inputs: []textinput.Model{emailInput, passwordInput}}
}

func (m loginModel) credentials() models.Credentials {
	return models.Credentials{
		Email:    strings.TrimSpace(m.inputs[0].Value()),
		Password: m.inputs[1].Value(),
	}
}

func (m loginModel) moveFocus(delta int) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = cycleFocus(m.focus, delta, len(m.inputs))
	m.inputs[m.focus].Focus()
	return m
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("Campo   │ Valor\n")
	b.WriteString("────────┼────────────────────────────────────────────\n")
	b.WriteString("E-mail  │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Senha   │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Entrando...]\n")
	} else {
		b.WriteString("\n[Entrar]\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("ENTRAR", strings.TrimRight(b.String(), "\n"),
		"tab: próx. campo │ enter: entrar │ ctrl+r: criar conta │ esc: sair")
}
