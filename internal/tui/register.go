// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/MKhiriev/go-fin-track/models"
)

const (
	registerName = iota
	registerEmail
	registerPassword
	registerConfirm
)

// registerModel is the sign-up form: name, e-mail, password and its
// confirmation.
type registerModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func newRegisterModel() registerModel {
	name := textinput.New()
	name.Placeholder = "Seu nome"
	name.CharLimit = 100
	name.Width = 40
	name.Focus()

	email := textinput.New()
	email.Placeholder = "email@exemplo.com"
	email.CharLimit = 254
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "senha"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	confirm := password
	confirm.Placeholder = "repita a senha"

	return registerModel{inputs: []textinput.Model{name, email, password, confirm}}
}

func (m registerModel) registration() (models.Registration, string) {
	return models.Registration{
		Name:     strings.TrimSpace(m.inputs[registerName].Value()),
		Email:    strings.TrimSpace(m.inputs[registerEmail].Value()),
		Password: m.inputs[registerPassword].Value(),
	}, m.inputs[registerConfirm].Value()
}

func (m registerModel) moveFocus(delta int) registerModel {
	m.inputs[m.focus].Blur()
	m.focus = cycleFocus(m.focus, delta, len(m.inputs))
	m.inputs[m.focus].Focus()
	return m
}

func (m registerModel) View() string {
	labels := []string{"Nome    ", "E-mail  ", "Senha   ", "Confirma"}

	var b strings.Builder
	b.WriteString("Campo    │ Valor\n")
	b.WriteString("─────────┼────────────────────────────────────────────\n")
	for i, label := range labels {
		b.WriteString(label)
		b.WriteString(" │ [")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
	}

	if m.submitting {
		b.WriteString("\n[Cadastrando...]\n")
	} else {
		b.WriteString("\n[Cadastrar]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("CRIAR CONTA", strings.TrimRight(b.String(), "\n"),
		"tab: próx. campo │ enter: cadastrar │ esc: voltar")
}
