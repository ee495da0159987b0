// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-fin-track/internal/app"
	"github.com/MKhiriev/go-fin-track/models"
)

// Field order of the transaction form. fieldType is a toggle, not a text
// input.
const (
	fieldDescription = iota
	fieldAmount
	fieldType
	fieldDate
	formFields
)

// transactionForm is used both for creating (id == 0) and for editing a
// transaction. On a failed submit it keeps its values so the user can retry.
type transactionForm struct {
	id          int64
	description textinput.Model
	amount      textinput.Model
	date        textinput.Model
	txType      models.TransactionType

	focus      int
	focused    bool
	submitting bool
	errMsg     string
}

func newTransactionForm(today time.Time) transactionForm {
	description := textinput.New()
	description.Placeholder = "Ex: Almoço"
	description.CharLimit = 120
	description.Width = 30

	amount := textinput.New()
	amount.Placeholder = "0,00"
	amount.CharLimit = 18
	amount.Width = 14

	date := textinput.New()
	date.Placeholder = "DD/MM/AAAA"
	date.CharLimit = 10
	date.Width = 12
	date.SetValue(today.Format(dateLayout))

	return transactionForm{
		description: description,
		amount:      amount,
		date:        date,
		txType:      models.Expense,
	}
}

// newEditForm is prefilled with tx and focused.
func newEditForm(tx models.Transaction) transactionForm {
	f := newTransactionForm(tx.Date.UTC())
	f.id = tx.ID
	f.description.SetValue(tx.Description)
	f.amount.SetValue(amountInput(tx.Amount))
	f.txType = tx.Type
	return f.setFocused(true)
}

func (f transactionForm) editing() bool {
	return f.id != 0
}

// input parses the fields. Emptiness and sign are checked by the service;
// only values that cannot be parsed at all are rejected here.
func (f transactionForm) input() (models.TransactionInput, string) {
	amount, err := parseAmount(f.amount.Value())
	if err != nil {
		return models.TransactionInput{}, app.MsgInvalidAmount
	}
	date, err := parseDate(f.date.Value())
	if err != nil {
		return models.TransactionInput{}, app.MsgEmptyFields
	}

	return models.TransactionInput{
		Description: strings.TrimSpace(f.description.Value()),
		Amount:      amount,
		Type:        f.txType,
		Date:        date,
	}, ""
}

func (f transactionForm) setFocused(focused bool) transactionForm {
	f.focused = focused
	f.focus = fieldDescription
	return f.syncFocus()
}

func (f transactionForm) moveFocus(delta int) transactionForm {
	f.focus = cycleFocus(f.focus, delta, formFields)
	return f.syncFocus()
}

func (f transactionForm) syncFocus() transactionForm {
	f.description.Blur()
	f.amount.Blur()
	f.date.Blur()
	if !f.focused {
		return f
	}

	switch f.focus {
	case fieldDescription:
		f.description.Focus()
	case fieldAmount:
		f.amount.Focus()
	case fieldDate:
		f.date.Focus()
	}
	return f
}

// reset clears the form after a successful create. The type and date are
// kept for the next entry.
func (f transactionForm) reset() transactionForm {
	f.description.SetValue("")
	f.amount.SetValue("")
	f.errMsg = ""
	f.submitting = false
	f.focus = fieldDescription
	return f.syncFocus()
}

func (f transactionForm) update(msg tea.Msg) (transactionForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldAmount:
		f.amount, cmd = f.amount.Update(msg)
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	}
	return f, cmd
}

func (f transactionForm) View() string {
	cursor := func(field int) string {
		if f.focused && f.focus == field {
			return "> "
		}
		return "  "
	}

	var b strings.Builder
	b.WriteString(cursor(fieldDescription) + "Descrição │ [" + f.description.View() + "]\n")
	b.WriteString(cursor(fieldAmount) + "Valor     │ [" + f.amount.View() + "]\n")
	b.WriteString(cursor(fieldType) + "Tipo      │ " + typeToggle(f.txType) + "\n")
	b.WriteString(cursor(fieldDate) + "Data      │ [" + f.date.View() + "]\n")

	switch {
	case f.submitting:
		b.WriteString("\n[Salvando...]")
	case f.editing():
		b.WriteString("\n[Salvar alterações]")
	default:
		b.WriteString("\n[Adicionar]")
	}

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(f.errMsg))
	}
	return b.String()
}

func typeToggle(t models.TransactionType) string {
	if t == models.Income {
		return "(•) Receita  ( ) Despesa"
	}
	return "( ) Receita  (•) Despesa"
}
