// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-fin-track/internal/service"
	"github.com/MKhiriev/go-fin-track/models"
)

const descriptionWidth = 28

// dashboardModel is the main screen: summary cards, the create form and the
// transaction list. The data itself lives in the transaction service and is
// read through a snapshot on every render.
type dashboardModel struct {
	idx    int
	form   transactionForm
	status string
}

// current returns the transaction under the cursor.
func (m dashboardModel) current(view service.TransactionsView) (models.Transaction, bool) {
	if len(view.Transactions) == 0 || m.idx < 0 || m.idx >= len(view.Transactions) {
		return models.Transaction{}, false
	}
	return view.Transactions[m.idx], true
}

// clamp keeps the cursor inside a list that may have shrunk after a refresh.
func (m dashboardModel) clamp(n int) dashboardModel {
	if m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
	return m
}

func (m dashboardModel) View(identity models.Identity, view service.TransactionsView, f formatter, spin string) string {
	var b strings.Builder

	header := "Olá, " + identity.Email
	if view.Fetching {
		header += "  " + spin
	}
	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(renderSummary(view.Summary, f))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Nova transação"))
	b.WriteString("\n")
	b.WriteString(m.form.View())
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Transações"))
	b.WriteString("\n")
	b.WriteString(m.renderList(view, f))

	if view.Err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(view.Err))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}

	hotKeys := "n nova │ e editar │ d apagar │ c copiar │ r atualizar │ l sair da conta │ v sobre │ q sair"
	if m.form.focused {
		hotKeys = "tab: próx. campo │ ←/→: tipo │ enter: adicionar │ esc: voltar à lista"
	}
	return renderPage("GO-FIN-TRACK", b.String(), hotKeys)
}

func renderSummary(summary *models.Summary, f formatter) string {
	value := func(v float64) string {
		if summary == nil {
			return "-"
		}
		return f.money(v)
	}

	var income, expense, balance float64
	if summary != nil {
		income, expense, balance = summary.TotalIncome, summary.TotalExpense, summary.Balance
	}

	balanceStyle := incomeStyle
	if balance < 0 {
		balanceStyle = expenseStyle
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render("Receitas\n"+incomeStyle.Render(value(income))),
		cardStyle.Render("Despesas\n"+expenseStyle.Render(value(expense))),
		cardStyle.Render("Saldo\n"+balanceStyle.Render(value(balance))),
	)
}

func (m dashboardModel) renderList(view service.TransactionsView, f formatter) string {
	if len(view.Transactions) == 0 {
		if view.Fetching && view.Summary == nil {
			return "Carregando..."
		}
		return "Nenhuma transação encontrada."
	}

	var b strings.Builder
	for i, tx := range view.Transactions {
		cursor := "  "
		if i == m.idx && !m.form.focused {
			cursor = "> "
		}

		amountStyle := expenseStyle
		if tx.Type == models.Income {
			amountStyle = incomeStyle
		}

		row := fmt.Sprintf("%s  %-*s  %s",
			formatDate(tx.Date),
			descriptionWidth, fitText(tx.Description, descriptionWidth),
			amountStyle.Render(f.signedMoney(tx.Type, tx.Amount)),
		)

		switch {
		case view.IsDeleting(tx.ID):
			row = deletingStyle.Render(row) + "  apagando..."
		case i == m.idx && !m.form.focused:
			row = selectedStyle.Render(row)
		}

		b.WriteString(cursor)
		b.WriteString(row)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// copyText is what "c" puts on the clipboard for a row.
func copyText(tx models.Transaction, f formatter) string {
	return fmt.Sprintf("%s\t%s\t%s\t%s",
		formatDate(tx.Date), tx.Description, typeLabel(tx.Type), f.signedMoney(tx.Type, tx.Amount))
}
