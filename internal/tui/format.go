// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MKhiriev/go-fin-track/models"
)

const (
	dateLayout      = "02/01/2006"
	isoDateLayout   = "2006-01-02"
	currencySymbol  = "R$"
	defaultLocale   = "pt-BR"
	amountPrecision = 2 // matches the %.2f in formatter.money
)

var (
	errBadAmount = errors.New("amount is not a number")
	errBadDate   = errors.New("date is not DD/MM/AAAA")
)

// formatter renders money and dates for one display locale.
type formatter struct {
	printer *message.Printer
}

func newFormatter(locale string) formatter {
	tag, err := language.Parse(locale)
	if err != nil || tag == language.Und {
		tag = language.MustParse(defaultLocale)
	}
	return formatter{printer: message.NewPrinter(tag)}
}

// money formats v as a BRL amount with the locale's separators, e.g.
// "R$ 25,50" and "-R$ 25,50".
func (f formatter) money(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + currencySymbol + " " + f.printer.Sprintf("%.2f", v)
}

// signedMoney prefixes the amount with the transaction sign.
func (f formatter) signedMoney(t models.TransactionType, v float64) string {
	return t.Sign() + f.money(v)
}

// formatDate shows the calendar day of t. Dates travel as UTC midnight, so the day
// is read in UTC.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(dateLayout)
}

func typeLabel(t models.TransactionType) string {
	switch t {
	case models.Income:
		return "Receita"
	case models.Expense:
		return "Despesa"
	default:
		return string(t)
	}
}

// parseAmount accepts both "1234.56" and the pt-BR "1.234,56".
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), currencySymbol))
	if s == "" {
		return 0, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", errBadAmount, s)
	}
	return v, nil
}

// parseDate reads a calendar date typed by the user. An empty value is the
// zero time, which the form validation reports as a missing field.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	for _, layout := range []string{dateLayout, isoDateLayout} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errBadDate, s)
}

// amountInput renders v for an edit field, without grouping.
func amountInput(v float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', amountPrecision, 64), ".", ",")
}
