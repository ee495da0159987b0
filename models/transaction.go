// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// TransactionType defines whether a transaction adds money to the balance or
// takes it away.
type TransactionType string

const (
	// Income increases the user's balance.
	Income TransactionType = "income"

	// Expense decreases the user's balance.
	Expense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Sign returns the prefix used when the amount of a transaction of this type
// is shown to the user.
func (t TransactionType) Sign() string {
	if t == Income {
		return "+"
	}
	return "-"
}

// Toggle returns the opposite transaction type.
func (t TransactionType) Toggle() TransactionType {
	if t == Income {
		return Expense
	}
	return Income
}

// Transaction is a single income or expense record owned by the authenticated
// user. ID, UserID and CreatedAt are assigned by the backend.
type Transaction struct {
	// ID is the backend-assigned unique identifier.
	ID int64 `json:"id"`

	// Description is a non-empty human readable label.
	Description string `json:"description"`

	// Amount is a positive value in the base currency unit (not cents).
	Amount float64 `json:"amount"`

	// Type is either Income or Expense.
	Type TransactionType `json:"type"`

	// Date is semantically a calendar date; time of day is ignored by the UI.
	Date time.Time `json:"date"`

	// UserID is owned by the backend and never sent by the client.
	UserID int64 `json:"userId"`

	// CreatedAt is owned by the backend.
	CreatedAt time.Time `json:"createdAt"`
}

// Input returns the editable fields of the transaction, ready to be sent as a
// full replacement in an update request.
func (t Transaction) Input() TransactionInput {
	return TransactionInput{
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		Date:        t.Date,
	}
}

// TransactionInput is the request body used for both creating and updating a
// transaction. It intentionally has no user field: ownership is derived from
// the bearer token on the server.
type TransactionInput struct {
	Description string
	Amount      float64
	Type        TransactionType
	Date        time.Time
}

type transactionInputJSON struct {
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Date        string          `json:"date"`
}

// MarshalJSON encodes Date as an ISO timestamp at UTC midnight of its calendar
// date, so the same day is stored regardless of the client's time zone.
func (in TransactionInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionInputJSON{
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		Date:        CalendarDate(in.Date).Format(time.RFC3339),
	})
}

// UnmarshalJSON implements [json.Unmarshaler] for TransactionInput.
func (in *TransactionInput) UnmarshalJSON(b []byte) error {
	var raw transactionInputJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	date, err := time.Parse(time.RFC3339, raw.Date)
	if err != nil {
		return err
	}

	*in = TransactionInput{
		Description: raw.Description,
		Amount:      raw.Amount,
		Type:        raw.Type,
		Date:        date,
	}
	return nil
}

// CalendarDate truncates t to midnight UTC of the calendar day it represents in
// its own location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
