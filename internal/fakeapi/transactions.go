package fakeapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-fin-track/internal/utils"
	"github.com/MKhiriev/go-fin-track/models"
)

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	identity, _ := utils.GetIdentityFromContext(r.Context())

	s.mu.Lock()
	list := s.listFor(identity.ID)
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, list, http.StatusOK)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	identity, _ := utils.GetIdentityFromContext(r.Context())

	var sum models.Summary
	s.mu.Lock()
	for _, tx := range s.transactions {
		if tx.UserID != identity.ID {
			continue
		}
		if tx.Type == models.Income {
			sum.TotalIncome += tx.Amount
		} else {
			sum.TotalExpense += tx.Amount
		}
	}
	s.mu.Unlock()
	sum.Balance = sum.TotalIncome - sum.TotalExpense

	_, _ = utils.WriteJSON(w, sum, http.StatusOK)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	identity, _ := utils.GetIdentityFromContext(r.Context())

	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	tx := s.addTransaction(identity.ID, in)
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, tx, http.StatusCreated)
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
	identity, _ := utils.GetIdentityFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	tx, exists := s.transactions[id]
	if !exists || tx.UserID != identity.ID {
		s.mu.Unlock()
		utils.WriteMessage(w, "Transação não encontrada.", http.StatusNotFound)
		return
	}
	tx.Description = in.Description
	tx.Amount = in.Amount
	tx.Type = in.Type
	tx.Date = models.CalendarDate(in.Date)
	s.transactions[id] = tx
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, tx, http.StatusOK)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	identity, _ := utils.GetIdentityFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	tx, exists := s.transactions[id]
	if !exists || tx.UserID != identity.ID {
		s.mu.Unlock()
		utils.WriteMessage(w, "Transação não encontrada.", http.StatusNotFound)
		return
	}
	delete(s.transactions, id)
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

// listFor returns the transactions of userID, newest date first and, within
// one date, most recently created first. Callers hold s.mu.
func (s *Server) listFor(userID int64) []models.Transaction {
	list := make([]models.Transaction, 0)
	for _, tx := range s.transactions {
		if tx.UserID == userID {
			list = append(list, tx)
		}
	}

	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ID > list[j].ID
	})
	return list
}

func decodeInput(w http.ResponseWriter, r *http.Request) (models.TransactionInput, bool) {
	var in models.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteMessage(w, "Dados da transação inválidos.", http.StatusBadRequest)
		return in, false
	}

	if strings.TrimSpace(in.Description) == "" || in.Amount <= 0 || !in.Type.Valid() {
		utils.WriteMessage(w, "Descrição, valor e tipo são obrigatórios.", http.StatusBadRequest)
		return in, false
	}

	return in, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		utils.WriteMessage(w, "ID inválido.", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
