package fakeapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-fin-track/internal/utils"
	"github.com/MKhiriev/go-fin-track/models"
)

type registerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var body models.Registration
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteMessage(w, "JSON inválido.", http.StatusBadRequest)
		return
	}

	body.Email = strings.TrimSpace(body.Email)
	if strings.TrimSpace(body.Name) == "" || body.Email == "" || body.Password == "" {
		utils.WriteMessage(w, "Todos os campos são obrigatórios.", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if _, exists := s.users[body.Email]; exists {
		s.mu.Unlock()
		utils.WriteMessage(w, "Este e-mail já está em uso.", http.StatusConflict)
		return
	}
	u := s.addUser(body.Name, body.Email, body.Password)
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, registerResponse{ID: u.identity.ID, Name: u.name, Email: u.identity.Email}, http.StatusCreated)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteMessage(w, "JSON inválido.", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	u, exists := s.users[strings.TrimSpace(body.Email)]
	s.mu.Unlock()

	if !exists || u.password != body.Password {
		utils.WriteMessage(w, "Credenciais inválidas.", http.StatusUnauthorized)
		return
	}

	token, err := s.IssueToken(u.identity)
	if err != nil {
		utils.WriteMessage(w, "Erro interno.", http.StatusInternalServerError)
		return
	}

	_, _ = utils.WriteJSON(w, models.LoginResponse{Token: token}, http.StatusOK)
}
