package models

// LoginResponse is the success body of POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the body the backend sends with non-2xx responses.
// Message is meant to be shown to the user verbatim.
type ErrorResponse struct {
	Message string `json:"message"`
}
