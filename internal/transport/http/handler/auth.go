package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-contacts-api/internal/application/auth"
	"github.com/go-contacts-api/internal/domain"
)

// AuthHandler handles registration, verification and login endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.Register(r.Context(), req); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{
		Message: "User registered successfully. Please check your email to verify your account.",
	})
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Verify(r.Context(), chi.URLParam(r, "token")); err != nil {
		// Every verification failure is the same 400 signal.
		writeError(w, http.StatusBadRequest, "invalid token")
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Email verified successfully"})
}

// Token implements the OAuth2 password grant: form-encoded username and
// password, bearer token in the response body.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	token, err := h.svc.Login(r.Context(), email, password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, TokenEnvelope{AccessToken: token, TokenType: "bearer"})
}
