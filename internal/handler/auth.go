package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/anbuchelva/cams/internal/auth"
	"github.com/anbuchelva/cams/internal/domain"
	"github.com/anbuchelva/cams/internal/middleware"
	"github.com/anbuchelva/cams/internal/repository"
)

// AuthHandler serves registration, login and token verification.
type AuthHandler struct {
	users  *repository.Users
	tokens *auth.TokenIssuer
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(users *repository.Users, tokens *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// RegisterRequest is the request body for POST /api/auth/register.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
}

// Register creates a new user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	_, err := h.users.Register(r.Context(), repository.RegisterParams{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
	})
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			writeMessage(w, http.StatusBadRequest, "all fields are required")
		case errors.Is(err, domain.ErrEmailNotInstitutional):
			writeMessage(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("registration failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "server error during registration")
		}
		return
	}

	writeMessage(w, http.StatusCreated, "user registered successfully")
}

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the user record.
type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    domain.User `json:"user"`
}

// Login verifies credentials and issues a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		writeMessage(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
		return
	}

	token, err := h.tokens.Issue(domain.Claims{ID: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		slog.Error("token issue failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "server error during login")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Message: "login successful",
		Token:   token,
		User:    *user,
	})
}

// Verify echoes the identity resolved from the bearer token.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.Identity(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]domain.Claims{"user": claims})
}
