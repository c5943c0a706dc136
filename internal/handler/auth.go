package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/guardline/guardline/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account from the signup form and redirects to the
// login page on success.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	input := service.RegisterInput{
		FirstName:        r.FormValue("firstName"),
		LastName:         r.FormValue("lastName"),
		Email:            r.FormValue("email"),
		Phone:            r.FormValue("phone"),
		Age:              r.FormValue("age"),
		Password:         r.FormValue("password"),
		ConfirmPassword:  r.FormValue("confirmPassword"),
		EmergencyContact: r.FormValue("emergencyContact"),
		EmergencyPhone:   r.FormValue("emergencyPhone"),
		Newsletter:       r.FormValue("newsletter") != "",
	}

	_, err := h.authService.Register(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			writeError(w, http.StatusConflict, "Email already registered! Please login instead.")
		case errors.Is(err, service.ErrMissingFields),
			errors.Is(err, service.ErrPasswordMismatch),
			errors.Is(err, service.ErrWeakPassword),
			errors.Is(err, service.ErrInvalidEmail):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("registration failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Login authenticates the user and establishes the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.authService.Login(email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		slog.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate session token", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.authService.SetJWTCookie(w, token, time.Now().Add(h.authService.JWTExpiry()))
	slog.Info("user logged in", "user_id", user.ID)

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout invalidates the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
