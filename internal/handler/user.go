package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mercato/mercato/internal/handler/dto"
	"github.com/mercato/mercato/internal/service"
)

// UserHandler handles registration and login.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// Register handles POST /register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		FullAddress: req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusConflict, "EMAIL_TAKEN", "email already registered")
		case errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrMissingField),
			errors.Is(err, service.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			h.logger.Error("registration failed", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "registration failed")
		}
		return
	}

	h.logger.Info("user_registered", slog.Int64("user_id", user.ID))
	writeJSON(w, http.StatusCreated, dto.RegisterResponse{UserID: user.ID})
}

// Login handles POST /login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// One message for unknown email and wrong password.
			writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
			return
		}
		h.logger.Error("login failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "login failed")
		return
	}

	h.logger.Info("user_logged_in", slog.Int64("user_id", result.User.ID))
	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:     result.Token,
		TokenType: result.TokenType,
		UserID:    result.User.ID,
		FirstName: result.User.FirstName,
	})
}
