package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soyRex-codes/mybank/internal/adapter/http/dto"
	"github.com/soyRex-codes/mybank/internal/domain"
	"github.com/soyRex-codes/mybank/internal/infrastructure/auth"
	"github.com/soyRex-codes/mybank/internal/usecase"
)

// UserService defines the behavior needed by UserHandler.
type UserService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// UserHandler handles user and authentication HTTP requests. The JWT
// manager is optional: when nil, login verifies credentials but does
// not issue tokens.
type UserHandler struct {
	userUC     UserService
	jwtManager *auth.JWTManager
}

func NewUserHandler(userUC UserService, jwtManager *auth.JWTManager) *UserHandler {
	return &UserHandler{userUC: userUC, jwtManager: jwtManager}
}

// Register creates a new user.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to register user", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.UserFromDomain(user))
}

// Login verifies credentials and, when a JWT manager is configured,
// returns a signed token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userUC.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, mapDomainError(err), "login failed", err.Error())
		return
	}

	resp := dto.AuthResponse{User: dto.UserFromDomain(user)}
	if h.jwtManager != nil {
		token, err := h.jwtManager.Generate(user)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to issue token", err.Error())
			return
		}
		resp.Token = token
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get retrieves a user by id.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	user, err := h.userUC.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}
