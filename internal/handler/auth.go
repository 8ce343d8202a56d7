package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aidar/project-hub/internal/domain"
	"github.com/aidar/project-hub/internal/service"
)

// AuthHandler обрабатывает эндпоинты аутентификации
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler создает новый AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRequest представляет тело запроса на регистрацию
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse представляет данные ответа на регистрацию
type RegisterResponse struct {
	User domain.UserSummary `json:"user"`
}

// Register обрабатывает POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeValidation, "invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusCreated, RegisterResponse{User: user.Summary()}, "Account created")
}

// LoginRequest представляет тело запроса на логин
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse представляет данные ответа на логин
type LoginResponse struct {
	Token string             `json:"token"`
	User  domain.UserSummary `json:"user"`
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeValidation, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeValidation, "username and password are required")
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, LoginResponse{Token: token, User: user.Summary()}, "")
}
