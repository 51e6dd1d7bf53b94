// internal/handler/auth.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ngeukam/backendmaoni/internal/auth"
	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/middleware"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

type SignupResponse struct {
	BaseResponse
	User     *model.User     `json:"user"`
	Business *model.Business `json:"business"`
	Codes    []model.Code    `json:"codes"`
}

// SignupHandler registers a manager together with their first business.
func (h *AuthHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var input service.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.userService.Signup(r.Context(), input)
	if err != nil {
		slog.ErrorContext(r.Context(), "User registration error", "error", err, "requestID", chimw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			respondWithError(w, http.StatusConflict, "Email already exists")
		case errors.Is(err, domain.ErrPasswordsDoNotMatch):
			respondWithError(w, http.StatusBadRequest, "Passwords do not match")
		case errors.Is(err, domain.ErrDuplicateBusiness):
			respondWithError(w, http.StatusConflict, "Business already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, SignupResponse{
		BaseResponse: BaseResponse{Ok: true},
		User:         output.User,
		Business:     output.Business,
		Codes:        output.Codes,
	})
}

type LoginResponse struct {
	BaseResponse
	User   *model.User     `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// LoginHandler authenticates a user. A second login while a session is live
// is refused with 409.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.authService.Login(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, domain.ErrSessionAlreadyActive):
			respondWithError(w, http.StatusConflict, "A session is already active for this account")
		case errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			slog.ErrorContext(r.Context(), "Login error", "error", err, "requestID", chimw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, LoginResponse{
		BaseResponse: BaseResponse{Ok: true},
		User:         output.User,
		Tokens:       output.Tokens,
	})
}

// LogoutHandler closes the caller's session. The body carries the refresh
// token to retire; an empty body still closes the session.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req RefreshRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	defer r.Body.Close()

	if err := h.authService.Logout(r.Context(), user.ID, req.RefreshToken); err != nil {
		switch {
		case errors.Is(err, domain.ErrNoActiveSession):
			respondWithError(w, http.StatusConflict, "No active session")
		default:
			slog.ErrorContext(r.Context(), "Logout error", "error", err, "requestID", chimw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type SessionResponse struct {
	BaseResponse
	Session *service.SessionStatus `json:"session"`
}

// SessionHandler reports whether the caller's session is still live.
func (h *AuthHandler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	status, err := h.authService.CheckSession(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Session check error", "error", err, "requestID", chimw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, SessionResponse{
		BaseResponse: BaseResponse{Ok: true},
		Session:      status,
	})
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	BaseResponse
	Tokens *auth.TokenPair `json:"tokens"`
}

// RefreshHandler exchanges a refresh token for a new token pair.
func (h *AuthHandler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	tokens, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRefreshToken):
			respondWithError(w, http.StatusUnauthorized, "Invalid refresh token")
		default:
			slog.ErrorContext(r.Context(), "Token refresh error", "error", err, "requestID", chimw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, RefreshResponse{
		BaseResponse: BaseResponse{Ok: true},
		Tokens:       tokens,
	})
}
