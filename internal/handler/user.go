// internal/handler/user.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/middleware"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		respondWithError(w, http.StatusConflict, "Email already exists")
	case errors.Is(err, domain.ErrMembershipNotFound):
		respondWithError(w, http.StatusNotFound, "Membership not found")
	case errors.Is(err, domain.ErrDuplicateMember):
		respondWithError(w, http.StatusConflict, "User is already attached to this business")
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Not allowed")
	case errors.Is(err, domain.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "User handler error", "error", err, "requestID", chimw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// MeHandler returns the caller's account.
func (h *UserHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		BaseResponse
		User *model.User `json:"user"`
	}{BaseResponse{Ok: true}, user})
}

// MyBusinessesHandler lists the caller's active businesses.
func (h *UserHandler) MyBusinessesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	businesses, err := h.userService.Businesses(r.Context(), user.ID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Total:        int64(len(businesses)),
		Results:      businesses,
	})
}

// ColleaguesHandler lists other users sharing the caller's businesses.
func (h *UserHandler) ColleaguesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	colleagues, err := h.userService.Colleagues(r.Context(), user.ID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Total:        int64(len(colleagues)),
		Results:      colleagues,
	})
}

// CreateCollaboratorHandler adds a collaborator account to the caller's
// businesses.
func (h *UserHandler) CreateCollaboratorHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var input service.CreateCollaboratorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	collaborator, err := h.userService.CreateCollaborator(r.Context(), user, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, struct {
		BaseResponse
		User *model.User `json:"user"`
	}{BaseResponse{Ok: true}, collaborator})
}

// AttachBusinessesHandler links an existing user to more of the caller's
// businesses. The new memberships start inactive.
func (h *UserHandler) AttachBusinessesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	userID, ok := urlUUID(r, "userID")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var input service.AttachBusinessesInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	memberships, err := h.userService.AttachBusinesses(r.Context(), user, userID, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Total:        int64(len(memberships)),
		Results:      memberships,
	})
}

// RemoveMembershipHandler detaches a user from a business.
func (h *UserHandler) RemoveMembershipHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	userID, ok := urlUUID(r, "userID")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	businessID, ok := urlUUID(r, "businessID")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid business id")
		return
	}

	if err := h.userService.RemoveMembership(r.Context(), user, userID, businessID); err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

// ChangePasswordHandler rotates the caller's password.
func (h *UserHandler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var input service.ChangePasswordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.userService.ChangePassword(r.Context(), user.ID, input); err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}
