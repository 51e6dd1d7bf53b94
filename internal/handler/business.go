// internal/handler/business.go
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
	"github.com/ngeukam/backendmaoni/internal/repository"
	"github.com/ngeukam/backendmaoni/internal/service"
)

type BusinessHandler struct {
	businessService *service.BusinessService
}

func NewBusinessHandler(businessService *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

func (h *BusinessHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrBusinessNotFound):
		respondWithError(w, http.StatusNotFound, "Business not found")
	case errors.Is(err, domain.ErrDuplicateBusiness):
		respondWithError(w, http.StatusConflict, "Business already exists")
	case errors.Is(err, domain.ErrCategoryNotFound):
		respondWithError(w, http.StatusNotFound, "Category not found")
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Not allowed")
	case errors.Is(err, domain.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Business handler error", "error", err, "requestID", chimw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// CreateHandler registers a new business for the authenticated user.
func (h *BusinessHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var input service.CreateBusinessInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.businessService.Create(r.Context(), user.ID, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, struct {
		BaseResponse
		Business *model.Business `json:"business"`
		Codes    []model.Code    `json:"codes"`
	}{BaseResponse{Ok: true}, output.Business, output.Codes})
}

type BusinessDetailResponse struct {
	BaseResponse
	*service.BusinessDetail
}

// GetHandler returns one business with its review aggregates.
func (h *BusinessHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid business id")
		return
	}

	detail, err := h.businessService.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BusinessDetailResponse{BaseResponse{Ok: true}, detail})
}

// LookupHandler resolves a business by its (name, category, country, city)
// identity tuple passed as query parameters.
func (h *BusinessHandler) LookupHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("name")
	category := q.Get("category")
	country := q.Get("country")
	city := q.Get("city")
	if name == "" || category == "" || country == "" || city == "" {
		respondWithError(w, http.StatusBadRequest, "name, category, country and city are required")
		return
	}

	detail, err := h.businessService.Lookup(r.Context(), name, category, country, city)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BusinessDetailResponse{BaseResponse{Ok: true}, detail})
}

// ListHandler lists active businesses with optional filters.
func (h *BusinessHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	offset, limit := pagination(r)

	filter := repository.BusinessFilter{
		CategoryName:    q.Get("category"),
		Country:         q.Get("country"),
		City:            q.Get("city"),
		Name:            q.Get("name"),
		OnlyWithReviews: q.Get("with_reviews") == "true",
		ShowEvalOnly:    q.Get("showeval") == "true",
		Offset:          offset,
		Limit:           limit,
	}

	businesses, total, err := h.businessService.List(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Total:        total,
		Results:      businesses,
	})
}

// RelatedHandler returns other reviewed businesses in the same category.
func (h *BusinessHandler) RelatedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid business id")
		return
	}

	businesses, err := h.businessService.Related(r.Context(), id, 10)
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

// UpdateHandler edits a business the caller belongs to.
func (h *BusinessHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := urlUUID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid business id")
		return
	}

	var input service.UpdateBusinessInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	business, err := h.businessService.Update(r.Context(), user, id, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		BaseResponse
		Business *model.Business `json:"business"`
	}{BaseResponse{Ok: true}, business})
}

// VerifyHandler marks a business as verified. Staff only.
func (h *BusinessHandler) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := urlUUID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid business id")
		return
	}

	business, err := h.businessService.Verify(r.Context(), user, id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		BaseResponse
		Business *model.Business `json:"business"`
	}{BaseResponse{Ok: true}, business})
}

// CodesHandler lists the business's invitation codes for its members. The
// "active" query parameter picks fresh or burnt codes.
func (h *BusinessHandler) CodesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := urlUUID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid business id")
		return
	}

	active := r.URL.Query().Get("active") != "false"

	codes, err := h.businessService.Codes(r.Context(), user, id, active)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Total:        int64(len(codes)),
		Results:      codes,
	})
}
