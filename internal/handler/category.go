// internal/handler/category.go
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

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		respondWithError(w, http.StatusNotFound, "Category not found")
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Not allowed")
	case errors.Is(err, domain.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Category handler error", "error", err, "requestID", chimw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *CategoryHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var input service.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	category, err := h.categoryService.Create(r.Context(), user, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, struct {
		BaseResponse
		Category *model.Category `json:"category"`
	}{BaseResponse{Ok: true}, category})
}

func (h *CategoryHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	category, err := h.categoryService.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		BaseResponse
		Category *model.Category `json:"category"`
	}{BaseResponse{Ok: true}, category})
}

// ListHandler returns root categories with their subcategories, or a name
// search when the "name" query parameter is present.
func (h *CategoryHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name != "" {
		offset, limit := pagination(r)
		categories, total, err := h.categoryService.Search(r.Context(), name, offset, limit)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, ListResponse{
			BaseResponse: BaseResponse{Ok: true},
			Total:        total,
			Results:      categories,
		})
		return
	}

	categories, err := h.categoryService.Roots(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Total:        int64(len(categories)),
		Results:      categories,
	})
}

// BusinessCountsHandler returns categories ranked by active business count.
func (h *CategoryHandler) BusinessCountsHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := h.categoryService.BusinessCounts(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Total:        int64(len(counts)),
		Results:      counts,
	})
}

func (h *CategoryHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := urlUUID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	var input service.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	category, err := h.categoryService.Update(r.Context(), user, id, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		BaseResponse
		Category *model.Category `json:"category"`
	}{BaseResponse{Ok: true}, category})
}

func (h *CategoryHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := urlUUID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	if err := h.categoryService.Delete(r.Context(), user, id); err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}
