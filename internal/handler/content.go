// internal/handler/content.go
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

type ContentHandler struct {
	contentService *service.ContentService
}

func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (h *ContentHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Not allowed")
	case errors.Is(err, domain.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Content handler error", "error", err, "requestID", chimw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *ContentHandler) ListBannersHandler(w http.ResponseWriter, r *http.Request) {
	banners, err := h.contentService.Banners(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Total:        int64(len(banners)),
		Results:      banners,
	})
}

func (h *ContentHandler) CreateBannerHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var input service.BannerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	banner, err := h.contentService.CreateBanner(r.Context(), user, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, struct {
		BaseResponse
		Banner *model.Banner `json:"banner"`
	}{BaseResponse{Ok: true}, banner})
}

func (h *ContentHandler) UpdateBannerHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := urlUUID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid banner id")
		return
	}

	var input service.BannerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	banner, err := h.contentService.UpdateBanner(r.Context(), user, id, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		BaseResponse
		Banner *model.Banner `json:"banner"`
	}{BaseResponse{Ok: true}, banner})
}

func (h *ContentHandler) DeleteBannerHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := urlUUID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid banner id")
		return
	}

	if err := h.contentService.DeleteBanner(r.Context(), user, id); err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

func (h *ContentHandler) ListSlidesHandler(w http.ResponseWriter, r *http.Request) {
	slides, err := h.contentService.Slides(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Total:        int64(len(slides)),
		Results:      slides,
	})
}

func (h *ContentHandler) CreateSlideHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var input service.SlideInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	slide, err := h.contentService.CreateSlide(r.Context(), user, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, struct {
		BaseResponse
		Slide *model.Slide `json:"slide"`
	}{BaseResponse{Ok: true}, slide})
}

func (h *ContentHandler) UpdateSlideHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := urlUUID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid slide id")
		return
	}

	var input service.SlideInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	slide, err := h.contentService.UpdateSlide(r.Context(), user, id, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		BaseResponse
		Slide *model.Slide `json:"slide"`
	}{BaseResponse{Ok: true}, slide})
}

func (h *ContentHandler) DeleteSlideHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := urlUUID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid slide id")
		return
	}

	if err := h.contentService.DeleteSlide(r.Context(), user, id); err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}
