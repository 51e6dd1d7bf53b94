// internal/handler/translation.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/middleware"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/service"
)

type TranslationHandler struct {
	translationService *service.TranslationService
}

func NewTranslationHandler(translationService *service.TranslationService) *TranslationHandler {
	return &TranslationHandler{translationService: translationService}
}

type DictionaryResponse struct {
	BaseResponse
	Language     string            `json:"language"`
	Translations map[string]string `json:"translations"`
}

// DictionaryHandler serves the translation dictionary for a language code.
func (h *TranslationHandler) DictionaryHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	dict, err := h.translationService.Dictionary(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLanguageNotFound):
			respondWithError(w, http.StatusNotFound, "Language not found")
		default:
			slog.ErrorContext(r.Context(), "Translation error", "error", err, "requestID", chimw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, DictionaryResponse{
		BaseResponse: BaseResponse{Ok: true},
		Language:     code,
		Translations: dict,
	})
}

// UpsertHandler sets one translation key. Staff only.
func (h *TranslationHandler) UpsertHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var input service.UpsertTranslationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	translation, err := h.translationService.Upsert(r.Context(), user, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLanguageNotFound):
			respondWithError(w, http.StatusNotFound, "Language not found")
		case errors.Is(err, domain.ErrForbidden):
			respondWithError(w, http.StatusForbidden, "Not allowed")
		case errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			slog.ErrorContext(r.Context(), "Translation upsert error", "error", err, "requestID", chimw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		BaseResponse
		Translation *model.Translation `json:"translation"`
	}{BaseResponse{Ok: true}, translation})
}
