// internal/handler/code.go
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/service"
)

type CodeHandler struct {
	codeService *service.CodeService
}

func NewCodeHandler(codeService *service.CodeService) *CodeHandler {
	return &CodeHandler{codeService: codeService}
}

type CodeStatusResponse struct {
	BaseResponse
	InvitationCode string `json:"invitation_code"`
	IsActive       bool   `json:"is_active"`
}

// StatusHandler reports whether an invitation code is still usable without
// consuming it.
func (h *CodeHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	token := strings.ToUpper(chi.URLParam(r, "token"))

	code, err := h.codeService.CheckStatus(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCodeNotFound):
			respondWithError(w, http.StatusNotFound, "Invitation code not found")
		default:
			slog.ErrorContext(r.Context(), "Code status error", "error", err, "requestID", chimw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, CodeStatusResponse{
		BaseResponse:   BaseResponse{Ok: true},
		InvitationCode: code.InvitationCode,
		IsActive:       code.IsActive,
	})
}
