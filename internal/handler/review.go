// internal/handler/review.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ngeukam/backendmaoni/internal/domain"
	"github.com/ngeukam/backendmaoni/internal/middleware"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/repository"
	"github.com/ngeukam/backendmaoni/internal/service"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrCodeInvalidOrInactive):
		respondWithError(w, http.StatusConflict, "Invitation code is invalid or already used")
	case errors.Is(err, domain.ErrCodeNotFound):
		respondWithError(w, http.StatusNotFound, "Invitation code not found")
	case errors.Is(err, domain.ErrInvalidContact):
		respondWithError(w, http.StatusBadRequest, "Contact must be an email address or a phone number")
	case errors.Is(err, domain.ErrReviewNotFound):
		respondWithError(w, http.StatusNotFound, "Review not found")
	case errors.Is(err, domain.ErrBusinessNotFound):
		respondWithError(w, http.StatusNotFound, "Business not found")
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Not allowed")
	case errors.Is(err, domain.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Review handler error", "error", err, "requestID", chimw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// CreateHandler submits a review. Anonymous; the invitation code is the
// credential.
func (h *ReviewHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input service.CreateReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	review, err := h.reviewService.Create(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, struct {
		BaseResponse
		Review *model.Review `json:"review"`
	}{BaseResponse{Ok: true}, review})
}

func (h *ReviewHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid review id")
		return
	}

	review, err := h.reviewService.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		BaseResponse
		Review *model.Review `json:"review"`
	}{BaseResponse{Ok: true}, review})
}

// RecentHandler returns the newest public reviews.
func (h *ReviewHandler) RecentHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	reviews, err := h.reviewService.Recent(r.Context(), limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Total:        int64(len(reviews)),
		Results:      reviews,
	})
}

// ListHandler lists public reviews, filtered by attributes of the reviewed
// business: business_id, category, country, city and name query parameters,
// paginated.
func (h *ReviewHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	offset, limit := pagination(r)
	filter := repository.ReviewFilter{
		CategoryName: query.Get("category"),
		Country:      query.Get("country"),
		City:         query.Get("city"),
		BusinessName: query.Get("name"),
		Offset:       offset,
		Limit:        limit,
	}

	if raw := query.Get("business_id"); raw != "" {
		businessID, err := uuid.Parse(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid business id")
			return
		}
		filter.BusinessID = &businessID
	}

	reviews, total, err := h.reviewService.List(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Total:        total,
		Results:      reviews,
	})
}

// MineHandler lists reviews across the caller's businesses.
func (h *ReviewHandler) MineHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	offset, limit := pagination(r)
	reviews, total, err := h.reviewService.ForUser(r.Context(), user.ID, offset, limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Total:        total,
		Results:      reviews,
	})
}

// DeactivateHandler soft deletes a review.
func (h *ReviewHandler) DeactivateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := urlUUID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid review id")
		return
	}

	if err := h.reviewService.Deactivate(r.Context(), user, id); err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

// AddCommentHandler attaches a reply to a review.
func (h *ReviewHandler) AddCommentHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := urlUUID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid review id")
		return
	}

	var input service.AddCommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	comment, err := h.reviewService.AddComment(r.Context(), user, id, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, struct {
		BaseResponse
		Comment *model.Comment `json:"comment"`
	}{BaseResponse{Ok: true}, comment})
}

// CommentsHandler lists a review's replies.
func (h *ReviewHandler) CommentsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid review id")
		return
	}

	comments, err := h.reviewService.Comments(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Total:        int64(len(comments)),
		Results:      comments,
	})
}

// CreateReportHandler attaches an analytics document to a business. Staff
// only.
func (h *ReviewHandler) CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var input service.CreateReportInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	report, err := h.reviewService.CreateReport(r.Context(), user, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, struct {
		BaseResponse
		Report *model.Report `json:"report"`
	}{BaseResponse{Ok: true}, report})
}

// MyReportsHandler lists analytics documents for the caller's businesses.
func (h *ReviewHandler) MyReportsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Principal(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	reports, err := h.reviewService.ReportsForUser(r.Context(), user.ID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Total:        int64(len(reports)),
		Results:      reports,
	})
}
