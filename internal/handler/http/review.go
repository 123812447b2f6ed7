package http

import (
	"net/http"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/review"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/handler/http/response"
)

type ReviewHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	PromotionEligibility(w http.ResponseWriter, r *http.Request)
}

type reviewHandlerImpl struct {
	reviewService review.ReviewService
}

func NewReviewHandler(reviewService review.ReviewService) ReviewHandler {
	return &reviewHandlerImpl{reviewService: reviewService}
}

func (h *reviewHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req review.CreateReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.reviewService.CreateReview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Review recorded", result)
}

// PromotionEligibility accepts an optional as_of date (YYYY-MM-DD)
func (h *reviewHandlerImpl) PromotionEligibility(w http.ResponseWriter, r *http.Request) {
	result, err := h.reviewService.PromotionEligibility(r.Context(), r.URL.Query().Get("as_of"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
