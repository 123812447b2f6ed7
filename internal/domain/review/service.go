package review

import "context"

type ReviewService interface {
	CreateReview(ctx context.Context, req CreateReviewRequest) (ReviewResponse, error)
	ListEmployeeReviews(ctx context.Context, employeeID string) ([]ReviewResponse, error)
	// PromotionEligibility reports every employee against the promotion rule
	// at the given reference date (today when empty).
	PromotionEligibility(ctx context.Context, asOf string) (PromotionReport, error)
}
