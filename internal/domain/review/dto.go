package review

import (
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
)

type CreateReviewRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Rating     int    `json:"rating" validate:"min=1,max=5"`
	ReviewDate string `json:"review_date" validate:"required,datetime=2006-01-02"`
	Comments   string `json:"comments" validate:"max=2000"`
}

func (r *CreateReviewRequest) Validate() error {
	errs := validator.Struct(r)
	if d, ok := validator.IsValidDate(r.ReviewDate); ok && d.After(time.Now()) {
		errs.Add("review_date", "must not be in the future")
	}
	return errs.Err()
}

type ReviewResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Rating     int    `json:"rating"`
	ReviewDate string `json:"review_date"`
	Comments   string `json:"comments"`
}

func NewReviewResponse(r PerformanceReview) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Rating:     r.Rating,
		ReviewDate: r.ReviewDate.Format("2006-01-02"),
		Comments:   r.Comments,
	}
}

type PromotionCandidate struct {
	EmployeeID    string  `json:"employee_id"`
	EmployeeCode  string  `json:"employee_code"`
	FullName      string  `json:"full_name"`
	Position      string  `json:"position"`
	TenureMonths  int     `json:"tenure_months"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
	Eligible      bool    `json:"eligible"`
	Reason        string  `json:"reason,omitempty"`
}

type PromotionReport struct {
	AsOf          string               `json:"as_of"`
	EligibleCount int                  `json:"eligible_count"`
	Employees     []PromotionCandidate `json:"employees"`
}
