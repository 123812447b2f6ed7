package review

import (
	"context"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/review"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
)

type ReviewServiceImpl struct {
	reviewRepo   review.ReviewRepository
	employeeRepo employee.EmployeeRepository
	rule         review.PromotionRule
	now          func() time.Time
}

func NewReviewService(reviewRepo review.ReviewRepository, employeeRepo employee.EmployeeRepository, rule review.PromotionRule) review.ReviewService {
	return &ReviewServiceImpl{
		reviewRepo:   reviewRepo,
		employeeRepo: employeeRepo,
		rule:         rule,
		now:          time.Now,
	}
}

func (s *ReviewServiceImpl) CreateReview(ctx context.Context, req review.CreateReviewRequest) (review.ReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return review.ReviewResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return review.ReviewResponse{}, err
	}

	reviewDate, _ := validator.IsValidDate(req.ReviewDate)
	created, err := s.reviewRepo.Create(ctx, review.PerformanceReview{
		EmployeeID: req.EmployeeID,
		Rating:     req.Rating,
		ReviewDate: reviewDate,
		Comments:   req.Comments,
	})
	if err != nil {
		return review.ReviewResponse{}, err
	}
	return review.NewReviewResponse(created), nil
}

func (s *ReviewServiceImpl) ListEmployeeReviews(ctx context.Context, employeeID string) ([]review.ReviewResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	out := make([]review.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, review.NewReviewResponse(r))
	}
	return out, nil
}

// PromotionEligibility evaluates the whole roster, in employee code order.
func (s *ReviewServiceImpl) PromotionEligibility(ctx context.Context, asOf string) (review.PromotionReport, error) {
	at := s.now().UTC()
	if asOf != "" {
		parsed, ok := validator.IsValidDate(asOf)
		if !ok {
			var errs validator.ValidationErrors
			errs.Add("as_of", "must be a date in YYYY-MM-DD format")
			return review.PromotionReport{}, errs.Err()
		}
		at = parsed
	}

	employees, err := s.employeeRepo.GetAll(ctx)
	if err != nil {
		return review.PromotionReport{}, err
	}
	stats, err := s.reviewRepo.StatsByEmployee(ctx)
	if err != nil {
		return review.PromotionReport{}, err
	}

	report := review.PromotionReport{
		AsOf:      at.Format("2006-01-02"),
		Employees: make([]review.PromotionCandidate, 0, len(employees)),
	}
	for _, emp := range employees {
		st := stats[emp.ID]
		tenure := emp.TenureMonths(at)
		eligible, reason := s.rule.Evaluate(tenure, st)
		if eligible {
			report.EligibleCount++
		}
		report.Employees = append(report.Employees, review.PromotionCandidate{
			EmployeeID:    emp.ID,
			EmployeeCode:  emp.EmployeeCode,
			FullName:      emp.FullName,
			Position:      emp.Position,
			TenureMonths:  tenure,
			ReviewCount:   st.ReviewCount,
			AverageRating: st.AverageRating,
			Eligible:      eligible,
			Reason:        reason,
		})
	}
	return report, nil
}
