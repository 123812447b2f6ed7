package review

import "time"

type PerformanceReview struct {
	ID         string
	EmployeeID string
	Rating     int
	ReviewDate time.Time
	Comments   string
	CreatedAt  time.Time
}

// ReviewStats aggregates the reviews of one employee.
type ReviewStats struct {
	EmployeeID    string
	ReviewCount   int
	AverageRating float64
}

// PromotionRule decides eligibility from tenure and review history.
type PromotionRule struct {
	MinTenureMonths  int
	MinReviews       int
	MinAverageRating float64
}

func DefaultPromotionRule() PromotionRule {
	return PromotionRule{MinTenureMonths: 12, MinReviews: 1, MinAverageRating: 4.0}
}

// Evaluate returns whether the employee qualifies and, if not, the first
// unmet condition.
func (r PromotionRule) Evaluate(tenureMonths int, stats ReviewStats) (bool, string) {
	switch {
	case tenureMonths < r.MinTenureMonths:
		return false, "insufficient tenure"
	case stats.ReviewCount < r.MinReviews:
		return false, "no performance reviews"
	case stats.AverageRating < r.MinAverageRating:
		return false, "average rating below threshold"
	}
	return true, ""
}
