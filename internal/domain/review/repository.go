package review

import "context"

type ReviewRepository interface {
	Create(ctx context.Context, r PerformanceReview) (PerformanceReview, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]PerformanceReview, error)
	// StatsByEmployee returns aggregates keyed by employee id; employees without
	// reviews are absent.
	StatsByEmployee(ctx context.Context) (map[string]ReviewStats, error)
}
