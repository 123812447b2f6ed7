package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/review"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
)

type reviewRepositoryImpl struct {
	db *database.DB
}

func NewReviewRepository(db *database.DB) review.ReviewRepository {
	return &reviewRepositoryImpl{db: db}
}

func (r *reviewRepositoryImpl) Create(ctx context.Context, rv review.PerformanceReview) (review.PerformanceReview, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO performance_reviews (employee_id, rating, review_date, comments)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, rv.EmployeeID, rv.Rating, rv.ReviewDate, rv.Comments).Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) || isNoRows(err) {
			return review.PerformanceReview{}, employee.ErrEmployeeNotFound
		}
		return review.PerformanceReview{}, fmt.Errorf("failed to create performance review: %w", err)
	}
	return rv, nil
}

func (r *reviewRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]review.PerformanceReview, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, rating, review_date, comments, created_at
		FROM performance_reviews
		WHERE employee_id = $1
		ORDER BY review_date DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		if isNoRows(err) {
			return []review.PerformanceReview{}, nil
		}
		return nil, fmt.Errorf("failed to list performance reviews: %w", err)
	}
	defer rows.Close()

	reviews := []review.PerformanceReview{}
	for rows.Next() {
		var rv review.PerformanceReview
		if err := rows.Scan(&rv.ID, &rv.EmployeeID, &rv.Rating, &rv.ReviewDate, &rv.Comments, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan performance review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *reviewRepositoryImpl) StatsByEmployee(ctx context.Context) (map[string]review.ReviewStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, COUNT(*), AVG(rating)::float8
		FROM performance_reviews
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate performance reviews: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]review.ReviewStats)
	for rows.Next() {
		var s review.ReviewStats
		if err := rows.Scan(&s.EmployeeID, &s.ReviewCount, &s.AverageRating); err != nil {
			return nil, fmt.Errorf("failed to scan review stats: %w", err)
		}
		stats[s.EmployeeID] = s
	}
	return stats, rows.Err()
}
