package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/candidate"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
)

type candidateRepositoryImpl struct {
	db *database.DB
}

func NewCandidateRepository(db *database.DB) candidate.CandidateRepository {
	return &candidateRepositoryImpl{db: db}
}

func (r *candidateRepositoryImpl) Create(ctx context.Context, c candidate.Candidate) (candidate.Candidate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO candidates (name, email, position, cv_path)
		VALUES ($1, $2, $3, $4)
		RETURNING id, applied_on
	`

	if err := q.QueryRow(ctx, query, c.Name, c.Email, c.Position, c.CVPath).Scan(&c.ID, &c.AppliedOn); err != nil {
		return candidate.Candidate{}, fmt.Errorf("failed to create candidate: %w", err)
	}
	return c, nil
}

func (r *candidateRepositoryImpl) List(ctx context.Context, filter candidate.CandidateFilter) ([]candidate.Candidate, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ""
	args := []interface{}{}
	if filter.Position != nil {
		where = " WHERE position ILIKE $1"
		args = append(args, "%"+*filter.Position+"%")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM candidates`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count candidates: %w", err)
	}

	query := `SELECT id, name, email, position, cv_path, applied_on FROM candidates` + where +
		fmt.Sprintf(" ORDER BY applied_on DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []candidate.Candidate{}
	for rows.Next() {
		var c candidate.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Position, &c.CVPath, &c.AppliedOn); err != nil {
			return nil, 0, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return candidates, total, nil
}
