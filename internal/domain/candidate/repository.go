package candidate

import "context"

type CandidateRepository interface {
	Create(ctx context.Context, c Candidate) (Candidate, error)
	List(ctx context.Context, filter CandidateFilter) ([]Candidate, int64, error)
}
