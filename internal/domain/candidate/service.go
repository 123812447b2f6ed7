package candidate

import (
	"context"
	"io"
)

type CandidateService interface {
	// Register stores the CV then the candidate row; the file is removed if the insert fails.
	Register(ctx context.Context, req RegisterCandidateRequest, cv io.Reader) (CandidateResponse, error)
	ListCandidates(ctx context.Context, filter CandidateFilter) (ListCandidateResponse, error)
}
