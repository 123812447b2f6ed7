package candidate

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/candidate"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/service/file"
)

const cvFolder = "cvs"

type CandidateServiceImpl struct {
	candidateRepo candidate.CandidateRepository
	fileService   file.FileService
	logger        *slog.Logger
}

func NewCandidateService(candidateRepo candidate.CandidateRepository, fileService file.FileService, logger *slog.Logger) candidate.CandidateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CandidateServiceImpl{
		candidateRepo: candidateRepo,
		fileService:   fileService,
		logger:        logger.With(slog.String("service", "candidate")),
	}
}

func (s *CandidateServiceImpl) Register(ctx context.Context, req candidate.RegisterCandidateRequest, cv io.Reader) (candidate.CandidateResponse, error) {
	if err := req.Validate(); err != nil {
		return candidate.CandidateResponse{}, err
	}

	key, err := s.fileService.UploadDocument(ctx, cvFolder, cv, req.CVFilename, candidate.MaxCVSize)
	if err != nil {
		switch {
		case errors.Is(err, file.ErrFileTooLarge):
			return candidate.CandidateResponse{}, cvError(candidate.ErrCVTooLarge)
		case errors.Is(err, file.ErrUnsupportedType):
			return candidate.CandidateResponse{}, cvError(candidate.ErrCVInvalidFormat)
		}
		return candidate.CandidateResponse{}, err
	}

	created, err := s.candidateRepo.Create(ctx, candidate.Candidate{
		Name:     req.Name,
		Email:    req.Email,
		Position: req.Position,
		CVPath:   key,
	})
	if err != nil {
		if delErr := s.fileService.DeleteFile(ctx, key); delErr != nil {
			s.logger.ErrorContext(ctx, "failed to remove orphaned cv",
				slog.String("key", key),
				slog.Any("error", delErr),
			)
		}
		return candidate.CandidateResponse{}, err
	}

	s.logger.InfoContext(ctx, "candidate registered",
		slog.String("candidate_id", created.ID),
		slog.String("position", created.Position),
	)
	return candidate.NewCandidateResponse(created, s.fileService.FileURL(created.CVPath)), nil
}

func (s *CandidateServiceImpl) ListCandidates(ctx context.Context, filter candidate.CandidateFilter) (candidate.ListCandidateResponse, error) {
	filter.Normalize()

	candidates, total, err := s.candidateRepo.List(ctx, filter)
	if err != nil {
		return candidate.ListCandidateResponse{}, err
	}

	data := make([]candidate.CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		data = append(data, candidate.NewCandidateResponse(c, s.fileService.FileURL(c.CVPath)))
	}
	return candidate.ListCandidateResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func cvError(err error) error {
	var errs validator.ValidationErrors
	errs.Add("cv", err.Error())
	return errs.Err()
}
