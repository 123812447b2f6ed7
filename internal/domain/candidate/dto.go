package candidate

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
)

const MaxCVSize = 5 << 20

var AllowedCVExtensions = []string{".pdf", ".doc", ".docx"}

type RegisterCandidateRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Position   string `json:"position" validate:"required,max=100"`
	CVFilename string `json:"-"`
	CVSize     int64  `json:"-"`
}

func (r *RegisterCandidateRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Position = strings.TrimSpace(r.Position)

	errs := validator.Struct(r)

	switch {
	case r.CVFilename == "":
		errs.Add("cv", ErrCVRequired.Error())
	case !validator.IsInSlice(r.CVExtension(), AllowedCVExtensions):
		errs.Add("cv", ErrCVInvalidFormat.Error())
	case r.CVSize > MaxCVSize:
		errs.Add("cv", ErrCVTooLarge.Error())
	}

	return errs.Err()
}

func (r RegisterCandidateRequest) CVExtension() string {
	return strings.ToLower(filepath.Ext(r.CVFilename))
}

type CandidateFilter struct {
	Position *string
	Page     int
	Limit    int
}

func (f *CandidateFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

func (f CandidateFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type CandidateResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Position  string `json:"position"`
	CVURL     string `json:"cv_url"`
	AppliedOn string `json:"applied_on"`
}

type ListCandidateResponse struct {
	Data       []CandidateResponse `json:"data"`
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}

func NewCandidateResponse(c Candidate, cvURL string) CandidateResponse {
	return CandidateResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Position:  c.Position,
		CVURL:     cvURL,
		AppliedOn: c.AppliedOn.Format(time.RFC3339),
	}
}
