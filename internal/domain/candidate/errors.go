package candidate

import "errors"

var (
	ErrCVRequired        = errors.New("cv file is required")
	ErrCVTooLarge        = errors.New("cv file exceeds 5MB")
	ErrCVInvalidFormat   = errors.New("cv must be a pdf, doc or docx file")
	ErrCandidateNotFound = errors.New("candidate not found")
)
