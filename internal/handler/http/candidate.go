package http

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/candidate"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/handler/http/response"
)

// multipartOverhead leaves room for the text fields next to the CV.
const multipartOverhead = 1 << 20

type CandidateHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type candidateHandlerImpl struct {
	candidateService candidate.CandidateService
}

func NewCandidateHandler(candidateService candidate.CandidateService) CandidateHandler {
	return &candidateHandlerImpl{candidateService: candidateService}
}

func (h *candidateHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, candidate.MaxCVSize+multipartOverhead)
	if err := r.ParseMultipartForm(candidate.MaxCVSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.ValidationError(w, map[string]string{"cv": candidate.ErrCVTooLarge.Error()})
			return
		}
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := candidate.RegisterCandidateRequest{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Position: r.FormValue("position"),
	}

	file, header, err := r.FormFile("cv")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		response.BadRequest(w, "Invalid CV upload", nil)
		return
	}
	if file != nil {
		defer file.Close()
		req.CVFilename = header.Filename
		req.CVSize = header.Size
	}

	result, err := h.candidateService.Register(r.Context(), req, file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Application received", result)
}

func (h *candidateHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := candidate.CandidateFilter{Position: optionalQuery(r, "position")}
	filter.Page, filter.Limit = pageParams(r)

	result, err := h.candidateService.ListCandidates(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}
