package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterCandidateRequest_Validate(t *testing.T) {
	base := func() RegisterCandidateRequest {
		return RegisterCandidateRequest{
			Name:       "  Ravi Kumar ",
			Email:      "ravi@example.com",
			Position:   "Accountant",
			CVFilename: "Ravi_CV.PDF",
			CVSize:     1024,
		}
	}

	t.Run("valid and trimmed", func(t *testing.T) {
		req := base()
		assert.NoError(t, req.Validate())
		assert.Equal(t, "Ravi Kumar", req.Name)
		assert.Equal(t, ".pdf", req.CVExtension())
	})

	t.Run("missing cv", func(t *testing.T) {
		req := base()
		req.CVFilename = ""
		err := req.Validate()
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), ErrCVRequired.Error())
		}
	})

	t.Run("wrong format", func(t *testing.T) {
		req := base()
		req.CVFilename = "photo.png"
		err := req.Validate()
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), ErrCVInvalidFormat.Error())
		}
	})

	t.Run("too large", func(t *testing.T) {
		req := base()
		req.CVFilename = "cv.docx"
		req.CVSize = MaxCVSize + 1
		err := req.Validate()
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), ErrCVTooLarge.Error())
		}
	})
}
