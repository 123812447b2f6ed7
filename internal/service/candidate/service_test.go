package candidate

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/candidate"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFiles struct {
	uploads   []string
	deleted   []string
	uploadErr error
}

func (f *fakeFiles) UploadDocument(ctx context.Context, folder string, r io.Reader, filename string, maxSize int64) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	key := folder + "/" + filename
	f.uploads = append(f.uploads, key)
	return key, nil
}

func (f *fakeFiles) DeleteFile(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeFiles) FileURL(key string) string {
	return "http://files/" + key
}

type memCandidates struct {
	created   []candidate.Candidate
	createErr error
}

func (m *memCandidates) Create(ctx context.Context, c candidate.Candidate) (candidate.Candidate, error) {
	if m.createErr != nil {
		return candidate.Candidate{}, m.createErr
	}
	c.ID = "cand-1"
	c.AppliedOn = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	m.created = append(m.created, c)
	return c, nil
}

func (m *memCandidates) List(ctx context.Context, f candidate.CandidateFilter) ([]candidate.Candidate, int64, error) {
	return m.created, int64(len(m.created)), nil
}

func validRequest() candidate.RegisterCandidateRequest {
	return candidate.RegisterCandidateRequest{
		Name:       "Mina Park",
		Email:      "mina@example.com",
		Position:   "Designer",
		CVFilename: "mina.pdf",
		CVSize:     2048,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores cv then candidate", func(t *testing.T) {
		files, repo := &fakeFiles{}, &memCandidates{}
		svc := NewCandidateService(repo, files, logger.Nop())

		resp, err := svc.Register(ctx, validRequest(), strings.NewReader("%PDF"))
		require.NoError(t, err)
		assert.Equal(t, "http://files/cvs/mina.pdf", resp.CVURL)
		require.Len(t, repo.created, 1)
		assert.Equal(t, "cvs/mina.pdf", repo.created[0].CVPath)
	})

	t.Run("invalid format never reaches storage", func(t *testing.T) {
		files := &fakeFiles{}
		svc := NewCandidateService(&memCandidates{}, files, logger.Nop())

		req := validRequest()
		req.CVFilename = "mina.png"
		_, err := svc.Register(ctx, req, strings.NewReader("img"))
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, candidate.ErrCVInvalidFormat.Error(), verrs.ToMap()["cv"])
		assert.Empty(t, files.uploads)
	})

	t.Run("stream larger than declared size", func(t *testing.T) {
		files := &fakeFiles{uploadErr: file.ErrFileTooLarge}
		svc := NewCandidateService(&memCandidates{}, files, logger.Nop())

		_, err := svc.Register(ctx, validRequest(), strings.NewReader("big"))
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, candidate.ErrCVTooLarge.Error(), verrs.ToMap()["cv"])
	})

	t.Run("failed insert removes the file", func(t *testing.T) {
		boom := errors.New("db down")
		files, repo := &fakeFiles{}, &memCandidates{createErr: boom}
		svc := NewCandidateService(repo, files, logger.Nop())

		_, err := svc.Register(ctx, validRequest(), strings.NewReader("%PDF"))
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, files.uploads, files.deleted)
	})
}

func TestListCandidates(t *testing.T) {
	repo := &memCandidates{created: []candidate.Candidate{{ID: "c1", Name: "A", CVPath: "cvs/a.pdf"}}}
	svc := NewCandidateService(repo, &fakeFiles{}, logger.Nop())

	list, err := svc.ListCandidates(context.Background(), candidate.CandidateFilter{})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "http://files/cvs/a.pdf", list.Data[0].CVURL)
	assert.Equal(t, 1, list.Page)
}
