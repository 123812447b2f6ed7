package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)
	return s
}

func TestLocalStorage_UploadDownloadDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := t.Context()

	key, err := s.Upload(ctx, strings.NewReader("cv body"), "cvs/abc.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "cvs/abc.pdf", key)

	rc, err := s.Download(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "cv body", string(body))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Download(ctx, key)
	assert.ErrorIs(t, err, ErrFileNotFound)

	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, key))
}

func TestLocalStorage_TraversalStaysInsideBase(t *testing.T) {
	s := newTestStorage(t)

	key, err := s.Upload(t.Context(), strings.NewReader("x"), "../../etc/passwd", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", key)

	_, err = s.Upload(t.Context(), strings.NewReader("x"), "..", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocalStorage_URL(t *testing.T) {
	s := newTestStorage(t)
	assert.Equal(t, "http://localhost:8080/uploads/cvs/abc.pdf", s.URL("cvs/abc.pdf"))
}
