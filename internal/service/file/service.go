package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
)

// documentTypes maps accepted document extensions to their content type.
var documentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type FileService interface {
	// UploadDocument stores a pdf/doc/docx under folder with a random name
	// and returns its storage key. At most maxSize bytes are accepted.
	UploadDocument(ctx context.Context, folder string, file io.Reader, filename string, maxSize int64) (string, error)

	DeleteFile(ctx context.Context, key string) error
	FileURL(key string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

func (s *fileServiceImpl) UploadDocument(ctx context.Context, folder string, file io.Reader, filename string, maxSize int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := documentTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	key := path.Join(folder, uuid.New().String()+ext)
	limited := &limitedReader{r: file, remaining: maxSize}

	uploaded, err := s.storage.Upload(ctx, limited, key, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}
	if limited.exceeded {
		_ = s.storage.Delete(ctx, uploaded)
		return "", ErrFileTooLarge
	}

	return uploaded, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func (s *fileServiceImpl) FileURL(key string) string {
	return s.storage.URL(key)
}

// limitedReader stops after remaining bytes and records whether the source
// had more to give.
type limitedReader struct {
	r         io.Reader
	remaining int64
	exceeded  bool
}

// maxEmptyReads bounds the (0, nil) reads tolerated while looking for a byte
// past the limit, as bufio does.
const maxEmptyReads = 100

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		var extra [1]byte
		for range maxEmptyReads {
			n, err := l.r.Read(extra[:])
			if n > 0 {
				l.exceeded = true
				return 0, io.EOF
			}
			if err != nil {
				return 0, io.EOF
			}
		}
		return 0, io.ErrNoProgress
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	return n, err
}
