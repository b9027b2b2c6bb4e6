package resume

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog/log"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/config"
	"recruitment-hub/internal/domain"
)

const DefaultMaxSize = 5 << 20

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

var (
	ErrUnsupportedType = domain.NewValidationError("Only PDF, DOC and DOCX files are allowed")
	ErrEmptyFile       = domain.NewValidationError("File is empty")
)

// objectPutter is the part of *minio.Client the service uses.
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type Upload struct {
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
	Key      string `json:"key"`
	URL      string `json:"url"`
}

type Service interface {
	Upload(ctx context.Context, caller *domain.Account, fileName string, size int64, reader io.Reader) (*Upload, error)
}

type service struct {
	store    objectPutter
	bucket   string
	endpoint string
	useSSL   bool
	maxSize  int64
	gate     access.Gate
	now      func() time.Time
}

func NewService(client *minio.Client, cfg *config.Config, gate access.Gate) Service {
	return newService(client, cfg, gate)
}

func newService(store objectPutter, cfg *config.Config, gate access.Gate) *service {
	maxSize := cfg.ResumeMaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	endpoint := cfg.MinIOPublicEndpoint
	if endpoint == "" {
		endpoint = cfg.MinIOEndpoint
	}
	return &service{
		store:    store,
		bucket:   cfg.MinIOBucket,
		endpoint: endpoint,
		useSSL:   cfg.MinIOPublicUseSSL,
		maxSize:  maxSize,
		gate:     gate,
		now:      time.Now,
	}
}

func (s *service) Upload(ctx context.Context, caller *domain.Account, fileName string, size int64, reader io.Reader) (*Upload, error) {
	if err := s.gate.Authorize(caller, access.ResourceResume, access.ActionUpload); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	contentType, ok := contentTypes[ext]
	if !ok {
		return nil, ErrUnsupportedType
	}
	if size <= 0 {
		return nil, ErrEmptyFile
	}
	if size > s.maxSize {
		return nil, domain.NewValidationError(fmt.Sprintf("File size cannot exceed %d MB", s.maxSize>>20))
	}

	key := path.Join("resumes", caller.ID.String(), s.now().UTC().Format("2006/01"), uuid.NewString()+ext)

	_, err := s.store.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	log.Info().Str("account_id", caller.ID.String()).Str("key", key).Int64("size", size).Msg("resume uploaded")

	return &Upload{
		FileName: fileName,
		Size:     size,
		Key:      key,
		URL:      s.publicURL(key),
	}, nil
}

func (s *service) publicURL(key string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key)
}
