package services

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"eventcreator/internal/domain"

	"golang.org/x/crypto/blake2b"
)

// acceptedImageTypes maps each accepted MIME type to its stored extension.
var acceptedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type uploadService struct {
	blobs         domain.BlobStore
	publicBaseURL string
	logger        *slog.Logger
	now           func() time.Time
}

// NewUploadService returns an UploadService storing images in blobs and
// serving them from {publicBaseURL}/uploads/{name}.
func NewUploadService(blobs domain.BlobStore, publicBaseURL string, logger *slog.Logger) domain.UploadService {
	return &uploadService{
		blobs:         blobs,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
		now:           time.Now,
	}
}

// Upload stores an image under a content-derived name, so re-uploading the
// same bytes yields the same URL.
func (s *uploadService) Upload(ctx context.Context, in domain.UploadInput) (*domain.UploadResult, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: type must be flyer or background", domain.ErrInvalidUpload)
	}
	if len(in.Data) == 0 {
		return nil, fmt.Errorf("%w: no file provided", domain.ErrInvalidUpload)
	}
	if len(in.Data) > domain.MaxUploadSize {
		return nil, fmt.Errorf("%w: file exceeds 5MB", domain.ErrInvalidUpload)
	}

	mimeType := http.DetectContentType(in.Data)
	ext, ok := acceptedImageTypes[mimeType]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an accepted image type", domain.ErrInvalidUpload, mimeType)
	}

	var width, height int
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(in.Data)); err == nil {
		width, height = cfg.Width, cfg.Height
	} else if mimeType != "image/webp" {
		return nil, fmt.Errorf("%w: unreadable image: %w", domain.ErrInvalidUpload, err)
	}

	sum := blake2b.Sum256(in.Data)
	id := hex.EncodeToString(sum[:16])
	name := id + ext
	if err := s.blobs.Put(ctx, name, in.Data); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	s.logger.InfoContext(ctx, "image uploaded", "kind", in.Kind, "name", name, "size", len(in.Data))

	return &domain.UploadResult{
		Success:      true,
		URL:          s.publicBaseURL + "/uploads/" + name,
		UploadID:     id,
		OriginalName: in.Filename,
		Size:         int64(len(in.Data)),
		MimeType:     mimeType,
		UploadedAt:   s.now().UTC(),
		Width:        width,
		Height:       height,
	}, nil
}

func (s *uploadService) Open(ctx context.Context, name string) ([]byte, string, error) {
	data, err := s.blobs.Get(ctx, name)
	if err != nil {
		return nil, "", err
	}
	ext := filepath.Ext(name)
	for mimeType, e := range acceptedImageTypes {
		if e == ext {
			return data, mimeType, nil
		}
	}
	return data, http.DetectContentType(data), nil
}
