package domain

import (
	"context"
	"strings"
	"time"
)

// ImageKind selects which image slot an upload targets.
type ImageKind string

const (
	ImageFlyer      ImageKind = "flyer"
	ImageBackground ImageKind = "background"
)

// Valid reports whether k is a known kind.
func (k ImageKind) Valid() bool {
	return k == ImageFlyer || k == ImageBackground
}

// MaxUploadSize is the largest image the backend accepts. The client warns
// above it but still attempts the upload.
const MaxUploadSize = 5 * 1024 * 1024

// ImageMetadata describes an uploaded image.
type ImageMetadata struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
	Format string `json:"format"`
}

// ImageRef references an uploaded image.
type ImageRef struct {
	URL      string        `json:"url"`
	FileID   string        `json:"fileId"`
	Metadata ImageMetadata `json:"metadata"`
}

// UploadResult is the response of the upload endpoint.
// swagger:model UploadResult
type UploadResult struct {
	Success      bool      `json:"success"`
	URL          string    `json:"url"`
	UploadID     string    `json:"uploadId"`
	OriginalName string    `json:"originalName"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mimeType"`
	UploadedAt   time.Time `json:"uploadedAt"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
}

// ImageRef converts an upload response into the reference kept by the store.
func (u UploadResult) ImageRef() ImageRef {
	format := u.MimeType
	if i := strings.LastIndex(format, "/"); i >= 0 {
		format = format[i+1:]
	}
	return ImageRef{
		URL:    u.URL,
		FileID: u.UploadID,
		Metadata: ImageMetadata{
			Width:  u.Width,
			Height: u.Height,
			Size:   u.Size,
			Format: format,
		},
	}
}

// UploadInput is an image received by the backend.
type UploadInput struct {
	Kind     ImageKind
	Filename string
	Data     []byte
}

// BlobStore persists uploaded files by name.
type BlobStore interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
}

// UploadService defines the backend business logic for image uploads.
type UploadService interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
	Open(ctx context.Context, name string) (data []byte, mimeType string, err error)
}
