package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventcreator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUploadService implements domain.UploadService for handler tests.
type fakeUploadService struct {
	err       error
	files     map[string][]byte
	lastInput domain.UploadInput
}

func (f *fakeUploadService) Upload(_ context.Context, in domain.UploadInput) (*domain.UploadResult, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.UploadResult{
		Success:      true,
		URL:          "http://localhost:8080/uploads/abc.png",
		UploadID:     "abc",
		OriginalName: in.Filename,
		Size:         int64(len(in.Data)),
		MimeType:     "image/png",
		UploadedAt:   testTime,
	}, nil
}

func (f *fakeUploadService) Open(_ context.Context, name string) ([]byte, string, error) {
	if d, ok := f.files[name]; ok {
		return d, "image/png", nil
	}
	return nil, "", domain.ErrNotFound
}

func multipartRequest(t *testing.T, kind string, file []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if file != nil {
		fw, err := mw.CreateFormFile("file", "flyer.png")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.WriteField("type", kind))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadController_Upload(t *testing.T) {
	tests := []struct {
		name        string
		req         func(t *testing.T) *http.Request
		svcErr      error
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "uploaded",
			req:        func(t *testing.T) *http.Request { return multipartRequest(t, "flyer", []byte("png-bytes")) },
			wantStatus: http.StatusOK,
		},
		{
			name:        "no file part",
			req:         func(t *testing.T) *http.Request { return multipartRequest(t, "flyer", nil) },
			wantStatus:  http.StatusBadRequest,
			wantMessage: "No file provided",
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewBufferString(`{}`))
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "No file provided",
		},
		{
			name:        "rejected image",
			req:         func(t *testing.T) *http.Request { return multipartRequest(t, "flyer", []byte("text")) },
			svcErr:      fmt.Errorf("%w: text/plain is not an accepted image type", domain.ErrInvalidUpload),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "text/plain is not an accepted image type",
		},
		{
			name:        "storage failure",
			req:         func(t *testing.T) *http.Request { return multipartRequest(t, "flyer", []byte("png-bytes")) },
			svcErr:      errors.New("disk full"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to store file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeUploadService{err: tt.svcErr}
			c := NewUploadController(testLogger, svc)
			rr := httptest.NewRecorder()

			c.Upload(rr, tt.req(t))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeError(t, rr).Message)
				return
			}
			var got domain.UploadResult
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
			assert.True(t, got.Success)
			assert.Equal(t, "flyer.png", got.OriginalName)
			assert.Equal(t, domain.ImageFlyer, svc.lastInput.Kind)
			assert.Equal(t, []byte("png-bytes"), svc.lastInput.Data)
		})
	}
}

func TestUploadController_ServeUpload(t *testing.T) {
	c := NewUploadController(testLogger, &fakeUploadService{files: map[string][]byte{"abc.png": []byte("img")}})

	req := httptest.NewRequest(http.MethodGet, "/uploads/abc.png", nil)
	req.SetPathValue("name", "abc.png")
	rr := httptest.NewRecorder()
	c.ServeUpload(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, "img", rr.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/uploads/missing.png", nil)
	req.SetPathValue("name", "missing.png")
	rr = httptest.NewRecorder()
	c.ServeUpload(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)
}
