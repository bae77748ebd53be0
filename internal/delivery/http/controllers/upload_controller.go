package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"eventcreator/internal/delivery/http/helpers"
	"eventcreator/internal/domain"
)

// multipartOverhead is allowed on top of MaxUploadSize for form fields and boundaries.
const multipartOverhead = 1 << 20

type UploadController struct {
	Logger  *slog.Logger
	Service domain.UploadService
}

func NewUploadController(logger *slog.Logger, svc domain.UploadService) *UploadController {
	return &UploadController{
		Logger:  logger,
		Service: svc,
	}
}

// Upload godoc
// @Summary Upload an image
// @Description Accepts a multipart form with "file" and "type" (flyer or background). JPEG, PNG, GIF and WebP up to 5MB.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Param type formData string true "flyer or background"
// @Success 200 {object} domain.UploadResult
// @Failure 400 {object} helpers.APIResponse "No file provided / not an image / file exceeds 5MB"
// @Failure 500 {object} helpers.APIResponse
// @Router /upload [post]
func (c *UploadController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(domain.MaxUploadSize + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			helpers.WriteJSONError(w, http.StatusBadRequest, "File exceeds 5MB")
			return
		}
		helpers.WriteJSONError(w, http.StatusBadRequest, "No file provided")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusBadRequest, "Could not read file")
		return
	}

	res, err := c.Service.Upload(r.Context(), domain.UploadInput{
		Kind:     domain.ImageKind(r.FormValue("type")),
		Filename: header.Filename,
		Data:     data,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidUpload) {
			helpers.WriteJSONError(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), domain.ErrInvalidUpload.Error()+": "))
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// ServeUpload godoc
// @Summary Fetch an uploaded image
// @Tags uploads
// @Produce image/png,image/jpeg,image/gif,image/webp
// @Param name path string true "Stored file name"
// @Success 200 {file} binary
// @Failure 404 {object} helpers.APIResponse
// @Router /uploads/{name} [get]
func (c *UploadController) ServeUpload(w http.ResponseWriter, r *http.Request) {
	data, mimeType, err := c.Service.Open(r.Context(), r.PathValue("name"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidUpload) {
			helpers.WriteJSONError(w, http.StatusNotFound, "File not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
