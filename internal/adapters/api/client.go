// Package api is the HTTP client for the event backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"eventcreator/internal/domain"
)

type httpEventAPI struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient returns an EventAPI calling the backend at baseURL
// (e.g. "http://localhost:8080/api"). A non-empty token is sent as a
// bearer credential.
func NewClient(baseURL, token string, client *http.Client) domain.EventAPI {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpEventAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
	}
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type moduleConfigsResponse struct {
	Success bool                  `json:"success"`
	Modules []domain.ModuleConfig `json:"modules"`
}

func (c *httpEventAPI) SaveDraft(ctx context.Context, payload domain.EventPayload) (*domain.DraftSaved, error) {
	var out domain.DraftSaved
	if err := c.doJSON(ctx, http.MethodPost, "/events/draft", payload, &out); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return &out, nil
}

func (c *httpEventAPI) GetDraft(ctx context.Context, draftID string) (*domain.Draft, error) {
	var out envelope[domain.Draft]
	if err := c.doJSON(ctx, http.MethodGet, "/events/draft/"+url.PathEscape(draftID), nil, &out); err != nil {
		return nil, fmt.Errorf("get draft %s: %w", draftID, err)
	}
	return &out.Data, nil
}

func (c *httpEventAPI) PublishEvent(ctx context.Context, payload domain.EventPayload) (*domain.Published, error) {
	var out domain.Published
	if err := c.doJSON(ctx, http.MethodPost, "/events", payload, &out); err != nil {
		return nil, fmt.Errorf("publish event: %w", err)
	}
	return &out, nil
}

func (c *httpEventAPI) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	var out envelope[domain.Event]
	if err := c.doJSON(ctx, http.MethodGet, "/events/"+url.PathEscape(eventID), nil, &out); err != nil {
		return nil, fmt.Errorf("get event %s: %w", eventID, err)
	}
	return &out.Data, nil
}

func (c *httpEventAPI) ValidateEvent(ctx context.Context, form domain.EventForm) (*domain.ValidationResult, error) {
	var out domain.ValidationResult
	if err := c.doJSON(ctx, http.MethodPost, "/events/validate", form, &out); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	return &out, nil
}

func (c *httpEventAPI) UploadImage(ctx context.Context, kind domain.ImageKind, filename string, data []byte) (*domain.UploadResult, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := w.WriteField("type", string(kind)); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out domain.UploadResult
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("upload %s image: %w", kind, err)
	}
	return &out, nil
}

func (c *httpEventAPI) ModuleConfigs(ctx context.Context) ([]domain.ModuleConfig, error) {
	var out moduleConfigsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/modules/configs", nil, &out); err != nil {
		return nil, fmt.Errorf("module configs: %w", err)
	}
	return out.Modules, nil
}

func (c *httpEventAPI) SaveModuleData(ctx context.Context, moduleID string, data map[string]any) (*domain.ModuleSaved, error) {
	var out domain.ModuleSaved
	if err := c.doJSON(ctx, http.MethodPost, "/modules/"+url.PathEscape(moduleID), data, &out); err != nil {
		return nil, fmt.Errorf("save module %s: %w", moduleID, err)
	}
	return &out, nil
}

func (c *httpEventAPI) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *httpEventAPI) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do sends req and decodes a 2xx body into out. 404 maps to
// domain.ErrNotFound, 401 to domain.ErrUnauthorized, anything else non-2xx
// to *domain.APIError carrying the server's message.
func (c *httpEventAPI) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &domain.APIError{Status: resp.StatusCode, Message: readMessage(resp.Body)}
		switch resp.StatusCode {
		case http.StatusNotFound:
			return errors.Join(domain.ErrNotFound, apiErr)
		case http.StatusUnauthorized:
			return errors.Join(domain.ErrUnauthorized, apiErr)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func readMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	raw, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}
	if json.Unmarshal(raw, &body) == nil {
		return body.Message
	}
	return strings.TrimSpace(string(raw))
}
