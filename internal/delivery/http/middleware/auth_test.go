package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventcreator/internal/delivery/http/helpers"
	"eventcreator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	subject string
	err     error
}

func (f *fakeTokenVerifier) Verify(_ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.subject, nil
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name        string
		authHeader  string
		verifier    domain.TokenVerifier
		wantStatus  int
		wantMessage string
		wantSubject string
	}{
		{
			name:        "valid token sets context and calls next",
			authHeader:  "Bearer valid-token",
			verifier:    &fakeTokenVerifier{subject: "form-client"},
			wantStatus:  http.StatusOK,
			wantSubject: "form-client",
		},
		{
			name:        "missing authorization header",
			verifier:    &fakeTokenVerifier{subject: "form-client"},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Missing authorization header",
		},
		{
			name:        "invalid authorization format no Bearer prefix",
			authHeader:  "Basic abc",
			verifier:    &fakeTokenVerifier{subject: "form-client"},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid authorization format",
		},
		{
			name:        "empty token after Bearer",
			authHeader:  "Bearer ",
			verifier:    &fakeTokenVerifier{subject: "form-client"},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Missing token",
		},
		{
			name:        "verifier returns error",
			authHeader:  "Bearer bad-token",
			verifier:    &fakeTokenVerifier{err: errors.New("token is expired")},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var captured string
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				captured, _ = SubjectFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}
			handler := RequireAuth(tt.verifier, testLogger)(next)

			req := httptest.NewRequest(http.MethodGet, "http://test/api/events/draft/draft_1", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, tt.wantStatus == http.StatusOK, nextCalled, "next handler called")
			assert.Equal(t, tt.wantSubject, captured)
			if tt.wantMessage != "" {
				var body helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.False(t, body.Success)
				assert.Equal(t, tt.wantMessage, body.Message)
			}
		})
	}
}
