package http

import (
	"log/slog"
	"net/http"
	"time"

	"eventcreator/internal/delivery/http/controllers"
	"eventcreator/internal/delivery/http/helpers"
	"eventcreator/internal/delivery/http/middleware"
	"eventcreator/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig holds the cross-cutting settings of the API routes.
type RouterConfig struct {
	// Verifier guards /api routes; nil leaves them open.
	Verifier domain.TokenVerifier
	// Latency is the simulated delay of most endpoints. Validate waits 3/5 of
	// it and upload 8/5.
	Latency time.Duration
	Logger  *slog.Logger
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(events *controllers.EventController, uploads *controllers.UploadController, modules *controllers.ModuleController, cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	api := func(delay time.Duration, h http.HandlerFunc) http.HandlerFunc {
		h = middleware.Latency(delay)(h)
		if cfg.Verifier != nil {
			h = middleware.RequireAuth(cfg.Verifier, cfg.Logger)(h)
		}
		return h
	}
	base := cfg.Latency

	// API Routes
	mux.HandleFunc("POST /api/events/draft", api(base, events.SaveDraft))
	mux.HandleFunc("GET /api/events/draft/{draftID}", api(base, events.GetDraft))
	mux.HandleFunc("POST /api/events", api(base, events.Publish))
	mux.HandleFunc("GET /api/events/{eventID}", api(base, events.GetEvent))
	mux.HandleFunc("POST /api/events/validate", api(base*3/5, events.Validate))
	mux.HandleFunc("POST /api/upload", api(base*8/5, uploads.Upload))
	mux.HandleFunc("GET /api/modules/configs", api(base, modules.Configs))
	mux.HandleFunc("POST /api/modules/{moduleID}", api(base, modules.Save))

	// Uploaded files are public
	mux.HandleFunc("GET /uploads/{name}", uploads.ServeUpload)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSON(w, http.StatusOK, helpers.APIResponse{Success: true, Message: "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
