package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"eventcreator/internal/delivery/http/helpers"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewLimiterStore returns a redis-backed limiter store when client is set,
// otherwise an in-process one.
func NewLimiterStore(client redis.UniversalClient) (limiter.Store, error) {
	if client == nil {
		return memory.NewStore(), nil
	}
	store, err := redisstore.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: "eventcreator:ratelimit"})
	if err != nil {
		return nil, fmt.Errorf("redis limiter store: %w", err)
	}
	return store, nil
}

// RateLimit returns a per-client-IP limiter for rate in ulule's "<limit>-<period>"
// format (e.g. "100-M"). Rejected requests get a 429 JSON error.
func RateLimit(rate string, store limiter.Store, logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("parse rate %q: %w", rate, err)
	}
	mw := stdlib.NewMiddleware(limiter.New(store, r),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			helpers.WriteJSONError(w, http.StatusTooManyRequests, "Too many requests, please slow down")
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, "Rate limiter unavailable")
		}),
	)
	return mw.Handler, nil
}
