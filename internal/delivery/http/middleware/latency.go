package middleware

import (
	"net/http"
	"time"
)

// Latency delays each request by d before calling next, emulating a remote
// backend. A request cancelled while waiting is dropped. d <= 0 disables it.
func Latency(d time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if d <= 0 {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-t.C:
				next(w, r)
			case <-r.Context().Done():
			}
		}
	}
}
