package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"ledger-service/internal/logger"
)

// ScopeLimiter decides whether a request under a given admission scope
// fits the request budget.
type ScopeLimiter interface {
	Allow(ctx context.Context, scope string) (bool, error)
}

// RateLimitErrorResponse is the JSON body for rejected or failed admission checks.
type RateLimitErrorResponse struct {
	Message string `json:"message"`
}

// RateLimitMiddleware gates every request through the admission controller
// under the given scope. Rejections return 429 without touching downstream
// handlers. If the counter store cannot be reached the request fails closed
// with 500, never silently accepted.
func RateLimitMiddleware(limiter ScopeLimiter, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), scope)
			if err != nil {
				logger.Log.Errorw("admission check failed", "scope", scope, "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(RateLimitErrorResponse{Message: "Internal server error"})
				return
			}

			if !allowed {
				logger.Log.Warnw("request rejected by rate limiter", "scope", scope, "uri", r.RequestURI)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(RateLimitErrorResponse{Message: "Too many requests, please try again later."})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
