package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/streamvault-media/streamvault/internal/apperrors"
	"github.com/streamvault-media/streamvault/internal/logger"
	"github.com/streamvault-media/streamvault/internal/server/responses"
)

// font CDNs and image host referenced by the SPA bundle
const (
	fontStyleOrigin = "https://fonts.googleapis.com"
	fontFileOrigin  = "https://fonts.gstatic.com"
	imageCDNOrigin  = "https://image.tmdb.org"
)

// SecurityHeaders adds security-related headers to all responses.
//
// The content-security-policy restricts the SPA to its own origin, the two
// font CDNs, the catalog image CDN, and the catalog API origin (the browser
// calls the catalog service directly, so connect-src must include it).
func SecurityHeaders(environment string, catalogOrigin string) func(http.Handler) http.Handler {
	csp := fmt.Sprintf(
		"default-src 'self'; "+
			"script-src 'self'; "+
			"style-src 'self' 'unsafe-inline' %s; "+
			"font-src 'self' %s; "+
			"img-src 'self' data: %s; "+
			"connect-src 'self' %s",
		fontStyleOrigin, fontFileOrigin, imageCDNOrigin, catalogOrigin)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Security-Policy", csp)
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if environment == "production" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit limits requests per second
func RateLimit(requestsPerSecond int, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				responses.RespondWithError(w, r, http.StatusTooManyRequests,
					apperrors.ErrCodeRateLimitExceeded, "Rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Recovery converts a per-request panic into a 500 JSON error response.
// The process keeps serving subsequent requests.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				requestLogger := logger.ContextMiddlewareLogger(r.Context())
				requestLogger.Error("panic recovered",
					slog.Any("panic", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)

				responses.RespondWithError(w, r, http.StatusInternalServerError,
					apperrors.ErrCodeInternalError, "Internal Server Error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
