package middlewarectx

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"
)

var loginLimiter = rate.NewLimiter(5, 10)

// RateLimit ограничивает частоту попыток входа.
func RateLimit(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !loginLimiter.Allow() {
				log.Error("too many requests")
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
