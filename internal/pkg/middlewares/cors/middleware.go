// Package cors открывает API браузерным клиентам с разрешенных origin.
package cors

import (
	"net/http"

	"github.com/go-chi/cors"
)

const preflightMaxAge = 300

// Middleware пустой список origin отключает CORS заголовки полностью.
func Middleware(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After", "X-RateLimit-Limit"},
		AllowCredentials: false,
		MaxAge:           preflightMaxAge,
	})
}
