package httpx

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// CORS lets browser front ends on the listed origins call the API. "*"
// allows any origin. Preflight requests are answered with 204 and never
// reach the routes. No origins means no CORS headers at all.
func CORS(origins []string) Middleware {
	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}
	if len(allowed) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:       []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:       []string{"X-Request-ID"},
		MaxAge:               600,
		OptionsSuccessStatus: http.StatusNoContent,
	})
	return c.Handler
}
