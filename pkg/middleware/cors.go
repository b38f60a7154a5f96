package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS restricts browser access to the control API to the configured origins.
// The surface is JSON over GET/POST with no credentials, so only those
// methods and headers are allowed.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	return c.Handler
}
