// internal/middleware/cors.go
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS wraps h so that the listed origins may send credentialed requests
// and read the Set-Cookie header. Origins must be explicit.
func CORS(origins []string, h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:       origins,
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:       []string{"Content-Type", "Authorization", "Cookie"},
		ExposedHeaders:       []string{"Set-Cookie"},
		AllowCredentials:     true,
		OptionsSuccessStatus: http.StatusNoContent,
	}).Handler(h)
}
