package middleware

import (
	"net/http"
	"slices"
	"strings"
)

// allowedMethods covers the verbs the cache, sync and network routes accept.
const allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"

// allowedHeaders covers what the client actually sends: JSON bodies and
// the propagated request id. The service carries no inbound auth header.
const allowedHeaders = "Content-Type, X-Request-ID"

// CORSMiddleware creates a CORS middleware with the specified allowed origins
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := resolveOrigin(r.Header.Get("Origin"), allowedOrigins)

			if origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				if origin != "*" {
					// Credentials may not be combined with a wildcard origin
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
			w.Header().Set("Access-Control-Max-Age", "3600")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// resolveOrigin returns the Allow-Origin value for a request origin:
// "*" when all origins are allowed, the origin itself when listed,
// empty when the request carries no origin or the origin is not allowed
func resolveOrigin(requestOrigin string, allowedOrigins []string) string {
	if requestOrigin == "" {
		return ""
	}
	if slices.Contains(allowedOrigins, "*") {
		return "*"
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(requestOrigin, allowed) {
			return requestOrigin
		}
	}
	return ""
}
