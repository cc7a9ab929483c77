package middleware

import (
	"net/http"
)

const (
	corsMethods = "GET, OPTIONS"
	corsHeaders = "Content-Type, X-Request-ID"
)

// CORSMiddleware lets browsers on allowedOrigins call the read-only API.
// An allowed origin of "*" accepts any origin. Requests from other origins
// pass through without CORS headers.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	anyOrigin := origins["*"]

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				if !anyOrigin && !origins[origin] {
					next.ServeHTTP(w, r)
					return
				}
				allowOrigin(w.Header(), origin)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// allowOrigin echoes origin back and advertises the methods and headers a
// browser may use, plus the request id it may read.
func allowOrigin(h http.Header, origin string) {
	h.Set("Access-Control-Allow-Origin", origin)
	h.Add("Vary", "Origin")
	h.Set("Access-Control-Allow-Methods", corsMethods)
	h.Set("Access-Control-Allow-Headers", corsHeaders)
	h.Set("Access-Control-Expose-Headers", "X-Request-ID")
}
