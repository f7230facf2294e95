package api

import (
	"net/http"
	"strings"
)

// CORSPolicy is the allowed-origin policy for the quote endpoint: either an
// exact-match origin list or a wildcard.
type CORSPolicy struct {
	AllowedOrigins []string
}

// ParseAllowedOrigins parses a comma-separated origin allow-list. An empty
// value implies wildcard.
func ParseAllowedOrigins(value string) []string {
	if value == "" {
		return []string{"*"}
	}
	var origins []string
	for _, origin := range strings.Split(value, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// AllowOrigin returns the Access-Control-Allow-Origin value for a request
// origin: the wildcard if configured, the origin itself when allow-listed,
// and the first configured origin otherwise.
func (p CORSPolicy) AllowOrigin(origin string) string {
	for _, allowed := range p.AllowedOrigins {
		if allowed == "*" {
			return "*"
		}
	}
	for _, allowed := range p.AllowedOrigins {
		if allowed == origin {
			return origin
		}
	}
	return p.AllowedOrigins[0]
}

// Middleware ensures every cross-origin response carries an
// Access-Control-Allow-Origin header: origins the CORS middleware already
// approved keep their header, anything else falls back to the policy's first
// configured origin.
func (p CORSPolicy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && w.Header().Get("Access-Control-Allow-Origin") == "" {
			w.Header().Set("Access-Control-Allow-Origin", p.AllowOrigin(origin))
		}
		next.ServeHTTP(w, r)
	})
}

// Preflight answers an OPTIONS request with the policy's CORS headers and a
// 24-hour cache directive.
func (p CORSPolicy) Preflight(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", p.AllowOrigin(r.Header.Get("Origin")))
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Max-Age", "86400")
	w.WriteHeader(http.StatusNoContent)
}
