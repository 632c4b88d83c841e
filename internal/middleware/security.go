package middleware

import (
	"net/http"
	"strings"
)

const (
	apiCSP = "default-src 'none'; frame-ancestors 'none'"
	// Uploaded previews are data or blob URLs.
	staticCSP = "default-src 'self'; img-src 'self' data: blob: https://images.unsplash.com; frame-ancestors 'none'"
)

// SecureHeaders sets hardening headers. JSON endpoints get a deny-all policy;
// the static front-end may load images.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		if isAPIPath(r.URL.Path) {
			h.Set("Content-Security-Policy", apiCSP)
		} else {
			h.Set("Content-Security-Policy", staticCSP)
		}
		next.ServeHTTP(w, r)
	})
}

func isAPIPath(p string) bool {
	return strings.HasPrefix(p, "/api/") || p == "/health" || p == "/version" || p == "/metrics"
}
