package http

import "net/http"

const apiContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"

func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", apiContentSecurityPolicy)

		next.ServeHTTP(w, r)
	})
}
