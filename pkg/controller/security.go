package controller

import "net/http"

// hstsValue requests HTTPS for one year including subdomains.
const hstsValue = "max-age=31536000; includeSubDomains"

// WithStrictTransport returns a middleware that redirects plain-HTTP requests
// to HTTPS and sets the Strict-Transport-Security header on secure responses.
// It is attached to the pipeline only in production.
func WithStrictTransport(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.TLS == nil && r.Header.Get("X-Forwarded-Proto") != "https" {
			target := "https://" + r.Host + r.URL.RequestURI()
			http.Redirect(w, r, target, http.StatusPermanentRedirect)

			return
		}

		w.Header().Set("Strict-Transport-Security", hstsValue)
		next.ServeHTTP(w, r)
	})
}
