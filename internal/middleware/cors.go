// Package middleware provides HTTP middleware for the Zanger API.
package middleware

import "net/http"

// CORS returns middleware that answers preflight requests and sets CORS
// headers. An empty frontendURL (development) allows any origin without
// credentials; a configured one is matched exactly and gets credentials.
func CORS(frontendURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case origin == "":
				// Same-origin or non-browser client, nothing to do.
			case frontendURL == "" || origin == frontendURL:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				if origin == frontendURL {
					// Credentials only for the explicitly configured origin.
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
