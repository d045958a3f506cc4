package middleware

import (
	"mime"
	"net/http"
)

// RequireJSON rejects state-changing requests (POST, PUT, PATCH) whose body
// is not declared as application/json. Browsers cannot send that content
// type cross-origin without a CORS preflight, so plain HTML forms on other
// sites cannot reach the admin API. DELETE carries no body and is exempt.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			next.ServeHTTP(w, r)
			return
		}

		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			jsonError(w, http.StatusUnsupportedMediaType, "request body must be application/json")
			return
		}
		next.ServeHTTP(w, r)
	})
}
