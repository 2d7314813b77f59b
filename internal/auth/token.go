package auth

import (
	"net/http"
	"strings"
)

// ExtractAccessToken pulls the bearer token from a request. Cookie wins over
// the Authorization header; the query parameter exists for the WebSocket
// handshake, where browsers cannot set headers.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return r.URL.Query().Get("token")
}
