package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
)

// APIKeyAuth guards catalog administration endpoints with the "api_key"
// header. A missing key is 401, an unknown one 403.
func APIKeyAuth(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("api_key")

			switch {
			case apiKey == "":
				http.Error(w, "Unauthorized: API key required", http.StatusUnauthorized)
			case !knownKey(cfg.APIKeys, apiKey):
				http.Error(w, "Forbidden: Invalid API key", http.StatusForbidden)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// knownKey compares candidate against every configured key without
// short-circuiting, each comparison in constant time.
func knownKey(keys []string, candidate string) bool {
	found := 0
	for _, k := range keys {
		found |= subtle.ConstantTimeCompare([]byte(candidate), []byte(k))
	}
	return found == 1
}
