package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog/log"

	"todolist/shared/constant"
	"todolist/shared/failure"
	"todolist/transport/http/response"
)

// APIKey requires X-API-Key to match APP_API_KEY. It is a no-op when no key is configured.
func (a *appMiddleware) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := a.config.App.APIKey
		if expected == "" {
			next.ServeHTTP(w, r)

			return
		}

		provided := r.Header.Get(constant.RequestHeaderAPIKey)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			log.Warn().Str("path", r.URL.Path).Str("source", a.getClientIP(r)).Msg("rejected request with invalid API key")

			response.WithError(w, failure.Unauthorized(constant.ResponseErrorInvalidAPIKey))

			return
		}

		next.ServeHTTP(w, r)
	})
}
