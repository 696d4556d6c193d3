package auth

import (
	"errors"
	"net/http"
	"strings"

	"courier-tracking/internal/pkg/httpresponse"
	"courier-tracking/internal/service/admin"
	"courier-tracking/pkg/logger"
)

const bearerPrefix = "Bearer "

func Middleware(log handlerLogger, authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httpresponse.Error(w, log, http.StatusUnauthorized, "missing bearer token")
				return
			}

			adminEntity, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, admin.ErrUnauthorized) {
					httpresponse.Error(w, log, http.StatusUnauthorized, "session expired or invalid")
					return
				}

				log.With(
					logger.NewField("error", err),
					logger.NewField("path", r.URL.Path),
				).Error("authenticate request")
				httpresponse.Error(w, log, http.StatusInternalServerError, "")
				return
			}

			ctx := WithPrincipal(r.Context(), Principal{Admin: *adminEntity, Token: token})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
