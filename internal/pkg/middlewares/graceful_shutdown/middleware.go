package graceful_shutdown

import (
	"context"
	"net/http"
	"sync/atomic"

	"courier-tracking/internal/pkg/httpresponse"
	"courier-tracking/pkg/logger"
)

type handlerLogger interface {
	Error(msg string, fields ...logger.Field)
}

// Middleware после отмены ongoingCtx отвечает 503, пока сервер дожидается
// завершения уже принятых запросов.
func Middleware(log handlerLogger, isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ongoingCtx.Err() != nil && isShuttingDown.Load() {
				w.Header().Set("Connection", "close")
				httpresponse.Error(w, log, http.StatusServiceUnavailable, "service is shutting down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
