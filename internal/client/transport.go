package client

import (
	"net/http"
	"time"

	"courier-tracking/pkg/logger"
)

type tokenSource interface {
	Token() string
}

// BearerRoundTripper подставляет Authorization: Bearer из сессии в каждый
// запрос, если токен есть.
type BearerRoundTripper struct {
	Tokens  tokenSource
	Proxied http.RoundTripper
}

func (b *BearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	token := b.Tokens.Token()
	if token == "" || req.Header.Get("Authorization") != "" {
		return b.Proxied.RoundTrip(req)
	}

	// RoundTripper не должен менять исходный запрос
	authorized := req.Clone(req.Context())
	authorized.Header.Set("Authorization", "Bearer "+token)
	return b.Proxied.RoundTrip(authorized)
}

// LoggingRoundTripper пишет метод, путь, статус и длительность запроса.
type LoggingRoundTripper struct {
	Log     logger.Logger
	Proxied http.RoundTripper
}

func (l *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := l.Proxied.RoundTrip(req)

	fields := []logger.Field{
		logger.NewField("method", req.Method),
		logger.NewField("path", req.URL.Path),
		logger.NewField("duration", time.Since(start)),
	}
	if err != nil {
		l.Log.Error("http request failed", append(fields, logger.NewField("error", err))...)
		return nil, err
	}

	l.Log.Info("http request completed", append(fields, logger.NewField("status", resp.StatusCode))...)
	return resp, nil
}
