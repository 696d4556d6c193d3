package cli

import (
	"fmt"
	"io"

	"courier-tracking/internal/client"
	"courier-tracking/internal/guard"
	"courier-tracking/internal/session"
	"courier-tracking/pkg/logger"
	"courier-tracking/pkg/logger/zap_adapter"
)

// App одна сессия на процесс: читается при старте, передается в клиент
// и guard явно.
type App struct {
	Log      logger.Logger
	Sessions *session.Store
	Guard    *guard.Guard
	Client   *client.Client
	Render   *Renderer
	Prompt   *Prompter

	sync func() error
}

func NewApp(cfg Config, in io.Reader, out io.Writer) (*App, error) {
	zapLogger := zap_adapter.NewFileAdapter(cfg.LogFile)
	log := zapLogger.With(logger.NewField("app", "courierctl"))

	sessions := session.New(session.NewFileStorage(cfg.SessionFile), log)

	apiClient, err := client.New(client.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout,
	}, sessions, log)
	if err != nil {
		return nil, err
	}

	return &App{
		Log:      log,
		Sessions: sessions,
		Guard:    guard.New(sessions),
		Client:   apiClient,
		Render:   NewRenderer(out, cfg.Output),
		Prompt:   NewPrompter(in, out),
		sync:     zapLogger.Sync,
	}, nil
}

// Start читает сессию с диска, до этого guard в состоянии Loading.
func (a *App) Start() error {
	if err := a.Sessions.Load(); err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	return nil
}

func (a *App) Close() {
	if a.sync != nil {
		_ = a.sync()
	}
}
