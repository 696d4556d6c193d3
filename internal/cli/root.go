// Package cli терминальный интерфейс courierctl: публичный трекинг,
// вход админа и управление отправлениями.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var errNotStarted = errors.New("application is not initialized")

type state struct {
	in         io.Reader
	configFile string
	app        *App
}

func (s *state) App() (*App, error) {
	if s.app == nil {
		return nil, errNotStarted
	}
	return s.app, nil
}

func (s *state) close() {
	if s.app != nil {
		s.app.Close()
	}
}

// Execute запускает команду и возвращает код выхода. Ошибки печатаются
// в errOut уже в виде сообщения для пользователя.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	s := &state{in: in}
	defer s.close()

	root := newRootCommand(s)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(errOut, "Error: %s\n", UserMessage(err))
		return 1
	}
	return 0
}

func newRootCommand(s *state) *cobra.Command {
	root := &cobra.Command{
		Use:           "courierctl",
		Short:         "Track shipments and manage them as an admin",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(s.configFile, cmd.Flags())
			if err != nil {
				return err
			}

			app, err := NewApp(cfg, s.in, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			s.app = app
			return app.Start()
		},
	}

	root.PersistentFlags().StringVar(&s.configFile, "config", "", "config file (default ~/.courierctl/config.yaml)")
	registerFlags(root.PersistentFlags())

	root.AddCommand(
		newTrackCommand(s),
		newLoginCommand(s),
		newLogoutCommand(s),
		newWhoamiCommand(s),
		newAdminCommand(s),
	)
	return root
}
