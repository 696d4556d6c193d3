package cli

import (
	"errors"

	"courier-tracking/internal/client"
	"courier-tracking/internal/entities"
	"courier-tracking/internal/guard"

	"github.com/spf13/cobra"
)

func newLoginCommand(s *state) *cobra.Command {
	var creds entities.AdminCredentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as an admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := s.App()
			if err != nil {
				return err
			}

			if creds.Email == "" {
				if creds.Email, err = app.Prompt.Ask("Email"); err != nil {
					return err
				}
			}
			if creds.Password == "" {
				if creds.Password, err = app.Prompt.Ask("Password"); err != nil {
					return err
				}
			}

			adminSession, err := app.Client.Login(cmd.Context(), creds)
			if errors.Is(err, client.ErrAuth) {
				return errInvalidCredentials
			}
			if err != nil {
				return err
			}

			if err := app.Sessions.Login(adminSession); err != nil {
				return err
			}
			return app.Render.Session(adminSession)
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "admin email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "admin password (prompted when omitted)")
	return cmd
}

func newLogoutCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored admin session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := s.App()
			if err != nil {
				return err
			}

			if err := app.Sessions.Logout(); err != nil {
				return err
			}
			return app.Render.Message("logged out")
		},
	}
}

func newWhoamiCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in admin",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := s.App()
			if err != nil {
				return err
			}

			current, err := app.Guard.Require()
			if errors.Is(err, guard.ErrLoginRequired) {
				return app.Render.Message("not logged in")
			}
			if err != nil {
				return err
			}
			return app.Render.Session(current)
		},
	}
}
