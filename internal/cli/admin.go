package cli

import (
	"fmt"
	"strings"
	"time"

	"courier-tracking/internal/entities"
	"courier-tracking/internal/pkg/dtoconv"
	"courier-tracking/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type guardedRunE func(cmd *cobra.Command, args []string, app *App, admin entities.AdminSession) error

// guarded сначала спрашивает guard, без сессии команда не выполняется.
func guarded(s *state, run guardedRunE) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := s.App()
		if err != nil {
			return err
		}

		admin, err := app.Guard.Require()
		if err != nil {
			return err
		}
		return run(cmd, args, app, admin)
	}
}

func newAdminCommand(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage shipments (requires login)",
	}

	cmd.AddCommand(
		newListCommand(s),
		newCreateCommand(s),
		newEditCommand(s),
		newDeleteCommand(s),
		newUpdateStatusCommand(s),
		newProfileCommand(s),
	)
	return cmd
}

func newListCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all shipments",
		Args:  cobra.NoArgs,
		RunE: guarded(s, func(cmd *cobra.Command, _ []string, app *App, _ entities.AdminSession) error {
			shipments, err := app.Client.ListShipments(cmd.Context())
			if err != nil {
				return err
			}
			return app.Render.Shipments(shipments)
		}),
	}
}

type partyFlags struct {
	prefix  string
	name    string
	address string
	contact string
}

func (p *partyFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&p.name, p.prefix+"-name", "", p.prefix+" name")
	flags.StringVar(&p.address, p.prefix+"-address", "", p.prefix+" address")
	flags.StringVar(&p.contact, p.prefix+"-contact", "", p.prefix+" contact")
}

func (p *partyFlags) party() entities.Party {
	return entities.Party{Name: p.name, Address: p.address, Contact: p.contact}
}

// overlay накладывает на текущую сторону только заданные флаги.
func (p *partyFlags) overlay(current entities.Party, flags *pflag.FlagSet) entities.Party {
	if flags.Changed(p.prefix + "-name") {
		current.Name = p.name
	}
	if flags.Changed(p.prefix + "-address") {
		current.Address = p.address
	}
	if flags.Changed(p.prefix + "-contact") {
		current.Contact = p.contact
	}
	return current
}

func (p *partyFlags) changed(flags *pflag.FlagSet) bool {
	return flags.Changed(p.prefix+"-name") ||
		flags.Changed(p.prefix+"-address") ||
		flags.Changed(p.prefix+"-contact")
}

func newCreateCommand(s *state) *cobra.Command {
	sender := &partyFlags{prefix: "sender"}
	receiver := &partyFlags{prefix: "receiver"}
	var origin, destination, expected string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a shipment",
		Args:  cobra.NoArgs,
		RunE: guarded(s, func(cmd *cobra.Command, _ []string, app *App, _ entities.AdminSession) error {
			var expectedDate time.Time
			if strings.TrimSpace(expected) != "" {
				date, err := dtoconv.ParseDate("expectedDeliveryDate", expected)
				if err != nil {
					return err
				}
				expectedDate = date
			}

			shipment, err := app.Client.CreateShipment(cmd.Context(), entities.ShipmentCreate{
				Sender:               sender.party(),
				Receiver:             receiver.party(),
				Origin:               origin,
				Destination:          destination,
				ExpectedDeliveryDate: expectedDate,
			})
			if err != nil {
				return err
			}
			return app.Render.Shipment(shipment)
		}),
	}

	sender.register(cmd.Flags())
	receiver.register(cmd.Flags())
	cmd.Flags().StringVar(&origin, "origin", "", "origin location")
	cmd.Flags().StringVar(&destination, "destination", "", "destination location")
	cmd.Flags().StringVar(&expected, "expected-date", "", "expected delivery date, YYYY-MM-DD")
	return cmd
}

func newEditCommand(s *state) *cobra.Command {
	sender := &partyFlags{prefix: "sender"}
	receiver := &partyFlags{prefix: "receiver"}
	var status, location, expected string

	cmd := &cobra.Command{
		Use:   "edit <trackingId>",
		Short: "Replace shipment fields without adding a history event",
		Args:  cobra.ExactArgs(1),
		RunE: guarded(s, func(cmd *cobra.Command, args []string, app *App, _ entities.AdminSession) error {
			flags := cmd.Flags()
			var patch entities.ShipmentModify

			// сервер заменяет сторону целиком, поэтому недостающие поля
			// берутся из текущего состояния отправления
			if sender.changed(flags) || receiver.changed(flags) {
				current, err := app.Client.Track(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if sender.changed(flags) {
					p := sender.overlay(current.Sender, flags)
					patch.Sender = &p
				}
				if receiver.changed(flags) {
					p := receiver.overlay(current.Receiver, flags)
					patch.Receiver = &p
				}
			}
			if flags.Changed("status") {
				st := entities.ShipmentStatus(status)
				patch.CurrentStatus = &st
			}
			if flags.Changed("location") {
				patch.CurrentLocation = &location
			}
			if flags.Changed("expected-date") {
				date, err := dtoconv.ParseDate("expectedDeliveryDate", expected)
				if err != nil {
					return err
				}
				patch.ExpectedDeliveryDate = &date
			}

			shipment, err := app.Client.EditShipment(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return app.Render.Shipment(shipment)
		}),
	}

	sender.register(cmd.Flags())
	receiver.register(cmd.Flags())
	cmd.Flags().StringVar(&status, "status", "", "current status: "+statusList())
	cmd.Flags().StringVar(&location, "location", "", "current location")
	cmd.Flags().StringVar(&expected, "expected-date", "", "expected delivery date, YYYY-MM-DD")
	return cmd
}

func newDeleteCommand(s *state) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <trackingId>",
		Short: "Delete a shipment",
		Args:  cobra.ExactArgs(1),
		RunE: guarded(s, func(cmd *cobra.Command, args []string, app *App, _ entities.AdminSession) error {
			trackingID := args[0]
			if !yes {
				ok, err := app.Prompt.Confirm(fmt.Sprintf("Delete shipment %s?", trackingID))
				if err != nil {
					return err
				}
				if !ok {
					return app.Render.Message("aborted")
				}
			}

			if err := app.Client.DeleteShipment(cmd.Context(), trackingID); err != nil {
				return err
			}
			return app.Render.Message(fmt.Sprintf("shipment %s deleted", trackingID))
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newUpdateStatusCommand(s *state) *cobra.Command {
	var status, location, message string

	cmd := &cobra.Command{
		Use:   "update-status <trackingId>",
		Short: "Append a tracking event to the shipment history",
		Args:  cobra.ExactArgs(1),
		RunE: guarded(s, func(cmd *cobra.Command, args []string, app *App, _ entities.AdminSession) error {
			shipment, err := app.Client.UpdateTracking(cmd.Context(), entities.TrackingUpdate{
				TrackingID: args[0],
				Status:     entities.ShipmentStatus(status),
				Location:   location,
				Message:    message,
			})
			if err != nil {
				return err
			}
			return app.Render.Shipment(shipment)
		}),
	}

	cmd.Flags().StringVar(&status, "status", "", "new status: "+statusList())
	cmd.Flags().StringVar(&location, "location", "", "where the shipment is now")
	cmd.Flags().StringVar(&message, "message", "", "event description")
	return cmd
}

func newProfileCommand(s *state) *cobra.Command {
	var email, password, confirm string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Change admin email or password",
		Args:  cobra.NoArgs,
		RunE: guarded(s, func(cmd *cobra.Command, _ []string, app *App, admin entities.AdminSession) error {
			flags := cmd.Flags()

			var newEmail, newPassword *string
			if flags.Changed("email") {
				newEmail = &email
			}
			if flags.Changed("password") {
				if !flags.Changed("confirm-password") {
					var err error
					if confirm, err = app.Prompt.Ask("Confirm password"); err != nil {
						return err
					}
				}
				if confirm != password {
					return errPasswordMismatch
				}
				newPassword = &password
			}

			updated, err := app.Client.UpdateProfile(cmd.Context(), newEmail, newPassword)
			if err != nil {
				return err
			}

			// сервер выдал новый токен, старый больше не действует
			if err := app.Sessions.Login(updated); err != nil {
				return err
			}
			app.Log.Info("admin profile updated",
				logger.NewField("admin_id", admin.ID),
				logger.NewField("email_changed", newEmail != nil),
				logger.NewField("password_changed", newPassword != nil),
			)
			return app.Render.Session(updated)
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "new email")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "repeat the new password")
	return cmd
}

func statusList() string {
	names := make([]string, 0, len(entities.ShipmentStatuses))
	for _, st := range entities.ShipmentStatuses {
		names = append(names, fmt.Sprintf("%q", st))
	}
	return strings.Join(names, ", ")
}
