package cli

import (
	"github.com/spf13/cobra"
)

func newTrackCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "track <trackingId>",
		Short: "Show shipment status and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.App()
			if err != nil {
				return err
			}

			shipment, err := app.Client.Track(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.Render.Shipment(shipment)
		},
	}
}
