package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"courier-tracking/internal/entities"
	"courier-tracking/internal/lifecycle"
	"courier-tracking/internal/pkg/dtoconv"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const timeLayout = "2006-01-02 15:04 MST"

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q, expected text, json or yaml", raw)
	}
}

// Renderer текстовый вывод для людей, json и yaml для скриптов.
type Renderer struct {
	out    io.Writer
	format Format
}

func NewRenderer(out io.Writer, format Format) *Renderer {
	return &Renderer{out: out, format: format}
}

// identity сессия без токена, токен в вывод не попадает.
type identity struct {
	ID    int64  `json:"id" yaml:"id"`
	Email string `json:"email" yaml:"email"`
}

type message struct {
	Message string `json:"message" yaml:"message"`
}

func (r *Renderer) Shipment(s entities.Shipment) error {
	if r.format != FormatText {
		return r.encode(s)
	}

	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Tracking ID:\t%s\n", s.TrackingID)
	fmt.Fprintf(tw, "Status:\t%s\n", s.CurrentStatus)
	fmt.Fprintf(tw, "Location:\t%s\n", s.CurrentLocation)
	fmt.Fprintf(tw, "Origin:\t%s\n", s.Origin)
	fmt.Fprintf(tw, "Destination:\t%s\n", s.Destination)
	fmt.Fprintf(tw, "Expected delivery:\t%s\n", dtoconv.FormatDate(s.ExpectedDeliveryDate))
	fmt.Fprintf(tw, "Sender:\t%s\n", party(s.Sender))
	fmt.Fprintf(tw, "Receiver:\t%s\n", party(s.Receiver))
	fmt.Fprintf(tw, "Updated:\t%s\n", formatTime(s.UpdatedAt))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "History (newest first):")

	tw = tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	for _, e := range lifecycle.HistoryNewestFirst(s) {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", formatTime(e.Timestamp), e.Status, e.Location, e.Message)
	}
	return tw.Flush()
}

func (r *Renderer) Shipments(list []entities.Shipment) error {
	if r.format != FormatText {
		if list == nil {
			list = []entities.Shipment{}
		}
		return r.encode(list)
	}

	if len(list) == 0 {
		_, err := fmt.Fprintln(r.out, "no shipments")
		return err
	}

	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TRACKING ID\tSTATUS\tLOCATION\tORIGIN\tDESTINATION\tEXPECTED")
	for _, s := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.TrackingID,
			s.CurrentStatus,
			s.CurrentLocation,
			origin(s),
			s.Destination,
			dtoconv.FormatDate(s.ExpectedDeliveryDate),
		)
	}
	return tw.Flush()
}

func (r *Renderer) Session(s entities.AdminSession) error {
	if r.format != FormatText {
		return r.encode(identity{ID: s.ID, Email: s.Email})
	}
	_, err := fmt.Fprintf(r.out, "logged in as %s (id %d)\n", s.Email, s.ID)
	return err
}

func (r *Renderer) Message(msg string) error {
	if r.format != FormatText {
		return r.encode(message{Message: msg})
	}
	_, err := fmt.Fprintln(r.out, msg)
	return err
}

func (r *Renderer) encode(v any) error {
	switch r.format {
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("render yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("render json: %w", err)
		}
		return nil
	}
}

// origin первое событие истории, как на дашборде.
func origin(s entities.Shipment) string {
	if len(s.History) > 0 {
		return s.History[0].Location
	}
	return s.Origin
}

func party(p entities.Party) string {
	return strings.Join([]string{p.Name, p.Address, p.Contact}, ", ")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(timeLayout)
}
