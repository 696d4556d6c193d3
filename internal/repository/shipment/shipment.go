package shipment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courier-tracking/internal/entities"
	"courier-tracking/internal/repository"
	"courier-tracking/internal/service/shipment"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var shipmentColumns = []string{
	"id",
	"tracking_id",
	"sender_name",
	"sender_address",
	"sender_contact",
	"receiver_name",
	"receiver_address",
	"receiver_contact",
	"origin",
	"destination",
	"current_status",
	"current_location",
	"expected_delivery_date",
	"created_at",
	"updated_at",
}

var terminalStatuses = []string{
	entities.StatusDelivered.String(),
	entities.StatusReturned.String(),
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Create сохраняет отправление вместе с начальной историей.
// Вызывать внутри транзакции.
func (r *Repository) Create(ctx context.Context, s entities.Shipment) (*entities.Shipment, error) {
	model := FromDomain(&s)

	row, err := r.querier.QueryRowBuilder(ctx, qb.
		Insert("shipments").
		Columns(shipmentColumns[1:]...).
		Values(
			model.TrackingID,
			model.SenderName,
			model.SenderAddress,
			model.SenderContact,
			model.ReceiverName,
			model.ReceiverAddress,
			model.ReceiverContact,
			model.Origin,
			model.Destination,
			model.CurrentStatus,
			model.CurrentLocation,
			model.ExpectedDeliveryDate,
			model.CreatedAt,
			model.UpdatedAt,
		).
		Suffix("RETURNING id"))
	if err != nil {
		return nil, fmt.Errorf("unexpected shipment repository create error: %w", err)
	}

	if err := row.Scan(&model.ID); err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, shipment.ErrConflict
		}
		return nil, fmt.Errorf("unexpected shipment repository create error: %w", err)
	}

	for _, event := range s.History {
		if err := r.AppendEvent(ctx, model.ID, event); err != nil {
			return nil, err
		}
	}

	created := s
	created.ID = model.ID
	return &created, nil
}

func (r *Repository) GetByTrackingID(ctx context.Context, trackingID string) (*entities.Shipment, error) {
	return r.getByTrackingID(ctx, trackingID, "")
}

// GetByTrackingIDForUpdate блокирует строку до конца транзакции.
func (r *Repository) GetByTrackingIDForUpdate(ctx context.Context, trackingID string) (*entities.Shipment, error) {
	return r.getByTrackingID(ctx, trackingID, "FOR UPDATE")
}

func (r *Repository) getByTrackingID(ctx context.Context, trackingID, suffix string) (*entities.Shipment, error) {
	builder := qb.
		Select(shipmentColumns...).
		From("shipments").
		Where(sq.Eq{"tracking_id": trackingID})
	if suffix != "" {
		builder = builder.Suffix(suffix)
	}

	row, err := r.querier.QueryRowBuilder(ctx, builder)
	if err != nil {
		return nil, fmt.Errorf("unexpected shipment repository get error: %w", err)
	}

	var model ShipmentDB
	if err := scanShipment(row, &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shipment.ErrShipmentNotFound
		}
		return nil, fmt.Errorf("unexpected shipment repository get error: %w", err)
	}

	events, err := r.eventsByShipmentIDs(ctx, []int64{model.ID})
	if err != nil {
		return nil, err
	}

	return ToDomain(&model, events[model.ID]), nil
}

// GetAll новые отправления первыми.
func (r *Repository) GetAll(ctx context.Context) ([]entities.Shipment, error) {
	query, args, err := qb.
		Select(shipmentColumns...).
		From("shipments").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected shipment repository getall error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected shipment repository getall error: %w", err)
	}
	defer rows.Close()

	shipmentModels := make([]ShipmentDB, 0, 16)
	ids := make([]int64, 0, 16)
	for rows.Next() {
		var model ShipmentDB
		if err := scanShipment(rows, &model); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		shipmentModels = append(shipmentModels, model)
		ids = append(ids, model.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected shipment repository getall error: %w", err)
	}

	events, err := r.eventsByShipmentIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return ToDomainList(shipmentModels, events), nil
}

// Update переписывает изменяемые колонки. История хранится отдельно
// и здесь не трогается.
func (r *Repository) Update(ctx context.Context, s entities.Shipment) error {
	model := FromDomain(&s)

	tag, err := r.querier.ExecBuilder(ctx, qb.
		Update("shipments").
		SetMap(map[string]any{
			"sender_name":            model.SenderName,
			"sender_address":         model.SenderAddress,
			"sender_contact":         model.SenderContact,
			"receiver_name":          model.ReceiverName,
			"receiver_address":       model.ReceiverAddress,
			"receiver_contact":       model.ReceiverContact,
			"current_status":         model.CurrentStatus,
			"current_location":       model.CurrentLocation,
			"expected_delivery_date": model.ExpectedDeliveryDate,
			"updated_at":             model.UpdatedAt,
		}).
		Where(sq.Eq{"tracking_id": model.TrackingID}))
	if err != nil {
		return fmt.Errorf("unexpected shipment repository update error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shipment.ErrShipmentNotFound
	}

	return nil
}

func (r *Repository) AppendEvent(ctx context.Context, shipmentID int64, event entities.TrackingEvent) error {
	_, err := r.querier.ExecBuilder(ctx, qb.
		Insert("tracking_events").
		Columns("shipment_id", "occurred_at", "status", "location", "message").
		Values(shipmentID, event.Timestamp, event.Status.String(), event.Location, event.Message))
	if err != nil {
		return fmt.Errorf("unexpected shipment repository append event error: %w", err)
	}
	return nil
}

// Delete история удаляется каскадом.
func (r *Repository) Delete(ctx context.Context, trackingID string) error {
	tag, err := r.querier.Exec(ctx, `DELETE FROM shipments WHERE tracking_id = $1`, trackingID)
	if err != nil {
		return fmt.Errorf("unexpected shipment repository delete error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shipment.ErrShipmentNotFound
	}
	return nil
}

func (r *Repository) CountOverdue(ctx context.Context, today time.Time) (int64, error) {
	row, err := r.querier.QueryRowBuilder(ctx, qb.
		Select("COUNT(*)").
		From("shipments").
		Where(sq.Lt{"expected_delivery_date": today}).
		Where(sq.NotEq{"current_status": terminalStatuses}))
	if err != nil {
		return 0, fmt.Errorf("unexpected shipment repository count overdue error: %w", err)
	}

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("unexpected shipment repository count overdue error: %w", err)
	}
	return count, nil
}

func (r *Repository) eventsByShipmentIDs(ctx context.Context, ids []int64) (map[int64][]TrackingEventDB, error) {
	result := make(map[int64][]TrackingEventDB, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.querier.Query(ctx, `
		SELECT id, shipment_id, occurred_at, status, location, message
		FROM tracking_events
		WHERE shipment_id = ANY($1)
		ORDER BY shipment_id, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("unexpected shipment repository history error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e TrackingEventDB
		if err := rows.Scan(&e.ID, &e.ShipmentID, &e.OccurredAt, &e.Status, &e.Location, &e.Message); err != nil {
			return nil, fmt.Errorf("scan tracking event: %w", err)
		}
		result[e.ShipmentID] = append(result[e.ShipmentID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected shipment repository history error: %w", err)
	}

	return result, nil
}

func scanShipment(row pgx.Row, model *ShipmentDB) error {
	return row.Scan(
		&model.ID,
		&model.TrackingID,
		&model.SenderName,
		&model.SenderAddress,
		&model.SenderContact,
		&model.ReceiverName,
		&model.ReceiverAddress,
		&model.ReceiverContact,
		&model.Origin,
		&model.Destination,
		&model.CurrentStatus,
		&model.CurrentLocation,
		&model.ExpectedDeliveryDate,
		&model.CreatedAt,
		&model.UpdatedAt,
	)
}
