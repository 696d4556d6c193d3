package shipment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"courier-tracking/internal/entities"
	"courier-tracking/internal/lifecycle"
	"courier-tracking/internal/pkg/cache"
	"courier-tracking/pkg/logger"
)

// maxTrackingIDAttempts сколько раз генерируем новый tracking id при коллизии.
const maxTrackingIDAttempts = 5

type Shipment struct {
	log         serviceLogger
	repository  Repository
	txManager   TxManager
	publisher   Publisher
	cache       Cache
	trackingIDs TrackingIDFactory
	events      EventFactory
	policy      lifecycle.Policy
	cacheTTL    time.Duration
}

func New(
	log serviceLogger,
	repository Repository,
	txManager TxManager,
	publisher Publisher,
	trackCache Cache,
	trackingIDs TrackingIDFactory,
	events EventFactory,
	policy lifecycle.Policy,
	cacheTTL time.Duration,
) *Shipment {
	return &Shipment{
		log:         log.With(logger.NewField("service", "shipment")),
		repository:  repository,
		txManager:   txManager,
		publisher:   publisher,
		cache:       trackCache,
		trackingIDs: trackingIDs,
		events:      events,
		policy:      policy,
		cacheTTL:    cacheTTL,
	}
}

// Track публичный поиск по tracking id, сначала в кэше.
func (s *Shipment) Track(ctx context.Context, trackingID string) (*entities.Shipment, error) {
	if !isValidTrackingID(trackingID) {
		return nil, ErrInvalidTrackingID
	}
	trackingID = normalizeTrackingID(trackingID)
	key := trackCacheKey(trackingID)

	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var shipment entities.Shipment
		if err := json.Unmarshal(cached, &shipment); err == nil {
			return &shipment, nil
		}
		s.log.Warn("corrupted track cache entry", logger.NewField("key", key))
	case !errors.Is(err, cache.ErrCacheMiss):
		s.log.Warn("track cache read failed",
			logger.NewField("key", key),
			logger.NewField("error", err),
		)
	}

	var shipment *entities.Shipment
	err = s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		shipment, err = s.repository.GetByTrackingID(ctx, trackingID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("track shipment: %w", err)
	}

	raw, err := json.Marshal(shipment)
	if err == nil {
		err = s.cache.Set(ctx, key, raw, s.cacheTTL)
	}
	if err != nil {
		s.log.Warn("track cache write failed",
			logger.NewField("key", key),
			logger.NewField("error", err),
		)
	}

	return shipment, nil
}

func (s *Shipment) CreateShipment(ctx context.Context, in entities.ShipmentCreate) (*entities.Shipment, error) {
	if err := lifecycle.ValidateCreate(in); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxTrackingIDAttempts; attempt++ {
		created, err := s.createWithTrackingID(ctx, in, s.trackingIDs.New())
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("create shipment: %w", err)
		}

		s.log.Warn("tracking id collision, regenerating", logger.NewField("attempt", attempt))
	}

	return nil, fmt.Errorf("create shipment: tracking id attempts exhausted: %w", ErrConflict)
}

func (s *Shipment) createWithTrackingID(
	ctx context.Context,
	in entities.ShipmentCreate,
	trackingID string,
) (*entities.Shipment, error) {
	now := time.Now().UTC()
	draft, err := lifecycle.Create(in, trackingID, now)
	if err != nil {
		return nil, err
	}

	var created *entities.Shipment
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repository.Create(ctx, draft)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, entities.ShipmentEventCreated, *created, now)
	return created, nil
}

func (s *Shipment) GetShipments(ctx context.Context) ([]entities.Shipment, error) {
	var shipments []entities.Shipment
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		shipments, err = s.repository.GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get shipments: %w", err)
	}

	return shipments, nil
}

// EditShipment заменяет поля целиком, событие в историю не добавляется.
func (s *Shipment) EditShipment(
	ctx context.Context,
	trackingID string,
	patch entities.ShipmentModify,
) (*entities.Shipment, error) {
	if !isValidTrackingID(trackingID) {
		return nil, ErrInvalidTrackingID
	}
	if err := lifecycle.ValidateModify(patch); err != nil {
		return nil, err
	}
	trackingID = normalizeTrackingID(trackingID)

	var edited entities.Shipment
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByTrackingIDForUpdate(ctx, trackingID)
		if err != nil {
			return err
		}

		edited, err = lifecycle.Edit(*current, patch, time.Now().UTC())
		if err != nil {
			return err
		}

		return s.repository.Update(ctx, edited)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to edit shipment: %w", err)
	}

	s.invalidate(ctx, trackingID)
	s.publish(ctx, entities.ShipmentEventEdited, edited, edited.UpdatedAt)
	return &edited, nil
}

// UpdateTracking добавляет ровно одно событие в историю.
func (s *Shipment) UpdateTracking(ctx context.Context, update entities.TrackingUpdate) (*entities.Shipment, error) {
	if !isValidTrackingID(update.TrackingID) {
		return nil, ErrInvalidTrackingID
	}
	trackingID := normalizeTrackingID(update.TrackingID)

	var updated entities.Shipment
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByTrackingIDForUpdate(ctx, trackingID)
		if err != nil {
			return err
		}

		updated, err = lifecycle.AppendStatusUpdate(*current, update, time.Now().UTC(), s.policy)
		if err != nil {
			return err
		}

		event := updated.History[len(updated.History)-1]
		if err := s.repository.AppendEvent(ctx, updated.ID, event); err != nil {
			return err
		}
		return s.repository.Update(ctx, updated)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update tracking: %w", err)
	}

	s.invalidate(ctx, trackingID)
	s.publish(ctx, entities.ShipmentEventStatusUpdated, updated, updated.UpdatedAt)
	return &updated, nil
}

func (s *Shipment) DeleteShipment(ctx context.Context, trackingID string) error {
	if !isValidTrackingID(trackingID) {
		return ErrInvalidTrackingID
	}
	trackingID = normalizeTrackingID(trackingID)

	var deleted *entities.Shipment
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.repository.GetByTrackingIDForUpdate(ctx, trackingID)
		if err != nil {
			return err
		}

		return s.repository.Delete(ctx, trackingID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete shipment: %w", err)
	}

	s.invalidate(ctx, trackingID)
	s.publish(ctx, entities.ShipmentEventDeleted, *deleted, time.Now().UTC())
	return nil
}

// CountOverdue отправления, у которых ожидаемая дата прошла, а статус не финальный.
func (s *Shipment) CountOverdue(ctx context.Context) (int64, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	count, err := s.repository.CountOverdue(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to count overdue shipments: %w", err)
	}
	return count, nil
}

// publish вызывается только после коммита: событие не уходит для
// откатившейся мутации. Ошибка брокера логируется, мутация уже сохранена,
// событие при этом теряется (at-most-once).
func (s *Shipment) publish(
	ctx context.Context,
	eventType entities.ShipmentEventType,
	shipment entities.Shipment,
	at time.Time,
) {
	event, err := s.events.Build(eventType, shipment, at)
	if err == nil {
		err = s.publisher.Publish(ctx, event)
	}
	if err != nil {
		s.log.Error("shipment event not published",
			logger.NewField("type", string(eventType)),
			logger.NewField("tracking_id", shipment.TrackingID),
			logger.NewField("error", err),
		)
	}
}

// invalidate ошибка кэша не откатывает уже закоммиченную мутацию,
// запись все равно истечет по TTL.
func (s *Shipment) invalidate(ctx context.Context, trackingID string) {
	key := trackCacheKey(trackingID)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.Warn("track cache invalidation failed",
			logger.NewField("key", key),
			logger.NewField("error", err),
		)
	}
}

func normalizeTrackingID(trackingID string) string {
	return strings.ToUpper(strings.TrimSpace(trackingID))
}
