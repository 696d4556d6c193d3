package overdue_shipments

import (
	"context"
	"fmt"
	"time"

	"courier-tracking/pkg/logger"
)

type OverdueShipments struct {
	log      taskLogger
	service  Service
	interval time.Duration
}

func New(log taskLogger, service Service, interval time.Duration) *OverdueShipments {
	return &OverdueShipments{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (o *OverdueShipments) TTL() time.Duration {
	return o.interval
}

// Do пересчитывает просроченные отправления. При ошибке gauge хранит
// последнее успешно посчитанное значение.
func (o *OverdueShipments) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	count, err := o.service.CountOverdue(ctxWithTimeout)
	if err != nil {
		return fmt.Errorf("count overdue shipments: %w", err)
	}

	ShipmentsOverdue.Set(float64(count))
	if count > 0 {
		o.log.With(
			logger.NewField("overdue_shipments", count),
		).Info("overdue shipments scan")
	}
	return nil
}

func (o *OverdueShipments) Info() string {
	return "overdue shipments scan"
}
