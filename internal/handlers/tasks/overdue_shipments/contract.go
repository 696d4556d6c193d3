//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=overdue_shipments_test
package overdue_shipments

import (
	"context"

	"courier-tracking/pkg/logger"
)

type Service interface {
	CountOverdue(ctx context.Context) (int64, error)
}

type taskLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
