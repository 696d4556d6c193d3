package tracking_id

import (
	"strings"

	"github.com/google/uuid"
)

const (
	prefix    = "TRK"
	hexDigits = 10
)

// TrackingIDFactory выдает TRK + 10 hex символов в верхнем регистре.
// Уникальность гарантирует ограничение в БД, коллизии ретраит сервис.
type TrackingIDFactory struct {
	newUUID func() uuid.UUID
}

func New() *TrackingIDFactory {
	return &TrackingIDFactory{newUUID: uuid.New}
}

func (f *TrackingIDFactory) New() string {
	id := f.newUUID()
	raw := strings.ReplaceAll(id.String(), "-", "")
	return prefix + strings.ToUpper(raw[:hexDigits])
}
