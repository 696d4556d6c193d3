//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=admin_test
package admin

import (
	"context"
	"time"

	"courier-tracking/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (*entities.Admin, error)
	GetByEmail(ctx context.Context, email string) (*entities.Admin, error)
	GetByID(ctx context.Context, id int64) (*entities.Admin, error)
	Update(ctx context.Context, id int64, email, passwordHash *string) (*entities.Admin, error)
}

type SessionRepository interface {
	Save(ctx context.Context, token string, adminID int64, ttl time.Duration) error
	Get(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
	DeleteAll(ctx context.Context, adminID int64) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenFactory interface {
	New() string
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
