package admin

import (
	"context"
	"errors"
	"fmt"

	"courier-tracking/internal/entities"
	"courier-tracking/internal/repository"
	"courier-tracking/internal/service/admin"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const adminReturning = "RETURNING id, email, password_hash, created_at, updated_at"

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, email, passwordHash string) (*entities.Admin, error) {
	query := `INSERT INTO admins (email, password_hash)
		VALUES ($1, $2)
		` + adminReturning

	var model AdminDB
	err := scanAdmin(r.querier.QueryRow(ctx, query, email, passwordHash), &model)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, admin.ErrConflict
		}
		return nil, fmt.Errorf("unexpected admin repository create error: %w", err)
	}

	return ToDomain(&model), nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*entities.Admin, error) {
	return r.getOne(ctx, sq.Eq{"email": email})
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Admin, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *Repository) Update(ctx context.Context, id int64, email, passwordHash *string) (*entities.Admin, error) {
	builder := qb.Update("admins")

	// опциональные поля
	if email != nil {
		builder = builder.Set("email", *email)
	}
	if passwordHash != nil {
		builder = builder.Set("password_hash", *passwordHash)
	}

	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix(adminReturning)

	row, err := r.querier.QueryRowBuilder(ctx, builder)
	if err != nil {
		return nil, fmt.Errorf("unexpected admin repository update error: %w", err)
	}

	var model AdminDB
	if err := scanAdmin(row, &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, admin.ErrAdminNotFound
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, admin.ErrConflict
		}
		return nil, fmt.Errorf("unexpected admin repository update error: %w", err)
	}

	return ToDomain(&model), nil
}

func (r *Repository) getOne(ctx context.Context, where sq.Eq) (*entities.Admin, error) {
	row, err := r.querier.QueryRowBuilder(ctx, qb.
		Select("id", "email", "password_hash", "created_at", "updated_at").
		From("admins").
		Where(where))
	if err != nil {
		return nil, fmt.Errorf("unexpected admin repository get error: %w", err)
	}

	var model AdminDB
	if err := scanAdmin(row, &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, admin.ErrAdminNotFound
		}
		return nil, fmt.Errorf("unexpected admin repository get error: %w", err)
	}

	return ToDomain(&model), nil
}

func scanAdmin(row pgx.Row, model *AdminDB) error {
	return row.Scan(
		&model.ID,
		&model.Email,
		&model.PasswordHash,
		&model.CreatedAt,
		&model.UpdatedAt,
	)
}
