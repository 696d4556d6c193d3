package admin

import (
	"courier-tracking/internal/entities"
)

func ToDomain(a *AdminDB) *entities.Admin {
	if a == nil {
		return nil
	}

	return &entities.Admin{
		ID:           a.ID,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt.UTC(),
		UpdatedAt:    a.UpdatedAt.UTC(),
	}
}
