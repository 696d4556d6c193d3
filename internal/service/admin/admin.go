package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courier-tracking/internal/entities"
)

type Admin struct {
	repository Repository
	sessions   SessionRepository
	hasher     PasswordHasher
	tokens     TokenFactory
	txManager  TxManager
	sessionTTL time.Duration
}

func New(
	repository Repository,
	sessions SessionRepository,
	hasher PasswordHasher,
	tokens TokenFactory,
	txManager TxManager,
	sessionTTL time.Duration,
) *Admin {
	return &Admin{
		repository: repository,
		sessions:   sessions,
		hasher:     hasher,
		tokens:     tokens,
		txManager:  txManager,
		sessionTTL: sessionTTL,
	}
}

// Login неверный email и неверный пароль неразличимы снаружи.
func (a *Admin) Login(ctx context.Context, credentials entities.AdminCredentials) (*entities.AdminSession, error) {
	if credentials.Email == "" || credentials.Password == "" {
		return nil, ErrMissingRequiredFields
	}

	admin, err := a.repository.GetByEmail(ctx, normalizeEmail(credentials.Email))
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := a.hasher.Compare(admin.PasswordHash, credentials.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return a.issueSession(ctx, admin)
}

// Authenticate находит админа по bearer токену.
func (a *Admin) Authenticate(ctx context.Context, token string) (*entities.Admin, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	adminID, err := a.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	admin, err := a.repository.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	return admin, nil
}

// UpdateProfile меняет email и/или пароль и выдает новый токен.
// Смена email отзывает текущий токен, смена пароля все токены админа.
func (a *Admin) UpdateProfile(
	ctx context.Context,
	adminID int64,
	currentToken string,
	modify entities.AdminModify,
) (*entities.AdminSession, error) {
	if modify.Email == nil && modify.Password == nil {
		return nil, fmt.Errorf("no fields to update: %w", ErrMissingRequiredFields)
	}
	if modify.Email != nil && !isValidEmail(*modify.Email) {
		return nil, ErrInvalidEmail
	}
	if modify.Password != nil && !isValidPassword(*modify.Password) {
		return nil, ErrInvalidPassword
	}

	var email, passwordHash *string
	if modify.Email != nil {
		normalized := normalizeEmail(*modify.Email)
		email = &normalized
	}
	if modify.Password != nil {
		hash, err := a.hasher.Hash(*modify.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		passwordHash = &hash
	}

	var updated *entities.Admin
	err := a.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		updated, err = a.repository.Update(ctx, adminID, email, passwordHash)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if passwordHash != nil {
		// после смены пароля не должен жить ни один старый токен
		err = a.sessions.DeleteAll(ctx, adminID)
	} else {
		err = a.sessions.Delete(ctx, currentToken)
	}
	if err != nil {
		return nil, fmt.Errorf("revoke session: %w", err)
	}

	return a.issueSession(ctx, updated)
}

// EnsureBootstrapAdmin создает админа из конфигурации, если его еще нет.
func (a *Admin) EnsureBootstrapAdmin(ctx context.Context, email, password string) error {
	if email == "" {
		return nil
	}
	if !isValidEmail(email) {
		return ErrInvalidEmail
	}
	if !isValidPassword(password) {
		return ErrInvalidPassword
	}
	email = normalizeEmail(email)

	_, err := a.repository.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrAdminNotFound) {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = a.repository.Create(ctx, email, hash)
	if err != nil && !errors.Is(err, ErrConflict) {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	return nil
}

func (a *Admin) issueSession(ctx context.Context, admin *entities.Admin) (*entities.AdminSession, error) {
	token := a.tokens.New()
	if err := a.sessions.Save(ctx, token, admin.ID, a.sessionTTL); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &entities.AdminSession{
		Token: token,
		ID:    admin.ID,
		Email: admin.Email,
	}, nil
}
