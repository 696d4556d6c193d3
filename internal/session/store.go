// Package session хранит личность админа и токен между запусками CLI.
// Store читается один раз при старте и сбрасывается только logout.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"courier-tracking/internal/entities"
	"courier-tracking/pkg/logger"
)

// StorageKey ключ, под которым лежит {token, id, email}.
const StorageKey = "adminInfo"

var ErrInvalidSession = errors.New("session must contain a token and an email")

type Store struct {
	storage Storage
	log     logger.Logger

	mu      sync.RWMutex
	loaded  bool
	current *entities.AdminSession
}

func New(storage Storage, log logger.Logger) *Store {
	return &Store{
		storage: storage,
		log:     log.With(logger.NewField("component", "session_store")),
	}
}

// Load читает сохраненную сессию. Битый blob удаляется, как если бы
// пользователь вышел.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.storage.Get(StorageKey)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	s.loaded = true
	s.current = nil
	if !ok {
		return nil
	}

	var stored entities.AdminSession
	if err := json.Unmarshal(raw, &stored); err != nil || validate(stored) != nil {
		s.log.Warn("discarding corrupt session", logger.NewField("error", err))
		if err := s.storage.Delete(StorageKey); err != nil {
			return fmt.Errorf("discard corrupt session: %w", err)
		}
		return nil
	}

	s.current = &stored
	return nil
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Login сохраняет сессию, полученную от сервера.
func (s *Store) Login(session entities.AdminSession) error {
	if err := validate(session); err != nil {
		return err
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(StorageKey, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.loaded = true
	s.current = &session

	s.log.Info("admin logged in", logger.NewField("admin_id", session.ID))
	return nil
}

func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(StorageKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if s.current != nil {
		s.log.Info("admin logged out", logger.NewField("admin_id", s.current.ID))
	}
	s.loaded = true
	s.current = nil
	return nil
}

// Current копия текущей сессии, false если админ не вошел.
func (s *Store) Current() (entities.AdminSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return entities.AdminSession{}, false
	}
	return *s.current, true
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func validate(session entities.AdminSession) error {
	if strings.TrimSpace(session.Token) == "" || strings.TrimSpace(session.Email) == "" {
		return ErrInvalidSession
	}
	return nil
}
