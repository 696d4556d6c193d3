// Package guard пускает к админским командам только при наличии сессии.
package guard

import (
	"errors"
	"fmt"

	"courier-tracking/internal/entities"
)

// LoginCommand куда отправляем неавторизованного пользователя.
const LoginCommand = "courierctl login"

type State int

const (
	Loading State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	ErrSessionLoading = errors.New("session is still loading")
	ErrLoginRequired  = errors.New("admin login required")
)

// RedirectError несет точку входа для логина.
type RedirectError struct {
	To string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("%s, run `%s`", ErrLoginRequired, e.To)
}

func (e *RedirectError) Is(target error) bool {
	return target == ErrLoginRequired
}

type Guard struct {
	sessions Sessions
}

func New(sessions Sessions) *Guard {
	return &Guard{sessions: sessions}
}

func (g *Guard) State() State {
	if !g.sessions.Loaded() {
		return Loading
	}
	if _, ok := g.sessions.Current(); ok {
		return Authenticated
	}
	return Unauthenticated
}

// Require пропускает защищенную команду или возвращает редирект на логин.
func (g *Guard) Require() (entities.AdminSession, error) {
	switch g.State() {
	case Loading:
		return entities.AdminSession{}, ErrSessionLoading
	case Authenticated:
		current, ok := g.sessions.Current()
		if ok {
			return current, nil
		}
	}
	return entities.AdminSession{}, &RedirectError{To: LoginCommand}
}
