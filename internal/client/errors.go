package client

import (
	"errors"
	"fmt"
	"net/http"

	"courier-tracking/internal/lifecycle"
)

var (
	// ErrValidation совпадает с lifecycle.ErrValidation, чтобы ошибки
	// локальной проверки и ответа 400 разбирались одинаково.
	ErrValidation = lifecycle.ErrValidation
	ErrAuth       = errors.New("authentication error")
	ErrNotFound   = errors.New("not found")
	ErrNetwork    = errors.New("network error")
	ErrServer     = errors.New("server error")
)

// Error ошибка ответа или транспорта. Kind одна из ErrValidation, ErrAuth,
// ErrNotFound, ErrNetwork, ErrServer.
type Error struct {
	Kind       error
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrServer
	}
}

func authRequired() error {
	return &Error{Kind: ErrAuth, Message: "not logged in"}
}
