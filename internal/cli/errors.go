package cli

import (
	"context"
	"errors"

	"courier-tracking/internal/client"
	"courier-tracking/internal/guard"
	"courier-tracking/internal/lifecycle"
)

const (
	msgNetwork        = "cannot reach the server, check your connection and try again"
	msgSessionExpired = "session expired or missing, run `" + guard.LoginCommand + "`"
	msgCanceled       = "canceled"
)

var (
	errInvalidCredentials = errors.New("invalid credentials")
	errPasswordMismatch   = &lifecycle.ValidationError{Field: "confirmPassword", Reason: "passwords do not match"}
)

// UserMessage переводит любую ошибку команды в текст для пользователя.
func UserMessage(err error) string {
	var apiErr *client.Error
	var validationErr *lifecycle.ValidationError

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return msgCanceled
	case errors.Is(err, guard.ErrSessionLoading):
		return "session is still loading, try again"
	case errors.Is(err, guard.ErrLoginRequired):
		return err.Error()
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.As(err, &apiErr):
		return apiMessage(apiErr)
	default:
		return err.Error()
	}
}

func apiMessage(err *client.Error) string {
	switch {
	case errors.Is(err, client.ErrNetwork):
		return msgNetwork
	case errors.Is(err, client.ErrAuth):
		return msgSessionExpired
	case errors.Is(err, client.ErrNotFound):
		if err.Message != "" {
			return err.Message
		}
		return "not found"
	case errors.Is(err, client.ErrValidation):
		return err.Message
	default:
		if err.Message != "" {
			return "server error: " + err.Message
		}
		return "server error, try again later"
	}
}
