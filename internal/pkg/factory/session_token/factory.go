package session_token

import (
	"github.com/google/uuid"
)

// TokenFactory непрозрачные bearer токены, сами по себе ничего не содержат,
// смысл им придает запись в хранилище сессий.
type TokenFactory struct{}

func New() *TokenFactory {
	return &TokenFactory{}
}

func (f *TokenFactory) New() string {
	return uuid.NewString()
}
