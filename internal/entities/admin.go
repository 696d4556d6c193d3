package entities

import "time"

type Admin struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type AdminCredentials struct {
	Email    string
	Password string
}

type AdminModify struct {
	ID       int64
	Email    *string
	Password *string
}

// AdminSession то, что получает клиент после логина: токен и личность админа.
type AdminSession struct {
	Token string `json:"token"`
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
