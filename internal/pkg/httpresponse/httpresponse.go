// Package httpresponse пишет JSON ответы REST обработчиков. Ошибки всегда
// отдаются телом {"message": "..."}.
package httpresponse

import (
	"encoding/json"
	"errors"
	"net/http"

	"courier-tracking/internal/generated/dto"
	"courier-tracking/internal/lifecycle"
	"courier-tracking/pkg/logger"
)

type errorLogger interface {
	Error(msg string, fields ...logger.Field)
}

func JSON(w http.ResponseWriter, log errorLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("encode JSON response", logger.NewField("error", err))
	}
}

func Error(w http.ResponseWriter, log errorLogger, status int, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	JSON(w, log, status, dto.ErrorResponse{Message: message})
}

// Message успешный ответ без сущности, например после удаления.
func Message(w http.ResponseWriter, log errorLogger, status int, message string) {
	JSON(w, log, status, dto.MessageResponse{Message: message})
}

// ValidationMessage достает текст ошибки поля без префиксов оберток.
func ValidationMessage(err error) string {
	var vErr *lifecycle.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	return err.Error()
}
