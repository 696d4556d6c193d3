package ping_get

import (
	"net/http"

	"courier-tracking/internal/generated/dto"
	"courier-tracking/internal/pkg/httpresponse"
)

const pong = "pong"

type Handler struct {
	log handlerLogger
}

func New(log handlerLogger) *Handler {
	return &Handler{
		log: log.With(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	message := pong
	httpresponse.JSON(w, h.log, http.StatusOK, dto.PingResponse{Message: &message})
}
