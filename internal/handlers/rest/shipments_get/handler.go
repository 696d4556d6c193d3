package shipments_get

import (
	"net/http"

	"courier-tracking/internal/pkg/dtoconv"
	"courier-tracking/internal/pkg/httpresponse"
	"courier-tracking/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	shipments, err := h.service.GetShipments(r.Context())
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("list shipments")
		httpresponse.Error(w, h.log, http.StatusInternalServerError, "")
		return
	}

	httpresponse.JSON(w, h.log, http.StatusOK, dtoconv.ShipmentsToDTO(shipments))
}
