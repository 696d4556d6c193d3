package track_get

import (
	"errors"
	"net/http"

	"courier-tracking/internal/pkg/dtoconv"
	"courier-tracking/internal/pkg/httpresponse"
	"courier-tracking/internal/service/shipment"
	"courier-tracking/pkg/logger"

	"github.com/gorilla/mux"
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
	trackingID := mux.Vars(r)["trackingId"]

	res, err := h.service.Track(r.Context(), trackingID)
	if err != nil {
		switch {
		case errors.Is(err, shipment.ErrInvalidTrackingID):
			httpresponse.Error(w, h.log, http.StatusBadRequest, err.Error())
		case errors.Is(err, shipment.ErrShipmentNotFound):
			httpresponse.Error(w, h.log, http.StatusNotFound, "shipment not found")
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("tracking_id", trackingID),
			).Error("track shipment")
			httpresponse.Error(w, h.log, http.StatusInternalServerError, "")
		}
		return
	}

	httpresponse.JSON(w, h.log, http.StatusOK, dtoconv.ShipmentToDTO(*res))
}
