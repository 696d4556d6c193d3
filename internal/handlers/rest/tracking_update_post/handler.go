package tracking_update_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"courier-tracking/internal/generated/dto"
	"courier-tracking/internal/lifecycle"
	"courier-tracking/internal/pkg/dtoconv"
	"courier-tracking/internal/pkg/httpresponse"
	"courier-tracking/internal/service/shipment"
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
	var updateDTO dto.TrackingUpdate
	err := json.NewDecoder(r.Body).Decode(&updateDTO)
	if err != nil {
		httpresponse.Error(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	update := dtoconv.TrackingUpdateFromDTO(updateDTO)

	res, err := h.service.UpdateTracking(r.Context(), update)
	if err != nil {
		switch {
		case errors.Is(err, shipment.ErrInvalidTrackingID):
			httpresponse.Error(w, h.log, http.StatusBadRequest, shipment.ErrInvalidTrackingID.Error())
		case errors.Is(err, lifecycle.ErrValidation):
			httpresponse.Error(w, h.log, http.StatusBadRequest, httpresponse.ValidationMessage(err))
		case errors.Is(err, shipment.ErrShipmentNotFound):
			httpresponse.Error(w, h.log, http.StatusNotFound, "shipment not found")
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("tracking_id", update.TrackingID),
			).Error("update tracking")
			httpresponse.Error(w, h.log, http.StatusInternalServerError, "")
		}
		return
	}

	httpresponse.JSON(w, h.log, http.StatusOK, dtoconv.ShipmentToDTO(*res))
}
