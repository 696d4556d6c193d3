package shipment_put

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
	trackingID := mux.Vars(r)["id"]

	var updateDTO dto.ShipmentUpdate
	err := json.NewDecoder(r.Body).Decode(&updateDTO)
	if err != nil {
		httpresponse.Error(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	patch, err := dtoconv.ModifyFromDTO(updateDTO)
	if err != nil {
		httpresponse.Error(w, h.log, http.StatusBadRequest, httpresponse.ValidationMessage(err))
		return
	}

	res, err := h.service.EditShipment(r.Context(), trackingID, patch)
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
				logger.NewField("tracking_id", trackingID),
			).Error("edit shipment")
			httpresponse.Error(w, h.log, http.StatusInternalServerError, "")
		}
		return
	}

	httpresponse.JSON(w, h.log, http.StatusOK, dtoconv.ShipmentToDTO(*res))
}
