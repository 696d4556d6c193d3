package shipment_create_post

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
	var createDTO dto.ShipmentCreate
	err := json.NewDecoder(r.Body).Decode(&createDTO)
	if err != nil {
		httpresponse.Error(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	in, err := dtoconv.CreateFromDTO(createDTO)
	if err != nil {
		httpresponse.Error(w, h.log, http.StatusBadRequest, httpresponse.ValidationMessage(err))
		return
	}

	res, err := h.service.CreateShipment(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrValidation):
			httpresponse.Error(w, h.log, http.StatusBadRequest, httpresponse.ValidationMessage(err))
		case errors.Is(err, shipment.ErrConflict):
			httpresponse.Error(w, h.log, http.StatusConflict, "could not allocate a unique tracking id")
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("create shipment")
			httpresponse.Error(w, h.log, http.StatusInternalServerError, "")
		}
		return
	}

	httpresponse.JSON(w, h.log, http.StatusCreated, dtoconv.ShipmentToDTO(*res))
}
