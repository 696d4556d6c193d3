package admin_login_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"courier-tracking/internal/entities"
	"courier-tracking/internal/generated/dto"
	"courier-tracking/internal/pkg/dtoconv"
	"courier-tracking/internal/pkg/httpresponse"
	"courier-tracking/internal/service/admin"
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
	var loginDTO dto.AdminLoginRequest
	err := json.NewDecoder(r.Body).Decode(&loginDTO)
	if err != nil {
		httpresponse.Error(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.Login(r.Context(), entities.AdminCredentials{
		Email:    loginDTO.Email,
		Password: loginDTO.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrMissingRequiredFields):
			httpresponse.Error(w, h.log, http.StatusBadRequest, "email and password are required")
		case errors.Is(err, admin.ErrInvalidCredentials):
			httpresponse.Error(w, h.log, http.StatusUnauthorized, "invalid credentials")
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("admin login")
			httpresponse.Error(w, h.log, http.StatusInternalServerError, "")
		}
		return
	}

	httpresponse.JSON(w, h.log, http.StatusOK, dtoconv.SessionToDTO(*session))
}
