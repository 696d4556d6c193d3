package profile_put

import (
	"encoding/json"
	"errors"
	"net/http"

	"courier-tracking/internal/entities"
	"courier-tracking/internal/generated/dto"
	"courier-tracking/internal/pkg/dtoconv"
	"courier-tracking/internal/pkg/httpresponse"
	"courier-tracking/internal/pkg/middlewares/auth"
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
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		httpresponse.Error(w, h.log, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var profileDTO dto.ProfileUpdate
	err := json.NewDecoder(r.Body).Decode(&profileDTO)
	if err != nil {
		httpresponse.Error(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	modify := entities.AdminModify{
		ID:       principal.Admin.ID,
		Email:    profileDTO.Email,
		Password: profileDTO.Password,
	}

	session, err := h.service.UpdateProfile(r.Context(), principal.Admin.ID, principal.Token, modify)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrMissingRequiredFields):
			httpresponse.Error(w, h.log, http.StatusBadRequest, "email or password is required")
		case errors.Is(err, admin.ErrInvalidEmail):
			httpresponse.Error(w, h.log, http.StatusBadRequest, admin.ErrInvalidEmail.Error())
		case errors.Is(err, admin.ErrInvalidPassword):
			httpresponse.Error(w, h.log, http.StatusBadRequest, admin.ErrInvalidPassword.Error())
		case errors.Is(err, admin.ErrConflict):
			httpresponse.Error(w, h.log, http.StatusConflict, "email is already taken")
		case errors.Is(err, admin.ErrAdminNotFound):
			httpresponse.Error(w, h.log, http.StatusUnauthorized, "admin no longer exists")
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("admin_id", principal.Admin.ID),
			).Error("update profile")
			httpresponse.Error(w, h.log, http.StatusInternalServerError, "")
		}
		return
	}

	httpresponse.JSON(w, h.log, http.StatusOK, dtoconv.SessionToDTO(*session))
}
