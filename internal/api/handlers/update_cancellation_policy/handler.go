package update_cancellation_policy

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/policy/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidData        = "некорректные данные политики: часы 0..168, процент 0..100"
	msgSpaceNotFound      = "парковочное место не найдено"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/hosts/{hostId}/cancellation-policies
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID := mux.Vars(r)["hostId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /hosts/{id}/cancellation-policies - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpsertPolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /hosts/{id}/cancellation-policies - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.HostID = hostID

	// Сервис сам проверит, что пользователь хост и место принадлежит ему
	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("PUT /hosts/{id}/cancellation-policies - Access denied: host_id=%s, user_id=%s", hostID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PUT /hosts/{id}/cancellation-policies - Space not found: host_id=%s, space_id=%q", hostID, ptr.Value(req.SpaceID))
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("PUT /hosts/{id}/cancellation-policies - Invalid data: host_id=%s, error=%v", hostID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /hosts/{id}/cancellation-policies - Failed to save policy: host_id=%s, error=%v", hostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /hosts/{id}/cancellation-policies - Policy saved: host_id=%s, policy_id=%d, level=%s",
		hostID, result.ID, result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}
