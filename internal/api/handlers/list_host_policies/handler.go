package list_host_policies

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "политики отмены доступны только хосту"
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

// Handle GET /api/v1/hosts/{hostId}/cancellation-policies
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID := mux.Vars(r)["hostId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /hosts/{id}/cancellation-policies - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListByHost(r.Context(), hostID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			h.logger.Warn("GET /hosts/{id}/cancellation-policies - Access denied: host_id=%s, user_id=%s", hostID, userID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}

		h.logger.Error("GET /hosts/{id}/cancellation-policies - Failed to list policies: host_id=%s, error=%v", hostID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /hosts/{id}/cancellation-policies - Policies retrieved: host_id=%s, count=%d",
		hostID, len(result.Policies))
	handlers.RespondJSON(w, http.StatusOK, result.Policies)
}
