package delete_cancellation_policy

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
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "политика отмены не найдена"
	msgForbidden     = "доступ запрещен"
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

// Handle DELETE /api/v1/hosts/{hostId}/cancellation-policies
// Query params: spaceId (опционально, без него удаляется политика уровня хоста)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID := mux.Vars(r)["hostId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /hosts/{id}/cancellation-policies - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.DeletePolicyRequest{UserID: userID, HostID: hostID}
	if spaceID := r.URL.Query().Get("spaceId"); spaceID != "" {
		req.SpaceID = &spaceID
	}

	if err := h.service.Delete(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("DELETE /hosts/{id}/cancellation-policies - Access denied: host_id=%s, user_id=%s", hostID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("DELETE /hosts/{id}/cancellation-policies - Policy not found: host_id=%s, space_id=%q", hostID, ptr.Value(req.SpaceID))
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /hosts/{id}/cancellation-policies - Failed to delete policy: host_id=%s, error=%v", hostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /hosts/{id}/cancellation-policies - Policy deleted: host_id=%s", hostID)
	handlers.RespondNoContent(w)
}
