package get_cancellation_policy

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	msgSpaceNotFound = "парковочное место не найдено"
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

// Handle GET /api/v1/spaces/{spaceId}/cancellation-policy
// Публичный endpoint, без политики хоста возвращаются значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID := mux.Vars(r)["spaceId"]

	result, err := h.service.GetForSpace(r.Context(), spaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.logger.Warn("GET /spaces/{id}/cancellation-policy - Space not found: space_id=%s", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)
			return
		}

		h.logger.Error("GET /spaces/{id}/cancellation-policy - Failed to get policy: space_id=%s, error=%v",
			spaceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /spaces/{id}/cancellation-policy - Policy retrieved: space_id=%s, level=%s",
		spaceID, result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}
