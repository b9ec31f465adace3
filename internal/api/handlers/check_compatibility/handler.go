package check_compatibility

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	checkCompatibility "github.com/m04kA/SMC-ParkingService/internal/usecase/check_compatibility"
)

const (
	msgMissingUserID    = "отсутствует ID пользователя"
	msgMissingVehicleID = "параметр vehicleId обязателен"
	msgSpaceNotFound    = "парковочное место не найдено"
	msgVehicleNotFound  = "автомобиль не найден"
	msgForbidden        = "автомобиль принадлежит другому пользователю"
)

type Handler struct {
	useCase CheckCompatibilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckCompatibilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/compatibility
// Query params: vehicleId (обязателен)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID := mux.Vars(r)["spaceId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /spaces/{id}/compatibility - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vehicleID := r.URL.Query().Get("vehicleId")
	if vehicleID == "" {
		h.logger.Warn("GET /spaces/{id}/compatibility - Missing vehicle ID")
		handlers.RespondBadRequest(w, msgMissingVehicleID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkCompatibility.Request{
		UserID:    userID,
		SpaceID:   spaceID,
		VehicleID: vehicleID,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkCompatibility.ErrVehicleNotFound):
			h.logger.Warn("GET /spaces/{id}/compatibility - Vehicle not found: vehicle_id=%s, user_id=%s", vehicleID, userID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, checkCompatibility.ErrSpaceNotFound):
			h.logger.Warn("GET /spaces/{id}/compatibility - Space not found: space_id=%s", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("GET /spaces/{id}/compatibility - Access denied: vehicle_id=%s, user_id=%s", vehicleID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("GET /spaces/{id}/compatibility - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingVehicleID)

		default:
			h.logger.Error("GET /spaces/{id}/compatibility - Failed to check: space_id=%s, vehicle_id=%s, error=%v",
				spaceID, vehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spaces/{id}/compatibility - Checked: space_id=%s, vehicle_id=%s, compatible=%t",
		spaceID, vehicleID, result.Compatible)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
