package get_space_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidStatus = "некорректный статус"
	msgSpaceNotFound = "парковочное место не найдено"
	msgForbidden     = "бронирования места доступны только хосту"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/bookings
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID := mux.Vars(r)["spaceId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /spaces/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var statusPtr *string
	if status := r.URL.Query().Get("status"); status != "" {
		statusPtr = &status
	}

	// Сервис сам проверит, что пользователь хост места
	result, err := h.service.ListBySpace(r.Context(), &models.ListSpaceBookingsRequest{
		UserID:  userID,
		SpaceID: spaceID,
		Status:  statusPtr,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /spaces/{id}/bookings - Space not found: space_id=%s", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("GET /spaces/{id}/bookings - Access denied: space_id=%s, user_id=%s", spaceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("GET /spaces/{id}/bookings - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /spaces/{id}/bookings - Failed to get bookings: space_id=%s, error=%v",
				spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spaces/{id}/bookings - Bookings retrieved successfully: space_id=%s, count=%d",
		spaceID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
