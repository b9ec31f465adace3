package extend_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidHours       = "количество дополнительных часов должно быть положительным"
	msgInvalidEndTime     = "новое время окончания должно быть позже текущего"
	msgNotFound           = "бронирование или место не найдено"
	msgForbidden          = "продлить бронирование может только арендатор"
	msgCannotExtend       = "бронирование не может быть продлено в текущем статусе"
	msgSpaceUnavailable   = "место занято на время продления"
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

// Handle POST /api/v1/bookings/{bookingId}/extend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/extend - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.ExtendBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/extend - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Extend(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /bookings/{id}/extend - Not found: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/extend - Access denied: booking_id=%s, user_id=%s", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/extend - Invalid hours: booking_id=%s, hours=%d", bookingID, req.AdditionalHours)
			handlers.RespondBadRequest(w, msgInvalidHours)

		case errors.Is(err, domain.ErrInvalidWindow):
			h.logger.Warn("POST /bookings/{id}/extend - Invalid end time: booking_id=%s, new_end=%s",
				bookingID, req.NewEndTime.Format(time.RFC3339))
			handlers.RespondBadRequest(w, msgInvalidEndTime)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/extend - Cannot extend: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgCannotExtend)

		case errors.Is(err, domain.ErrSpaceUnavailable):
			h.logger.Warn("POST /bookings/{id}/extend - Space unavailable: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgSpaceUnavailable)

		default:
			h.logger.Error("POST /bookings/{id}/extend - Failed to extend booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/extend - Booking extended: booking_id=%s, hours=%d, total=%s",
		bookingID, req.AdditionalHours, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, result)
}
