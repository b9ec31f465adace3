package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgRenterMismatch     = "нельзя создать бронирование за другого пользователя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidWindow      = "некорректное время бронирования: конец должен быть позже начала, начало в будущем"
	msgSpaceNotFound      = "парковочное место не найдено"
	msgSpaceUnavailable   = "место уже забронировано на это время"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Арендатором всегда является вызывающий пользователь
	if req.RenterID != nil && *req.RenterID != userID {
		h.logger.Warn("POST /bookings - Renter mismatch: user_id=%s, renter_id=%s", userID, *req.RenterID)
		handlers.RespondForbidden(w, msgRenterMismatch)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSpaceUnavailable):
			h.logger.Warn("POST /bookings - Space unavailable: user_id=%s, space_id=%s", userID, req.SpaceID)
			handlers.RespondConflict(w, msgSpaceUnavailable)

		case errors.Is(err, createBooking.ErrSpaceNotFound):
			h.logger.Warn("POST /bookings - Space not found: space_id=%s", req.SpaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, domain.ErrInvalidWindow):
			h.logger.Warn("POST /bookings - Invalid window: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, space_id=%s, error=%v",
				userID, req.SpaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, space_id=%s",
		result.Booking.ID, userID, req.SpaceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
