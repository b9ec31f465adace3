package get_quote

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	getQuote "github.com/m04kA/SMC-ParkingService/internal/usecase/get_quote"
)

const (
	msgInvalidTime   = "некорректное время, ожидается RFC 3339"
	msgInvalidWindow = "некорректное окно: конец должен быть позже начала, начало в будущем"
	msgInvalidInput  = "некорректные параметры расчета"
	msgSpaceNotFound = "парковочное место не найдено"
)

type Handler struct {
	useCase GetQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/quote
// Query params: startTime, endTime (RFC 3339, обязательны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID := mux.Vars(r)["spaceId"]

	start, errStart := time.Parse(time.RFC3339, r.URL.Query().Get("startTime"))
	end, errEnd := time.Parse(time.RFC3339, r.URL.Query().Get("endTime"))
	if errStart != nil || errEnd != nil {
		h.logger.Warn("GET /spaces/{id}/quote - Invalid time: start_err=%v, end_err=%v", errStart, errEnd)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	quote, err := h.useCase.Execute(r.Context(), &getQuote.Request{
		SpaceID:   spaceID,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /spaces/{id}/quote - Space not found: space_id=%s", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, domain.ErrInvalidWindow):
			h.logger.Warn("GET /spaces/{id}/quote - Invalid window: space_id=%s, error=%v", spaceID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("GET /spaces/{id}/quote - Invalid input: space_id=%s, error=%v", spaceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /spaces/{id}/quote - Failed to quote: space_id=%s, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spaces/{id}/quote - Quote calculated: space_id=%s, hours=%d, total=%s",
		spaceID, quote.BillableHours, quote.Total.StringFixed(domain.MoneyPlaces))
	handlers.RespondJSON(w, http.StatusOK, FromQuote(quote))
}
