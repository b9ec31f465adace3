package search_spaces

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	msgInvalidParams   = "некорректные параметры поиска"
	msgInvalidCriteria = "некорректные условия поиска: ограничения не могут быть отрицательными, сортировка по distance или price"
)

type Handler struct {
	useCase SearchSpacesUseCase
	logger  Logger
}

func NewHandler(useCase SearchSpacesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces/search
// Query params: maxPrice, maxDistance, evCharging, covered, security, minHeight, sortBy, lat, lng (все опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /spaces/search - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("GET /spaces/search - Invalid criteria: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCriteria)

		default:
			h.logger.Error("GET /spaces/search - Failed to search spaces: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spaces/search - Spaces found: count=%d, sort=%s", len(result.Spaces), result.SortBy)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
