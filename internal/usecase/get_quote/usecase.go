package get_quote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/pricing"
)

// UseCase use case для расчета цены без создания бронирования
type UseCase struct {
	listingClient ListingClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(listingClient ListingClient, logger Logger) *UseCase {
	return &UseCase{
		listingClient: listingClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute возвращает расчет цены для окна на месте
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*pricing.Quote, error) {
	if strings.TrimSpace(req.SpaceID) == "" {
		return nil, fmt.Errorf("%w: spaceID is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidWindow)
	}
	if !req.StartTime.After(uc.timeProvider.Now()) {
		return nil, fmt.Errorf("%w: startTime must be in the future", ErrInvalidWindow)
	}

	space, err := uc.listingClient.GetSpace(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetQuote: space id=%s not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("GetQuote: failed to get space id=%s: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	quote, err := pricing.QuoteFor(space, req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("GetQuote: pricing failed for space id=%s: %v", req.SpaceID, err)
		return nil, err
	}

	return quote, nil
}
