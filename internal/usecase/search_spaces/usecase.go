package search_spaces

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
)

// UseCase use case поиска доступных мест по условиям
type UseCase struct {
	listingClient ListingClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(listingClient ListingClient, logger Logger) *UseCase {
	return &UseCase{
		listingClient: listingClient,
		logger:        logger,
	}
}

// Execute загружает кандидатов, фильтрует и сортирует их
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	criteria := availability.Criteria{
		MaxPrice:    req.MaxPrice,
		MaxDistance: req.MaxDistance,
		EVCharging:  req.EVCharging,
		Covered:     req.Covered,
		Security:    req.Security,
		MinHeight:   req.MinHeight,
	}

	// 1. Валидация условий
	if err := criteria.Validate(); err != nil {
		uc.logger.Warn("SearchSpaces: invalid criteria: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sortKey, err := availability.ParseSortKey(req.SortBy)
	if err != nil {
		uc.logger.Warn("SearchSpaces: unknown sort key %q", req.SortBy)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateLocation(req.Lat, req.Lng); err != nil {
		uc.logger.Warn("SearchSpaces: invalid location: %v", err)
		return nil, err
	}

	// 2. Загружаем кандидатов
	candidates, err := uc.listingClient.SearchSpaces(ctx, req.Lat, req.Lng)
	if err != nil {
		uc.logger.Error("SearchSpaces: failed to load candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to load candidates: %v", ErrInternal, err)
	}

	// 3. Фильтрация и сортировка
	spaces := availability.FilterSpaces(candidates, criteria)
	availability.SortSpaces(spaces, sortKey)

	uc.logger.Info("SearchSpaces: %d of %d spaces match, sort=%s", len(spaces), len(candidates), sortKey)

	return &Response{
		Spaces: spaces,
		SortBy: string(sortKey),
	}, nil
}
