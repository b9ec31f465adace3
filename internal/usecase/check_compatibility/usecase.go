package check_compatibility

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
)

// UseCase use case проверки, помещается ли машина пользователя на место
type UseCase struct {
	listingClient ListingClient
	profileClient ProfileClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(listingClient ListingClient, profileClient ProfileClient, logger Logger) *UseCase {
	return &UseCase{
		listingClient: listingClient,
		profileClient: profileClient,
		logger:        logger,
	}
}

// Execute выполняет проверку совместимости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.SpaceID) == "" || strings.TrimSpace(req.VehicleID) == "" {
		return nil, fmt.Errorf("%w: userID, spaceID and vehicleID are required", ErrInvalidInput)
	}

	// 1. Получаем машину из профиля пользователя
	vehicle, err := uc.profileClient.GetVehicle(ctx, req.UserID, req.VehicleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CheckCompatibility: vehicle id=%s of user=%s not found", req.VehicleID, req.UserID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("CheckCompatibility: failed to get vehicle id=%s: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	if vehicle.OwnerID != req.UserID {
		uc.logger.Warn("CheckCompatibility: vehicle id=%s belongs to user=%s, not %s", req.VehicleID, vehicle.OwnerID, req.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Получаем место
	space, err := uc.listingClient.GetSpace(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CheckCompatibility: space id=%s not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("CheckCompatibility: failed to get space id=%s: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	// 3. Проверяем габариты и тип
	result := availability.CheckCompatibility(vehicle, space)

	uc.logger.Info("CheckCompatibility: vehicle=%s, space=%s, compatible=%t, issues=%d, warnings=%d",
		req.VehicleID, req.SpaceID, result.Compatible, len(result.Issues), len(result.Warnings))

	return &Response{
		SpaceID:    space.ID,
		VehicleID:  vehicle.ID,
		Compatible: result.Compatible,
		Issues:     result.Issues,
		Warnings:   result.Warnings,
	}, nil
}
