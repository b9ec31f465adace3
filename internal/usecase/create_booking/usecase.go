package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/pricing"
	"github.com/m04kA/SMC-ParkingService/pkg/keylock"
)

const commandName = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	listingClient ListingClient
	publisher     EventPublisher
	txManager     TransactionManager
	locks         KeyLocker
	metrics       CommandObserver
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	listingClient ListingClient,
	publisher EventPublisher,
	txManager TransactionManager,
	locks KeyLocker,
	metrics CommandObserver,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		listingClient: listingClient,
		publisher:     publisher,
		txManager:     txManager,
		locks:         locks,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и вставка идут в одной сериализуемой транзакции под блокировкой места
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() {
		if uc.metrics != nil {
			uc.metrics.ObserveBookingCommand(commandName, err)
		}
	}()

	uc.logger.Info("CreateBooking: renter=%s, space=%s, start=%s, end=%s",
		req.RenterID, req.SpaceID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем окно бронирования
	now := uc.timeProvider.Now()
	if err := validateWindow(req.StartTime, req.EndTime, now); err != nil {
		uc.logger.Warn("CreateBooking: window validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем место
	space, err := uc.listingClient.GetSpace(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateBooking: space id=%s not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get space id=%s: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	// 4. Считаем цену
	quote, err := pricing.QuoteFor(space, req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CreateBooking: pricing failed for space id=%s: %v", req.SpaceID, err)
		return nil, err
	}

	unlock := uc.locks.LockAll(keylock.Key("space", req.SpaceID))
	defer unlock()

	var result *domain.Booking

	// 5. Проверка пересечений и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, err := uc.bookingRepo.ListOverlapping(txCtx, req.SpaceID, req.StartTime, req.EndTime, "")
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to list overlapping bookings: %w", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: space id=%s has %d overlapping bookings", req.SpaceID, len(overlapping))
			return ErrSpaceUnavailable
		}

		booking := &domain.Booking{
			RenterID:       req.RenterID,
			SpaceID:        req.SpaceID,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			TotalPrice:     quote.Total,
			ExtensionPrice: decimal.Zero,
			Status:         domain.StatusConfirmed,
		}

		created, err := uc.bookingRepo.Insert(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to insert booking: %v", err)
			return fmt.Errorf("%w: failed to insert booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, total=%s", result.ID, result.TotalPrice.StringFixed(domain.MoneyPlaces))

	if uc.publisher != nil {
		uc.publisher.BookingCreated(ctx, result)
	}

	return &Response{
		Booking:       result,
		BillableHours: quote.BillableHours,
		PricePerHour:  quote.PricePerHour,
		Multiplier:    quote.Multiplier,
		Discount:      quote.Discount,
	}, nil
}
