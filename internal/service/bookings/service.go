package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/keylock"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo   BookingRepository
	listingClient ListingClient
	policies      PolicyProvider
	publisher     EventPublisher
	txManager     TransactionManager
	locks         KeyLocker
	metrics       CommandObserver
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	listingClient ListingClient,
	policies PolicyProvider,
	publisher EventPublisher,
	txManager TransactionManager,
	locks KeyLocker,
	metrics CommandObserver,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		listingClient: listingClient,
		policies:      policies,
		publisher:     publisher,
		txManager:     txManager,
		locks:         locks,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Get получает бронирование по ID
// Доступно арендатору и хосту места
func (s *Service) Get(ctx context.Context, id, userID string) (*models.BookingResponse, error) {
	s.logger.Info("Get: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.getBooking(ctx, "Get", id)
	if err != nil {
		return nil, err
	}

	if _, err := s.authorize(ctx, "Get", booking, userID, accessRenterOrHost, false); err != nil {
		return nil, err
	}

	s.logger.Info("Get: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// ListByRenter получает бронирования арендатора
// Пользователь видит только свои бронирования, статус опционален
func (s *Service) ListByRenter(ctx context.Context, req *models.ListRenterBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByRenter: fetching bookings for renter=%s, status=%v by user=%s", req.RenterID, req.Status, req.UserID)

	if req.UserID != req.RenterID {
		s.logger.Warn("ListByRenter: user=%s cannot see bookings of renter=%s", req.UserID, req.RenterID)
		return nil, ErrAccessDenied
	}

	status, err := parseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("ListByRenter: invalid status=%v for renter=%s", req.Status, req.RenterID)
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByRenter(ctx, req.RenterID, status)
	if err != nil {
		s.logger.Error("ListByRenter: repository error for renter=%s: %v", req.RenterID, err)
		return nil, fmt.Errorf("%w: ListByRenter - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListByRenter: successfully fetched %d bookings for renter=%s", len(bookings), req.RenterID)
	return models.FromDomainBookingList(bookings), nil
}

// ListBySpace получает бронирования места
// Доступно только хосту места
func (s *Service) ListBySpace(ctx context.Context, req *models.ListSpaceBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListBySpace: fetching bookings for space=%s, status=%v by user=%s", req.SpaceID, req.Status, req.UserID)

	status, err := parseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("ListBySpace: invalid status=%v for space=%s", req.Status, req.SpaceID)
		return nil, err
	}

	space, err := s.getSpace(ctx, "ListBySpace", req.SpaceID)
	if err != nil {
		return nil, err
	}

	if space.HostID != req.UserID {
		s.logger.Warn("ListBySpace: user=%s is not host of space=%s", req.UserID, req.SpaceID)
		return nil, ErrHostOnly
	}

	bookings, err := s.bookingRepo.ListBySpace(ctx, req.SpaceID, status)
	if err != nil {
		s.logger.Error("ListBySpace: repository error for space=%s: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: ListBySpace - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListBySpace: successfully fetched %d bookings for space=%s", len(bookings), req.SpaceID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование в целевой статус
// Целевой статус сводится к команде: confirmed -> confirm, active -> check_in,
// completed -> complete, cancelled -> полноценная отмена с возвратом
// Подтвердить и завершить может только хост, остальное арендатор или хост
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by user=%s", id, req.Status, req.UserID)

	target, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, id)
		return nil, err
	}

	cmdName, err := domain.CommandForTarget(target)
	if err != nil {
		s.logger.Warn("UpdateStatus: status=%s cannot be set directly: %v", target, err)
		return nil, err
	}

	if cmdName == domain.CommandCancel {
		return s.Cancel(ctx, id, req.UserID)
	}

	rule := accessRenterOrHost
	if cmdName == domain.CommandConfirm || cmdName == domain.CommandComplete {
		rule = accessHost
	}

	res, err := s.execute(ctx, id, command{
		op:     "UpdateStatus",
		name:   cmdName,
		userID: req.UserID,
		access: rule,
		apply: func(_ context.Context, current *domain.Booking, _ *domain.ParkingSpace, now time.Time) (domain.BookingPatch, error) {
			var patch domain.BookingPatch
			if cmdName == domain.CommandCheckIn && current.CheckedInAt == nil {
				patch.CheckedInAt = &now
			}
			return patch, nil
		},
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: booking id=%s moved %s -> %s", id, res.before.Status, res.after.Status)
	if s.publisher != nil {
		s.publisher.BookingStatusChanged(ctx, res.after, res.before.Status, req.UserID)
	}
	return models.FromDomainBooking(res.after), nil
}

// Cancel отменяет бронирование с возвратом по политике отмены места
// До дедлайна бесплатной отмены возврат полный, после него удерживается штраф,
// после начала бронирования отмена невозможна
func (s *Service) Cancel(ctx context.Context, id, userID string) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", id, userID)

	res, err := s.execute(ctx, id, command{
		op:        "Cancel",
		name:      domain.CommandCancel,
		userID:    userID,
		access:    accessRenterOrHost,
		needSpace: true,
		apply: func(ctx context.Context, current *domain.Booking, space *domain.ParkingSpace, now time.Time) (domain.BookingPatch, error) {
			if !now.Before(current.StartTime) {
				s.logger.Warn("Cancel: booking id=%s started at %s, cancellation closed", current.ID, current.StartTime.Format(time.RFC3339))
				return domain.BookingPatch{}, fmt.Errorf("%w: booking started at %s", domain.ErrCancellationWindowClosed, current.StartTime.Format(time.RFC3339))
			}

			policy, err := s.policies.GetEffective(ctx, space.HostID, space.ID)
			if err != nil {
				s.logger.Error("Cancel: failed to get cancellation policy for space=%s: %v", space.ID, err)
				return domain.BookingPatch{}, fmt.Errorf("%w: Cancel - failed to get policy: %w", ErrInternal, err)
			}

			refund := ComputeRefund(current.TotalPrice, policy, current.StartTime, now)
			return domain.BookingPatch{
				RefundAmount: &refund,
				CancelledAt:  &now,
			}, nil
		},
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s, refund=%s", id, models.FormatMoney(*res.after.RefundAmount))
	if s.publisher != nil {
		s.publisher.BookingCancelled(ctx, res.after, userID)
	}
	return models.FromDomainBooking(res.after), nil
}

// Extend продлевает бронирование до NewEndTime
// Стоимость продления считается по текущей почасовой цене места,
// окно продления не должно пересекаться с другими активными бронированиями
func (s *Service) Extend(ctx context.Context, id string, req *models.ExtendBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Extend: extending booking id=%s to %s (+%dh) by user=%s",
		id, req.NewEndTime.Format(time.RFC3339), req.AdditionalHours, req.UserID)

	if req.AdditionalHours <= 0 {
		s.logger.Warn("Extend: additionalHours=%d must be positive", req.AdditionalHours)
		return nil, fmt.Errorf("%w: additionalHours must be positive", ErrInvalidInput)
	}

	var cost decimal.Decimal
	res, err := s.execute(ctx, id, command{
		op:           "Extend",
		name:         domain.CommandExtend,
		userID:       req.UserID,
		access:       accessRenter,
		needSpace:    true,
		lockSpace:    true,
		serializable: true,
		validate: func(current *domain.Booking, _ time.Time) error {
			if !req.NewEndTime.After(current.EndTime) {
				return fmt.Errorf("%w: newEndTime must be after current end time %s",
					domain.ErrInvalidWindow, current.EndTime.Format(time.RFC3339))
			}
			return nil
		},
		apply: func(ctx context.Context, current *domain.Booking, space *domain.ParkingSpace, _ time.Time) (domain.BookingPatch, error) {
			overlapping, err := s.bookingRepo.ListOverlapping(ctx, current.SpaceID, current.EndTime, req.NewEndTime, current.ID)
			if err != nil {
				s.logger.Error("Extend: failed to check overlapping bookings for space=%s: %v", current.SpaceID, err)
				return domain.BookingPatch{}, fmt.Errorf("%w: Extend - repository error: %w", ErrInternal, err)
			}
			if len(overlapping) > 0 {
				s.logger.Warn("Extend: space=%s is taken by booking id=%s in the extension window", current.SpaceID, overlapping[0].ID)
				return domain.BookingPatch{}, fmt.Errorf("%w: extension overlaps booking %s", domain.ErrSpaceUnavailable, overlapping[0].ID)
			}

			extensionCost, err := computeExtensionCost(space, req.AdditionalHours)
			if err != nil {
				return domain.BookingPatch{}, err
			}
			cost = extensionCost

			return extensionPatch(current, req.NewEndTime, req.AdditionalHours, extensionCost), nil
		},
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Extend: successfully extended booking id=%s, cost=%s, total=%s",
		id, models.FormatMoney(cost), models.FormatMoney(res.after.TotalPrice))
	if s.publisher != nil {
		s.publisher.BookingExtended(ctx, res.after, res.before.EndTime, req.AdditionalHours, cost)
	}
	return models.FromDomainBooking(res.after), nil
}

// ReportIssue фиксирует проблему с местом
// Доступно только арендатору для подтвержденного или активного бронирования
func (s *Service) ReportIssue(ctx context.Context, id string, req *models.ReportIssueRequest) (*models.BookingResponse, error) {
	s.logger.Info("ReportIssue: reporting issue=%s on booking id=%s by user=%s", req.IssueType, id, req.UserID)

	var (
		issueType   domain.IssueType
		description string
	)
	res, err := s.execute(ctx, id, command{
		op:     "ReportIssue",
		name:   domain.CommandReportIssue,
		userID: req.UserID,
		access: accessRenter,
		validate: func(_ *domain.Booking, _ time.Time) error {
			var err error
			description, err = validateIssueDescription(req.Description)
			if err != nil {
				return err
			}
			issueType, err = models.ToDomainIssueType(req.IssueType)
			return err
		},
		apply: func(_ context.Context, _ *domain.Booking, _ *domain.ParkingSpace, now time.Time) (domain.BookingPatch, error) {
			return domain.BookingPatch{
				IssueType:        &issueType,
				IssueDescription: &description,
				IssueReportedAt:  &now,
			}, nil
		},
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ReportIssue: successfully reported issue on booking id=%s", id)
	if s.publisher != nil {
		s.publisher.BookingIssueReported(ctx, res.after)
	}
	return models.FromDomainBooking(res.after), nil
}

// CheckIn отмечает заезд арендатора
func (s *Service) CheckIn(ctx context.Context, id, userID string) (*models.BookingResponse, error) {
	s.logger.Info("CheckIn: booking id=%s by user=%s", id, userID)

	res, err := s.execute(ctx, id, command{
		op:     "CheckIn",
		name:   domain.CommandCheckIn,
		userID: userID,
		access: accessRenter,
		apply: func(_ context.Context, current *domain.Booking, _ *domain.ParkingSpace, now time.Time) (domain.BookingPatch, error) {
			var patch domain.BookingPatch
			if current.CheckedInAt == nil {
				patch.CheckedInAt = &now
			}
			return patch, nil
		},
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CheckIn: successfully checked in booking id=%s", id)
	if s.publisher != nil {
		s.publisher.BookingStatusChanged(ctx, res.after, res.before.Status, userID)
	}
	return models.FromDomainBooking(res.after), nil
}

// CheckOut отмечает выезд арендатора и завершает бронирование
func (s *Service) CheckOut(ctx context.Context, id, userID string) (*models.BookingResponse, error) {
	s.logger.Info("CheckOut: booking id=%s by user=%s", id, userID)

	res, err := s.execute(ctx, id, command{
		op:     "CheckOut",
		name:   domain.CommandComplete,
		userID: userID,
		access: accessRenter,
		apply: func(_ context.Context, _ *domain.Booking, _ *domain.ParkingSpace, now time.Time) (domain.BookingPatch, error) {
			return domain.BookingPatch{CheckedOutAt: &now}, nil
		},
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CheckOut: successfully checked out booking id=%s", id)
	if s.publisher != nil {
		s.publisher.BookingStatusChanged(ctx, res.after, res.before.Status, userID)
	}
	return models.FromDomainBooking(res.after), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) getSpace(ctx context.Context, op, spaceID string) (*domain.ParkingSpace, error) {
	space, err := s.listingClient.GetSpace(ctx, spaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: space id=%s not found", op, spaceID)
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("%s: failed to get space id=%s: %v", op, spaceID, err)
		return nil, fmt.Errorf("%w: %s - failed to get space: %v", ErrInternal, op, err)
	}
	return space, nil
}

// parseStatusFilter разбирает необязательный фильтр по статусу
func parseStatusFilter(status *string) (*domain.BookingStatus, error) {
	if status == nil || *status == "" {
		return nil, nil
	}
	parsed, err := models.ToDomainBookingStatus(*status)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func bookingLockKey(id string) string {
	return keylock.Key("booking", id)
}
