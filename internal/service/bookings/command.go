package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/keylock"
)

type access int

const (
	accessRenterOrHost access = iota
	accessRenter
	accessHost
)

// command описание команды жизненного цикла
type command struct {
	op     string
	name   domain.Command
	userID string
	access access

	needSpace    bool // место нужно для расчета цены или политики
	lockSpace    bool // команда проверяет пересечения по месту
	serializable bool

	// validate проверки входа, выполняются до проверки перехода
	validate func(current *domain.Booking, now time.Time) error
	// apply вычисляет изменения, переход уже разрешен
	apply func(ctx context.Context, current *domain.Booking, space *domain.ParkingSpace, now time.Time) (domain.BookingPatch, error)
}

type commandResult struct {
	before *domain.Booking
	after  *domain.Booking
}

// execute выполняет команду: блокировка бронирования, транзакция, перечитывание
// под блокировкой строки, проверка перехода, запись патча
// Любая ошибка до Update оставляет бронирование без изменений
func (s *Service) execute(ctx context.Context, id string, cmd command) (res *commandResult, err error) {
	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveBookingCommand(string(cmd.name), err)
		}
	}()

	// 1. Получаем бронирование и проверяем права, арендатор и место не меняются
	booking, err := s.getBooking(ctx, cmd.op, id)
	if err != nil {
		return nil, err
	}

	space, err := s.authorize(ctx, cmd.op, booking, cmd.userID, cmd.access, cmd.needSpace)
	if err != nil {
		return nil, err
	}

	// 2. Один писатель на бронирование, при проверке пересечений и на место
	keys := []string{bookingLockKey(id)}
	if cmd.lockSpace {
		keys = append(keys, keylock.Key("space", booking.SpaceID))
	}
	unlock := s.locks.LockAll(keys...)
	defer unlock()

	run := s.txManager.Do
	if cmd.serializable {
		run = s.txManager.DoSerializable
	}

	// 3. Перечитываем и меняем бронирование в транзакции
	res = &commandResult{}
	err = run(ctx, func(txCtx context.Context) error {
		current, err := s.getBooking(txCtx, cmd.op, id)
		if err != nil {
			return err
		}

		now := s.timeProvider.Now()

		if cmd.validate != nil {
			if err := cmd.validate(current, now); err != nil {
				s.logger.Warn("%s: validation failed for booking id=%s: %v", cmd.op, id, err)
				return err
			}
		}

		next, err := domain.Transition(current.Status, cmd.name)
		if err != nil {
			s.logger.Warn("%s: booking id=%s: %v", cmd.op, id, err)
			return err
		}

		var patch domain.BookingPatch
		if cmd.apply != nil {
			patch, err = cmd.apply(txCtx, current, space, now)
			if err != nil {
				return err
			}
		}
		patch.Status = &next

		updated, err := s.bookingRepo.Update(txCtx, id, patch)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("%s: failed to update booking id=%s: %v", cmd.op, id, err)
			return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, cmd.op, err)
		}

		res.before = current
		res.after = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// authorize проверяет роль пользователя относительно бронирования
// Место запрашивается, только если нужно проверить хоста или команде нужна цена
func (s *Service) authorize(
	ctx context.Context,
	op string,
	booking *domain.Booking,
	userID string,
	rule access,
	needSpace bool,
) (*domain.ParkingSpace, error) {
	isRenter := booking.RenterID == userID

	if rule == accessRenter && !isRenter {
		s.logger.Warn("%s: user=%s is not the renter of booking id=%s", op, userID, booking.ID)
		return nil, ErrRenterOnly
	}

	needHost := rule == accessHost || (rule == accessRenterOrHost && !isRenter)

	var space *domain.ParkingSpace
	if needSpace || needHost {
		var err error
		space, err = s.getSpace(ctx, op, booking.SpaceID)
		if err != nil {
			return nil, err
		}
	}

	if !needHost {
		return space, nil
	}

	if space.HostID == userID {
		return space, nil
	}

	if rule == accessHost {
		s.logger.Warn("%s: user=%s is not the host of space=%s", op, userID, booking.SpaceID)
		return nil, ErrHostOnly
	}

	s.logger.Warn("%s: access denied for user=%s to booking id=%s", op, userID, booking.ID)
	return nil, ErrAccessDenied
}
