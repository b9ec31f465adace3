package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/policy/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// Defaults значения политики, когда хост ничего не настроил
type Defaults struct {
	FreeCancellationHours      int
	LateCancellationFeePercent int
}

// Service сервис политик отмены
type Service struct {
	policyRepo    PolicyRepository
	listingClient ListingClient
	txManager     TransactionManager
	defaults      Defaults
	logger        Logger
}

// StandardDefaults правило отмены по умолчанию: 2 часа бесплатно, затем удержание 50%
func StandardDefaults() Defaults {
	return Defaults{
		FreeCancellationHours:      domain.DefaultFreeCancellationHours,
		LateCancellationFeePercent: domain.DefaultLateCancellationFeePercent,
	}
}

// NewService создает новый экземпляр сервиса политик отмены
// defaults используются как есть, нулевые значения означают бесплатную отмену до начала и отмену без удержания
func NewService(
	policyRepo PolicyRepository,
	listingClient ListingClient,
	txManager TransactionManager,
	defaults Defaults,
	logger Logger,
) *Service {
	return &Service{
		policyRepo:    policyRepo,
		listingClient: listingClient,
		txManager:     txManager,
		defaults:      defaults,
		logger:        logger,
	}
}

// GetEffective получает действующую политику места с учетом иерархии
// Приоритет: место > все места хоста > значения по умолчанию
func (s *Service) GetEffective(ctx context.Context, hostID, spaceID string) (*domain.CancellationPolicy, error) {
	policy, err := s.policyRepo.GetWithHierarchy(ctx, hostID, spaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.defaultPolicy(hostID), nil
		}
		s.logger.Error("GetEffective: repository error for host=%s, space=%s: %v", hostID, spaceID, err)
		return nil, fmt.Errorf("%w: GetEffective - repository error: %w", ErrInternal, err)
	}

	return policy, nil
}

// GetForSpace действующая политика места
// Публичный метод, показывается арендатору до бронирования
func (s *Service) GetForSpace(ctx context.Context, spaceID string) (*models.PolicyResponse, error) {
	s.logger.Info("GetForSpace: fetching policy for space=%s", spaceID)

	space, err := s.getSpace(ctx, "GetForSpace", spaceID)
	if err != nil {
		return nil, err
	}

	policy, err := s.GetEffective(ctx, space.HostID, space.ID)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainPolicy(policy)
	s.logger.Info("GetForSpace: space=%s uses %s policy", spaceID, resp.Level)
	return resp, nil
}

// ListByHost получает все политики хоста
// Доступно только самому хосту
func (s *Service) ListByHost(ctx context.Context, hostID, userID string) (*models.PolicyListResponse, error) {
	s.logger.Info("ListByHost: fetching policies for host=%s by user=%s", hostID, userID)

	if hostID != userID {
		s.logger.Warn("ListByHost: user=%s is not host=%s", userID, hostID)
		return nil, ErrAccessDenied
	}

	policies, err := s.policyRepo.ListByHost(ctx, hostID)
	if err != nil {
		s.logger.Error("ListByHost: repository error for host=%s: %v", hostID, err)
		return nil, fmt.Errorf("%w: ListByHost - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListByHost: successfully fetched %d policies for host=%s", len(policies), hostID)
	return models.FromDomainPolicyList(policies), nil
}

// Upsert создает или заменяет политику
// Доступно только хосту, место (если указано) должно принадлежать хосту
func (s *Service) Upsert(ctx context.Context, req *models.UpsertPolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Upsert: saving policy for host=%s, space=%q by user=%s", req.HostID, ptr.Value(req.SpaceID), req.UserID)

	// 1. Валидируем входные данные
	if err := s.validatePolicyData(req.FreeCancellationHours, req.LateCancellationFeePercent); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа
	if req.HostID != req.UserID {
		s.logger.Warn("Upsert: user=%s is not host=%s", req.UserID, req.HostID)
		return nil, ErrAccessDenied
	}

	// 3. Если указано место, проверяем, что оно принадлежит хосту
	if req.SpaceID != nil {
		if err := s.checkSpaceOwner(ctx, "Upsert", *req.SpaceID, req.HostID); err != nil {
			return nil, err
		}
	}

	// 4. Сохраняем в транзакции: чтение и запись по одному ключу
	var saved *domain.CancellationPolicy
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.policyRepo.Upsert(ctx, req.ToDomainPolicy())
		return err
	})
	if err != nil {
		s.logger.Error("Upsert: repository error for host=%s: %v", req.HostID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved policy id=%d for host=%s", saved.ID, req.HostID)
	return models.FromDomainPolicy(saved), nil
}

// Delete удаляет политику, после чего действует уровень выше
// Доступно только хосту
func (s *Service) Delete(ctx context.Context, req *models.DeletePolicyRequest) error {
	s.logger.Info("Delete: deleting policy for host=%s, space=%q by user=%s", req.HostID, ptr.Value(req.SpaceID), req.UserID)

	if req.HostID != req.UserID {
		s.logger.Warn("Delete: user=%s is not host=%s", req.UserID, req.HostID)
		return ErrAccessDenied
	}

	if err := s.policyRepo.Delete(ctx, req.HostID, req.SpaceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Delete: policy not found for host=%s, space=%q", req.HostID, ptr.Value(req.SpaceID))
			return ErrPolicyNotFound
		}
		s.logger.Error("Delete: repository error for host=%s: %v", req.HostID, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted policy for host=%s, space=%q", req.HostID, ptr.Value(req.SpaceID))
	return nil
}

// Вспомогательные методы

func (s *Service) defaultPolicy(hostID string) *domain.CancellationPolicy {
	return &domain.CancellationPolicy{
		HostID:                     hostID,
		FreeCancellationHours:      s.defaults.FreeCancellationHours,
		LateCancellationFeePercent: s.defaults.LateCancellationFeePercent,
	}
}

func (s *Service) getSpace(ctx context.Context, op, spaceID string) (*domain.ParkingSpace, error) {
	space, err := s.listingClient.GetSpace(ctx, spaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: space id=%s not found", op, spaceID)
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("%s: failed to get space id=%s: %v", op, spaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}
	return space, nil
}

// checkSpaceOwner проверяет, что место принадлежит хосту
func (s *Service) checkSpaceOwner(ctx context.Context, op, spaceID, hostID string) error {
	space, err := s.getSpace(ctx, op, spaceID)
	if err != nil {
		return err
	}

	if space.HostID != hostID {
		s.logger.Warn("%s: space id=%s belongs to host=%s, not %s", op, spaceID, space.HostID, hostID)
		return ErrAccessDenied
	}
	return nil
}

// validatePolicyData валидирует параметры политики
func (s *Service) validatePolicyData(freeHours, feePercent int) error {
	if freeHours < 0 || freeHours > domain.MaxFreeCancellationHours {
		return fmt.Errorf("%w: freeCancellationHours must be between 0 and %d", ErrInvalidInput, domain.MaxFreeCancellationHours)
	}

	if feePercent < 0 || feePercent > domain.MaxLateCancellationFeePercent {
		return fmt.Errorf("%w: lateCancellationFeePercent must be between 0 and %d", ErrInvalidInput, domain.MaxLateCancellationFeePercent)
	}

	return nil
}
