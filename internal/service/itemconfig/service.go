package itemconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/pricing"
	configRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/itemconfig"
	"github.com/m04kA/SMC-RentalService/internal/service/itemconfig/models"
	"github.com/m04kA/SMC-RentalService/internal/service/provider"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

// Service сервис для работы с конфигурацией аренды
type Service struct {
	configRepo ConfigRepository
	items      ItemProvider
	staff      StaffChecker
	txManager  TransactionManager
	defaults   *domain.ItemRentalConfig
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации.
// defaults - значения из конфигурации магазина, используемые, если в БД ничего нет.
func NewService(
	configRepo ConfigRepository,
	items ItemProvider,
	staff StaffChecker,
	txManager TransactionManager,
	defaults *domain.ItemRentalConfig,
	logger Logger,
) *Service {
	if defaults == nil {
		defaults = domain.DefaultRentalConfig()
	}
	return &Service{
		configRepo: configRepo,
		items:      items,
		staff:      staff,
		txManager:  txManager,
		defaults:   defaults,
		logger:     logger,
	}
}

// GetEffective получает действующую конфигурацию товара (товар -> магазин -> встроенные значения).
// Публичный метод - доступен всем.
func (s *Service) GetEffective(ctx context.Context, itemID int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetEffective: fetching config for item=%d", itemID)

	if err := s.checkItemExists(ctx, itemID); err != nil {
		return nil, err
	}

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, itemID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("GetEffective: no stored config for item=%d, using defaults", itemID)
			return models.FromDomainConfig(s.defaults, models.LevelDefault), nil
		}
		s.logger.Error("GetEffective: repository error for item=%d: %v", itemID, err)
		return nil, fmt.Errorf("%w: GetEffective - repository error: %v", ErrInternal, err)
	}

	level := s.getConfigLevel(config)
	s.logger.Info("GetEffective: found config id=%d (level: %s) for item=%d", config.ID, level, itemID)
	return models.FromDomainConfig(config, level), nil
}

// Update обновляет конфигурацию уровня товара (itemID != nil) или магазина (itemID == nil).
// Если конфигурации этого уровня нет, она создается на основе действующей.
// Доступно только сотрудникам магазина.
func (s *Service) Update(ctx context.Context, itemID *int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	// item=0 - общая конфигурация магазина
	s.logger.Info("Update: updating config for item=%d by user=%d", ptr.Value(itemID, 0), req.UserID)

	// 1. Проверяем права доступа
	if !s.staff.IsStaff(req.UserID) {
		s.logger.Warn("Update: user=%d is not staff", req.UserID)
		return nil, ErrAccessDenied
	}

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	// 2. Проверяем существование товара
	if itemID != nil {
		if err := s.checkItemExists(ctx, *itemID); err != nil {
			return nil, err
		}
	}

	var result *domain.ItemRentalConfig

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3. Конфигурация этого уровня или действующая как основа для новой
		existing, err := s.configRepo.GetByItem(txCtx, itemID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Error("Update: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		base := existing
		if base == nil {
			base, err = s.baseFor(txCtx, itemID)
			if err != nil {
				return err
			}
		}

		updated := *base
		updated.ItemID = itemID
		req.ApplyTo(&updated)

		// 4. Валидация
		if err := updated.Validate(); err != nil {
			s.logger.Warn("Update: validation failed: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := pricing.ValidateTiers(updated.Tiers); err != nil {
			s.logger.Warn("Update: tiers validation failed: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 5. Сохраняем
		if existing != nil {
			result, err = s.configRepo.Update(txCtx, existing.ID, &updated)
		} else {
			result, err = s.configRepo.Create(txCtx, &updated)
		}
		if err != nil {
			s.logger.Error("Update: repository error: %v", err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	level := s.getConfigLevel(result)
	s.logger.Info("Update: successfully saved config id=%d (level: %s)", result.ID, level)
	return models.FromDomainConfig(result, level), nil
}

// Вспомогательные методы

// baseFor действующая конфигурация, от которой создается новая конфигурация уровня
func (s *Service) baseFor(ctx context.Context, itemID *int64) (*domain.ItemRentalConfig, error) {
	if itemID != nil {
		config, err := s.configRepo.GetConfigWithHierarchy(ctx, *itemID)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Error("Update: failed to get effective config: %v", err)
			return nil, fmt.Errorf("%w: failed to get effective config: %v", ErrInternal, err)
		}
	}

	defaults := *s.defaults
	defaults.Tiers = append(domain.PricingTiers(nil), s.defaults.Tiers...)
	return &defaults, nil
}

func (s *Service) checkItemExists(ctx context.Context, itemID int64) error {
	if itemID <= 0 {
		return fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}

	_, err := s.items.FetchItem(ctx, itemID)
	if err == nil {
		return nil
	}
	if errors.Is(err, provider.ErrItemNotFound) {
		s.logger.Warn("checkItemExists: item id=%d not found", itemID)
		return ErrItemNotFound
	}
	s.logger.Error("checkItemExists: failed to get item id=%d: %v", itemID, err)
	return fmt.Errorf("%w: failed to get item: %v", ErrInternal, err)
}

// getConfigLevel определяет уровень конфигурации
func (s *Service) getConfigLevel(config *domain.ItemRentalConfig) string {
	if config.IsItemSpecific() {
		return models.LevelItem
	}
	return models.LevelShop
}
