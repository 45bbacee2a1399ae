package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
)

// Service сервис для работы с резервациями
type Service struct {
	reservationRepo ReservationRepository
	staff           StaffChecker
	timeProvider    TimeProvider
	logger          Logger
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// NewService создает новый экземпляр сервиса резерваций
func NewService(
	reservationRepo ReservationRepository,
	staff StaffChecker,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		staff:           staff,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает резервацию по ID.
// Доступно сотрудникам магазина и пользователю, создавшему резервацию.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetItemReservations получает резервации товара с фильтрацией по периоду и статусу.
// Доступно только сотрудникам магазина.
func (s *Service) GetItemReservations(ctx context.Context, req *models.GetItemReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := fmt.Sprintf("GetItemReservations: fetching reservations for item=%d, user=%d", req.ItemID, req.UserID)
	if req.From != nil {
		logMsg += fmt.Sprintf(", from=%s", req.From)
	}
	if req.To != nil {
		logMsg += fmt.Sprintf(", to=%s", req.To)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if !s.staff.IsStaff(req.UserID) {
		s.logger.Warn("GetItemReservations: user=%d is not staff", req.UserID)
		return nil, ErrAccessDenied
	}

	if req.From != nil && req.To != nil && req.From.After(*req.To) {
		s.logger.Warn("GetItemReservations: from %s is after to %s", req.From, req.To)
		return nil, fmt.Errorf("%w: from is after to", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetItemReservations: invalid filter for item=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByItemWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetItemReservations: repository error for item=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: GetItemReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetItemReservations: successfully fetched %d reservations for item=%d", len(reservations), req.ItemID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет активную резервацию и освобождает единицу товара.
// Доступно сотрудникам магазина и пользователю, создавшему резервацию.
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	if req.CancellationReason != nil && utf8.RuneCountInString(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is longer than %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(reservation, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
		return nil, err
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return nil, ErrCannotCancel
	}

	cancelled, err := s.reservationRepo.Cancel(ctx, reservationID, req.CancellationReason, s.timeProvider.Now())
	if err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return nil, ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrCannotCancel):
			// Параллельно уже отменили или завершили
			s.logger.Warn("Cancel: reservation id=%d changed status during cancellation", reservationID)
			return nil, ErrCannotCancel
		default:
			s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
			return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return models.FromDomainReservation(cancelled), nil
}

// checkAccess сотрудник видит все резервации, остальные - только свои
func (s *Service) checkAccess(reservation *domain.Reservation, userID int64) error {
	if s.staff.IsStaff(userID) {
		return nil
	}
	if reservation.CreatedBy != nil && *reservation.CreatedBy == userID {
		return nil
	}
	return ErrAccessDenied
}
