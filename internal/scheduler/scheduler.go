package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// jobTimeout ограничение на один запуск задачи
const jobTimeout = time.Minute

// ReservationRepository хранилище резерваций
type ReservationRepository interface {
	CompleteEnded(ctx context.Context, before types.Date) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Scheduler периодические задачи сервиса
type Scheduler struct {
	cron         *cron.Cron
	reservations ReservationRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewScheduler создает планировщик в часовом поясе магазина (cron-выражения с секундами)
// и регистрирует задачу завершения резерваций.
func NewScheduler(reservations ReservationRepository, location *time.Location, completeSpec string, logger Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithSeconds(),
		),
		reservations: reservations,
		location:     location,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}

	if _, err := s.cron.AddFunc(completeSpec, s.runCompleteEnded); err != nil {
		return nil, fmt.Errorf("scheduler: register CompleteEndedReservations %q: %w", completeSpec, err)
	}

	return s, nil
}

// Start запускает планировщик
func (s *Scheduler) Start() {
	s.logger.Info("Scheduler: starting, jobs=%d", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения выполняющихся задач
func (s *Scheduler) Stop() {
	s.logger.Info("Scheduler: stopping")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler: stopped")
}

func (s *Scheduler) runCompleteEnded() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.CompleteEndedReservations(ctx); err != nil {
		s.logger.Error("Scheduler: CompleteEndedReservations failed: %v", err)
	}
}

// CompleteEndedReservations переводит в completed активные резервации, чей день возврата
// уже прошел по календарю магазина. Сегодняшние возвраты не трогает.
func (s *Scheduler) CompleteEndedReservations(ctx context.Context) (int64, error) {
	today := types.DateOf(s.timeProvider.Now().In(s.location))

	affected, err := s.reservations.CompleteEnded(ctx, today)
	if err != nil {
		return 0, err
	}

	if affected > 0 {
		s.logger.Info("Scheduler: completed %d reservations ended before %s", affected, today)
	}
	return affected, nil
}
