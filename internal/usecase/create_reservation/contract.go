package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	"github.com/m04kA/SMC-RentalService/internal/service/snapshot"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// SnapshotLoader загружает товар, конфигурацию, остаток и резервации.
// Должен читать из той же БД, в которую пишет ReservationRepository.
type SnapshotLoader interface {
	Load(ctx context.Context, itemID int64, now time.Time, from types.Date) (*snapshot.Snapshot, error)
}

// Resolver проверяет диапазон по цепочке правил
type Resolver interface {
	Evaluate(in availability.Input) availability.Verdict
}

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics учет вердиктов
type Metrics interface {
	RecordVerdict(operation, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
