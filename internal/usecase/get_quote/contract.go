package get_quote

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	"github.com/m04kA/SMC-RentalService/internal/service/snapshot"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// SnapshotLoader загружает товар, конфигурацию, остаток и резервации
type SnapshotLoader interface {
	Load(ctx context.Context, itemID int64, now time.Time, from types.Date) (*snapshot.Snapshot, error)
}

// Resolver проверяет диапазон по цепочке правил
type Resolver interface {
	Evaluate(in availability.Input) availability.Verdict
}

// Metrics учет вердиктов и расчетов
type Metrics interface {
	RecordVerdict(operation, outcome string)
	RecordQuote(days int)
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
