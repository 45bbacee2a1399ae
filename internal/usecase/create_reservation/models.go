package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/engine/pricing"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Request модель запроса на создание резервации
type Request struct {
	UserID   int64      // ID сотрудника или сервиса, создающего резервацию
	ItemID   int64      // ID товара
	Start    types.Date // Дата выдачи
	End      types.Date // Дата возврата
	OrderRef *string    // Номер заказа в магазине (опционально)
}

// Response модель ответа с созданной резервацией
type Response struct {
	ID        int64
	ItemID    int64
	OrderRef  *string
	StartDate types.Date
	EndDate   types.Date
	Units     int
	Status    string
	CreatedBy *int64

	StartJoin bool // Выдача в день возврата другой резервации
	EndJoin   bool // Возврат в день выдачи другой резервации

	Quote    *pricing.Quote // nil, если тарифы товара некорректны
	Currency string

	CreatedAt time.Time
	UpdatedAt time.Time
}
