package check_availability

import (
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Request модель запроса проверки доступности
type Request struct {
	ItemID int64      // ID товара
	Start  types.Date // Дата выдачи
	End    types.Date // Дата возврата
}

// Response модель ответа
type Response struct {
	ItemID  int64
	Start   types.Date
	End     types.Date
	Stock   int // Всего единиц товара
	Verdict availability.Verdict
}
