package get_quote

import (
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	"github.com/m04kA/SMC-RentalService/internal/engine/pricing"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Request модель запроса расчета стоимости
type Request struct {
	ItemID int64
	Start  types.Date
	End    types.Date
}

// Response модель ответа. Quote заполняется только для принятого диапазона.
type Response struct {
	ItemID    int64
	ItemName  string
	Start     types.Date
	End       types.Date
	BasePrice float64
	Currency  string
	Verdict   availability.Verdict
	Quote     *pricing.Quote
}
