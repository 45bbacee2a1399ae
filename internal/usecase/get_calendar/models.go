package get_calendar

import (
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Request модель запроса календаря товара
type Request struct {
	ItemID int64
	From   types.Date
	To     types.Date
}

// DayStatus состояние одного дня календаря
type DayStatus struct {
	Date      types.Date
	Reserved  int  // Занято единиц
	Available int  // Свободно единиц
	Closed    bool // Магазин закрыт
	FirstDay  bool // Первый день чьей-то резервации
	LastDay   bool // Последний день чьей-то резервации
	Bookable  bool // Однодневная аренда на эту дату будет принята
	Outcome   availability.Outcome
}

// Response модель ответа
type Response struct {
	ItemID     int64
	From       types.Date
	To         types.Date
	TotalUnits int
	CutoffHour int
	Days       []DayStatus
}
