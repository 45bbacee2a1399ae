package get_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	getCalendar "github.com/m04kA/SMC-RentalService/internal/usecase/get_calendar"
)

const (
	msgInvalidItemID   = "некорректный ID товара"
	msgMissingDates    = "параметры from и to обязательны"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod   = "некорректный период: from позже to"
	msgRangeTooLong    = "запрошенный период слишком длинный"
	msgItemNotFound    = "товар не найден"
	msgDataUnavailable = "не удалось получить резервации или остаток товара"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/items/{itemId}/calendar
// Query params: from, to (обязательны, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	itemID, err := strconv.ParseInt(vars["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /items/{id}/calendar - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /items/{id}/calendar - Missing dates: item_id=%d", itemID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	useCaseReq, err := ToUseCaseRequest(itemID, fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /items/{id}/calendar - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrRangeTooLong):
			h.logger.Warn("GET /items/{id}/calendar - Range too long: item_id=%d, from=%s, to=%s", itemID, fromStr, toStr)
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /items/{id}/calendar - Invalid input: item_id=%d, error=%v", itemID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, getCalendar.ErrItemNotFound):
			h.logger.Warn("GET /items/{id}/calendar - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, getCalendar.ErrDataUnavailable):
			h.logger.Warn("GET /items/{id}/calendar - Data unavailable: item_id=%d, error=%v", itemID, err)
			handlers.RespondDataUnavailable(w, msgDataUnavailable)

		default:
			h.logger.Error("GET /items/{id}/calendar - Failed to build calendar: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /items/{id}/calendar - Calendar built: item_id=%d, from=%s, to=%s, days=%d",
		itemID, result.From, result.To, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
