package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-RentalService/internal/usecase/check_availability"
)

const (
	msgInvalidItemID    = "некорректный ID товара"
	msgMissingDates     = "параметры start и end обязательны"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgItemNotFound     = "товар не найден"
	msgDataUnavailable  = "не удалось получить резервации или остаток товара"
	msgInvalidParameter = "некорректные параметры запроса"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/items/{itemId}/availability
// Query params: start, end (обязательны, YYYY-MM-DD)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	itemID, err := strconv.ParseInt(vars["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /items/{id}/availability - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /items/{id}/availability - Missing dates: item_id=%d", itemID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	useCaseReq, err := ToUseCaseRequest(itemID, startStr, endStr)
	if err != nil {
		h.logger.Warn("GET /items/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /items/{id}/availability - Invalid input: item_id=%d, error=%v", itemID, err)
			handlers.RespondBadRequest(w, msgInvalidParameter)

		case errors.Is(err, checkAvailability.ErrItemNotFound):
			h.logger.Warn("GET /items/{id}/availability - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, checkAvailability.ErrDataUnavailable):
			h.logger.Warn("GET /items/{id}/availability - Data unavailable: item_id=%d, error=%v", itemID, err)
			handlers.RespondDataUnavailable(w, msgDataUnavailable)

		default:
			h.logger.Error("GET /items/{id}/availability - Failed to check availability: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /items/{id}/availability - Checked: item_id=%d, start=%s, end=%s, outcome=%s",
		itemID, result.Start, result.End, result.Verdict.Outcome)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
