package get_quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	getQuote "github.com/m04kA/SMC-RentalService/internal/usecase/get_quote"
)

const (
	msgInvalidItemID    = "некорректный ID товара"
	msgMissingDates     = "параметры start и end обязательны"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParameter = "некорректные параметры запроса"
	msgItemNotFound     = "товар не найден"
	msgDataUnavailable  = "не удалось получить резервации или остаток товара"
	msgInvalidPricing   = "некорректная цена или тарифная сетка товара"
)

type Handler struct {
	useCase GetQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/items/{itemId}/quote
// Query params: start, end (обязательны, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	itemID, err := strconv.ParseInt(vars["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /items/{id}/quote - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /items/{id}/quote - Missing dates: item_id=%d", itemID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	useCaseReq, err := ToUseCaseRequest(itemID, startStr, endStr)
	if err != nil {
		h.logger.Warn("GET /items/{id}/quote - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getQuote.ErrInvalidInput):
			h.logger.Warn("GET /items/{id}/quote - Invalid input: item_id=%d, error=%v", itemID, err)
			handlers.RespondBadRequest(w, msgInvalidParameter)

		case errors.Is(err, getQuote.ErrItemNotFound):
			h.logger.Warn("GET /items/{id}/quote - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, getQuote.ErrDataUnavailable):
			h.logger.Warn("GET /items/{id}/quote - Data unavailable: item_id=%d, error=%v", itemID, err)
			handlers.RespondDataUnavailable(w, msgDataUnavailable)

		case errors.Is(err, getQuote.ErrInvalidPricing):
			h.logger.Error("GET /items/{id}/quote - Invalid pricing: item_id=%d, error=%v", itemID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgInvalidPricing)

		default:
			h.logger.Error("GET /items/{id}/quote - Failed to get quote: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /items/{id}/quote - Quoted: item_id=%d, start=%s, end=%s, outcome=%s",
		itemID, result.Start, result.End, result.Verdict.Outcome)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
