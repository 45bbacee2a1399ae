package get_item_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/itemconfig"
)

const (
	msgInvalidItemID = "некорректный ID товара"
	msgItemNotFound  = "товар не найден"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/items/{itemId}/config
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	itemID, err := strconv.ParseInt(vars["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /items/{id}/config - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	// Действующая конфигурация: товар -> магазин -> встроенные значения
	result, err := h.service.GetEffective(r.Context(), itemID)
	if err != nil {
		switch {
		case errors.Is(err, itemconfig.ErrItemNotFound):
			h.logger.Warn("GET /items/{id}/config - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		default:
			h.logger.Error("GET /items/{id}/config - Failed to get config: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /items/{id}/config - Config retrieved successfully: item_id=%d, level=%s", itemID, result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}
