package update_item_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/itemconfig"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

const (
	msgInvalidItemID      = "некорректный ID товара"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные конфигурации"
	msgItemNotFound       = "товар не найден"
	msgForbidden          = "доступ запрещен"
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

// Handle PUT /api/v1/items/{itemId}/config и PUT /api/v1/config (общая конфигурация магазина)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var itemID *int64
	if itemIDStr, ok := mux.Vars(r)["itemId"]; ok {
		id, err := strconv.ParseInt(itemIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("PUT /items/{id}/config - Invalid item ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidItemID)
			return
		}
		itemID = &id
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateItemConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /config - Invalid request body: item_id=%d, error=%v", ptr.Value(itemID, 0), err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Сервис сам проверит права сотрудника
	result, err := h.service.Update(r.Context(), itemID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, itemconfig.ErrItemNotFound):
			h.logger.Warn("PUT /config - Item not found: item_id=%d", ptr.Value(itemID, 0))
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, itemconfig.ErrAccessDenied):
			h.logger.Warn("PUT /config - Access denied: item_id=%d, user_id=%d", ptr.Value(itemID, 0), userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, itemconfig.ErrInvalidInput):
			h.logger.Warn("PUT /config - Invalid data: item_id=%d, error=%v", ptr.Value(itemID, 0), err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /config - Failed to update config: item_id=%d, error=%v", ptr.Value(itemID, 0), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /config - Config updated successfully: item_id=%d, config_id=%d, level=%s",
		ptr.Value(itemID, 0), ptr.Value(result.ID, 0), result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}
