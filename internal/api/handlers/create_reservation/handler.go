package create_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	createReservation "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
)

const (
	msgInvalidItemID      = "некорректный ID товара"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные резервации"
	msgItemNotFound       = "товар не найден"
	msgDataUnavailable    = "не удалось получить резервации или остаток товара"
	msgRejected           = "выбранные даты недоступны"
	msgConcurrentUpdate   = "резервации товара изменились, повторите запрос"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/items/{itemId}/reservations
// Требует авторизации (X-User-ID)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	itemID, err := strconv.ParseInt(vars["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /items/{id}/reservations - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /items/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /items/{id}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, itemID)
	if err != nil {
		h.logger.Warn("POST /items/{id}/reservations - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var rejected *createReservation.RejectedError
		switch {
		case errors.As(err, &rejected):
			h.logger.Warn("POST /items/{id}/reservations - Rejected: item_id=%d, start=%s, end=%s, outcome=%s",
				itemID, useCaseReq.Start, useCaseReq.End, rejected.Verdict.Outcome)
			body := RejectedResponse{Error: msgRejected, Verdict: handlers.FromVerdict(rejected.Verdict)}
			if rejected.Verdict.Outcome == availability.OutcomeInvalidInput {
				body.Error = msgInvalidInput
				handlers.RespondJSON(w, http.StatusBadRequest, body)
				return
			}
			handlers.RespondConflict(w, body)

		case errors.Is(err, createReservation.ErrConcurrentUpdate):
			h.logger.Warn("POST /items/{id}/reservations - Concurrent update: item_id=%d", itemID)
			handlers.RespondConflict(w, handlers.ErrorResponse{Error: msgConcurrentUpdate})

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /items/{id}/reservations - Invalid input: item_id=%d, error=%v", itemID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrItemNotFound):
			h.logger.Warn("POST /items/{id}/reservations - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, createReservation.ErrDataUnavailable):
			h.logger.Warn("POST /items/{id}/reservations - Data unavailable: item_id=%d, error=%v", itemID, err)
			handlers.RespondDataUnavailable(w, msgDataUnavailable)

		default:
			h.logger.Error("POST /items/{id}/reservations - Failed to create reservation: item_id=%d, user_id=%d, error=%v",
				itemID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /items/{id}/reservations - Reservation created successfully: reservation_id=%d, item_id=%d, user_id=%d",
		result.ID, itemID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
