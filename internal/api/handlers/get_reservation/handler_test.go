package get_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

type fakeService struct {
	reservation *models.ReservationResponse
	err         error
	gotUserID   int64
}

func (f *fakeService) GetByID(_ context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	f.gotUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.reservation, nil
}

func serve(svc ReservationService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/reservations/{reservationId}",
		middleware.Auth(http.HandlerFunc(NewHandler(svc, logger.Nop()).Handle))).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(middleware.HeaderUserID, "5")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &fakeService{reservation: &models.ReservationResponse{
			ID:        12,
			ItemID:    3,
			StartDate: types.MustParseDate("2024-06-14"),
			EndDate:   types.MustParseDate("2024-06-16"),
			Units:     1,
			Status:    "active",
		}}

		rec := serve(svc, "/reservations/12")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(5), svc.gotUserID)

		var body ReservationDetailsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, int64(12), body.ID)
		assert.Equal(t, types.MustParseDate("2024-06-16"), body.EndDate)
		// пятница -> воскресенье
		assert.Equal(t, 1, body.BillableDays)
		assert.True(t, body.Cancellable)
	})

	t.Run("Cancelled reservation", func(t *testing.T) {
		svc := &fakeService{reservation: &models.ReservationResponse{
			ID:        13,
			ItemID:    3,
			StartDate: types.MustParseDate("2024-06-10"),
			EndDate:   types.MustParseDate("2024-06-13"),
			Units:     1,
			Status:    "cancelled",
		}}

		rec := serve(svc, "/reservations/13")
		require.Equal(t, http.StatusOK, rec.Code)

		var body ReservationDetailsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 3, body.BillableDays)
		assert.False(t, body.Cancellable)
		assert.Equal(t, "cancelled", body.Status)
	})

	t.Run("Error mapping", func(t *testing.T) {
		cases := []struct {
			err  error
			code int
		}{
			{reservations.ErrReservationNotFound, http.StatusNotFound},
			{reservations.ErrAccessDenied, http.StatusForbidden},
			{fmt.Errorf("%w: db down", reservations.ErrInternal), http.StatusInternalServerError},
		}

		for _, tc := range cases {
			rec := serve(&fakeService{err: tc.err}, "/reservations/12")
			assert.Equal(t, tc.code, rec.Code, tc.err.Error())
		}
	})

	t.Run("Invalid ID", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/reservations/abc").Code)
	})
}
