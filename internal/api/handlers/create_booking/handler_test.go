package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentoringService/internal/api/middleware"
	"github.com/m04kA/SMC-MentoringService/internal/domain"
	createBooking "github.com/m04kA/SMC-MentoringService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-MentoringService/pkg/logger"
)

type fakeUseCase struct {
	got *createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	startsAt := req.Date.Add(10 * time.Hour)
	return &createBooking.Response{
		ID:          1,
		MentorID:    req.MentorID,
		MenteeID:    req.MenteeID,
		BookingDate: req.Date,
		Slot:        req.Slot,
		StartsAt:    startsAt,
		EndsAt:      startsAt.Add(time.Hour),
		Status:      string(domain.StatusPending),
	}, nil
}

func serve(h *Handler, userID int64, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID > 0 {
		r = r.WithContext(middleware.WithUserID(r.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func TestHandler_CreatesAdHocBooking(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.NewNop())

	rec := serve(h, 42, `{"mentorId":7,"bookingDate":"2026-03-02","slot":"10:00-11:00","message":"hi"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(42), uc.got.MenteeID)
	assert.Equal(t, "10:00-11:00", uc.got.Slot.String())

	var body BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "2026-03-02", *body.BookingDate)
	assert.Equal(t, "10:00-11:00", *body.Slot)
	assert.Equal(t, "PENDING", body.Status)
}

func TestHandler_MapsErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "slot taken", err: createBooking.ErrSlotNotAvailable, status: http.StatusConflict},
		{name: "no credit", err: createBooking.ErrInsufficientCredit, status: http.StatusPaymentRequired},
		{name: "mentor missing", err: createBooking.ErrMentorNotFound, status: http.StatusNotFound},
		{name: "mentor not approved", err: createBooking.ErrMentorNotApproved, status: http.StatusUnprocessableEntity},
		{name: "slot not offered", err: createBooking.ErrSlotNotOffered, status: http.StatusUnprocessableEntity},
		{name: "invalid input", err: createBooking.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", err: createBooking.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())
			rec := serve(h, 42, `{"mentorId":7,"bookingDate":"2026-03-02","slot":"10:00-11:00"}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandler_RejectsBadRequests(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, logger.NewNop())

	assert.Equal(t, http.StatusUnauthorized, serve(h, 0, `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, 42, `{"mentorId":`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, 42, `{"mentorId":7,"bookingDate":"02.03.2026","slot":"10:00-11:00"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, 42, `{"mentorId":7,"bookingDate":"2026-03-02","slot":"10-11"}`).Code)
}
