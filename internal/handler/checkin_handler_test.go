package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/internal/testutil"
	apperrors "go-gin-rsvp/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCheckInByID(t *testing.T) {
	ticketID := uuid.New()
	url := fmt.Sprintf("/api/v1/tickets/%s/check-in", ticketID)

	t.Run("Success", func(t *testing.T) {
		router, _, checkIns := setupTestRouter(t)
		at := testutil.BaseTime
		checkIns.EXPECT().CheckInByID(mock.Anything, mock.Anything, ticketID).Return(&model.Ticket{
			ID: ticketID, CheckInStatus: model.CheckInStatusCheckedIn, CheckInTime: &at,
		}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "POST", url, testutil.Admin(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var ticket model.Ticket
		decodeBody(t, w.Body, &ticket)
		assert.True(t, ticket.IsCheckedIn())
	})

	t.Run("Failed - Already checked in", func(t *testing.T) {
		router, _, checkIns := setupTestRouter(t)
		checkIns.EXPECT().CheckInByID(mock.Anything, mock.Anything, ticketID).Return(nil,
			&apperrors.AlreadyCheckedInError{TicketID: ticketID, CheckedInAt: testutil.BaseTime}).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "POST", url, testutil.Admin(), nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		var body map[string]string
		decodeBody(t, w.Body, &body)
		assert.Equal(t, testutil.BaseTime.Format(time.RFC3339), body["checked_in_at"])
	})

	t.Run("Failed - Ticket not found", func(t *testing.T) {
		router, _, checkIns := setupTestRouter(t)
		checkIns.EXPECT().CheckInByID(mock.Anything, mock.Anything, ticketID).Return(nil, apperrors.ErrTicketNotFound).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "POST", url, testutil.Admin(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCheckInByQR(t *testing.T) {
	eventID := uuid.New()
	url := fmt.Sprintf("/api/v1/events/%s/check-ins/qr", eventID)

	t.Run("Success", func(t *testing.T) {
		router, _, checkIns := setupTestRouter(t)
		at := testutil.BaseTime
		checkIns.EXPECT().CheckInByQR(mock.Anything, mock.Anything, eventID, "payload").Return(&model.CheckInResult{
			Success: true, Ticket: &model.Ticket{ID: uuid.New()}, CheckedInAt: &at,
		}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "POST", url, testutil.Admin(), model.CheckInByQRRequest{Payload: "payload"}))

		assert.Equal(t, http.StatusOK, w.Code)
		var result model.CheckInResult
		decodeBody(t, w.Body, &result)
		assert.True(t, result.Success)
	})

	t.Run("Scan failure is still 200", func(t *testing.T) {
		router, _, checkIns := setupTestRouter(t)
		checkIns.EXPECT().CheckInByQR(mock.Anything, mock.Anything, eventID, "not-valid-base64!!").Return(&model.CheckInResult{
			Reason: model.CheckInReasonInvalidFormat, Message: "QR code format is invalid",
		}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "POST", url, testutil.Admin(), model.CheckInByQRRequest{Payload: "not-valid-base64!!"}))

		assert.Equal(t, http.StatusOK, w.Code)
		var result model.CheckInResult
		decodeBody(t, w.Body, &result)
		assert.False(t, result.Success)
		assert.Equal(t, model.CheckInReasonInvalidFormat, result.Reason)
	})

	t.Run("Failed - Missing payload", func(t *testing.T) {
		router, _, checkIns := setupTestRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "POST", url, testutil.Admin(), model.CheckInByQRRequest{}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		checkIns.AssertNotCalled(t, "CheckInByQR")
	})

	t.Run("Failed - Forbidden", func(t *testing.T) {
		router, _, checkIns := setupTestRouter(t)
		checkIns.EXPECT().CheckInByQR(mock.Anything, mock.Anything, eventID, "payload").Return(nil, apperrors.ErrForbidden).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "POST", url, testutil.Attendee(), model.CheckInByQRRequest{Payload: "payload"}))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestEventStats(t *testing.T) {
	eventID := uuid.New()
	router, _, checkIns := setupTestRouter(t)
	checkIns.EXPECT().EventStats(mock.Anything, mock.Anything, eventID).Return(&model.CheckInStats{
		EventID: eventID, TotalTickets: 3, CheckedIn: 1, NotCheckedIn: 2, CheckInRate: 33.33,
	}, nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, createJSONHTTPRequest(t, "GET", fmt.Sprintf("/api/v1/events/%s/check-in-stats", eventID), testutil.Admin(), nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var stats model.CheckInStats
	decodeBody(t, w.Body, &stats)
	assert.Equal(t, 33.33, stats.CheckInRate)
}

func TestGetTicketByRsvp(t *testing.T) {
	rsvpID := uuid.New()
	router, _, checkIns := setupTestRouter(t)
	checkIns.EXPECT().GetTicketByRsvp(mock.Anything, mock.Anything, rsvpID).Return(nil, apperrors.ErrTicketNotFound).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, createJSONHTTPRequest(t, "GET", fmt.Sprintf("/api/v1/rsvps/%s/ticket", rsvpID), testutil.Attendee(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
