package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-gin-rsvp/internal/handler"
	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/internal/testutil"
	apperrors "go-gin-rsvp/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitRsvp(t *testing.T) {
	eventID := uuid.New()
	url := fmt.Sprintf("/api/v1/events/%s/rsvps", eventID)

	t.Run("Success", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)
		caller := testutil.Attendee()
		req := model.SubmitRsvpRequest{Status: model.RsvpStatusGoing, PlusOneCount: 1}

		rsvps.EXPECT().Submit(mock.Anything, caller, eventID, req).Return(&model.SubmitResult{
			Rsvp:   &model.Rsvp{ID: uuid.New(), EventID: eventID, UserID: caller.UserID, Status: model.RsvpStatusGoing, PlusOneCount: 1},
			Ticket: &model.Ticket{ID: uuid.New()},
		}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "POST", url, caller, req))

		assert.Equal(t, http.StatusCreated, w.Code)
		var result model.SubmitResult
		decodeBody(t, w.Body, &result)
		assert.False(t, result.Waitlisted)
		assert.NotNil(t, result.Ticket)
	})

	t.Run("Failed - Deadline passed", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)
		rsvps.EXPECT().Submit(mock.Anything, mock.Anything, eventID, mock.Anything).
			Return(nil, apperrors.ErrRsvpDeadlinePassed).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "POST", url, testutil.Attendee(),
			model.SubmitRsvpRequest{Status: model.RsvpStatusGoing}))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Failed - Capacity race is retryable", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)
		rsvps.EXPECT().Submit(mock.Anything, mock.Anything, eventID, mock.Anything).
			Return(nil, apperrors.ErrLockTimeout).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "POST", url, testutil.Attendee(),
			model.SubmitRsvpRequest{Status: model.RsvpStatusGoing}))

		assert.Equal(t, http.StatusConflict, w.Code)
		var body map[string]interface{}
		decodeBody(t, w.Body, &body)
		assert.Equal(t, true, body["retryable"])
	})

	t.Run("Failed - Event not found", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)
		rsvps.EXPECT().Submit(mock.Anything, mock.Anything, eventID, mock.Anything).
			Return(nil, apperrors.ErrEventNotFound).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "POST", url, testutil.Attendee(),
			model.SubmitRsvpRequest{Status: model.RsvpStatusGoing}))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failed - BindingError", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "POST", url, testutil.Attendee(), InvalidJSON))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		rsvps.AssertNotCalled(t, "Submit")
	})

	t.Run("Failed - Invalid event id", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "POST", "/api/v1/events/not-a-uuid/rsvps", testutil.Attendee(),
			model.SubmitRsvpRequest{Status: model.RsvpStatusGoing}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		rsvps.AssertNotCalled(t, "Submit")
	})

	t.Run("Failed - Unauthorized", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)

		req := createJSONHTTPRequest(t, "POST", url, testutil.Attendee(), model.SubmitRsvpRequest{Status: model.RsvpStatusGoing})
		req.Header.Del("Authorization")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		rsvps.AssertNotCalled(t, "Submit")

		var body map[string]interface{}
		decodeBody(t, w.Body, &body)
		assert.Equal(t, "Unauthorized", body["error"])
	})

	t.Run("Failed - Token signed with another secret", func(t *testing.T) {
		router, _, _ := setupTestRouter(t)

		req := createJSONHTTPRequest(t, "POST", url, testutil.Attendee(), model.SubmitRsvpRequest{Status: model.RsvpStatusGoing})
		token, err := handler.SignToken([]byte("other"), testutil.Attendee(), time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUpdateRsvp(t *testing.T) {
	rsvpID := uuid.New()
	url := fmt.Sprintf("/api/v1/rsvps/%s", rsvpID)

	t.Run("Success", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)
		caller := testutil.Attendee()
		params := model.UpdateRsvpParams{PlusOneCount: testutil.Ptr(2)}

		rsvps.EXPECT().Update(mock.Anything, caller, rsvpID, params).
			Return(&model.Rsvp{ID: rsvpID, PlusOneCount: 2}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "PATCH", url, caller, params))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - Insufficient capacity", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)
		rsvps.EXPECT().Update(mock.Anything, mock.Anything, rsvpID, mock.Anything).
			Return(nil, apperrors.ErrInsufficientCapacity).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "PATCH", url, testutil.Attendee(),
			model.UpdateRsvpParams{PlusOneCount: testutil.Ptr(5)}))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Failed - Forbidden", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)
		rsvps.EXPECT().Update(mock.Anything, mock.Anything, rsvpID, mock.Anything).
			Return(nil, apperrors.ErrForbidden).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "PATCH", url, testutil.Attendee(),
			model.UpdateRsvpParams{PlusOneCount: testutil.Ptr(1)}))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Failed - Invalid input", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)
		rsvps.EXPECT().Update(mock.Anything, mock.Anything, rsvpID, mock.Anything).
			Return(nil, apperrors.ErrInvalidInput).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "PATCH", url, testutil.Attendee(), model.UpdateRsvpParams{}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteRsvp(t *testing.T) {
	rsvpID := uuid.New()
	url := fmt.Sprintf("/api/v1/rsvps/%s", rsvpID)

	t.Run("Success", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)
		rsvps.EXPECT().Delete(mock.Anything, mock.Anything, rsvpID).Return(nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "DELETE", url, testutil.Attendee(), nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Failed - Promotion failed", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)
		rsvps.EXPECT().Delete(mock.Anything, mock.Anything, rsvpID).
			Return(fmt.Errorf("%w: %w", apperrors.ErrPromotionFailed, apperrors.ErrCapacityRace)).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "DELETE", url, testutil.Attendee(), nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("Failed - Not found", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)
		rsvps.EXPECT().Delete(mock.Anything, mock.Anything, rsvpID).Return(apperrors.ErrRsvpNotFound).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "DELETE", url, testutil.Attendee(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSetApproval(t *testing.T) {
	rsvpID := uuid.New()
	url := fmt.Sprintf("/api/v1/rsvps/%s/approval", rsvpID)

	router, rsvps, _ := setupTestRouter(t)
	admin := testutil.Admin()
	rsvps.EXPECT().SetApproval(mock.Anything, admin, rsvpID, model.ApprovalStatusRejected).
		Return(&model.Rsvp{ID: rsvpID, ApprovalStatus: model.ApprovalStatusRejected}, nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, createJSONHTTPRequest(t, "PUT", url, admin,
		model.SetApprovalRequest{ApprovalStatus: model.ApprovalStatusRejected}))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEventViews(t *testing.T) {
	eventID := uuid.New()

	t.Run("Occupancy", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)
		rsvps.EXPECT().Occupancy(mock.Anything, eventID).Return(&model.Occupancy{
			EventID: eventID, Capacity: 10, Occupied: 4, Available: 6,
		}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "GET", fmt.Sprintf("/api/v1/events/%s/occupancy", eventID), testutil.Attendee(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var occ model.Occupancy
		decodeBody(t, w.Body, &occ)
		assert.Equal(t, 6, occ.Available)
	})

	t.Run("Waitlist forbidden", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)
		rsvps.EXPECT().ListWaitlist(mock.Anything, mock.Anything, eventID).Return(nil, apperrors.ErrForbidden).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "GET", fmt.Sprintf("/api/v1/events/%s/waitlist", eventID), testutil.Attendee(), nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Expire waitlist", func(t *testing.T) {
		router, rsvps, _ := setupTestRouter(t)
		rsvps.EXPECT().ExpireWaitlist(mock.Anything, mock.Anything, eventID).Return(3, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest(t, "POST", fmt.Sprintf("/api/v1/events/%s/waitlist/expire", eventID), testutil.Admin(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]int
		decodeBody(t, w.Body, &body)
		assert.Equal(t, 3, body["expired"])
	})
}

func TestPing(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(handler.RequestIDHeader))
}
