package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"go-gin-rsvp/internal/handler"
	"go-gin-rsvp/internal/model"
	"go-gin-rsvp/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var (
	InvalidJSON = `{"invalid": json}`
	testSecret  = []byte("handler-test-secret")
)

func setupTestRouter(t *testing.T) (*gin.Engine, *mocks.MockRsvpService, *mocks.MockCheckInService) {
	gin.SetMode(gin.TestMode)
	rsvps := mocks.NewMockRsvpService(t)
	checkIns := mocks.NewMockCheckInService(t)
	return handler.NewRouter(rsvps, checkIns, testSecret), rsvps, checkIns
}

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	if s, ok := data.(string); ok {
		return bytes.NewBufferString(s)
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create authenticated HTTP request with JSON body
func createJSONHTTPRequest(t *testing.T, method, url string, caller model.Caller, data interface{}) *http.Request {
	t.Helper()

	var body *bytes.Buffer
	if data != nil {
		body = createJSONRequest(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	token, err := handler.SignToken(testSecret, caller, time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func decodeBody(t *testing.T, body *bytes.Buffer, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body.Bytes(), v))
}
