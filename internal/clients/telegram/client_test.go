package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/navitrade/newsflow/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-token", "12345", logger.New(logger.Config{Level: "error"}))
	c.SetBaseURL(srv.URL)
	return c
}

func TestConfigured(t *testing.T) {
	log := logger.New(logger.Config{Level: "error"})

	assert.True(t, NewClient("t", "c", log).Configured())
	assert.False(t, NewClient("", "c", log).Configured())
	assert.False(t, NewClient("t", "", log).Configured())
}

func TestSendMessage_PayloadAndPath(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.SendMessage("hello"))

	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "12345", gotBody.ChatID)
	assert.Equal(t, "hello", gotBody.Text)
	assert.Equal(t, "Markdown", gotBody.ParseMode)
}

func TestSendMessage_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.SendMessage("retry me"))
	assert.Equal(t, int32(3), calls.Load())
}

func TestSendMessage_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.SendMessage("doomed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(maxAttempts), calls.Load())
}

func TestSendMessage_UnconfiguredErrors(t *testing.T) {
	c := NewClient("", "", logger.New(logger.Config{Level: "error"}))
	assert.Error(t, c.SendMessage("nope"))
}
