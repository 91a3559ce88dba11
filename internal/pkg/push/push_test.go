package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSend(t *testing.T) {
	var gotAuth string
	var gotReq sendRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(sendResponse{
			Success: 2,
			Failure: 2,
			Results: []struct {
				Error string `json:"error"`
			}{
				{},
				{Error: "NotRegistered"},
				{Error: "Unavailable"},
				{},
			},
		})
	}))
	defer server.Close()

	client := NewClient(Config{Endpoint: server.URL, ServerKey: "secret", Enabled: true})
	result, err := client.Send(context.Background(), Message{
		Tokens: []string{"tok-a", "tok-b", "tok-c", "tok-d"},
		Title:  "Drive Published",
		Body:   "A new drive is open for applications",
		Data:   map[string]string{"driveId": "7"},
	})
	require.NoError(t, err)

	assert.Equal(t, "key=secret", gotAuth)
	assert.Equal(t, []string{"tok-a", "tok-b", "tok-c", "tok-d"}, gotReq.RegistrationIDs)
	assert.Equal(t, "Drive Published", gotReq.Notification.Title)
	assert.Equal(t, 2, result.Delivered)

	// A retryable failure keeps the token but does not count it delivered.
	assert.Equal(t, []string{"tok-a", "tok-d"}, result.DeliveredTokens)
	assert.Equal(t, []string{"tok-b"}, result.InvalidTokens)
}

func TestClientSendNoTokens(t *testing.T) {
	client := NewClient(Config{Endpoint: "http://unreachable.invalid"})
	result, err := client.Send(context.Background(), Message{Title: "ignored"})
	require.NoError(t, err)
	assert.Zero(t, result.Delivered)
}

func TestClientSendProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(Config{Endpoint: server.URL})
	_, err := client.Send(context.Background(), Message{Tokens: []string{"tok-a"}})
	assert.Error(t, err)
}

func TestNewDispatcherDisabled(t *testing.T) {
	dispatcher := NewDispatcher(Config{Enabled: false})
	_, ok := dispatcher.(Noop)
	assert.True(t, ok)
}
