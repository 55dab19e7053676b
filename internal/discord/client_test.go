package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	c := New("test-token")
	c.baseURL = serverURL
	return c
}

func TestCreateMessage_Success(t *testing.T) {
	var got Message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/channels/chan-1/messages", r.URL.Path)
		assert.Equal(t, "Bot test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	msg := Message{Content: "<@&role-1>", Embeds: []Embed{{Title: "Free Game"}}}

	err := client.CreateMessage(context.Background(), "chan-1", msg)
	require.NoError(t, err)
	assert.Equal(t, "<@&role-1>", got.Content)
	require.Len(t, got.Embeds, 1)
	assert.Equal(t, "Free Game", got.Embeds[0].Title)
}

func TestCreateMessage_RetriesOn429(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.CreateMessage(context.Background(), "chan-1", Message{Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCreateMessage_NoRetryOn400(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid Form Body"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.CreateMessage(context.Background(), "chan-1", Message{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Equal(t, int32(1), calls.Load())
}

func TestEditOriginalResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/webhooks/app-1/tok-1/messages/@original", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.EditOriginalResponse(context.Background(), "app-1", "tok-1", Message{Content: "done"})
	require.NoError(t, err)
}

func TestBulkOverwriteCommands(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/applications/app-1/commands", r.URL.Path)

		var cmds []Command
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cmds))
		assert.Len(t, cmds, 2)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.BulkOverwriteCommands(context.Background(), "app-1", []Command{
		{Name: "freegames", Description: "x"},
		{Name: "setup", Description: "y"},
	})
	require.NoError(t, err)
}
