package whatsapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqarscan/pkg/whatsapp/types"
)

func newTestClient(serverURL string) types.WAClient {
	return NewClient(types.ClientConfig{
		BaseURL:     serverURL,
		APIKey:      "test-key",
		SessionName: "default",
		Timeout:     5 * time.Second,
	})
}

func TestGetGroups(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/default/groups", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`[
			{"id": "123@g.us", "subject": "عقارات الرياض"},
			{"id": "456@g.us", "subject": ""}
		]`))
		require.NoError(t, err)
	}))
	defer server.Close()

	groups, err := newTestClient(server.URL).GetGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "عقارات الرياض", groups[0].GetDisplayName())
	assert.Equal(t, "456@g.us", groups[1].GetDisplayName())
}

func TestGetChatMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/default/chats/123@g.us/messages", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`[
			{
				"id": {"fromMe": false, "remote": "123@g.us", "id": "ABC", "_serialized": "false_123@g.us_ABC"},
				"body": "شقة للبيع",
				"from": "123@g.us",
				"author": "966512345678@c.us",
				"timestamp": 1705312200
			}
		]`))
		require.NoError(t, err)
	}))
	defer server.Close()

	messages, err := newTestClient(server.URL).GetChatMessages(context.Background(), "123@g.us", 50)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "false_123@g.us_ABC", messages[0].ID.Serialized)
	assert.Equal(t, "966512345678@c.us", messages[0].SenderID())
	assert.True(t, messages[0].IsGroupMessage())
}

func TestGetChatMessagesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetChatMessages(context.Background(), "123@g.us", 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestGetSessionStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sessions/default", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"name": "default", "status": "WORKING"}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	session, err := newTestClient(server.URL).GetSessionStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, session.IsWorking())
}

func TestWaitForSessionReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"name": "default", "status": "WORKING"}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	err := newTestClient(server.URL).WaitForSessionReady(context.Background(), 5*time.Second)
	assert.NoError(t, err)
}

func TestWaitForSessionReadyFailedSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"name": "default", "status": "FAILED", "error": "engine crashed"}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	err := newTestClient(server.URL).WaitForSessionReady(context.Background(), 5*time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine crashed")
}
