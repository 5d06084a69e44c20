package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowSendMessage(t *testing.T) {
	t.Run("relays message and returns reply field", func(t *testing.T) {
		var gotAPIKey string
		var gotBody map[string]string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAPIKey = r.Header.Get("x-api-key")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(map[string]string{"reply": "The tender closes on Friday."})
		}))
		defer srv.Close()

		wf := NewWorkflowService(srv.URL, "key-123", 5*time.Second)
		reply, err := wf.SendMessage(context.Background(), "When does the tender close?")
		require.NoError(t, err)
		assert.Equal(t, "The tender closes on Friday.", reply)
		assert.Equal(t, "key-123", gotAPIKey)
		assert.Equal(t, "When does the tender close?", gotBody["message"])
	})

	t.Run("falls back to raw body without reply field", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("plain text answer"))
		}))
		defer srv.Close()

		wf := NewWorkflowService(srv.URL, "", 5*time.Second)
		reply, err := wf.SendMessage(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, "plain text answer", reply)
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		wf := NewWorkflowService(srv.URL, "", 5*time.Second)
		_, err := wf.SendMessage(context.Background(), "hello")
		assert.Error(t, err)
	})

	t.Run("empty URL is an error", func(t *testing.T) {
		wf := NewWorkflowService("", "", 5*time.Second)
		_, err := wf.SendMessage(context.Background(), "hello")
		assert.Error(t, err)
	})
}
