package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoServer answers every request with its sequence number, repeating the first answer
// repeat times under the same id.
func echoServer(t *testing.T, repeat int) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()

		for n := 1; ; n++ {
			var msg map[string]any
			if err := ws.ReadJSON(&msg); err != nil {
				return
			}
			resp := map[string]any{
				"id":     msg["id"],
				"type":   "response",
				"status": "success",
				"result": map[string]any{"n": n},
			}
			copies := 1
			if n == 1 {
				copies = repeat
			}
			for i := 0; i < copies; i++ {
				if err := ws.WriteJSON(resp); err != nil {
					return
				}
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestCallSurvivesDuplicateResponses(t *testing.T) {
	url := echoServer(t, 3)

	conn, err := (&WSDialer{}).Dial(context.Background(), url)
	require.NoError(t, err)
	defer conn.Close()

	var first struct{ N int }
	require.NoError(t, conn.Call(context.Background(), "ping", nil, &first))
	assert.Equal(t, 1, first.N)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var second struct{ N int }
	require.NoError(t, conn.Call(ctx, "ping", nil, &second))
	assert.Equal(t, 2, second.N)
}

func TestCallAfterCloseFails(t *testing.T) {
	url := echoServer(t, 1)

	conn, err := (&WSDialer{}).Dial(context.Background(), url)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	select {
	case <-conn.Done():
	case <-time.After(time.Second):
		t.Fatal("connection not marked done")
	}
	assert.ErrorIs(t, conn.Call(context.Background(), "ping", nil, nil), ErrClosed)
}
