package ledger

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

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// newWebSocketServer answers each request with the frames built by reply.
func newWebSocketServer(t *testing.T, reply func(req map[string]any) []map[string]any) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var req map[string]any
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			frames := reply(req)
			if frames == nil {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
				return
			}
			for _, f := range frames {
				if err := conn.WriteJSON(f); err != nil {
					return
				}
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebSocketTransport_Call(t *testing.T) {
	endpoint := newWebSocketServer(t, func(req map[string]any) []map[string]any {
		return []map[string]any{
			{"type": "ledgerClosed", "ledger_index": 99},
			{"id": "someone-else", "type": "response", "status": "success", "result": map[string]any{"ledger_current_index": 1}},
			{
				"id":     req["id"],
				"type":   "response",
				"status": "success",
				"result": map[string]any{"command": req["command"], "account": req["account"]},
			},
		}
	})

	tr := NewWebSocketTransport(endpoint, time.Second)
	defer tr.Close()

	raw, err := tr.Call(context.Background(), "account_info", map[string]any{"account": "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"command":"account_info","account":"rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"}`, string(raw))

	// The connection is reused for the next request.
	raw, err = tr.Call(context.Background(), "submit", map[string]any{"tx_blob": "1200"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"command":"submit","account":null}`, string(raw))
}

func TestWebSocketTransport_ErrorReply(t *testing.T) {
	endpoint := newWebSocketServer(t, func(req map[string]any) []map[string]any {
		return []map[string]any{{
			"id":            req["id"],
			"type":          "response",
			"status":        "error",
			"error":         "actNotFound",
			"error_code":    19,
			"error_message": "Account not found.",
		}}
	})

	tr := NewWebSocketTransport(endpoint, time.Second)
	defer tr.Close()

	_, err := tr.Call(context.Background(), "account_info", map[string]any{"account": "rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe"})
	var rpcErr *RpcError
	require.ErrorAs(t, err, &rpcErr)
	assert.True(t, rpcErr.IsAccountNotFound())
}

func TestWebSocketTransport_ClosedBeforeReply(t *testing.T) {
	endpoint := newWebSocketServer(t, func(map[string]any) []map[string]any {
		return nil
	})

	tr := NewWebSocketTransport(endpoint, time.Second)
	defer tr.Close()

	_, err := tr.Call(context.Background(), "submit", map[string]any{"tx_blob": "1200"})
	require.ErrorIs(t, err, ErrNoResponse)
	assert.True(t, IsAmbiguous(err))
}

func TestWebSocketTransport_Canceled(t *testing.T) {
	endpoint := newWebSocketServer(t, func(map[string]any) []map[string]any {
		return []map[string]any{}
	})

	tr := NewWebSocketTransport(endpoint, 5*time.Second)
	defer tr.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	_, err := tr.Call(ctx, "submit", map[string]any{"tx_blob": "1200"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWebSocketTransport_DialFailure(t *testing.T) {
	tr := NewWebSocketTransport("ws://127.0.0.1:1", 200*time.Millisecond)
	_, err := tr.Call(context.Background(), "account_info", nil)
	assert.Error(t, err)
	assert.NoError(t, tr.Close())
}
