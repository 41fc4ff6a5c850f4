package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// maxMessageSize caps a single reply, matching the server side read limit.
const maxMessageSize = 512 * 1024

type wsReply struct {
	replyStatus
	ID     any             `json:"id"`
	Type   string          `json:"type"`
	Result json.RawMessage `json:"result"`
}

// WebSocketTransport speaks the rippled WebSocket API. It keeps one
// connection and one request in flight; replies are matched by id and
// unrelated stream messages are skipped.
type WebSocketTransport struct {
	endpoint string
	timeout  time.Duration
	dialer   *websocket.Dialer

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWebSocketTransport creates a transport for a ws:// or wss:// endpoint.
func NewWebSocketTransport(endpoint string, timeout time.Duration) *WebSocketTransport {
	return &WebSocketTransport{
		endpoint: endpoint,
		timeout:  timeout,
		dialer: &websocket.Dialer{
			HandshakeTimeout: timeout,
		},
	}
}

// Call sends {"id", "command": method, ...params} and waits for the reply with the same id.
func (t *WebSocketTransport) Call(ctx context.Context, method string, params map[string]any) (json.RawMessage, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	conn, err := t.connect(ctx)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	request := make(map[string]any, len(params)+2)
	for k, v := range params {
		request[k] = v
	}
	request["id"] = id
	request["command"] = method

	deadline := time.Now().Add(t.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	conn.SetWriteDeadline(deadline)
	if err := conn.WriteJSON(request); err != nil {
		t.dropLocked()
		return nil, err
	}

	// Unblock the read below when the caller gives up.
	stop := context.AfterFunc(ctx, func() {
		conn.SetReadDeadline(time.Now())
	})
	defer stop()

	conn.SetReadDeadline(deadline)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.dropLocked()
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: %v", ErrNoResponse, err)
			}
			return nil, err
		}

		var reply wsReply
		if err := json.Unmarshal(data, &reply); err != nil {
			continue
		}
		if reply.ID != id {
			continue
		}

		if rpcErr := reply.rpcError(); rpcErr != nil {
			return nil, rpcErr
		}
		if len(reply.Result) == 0 {
			return nil, fmt.Errorf("%w: %s reply has no result", ErrNoResponse, method)
		}
		return checkResult(reply.Result)
	}
}

// Close closes the connection if one is open.
func (t *WebSocketTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil
	}
	t.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	err := t.conn.Close()
	t.conn = nil
	return err
}

func (t *WebSocketTransport) connect(ctx context.Context) (*websocket.Conn, error) {
	if t.conn != nil {
		return t.conn, nil
	}

	conn, _, err := t.dialer.DialContext(ctx, t.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", t.endpoint, err)
	}
	conn.SetReadLimit(maxMessageSize)

	t.conn = conn
	return conn, nil
}

// dropLocked discards a connection whose state is unknown after a failed exchange.
func (t *WebSocketTransport) dropLocked() {
	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}
}
