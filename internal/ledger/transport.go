package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when the configuration gives none.
const DefaultTimeout = 30 * time.Second

// Transport carries one API request to a ledger server and returns the
// "result" object of a successful reply. Error replies are returned as *RpcError.
type Transport interface {
	Call(ctx context.Context, method string, params map[string]any) (json.RawMessage, error)
	Close() error
}

// Config selects the server a Client talks to. It is fixed for the life of the client.
type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// Dial returns the transport matching the endpoint scheme: JSON-RPC for
// http(s), the WebSocket API for ws(s). WebSocket connections are opened lazily.
func Dial(cfg Config) (Transport, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint %q: %w", cfg.Endpoint, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return NewJSONRPCTransport(cfg.Endpoint, timeout), nil
	case "ws", "wss":
		return NewWebSocketTransport(cfg.Endpoint, timeout), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEndpoint, cfg.Endpoint)
	}
}

// replyStatus holds the fields every API reply carries next to its payload.
type replyStatus struct {
	Status       string `json:"status"`
	Error        string `json:"error"`
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

func (s replyStatus) rpcError() *RpcError {
	if s.Status != "error" && s.Error == "" {
		return nil
	}
	return &RpcError{
		Code:        s.ErrorCode,
		ErrorString: s.Error,
		Message:     s.ErrorMessage,
	}
}

// checkResult turns a "result" object with status "error" into an *RpcError.
func checkResult(result json.RawMessage) (json.RawMessage, error) {
	var status replyStatus
	if err := json.Unmarshal(result, &status); err != nil {
		return nil, fmt.Errorf("decoding reply: %w", err)
	}
	if rpcErr := status.rpcError(); rpcErr != nil {
		return nil, rpcErr
	}
	return result, nil
}
