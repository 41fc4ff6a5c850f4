package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

type jsonRPCRequest struct {
	Method string           `json:"method"`
	Params []map[string]any `json:"params"`
}

type jsonRPCResponse struct {
	Result json.RawMessage `json:"result"`
}

// JSONRPCTransport speaks the rippled JSON-RPC API over HTTP(S).
// Requests are never retried.
type JSONRPCTransport struct {
	client   *resty.Client
	endpoint string
}

// NewJSONRPCTransport creates a transport posting to endpoint.
func NewJSONRPCTransport(endpoint string, timeout time.Duration) *JSONRPCTransport {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &JSONRPCTransport{
		client:   client,
		endpoint: endpoint,
	}
}

// Call posts {"method": method, "params": [params]} and returns the result object.
func (t *JSONRPCTransport) Call(ctx context.Context, method string, params map[string]any) (json.RawMessage, error) {
	if params == nil {
		params = map[string]any{}
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(jsonRPCRequest{Method: method, Params: []map[string]any{params}}).
		Post(t.endpoint)
	if err != nil {
		return nil, err
	}

	body := resp.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		if resp.IsError() {
			return nil, statusError(resp)
		}
		return nil, ErrNoResponse
	}

	var envelope jsonRPCResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		if resp.IsError() {
			return nil, statusError(resp)
		}
		return nil, fmt.Errorf("decoding %s reply: %w", method, err)
	}
	if len(envelope.Result) == 0 || bytes.Equal(envelope.Result, []byte("null")) {
		return nil, fmt.Errorf("%w: %s reply has no result", ErrNoResponse, method)
	}

	return checkResult(envelope.Result)
}

// statusError describes an HTTP error reply that carries no API result.
// A 5xx usually comes from a proxy that may already have forwarded the
// request, so it counts as no response.
func statusError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %w: %s", ErrNoResponse, ErrUnexpectedStatus, resp.Status())
	}
	return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status())
}

// Close is a no-op; the underlying HTTP client keeps no dedicated connection.
func (t *JSONRPCTransport) Close() error {
	return nil
}
