package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
)

// Error codes returned by rippled that the client reacts to.
// These must match rippled exactly.
const (
	RpcUNKNOWN       = -1
	RpcTOO_BUSY      = 6
	RpcSLOW_DOWN     = 7
	RpcACT_NOT_FOUND = 19
	RpcTXN_NOT_FOUND = 29
	RpcACT_MALFORMED = 50
)

var (
	// ErrNoResponse is returned when the server closed the exchange without a
	// reply body. A submitted transaction may or may not have been applied.
	ErrNoResponse = errors.New("no response from ledger server")

	// ErrUnexpectedStatus is returned for non-2xx HTTP replies without a JSON
	// body. For 5xx replies it is wrapped together with ErrNoResponse.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status from ledger server")

	// ErrUnsupportedEndpoint is returned by Dial for schemes other than http(s)/ws(s).
	ErrUnsupportedEndpoint = errors.New("unsupported ledger endpoint")
)

// RpcError represents an XRPL API error reply (status "error").
type RpcError struct {
	Code        int    `json:"error_code"`
	ErrorString string `json:"error"`
	Message     string `json:"error_message,omitempty"`
}

func (e *RpcError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.ErrorString, e.Message)
	}
	return e.ErrorString
}

// IsAccountNotFound reports whether the server said the account does not exist
// in the ledger it looked at.
func (e *RpcError) IsAccountNotFound() bool {
	return e.Code == RpcACT_NOT_FOUND || e.ErrorString == "actNotFound"
}

// IsTransactionNotFound reports whether the server has no record of a
// looked up transaction.
func (e *RpcError) IsTransactionNotFound() bool {
	return e.Code == RpcTXN_NOT_FOUND || e.ErrorString == "txnNotFound"
}

// EngineError is returned by Submit when the server answered but did not
// provisionally accept the transaction.
type EngineError struct {
	Result *SubmitResult
}

func (e *EngineError) Error() string {
	if e.Result.EngineResultMessage != "" {
		return fmt.Sprintf("transaction rejected: %s: %s", e.Result.EngineResult, e.Result.EngineResultMessage)
	}
	return "transaction rejected: " + e.Result.EngineResult
}

// Category returns the result class of the rejection.
func (e *EngineError) Category() Category {
	return CategoryOf(e.Result.EngineResult)
}

// IsAmbiguous reports whether a failed submission leaves the transaction's
// fate unknown: it may still be applied in a later ledger. Resubmitting the
// same signed blob is safe because its sequence number is fixed.
// Cancellation is ambiguous since the request may already have been written.
func IsAmbiguous(err error) bool {
	if err == nil {
		return false
	}

	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr.Category() == CategoryRetry
	}

	if errors.Is(err, ErrNoResponse) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
