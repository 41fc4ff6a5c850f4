// Package ledger is the client side of the XRPL public API used to pay from
// an account: account lookups and transaction submission.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

type accountInfoReply struct {
	AccountData struct {
		Account    string `json:"Account"`
		Balance    string `json:"Balance"`
		Flags      uint32 `json:"Flags"`
		OwnerCount uint32 `json:"OwnerCount"`
		Sequence   uint32 `json:"Sequence"`
	} `json:"account_data"`
	LedgerCurrentIndex uint32 `json:"ledger_current_index"`
}

type submitReply struct {
	SubmitResult
	TxJSON struct {
		Hash string `json:"hash"`
	} `json:"tx_json"`
}

// Client issues account_info and submit requests over a Transport.
// It holds no per-account state; every lookup goes to the server.
type Client struct {
	transport Transport
	logger    *slog.Logger
}

// NewClient wraps a transport. A nil logger discards client logs.
func NewClient(transport Transport, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		transport: transport,
		logger:    logger.With(slog.String("component", "ledger")),
	}
}

// LoadAccount reads the current state of an account from the open ledger.
// A server answer of actNotFound resolves to NotFound; every other failure
// resolves to Unavailable with the cause untouched.
func (c *Client) LoadAccount(ctx context.Context, address string) AccountResolution {
	raw, err := c.transport.Call(ctx, "account_info", map[string]any{
		"account":      address,
		"ledger_index": "current",
		"strict":       true,
	})
	if err != nil {
		var rpcErr *RpcError
		if errors.As(err, &rpcErr) && rpcErr.IsAccountNotFound() {
			c.logger.Debug("account not found", "account", address)
			return NotFound(err)
		}
		return Unavailable(err)
	}

	var reply accountInfoReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return Unavailable(fmt.Errorf("decoding account_info reply: %w", err))
	}

	state := &AccountState{
		Account:            reply.AccountData.Account,
		Balance:            reply.AccountData.Balance,
		Sequence:           reply.AccountData.Sequence,
		OwnerCount:         reply.AccountData.OwnerCount,
		Flags:              reply.AccountData.Flags,
		LedgerCurrentIndex: reply.LedgerCurrentIndex,
	}
	c.logger.Debug("account loaded",
		"account", address,
		"sequence", state.Sequence,
		"ledger_current_index", state.LedgerCurrentIndex)

	return Found(state)
}

// Submit sends a signed transaction blob once. A reply that is not a
// provisional acceptance is returned together with an *EngineError.
func (c *Client) Submit(ctx context.Context, txBlob string) (*SubmitResult, error) {
	raw, err := c.transport.Call(ctx, "submit", map[string]any{
		"tx_blob":   txBlob,
		"fail_hard": false,
	})
	if err != nil {
		return nil, err
	}

	var reply submitReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("decoding submit reply: %w", err)
	}
	if reply.EngineResult == "" {
		return nil, fmt.Errorf("%w: submit reply without engine_result", ErrNoResponse)
	}

	result := reply.SubmitResult
	if result.Hash == "" {
		result.Hash = reply.TxJSON.Hash
	}
	c.logger.Debug("transaction submitted",
		"hash", result.Hash,
		"engine_result", result.EngineResult)

	if !ProvisionallyAccepted(result.EngineResult) {
		return &result, &EngineError{Result: &result}
	}
	return &result, nil
}

// Close releases the transport.
func (c *Client) Close() error {
	return c.transport.Close()
}
