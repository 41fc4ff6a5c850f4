package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrTransactionNotFound is returned by Transaction when the server has no
// record of the hash in the ledgers it holds.
var ErrTransactionNotFound = errors.New("transaction not found")

// Amount is a transaction amount: XRP as a drops string, or an issued
// currency amount.
type Amount struct {
	Drops    string
	Currency string
	Issuer   string
	Value    string
}

// IsXRP reports whether the amount is in drops.
func (a Amount) IsXRP() bool {
	return a.Currency == "" && a.Drops != ""
}

func (a Amount) String() string {
	if a.Currency == "" {
		return a.Drops
	}
	return a.Value + " " + a.Currency + "/" + a.Issuer
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var drops string
	if err := json.Unmarshal(data, &drops); err == nil {
		*a = Amount{Drops: drops}
		return nil
	}

	var issued struct {
		Currency string `json:"currency"`
		Issuer   string `json:"issuer"`
		Value    string `json:"value"`
	}
	if err := json.Unmarshal(data, &issued); err != nil {
		return fmt.Errorf("decoding amount: %w", err)
	}
	*a = Amount{Currency: issued.Currency, Issuer: issued.Issuer, Value: issued.Value}
	return nil
}

// Memo holds the hex encoded fields of one transaction memo.
type Memo struct {
	MemoData   string `json:"MemoData"`
	MemoFormat string `json:"MemoFormat"`
	MemoType   string `json:"MemoType"`
}

type memoWrapper struct {
	Memo Memo `json:"Memo"`
}

// txFields are the transaction fields of a tx reply. API v1 puts them at the
// top level of the result, API v2 under tx_json.
type txFields struct {
	TransactionType string        `json:"TransactionType"`
	Account         string        `json:"Account"`
	Destination     string        `json:"Destination"`
	Amount          *Amount       `json:"Amount"`
	DeliverMax      *Amount       `json:"DeliverMax"`
	Flags           uint32        `json:"Flags"`
	Sequence        uint32        `json:"Sequence"`
	Memos           []memoWrapper `json:"Memos"`
	Hash            string        `json:"hash"`
}

type txReply struct {
	txFields
	TxJSON      *txFields `json:"tx_json"`
	Hash        string    `json:"hash"`
	LedgerIndex uint32    `json:"ledger_index"`
	Validated   bool      `json:"validated"`
	Meta        *struct {
		TransactionResult string  `json:"TransactionResult"`
		DeliveredAmount   *Amount `json:"delivered_amount"`
		LegacyDelivered   *Amount `json:"DeliveredAmount"`
	} `json:"meta"`
}

// TransactionRecord is a transaction as the server recorded it, with the
// parts of its metadata needed to tell what it delivered.
type TransactionRecord struct {
	Hash            string
	TransactionType string
	Account         string
	Destination     string
	Amount          *Amount
	Flags           uint32
	Sequence        uint32
	Memos           []Memo

	LedgerIndex uint32
	Validated   bool
	// Result is meta.TransactionResult; empty while the transaction has no metadata.
	Result string
	// DeliveredAmount is what actually reached the destination. Nil when the
	// server did not report it.
	DeliveredAmount *Amount
}

// Transaction looks up a transaction by hash with the tx command. A hash the
// server does not know resolves to ErrTransactionNotFound wrapping the reply.
func (c *Client) Transaction(ctx context.Context, hash string) (*TransactionRecord, error) {
	raw, err := c.transport.Call(ctx, "tx", map[string]any{
		"transaction": hash,
		"binary":      false,
	})
	if err != nil {
		var rpcErr *RpcError
		if errors.As(err, &rpcErr) && rpcErr.IsTransactionNotFound() {
			return nil, fmt.Errorf("%w: %s: %w", ErrTransactionNotFound, hash, err)
		}
		return nil, err
	}

	var reply txReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("decoding tx reply: %w", err)
	}

	fields := reply.txFields
	if reply.TxJSON != nil {
		fields = *reply.TxJSON
	}
	record := &TransactionRecord{
		Hash:            reply.Hash,
		TransactionType: fields.TransactionType,
		Account:         fields.Account,
		Destination:     fields.Destination,
		Amount:          fields.Amount,
		Flags:           fields.Flags,
		Sequence:        fields.Sequence,
		LedgerIndex:     reply.LedgerIndex,
		Validated:       reply.Validated,
	}
	if record.Hash == "" {
		record.Hash = fields.Hash
	}
	if record.Amount == nil {
		record.Amount = fields.DeliverMax
	}
	for _, m := range fields.Memos {
		record.Memos = append(record.Memos, m.Memo)
	}
	if reply.Meta != nil {
		record.Result = reply.Meta.TransactionResult
		record.DeliveredAmount = reply.Meta.DeliveredAmount
		if record.DeliveredAmount == nil {
			record.DeliveredAmount = reply.Meta.LegacyDelivered
		}
	}

	c.logger.Debug("transaction loaded",
		"hash", hash,
		"validated", record.Validated,
		"result", record.Result)
	return record, nil
}
