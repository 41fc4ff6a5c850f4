package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const txHash = "E08D6E9754025BA2534A78707605E0601F03ACE063687A0CA1BDDACFCD1698C7"

// txResultV1 is a validated payment as API v1 returns it, fields at the top level.
const txResultV1 = `{
	"Account": "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh",
	"Amount": "100000000",
	"Destination": "rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe",
	"Fee": "12",
	"Flags": 2147483648,
	"Memos": [{"Memo": {"MemoData": "6F666665722D3432", "MemoFormat": "746578742F706C61696E"}}],
	"Sequence": 7,
	"TransactionType": "Payment",
	"hash": "E08D6E9754025BA2534A78707605E0601F03ACE063687A0CA1BDDACFCD1698C7",
	"ledger_index": 512,
	"meta": {"TransactionResult": "tesSUCCESS", "delivered_amount": "100000000"},
	"status": "success",
	"validated": true
}`

// txResultV2 is the same payment in the API v2 shape.
const txResultV2 = `{
	"tx_json": {
		"Account": "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh",
		"DeliverMax": "100000000",
		"Destination": "rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe",
		"Flags": 2147483648,
		"Memos": [{"Memo": {"MemoData": "6F666665722D3432", "MemoFormat": "746578742F706C61696E"}}],
		"Sequence": 7,
		"TransactionType": "Payment"
	},
	"hash": "E08D6E9754025BA2534A78707605E0601F03ACE063687A0CA1BDDACFCD1698C7",
	"ledger_index": 512,
	"meta": {"TransactionResult": "tesSUCCESS", "delivered_amount": "100000000"},
	"status": "success",
	"validated": true
}`

func TestClient_Transaction(t *testing.T) {
	for name, reply := range map[string]string{"api v1": txResultV1, "api v2": txResultV2} {
		t.Run(name, func(t *testing.T) {
			tr := &fakeTransport{replies: []string{reply}}
			c := NewClient(tr, nil)

			record, err := c.Transaction(context.Background(), txHash)
			require.NoError(t, err)

			require.Len(t, tr.calls, 1)
			assert.Equal(t, "tx", tr.calls[0].method)
			assert.Equal(t, txHash, tr.calls[0].params["transaction"])

			assert.Equal(t, txHash, record.Hash)
			assert.Equal(t, "Payment", record.TransactionType)
			assert.Equal(t, "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh", record.Account)
			assert.Equal(t, "rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe", record.Destination)
			require.NotNil(t, record.Amount)
			assert.True(t, record.Amount.IsXRP())
			assert.Equal(t, "100000000", record.Amount.Drops)
			assert.Equal(t, uint32(7), record.Sequence)
			assert.Equal(t, uint32(512), record.LedgerIndex)
			assert.True(t, record.Validated)
			assert.Equal(t, ResultSuccess, record.Result)
			require.NotNil(t, record.DeliveredAmount)
			assert.Equal(t, "100000000", record.DeliveredAmount.Drops)
			require.Len(t, record.Memos, 1)
			assert.Equal(t, "6F666665722D3432", record.Memos[0].MemoData)
		})
	}
}

func TestClient_TransactionIssuedAmount(t *testing.T) {
	tr := &fakeTransport{replies: []string{`{
		"TransactionType": "Payment",
		"Destination": "rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe",
		"Amount": {"currency": "USD", "issuer": "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh", "value": "100"},
		"hash": "` + txHash + `",
		"validated": false,
		"status": "success"
	}`}}

	record, err := NewClient(tr, nil).Transaction(context.Background(), txHash)
	require.NoError(t, err)
	assert.False(t, record.Amount.IsXRP())
	assert.Equal(t, "100 USD/rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh", record.Amount.String())
	assert.False(t, record.Validated)
	assert.Empty(t, record.Result)
	assert.Nil(t, record.DeliveredAmount)
}

func TestClient_TransactionNotFound(t *testing.T) {
	notFound := &RpcError{Code: RpcTXN_NOT_FOUND, ErrorString: "txnNotFound", Message: "Transaction not found."}
	tr := &fakeTransport{errs: []error{notFound}}

	_, err := NewClient(tr, nil).Transaction(context.Background(), txHash)
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	var rpcErr *RpcError
	require.ErrorAs(t, err, &rpcErr)
	assert.True(t, rpcErr.IsTransactionNotFound())
}

func TestClient_TransactionTransportFailure(t *testing.T) {
	cause := errors.New("connection refused")
	tr := &fakeTransport{errs: []error{cause}}

	_, err := NewClient(tr, nil).Transaction(context.Background(), txHash)
	assert.Same(t, cause, err)
	assert.NotErrorIs(t, err, ErrTransactionNotFound)
}

func TestClient_TransactionMalformed(t *testing.T) {
	tr := &fakeTransport{replies: []string{`{"TransactionType": "Payment", "Amount": 5, "status": "success"}`}}

	_, err := NewClient(tr, nil).Transaction(context.Background(), txHash)
	assert.ErrorContains(t, err, "decoding tx reply")
}
