package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDial(t *testing.T) {
	tr, err := Dial(Config{Endpoint: "https://s.altnet.rippletest.net:51234/"})
	require.NoError(t, err)
	assert.IsType(t, &JSONRPCTransport{}, tr)

	tr, err = Dial(Config{Endpoint: "wss://s.altnet.rippletest.net:51233/"})
	require.NoError(t, err)
	assert.IsType(t, &WebSocketTransport{}, tr)
	assert.Equal(t, DefaultTimeout, tr.(*WebSocketTransport).timeout)

	_, err = Dial(Config{Endpoint: "tcp://localhost:5005"})
	assert.ErrorIs(t, err, ErrUnsupportedEndpoint)

	_, err = Dial(Config{Endpoint: "://nope"})
	assert.Error(t, err)
}

func TestCheckResult(t *testing.T) {
	raw, err := checkResult([]byte(`{"status":"success","ledger_current_index":5}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","ledger_current_index":5}`, string(raw))

	_, err = checkResult([]byte(`{"status":"error","error":"actNotFound","error_code":19,"error_message":"Account not found."}`))
	var rpcErr *RpcError
	require.ErrorAs(t, err, &rpcErr)
	assert.True(t, rpcErr.IsAccountNotFound())
	assert.Equal(t, "Account not found.", rpcErr.Message)
}
