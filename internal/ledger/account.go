package ledger

// ResolutionStatus tags the outcome of an account lookup.
type ResolutionStatus int

const (
	// AccountUnavailable means the lookup itself failed (transport error,
	// busy server, malformed address). Err carries the cause.
	AccountUnavailable ResolutionStatus = iota
	// AccountFound means State holds the current account root.
	AccountFound
	// AccountNotFound means the server answered that the account does not exist.
	AccountNotFound
)

func (s ResolutionStatus) String() string {
	switch s {
	case AccountFound:
		return "found"
	case AccountNotFound:
		return "not-found"
	default:
		return "unavailable"
	}
}

// AccountState is the sender side ledger state read by account_info.
type AccountState struct {
	Account    string
	Balance    string // drops
	Sequence   uint32
	OwnerCount uint32
	Flags      uint32

	// LedgerCurrentIndex is the open ledger the state was read from.
	LedgerCurrentIndex uint32
}

// AccountResolution is the tagged result of LoadAccount. Exactly one of
// State (Found) or Err (NotFound, Unavailable) is meaningful.
type AccountResolution struct {
	Status ResolutionStatus
	State  *AccountState
	Err    error
}

// Found builds a resolution for an existing account.
func Found(state *AccountState) AccountResolution {
	return AccountResolution{Status: AccountFound, State: state}
}

// NotFound builds a resolution for a missing account. cause is the server reply.
func NotFound(cause error) AccountResolution {
	return AccountResolution{Status: AccountNotFound, Err: cause}
}

// Unavailable builds a resolution for a failed lookup.
func Unavailable(cause error) AccountResolution {
	return AccountResolution{Status: AccountUnavailable, Err: cause}
}

// SubmitResult contains the server's preliminary answer to a submit call.
type SubmitResult struct {
	// EngineResult is the result code string (e.g., "tesSUCCESS")
	EngineResult string `json:"engine_result"`

	// EngineResultCode is the numeric result code
	EngineResultCode int `json:"engine_result_code"`

	// EngineResultMessage is a human-readable result message
	EngineResultMessage string `json:"engine_result_message"`

	Accepted  bool `json:"accepted"`
	Applied   bool `json:"applied"`
	Broadcast bool `json:"broadcast"`
	Kept      bool `json:"kept"`
	Queued    bool `json:"queued"`

	// TxBlob echoes the submitted blob.
	TxBlob string `json:"tx_blob"`

	// Hash is the transaction id reported in tx_json.
	Hash string `json:"hash,omitempty"`
}
