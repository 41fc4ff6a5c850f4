package payment

import "github.com/LeJamon/xrplpay/internal/ledger"

// State is a step of a single payment call. A call only moves forward.
type State int

const (
	StateIdle State = iota
	StateCheckingDestination
	StateFetchingSenderState
	StateBuilding
	StateSigning
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCheckingDestination:
		return "checking-destination"
	case StateFetchingSenderState:
		return "fetching-sender-state"
	case StateBuilding:
		return "building"
	case StateSigning:
		return "signing"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one call. On failure FailedAt names the
// step that failed and Err is the error returned by the call. Transaction is
// set once signing succeeded, so a caller can Resubmit after an ambiguous
// failure.
type Outcome struct {
	State       State
	FailedAt    State
	Transaction *SignedTransaction
	Result      *ledger.SubmitResult
	Err         error
}

// Succeeded reports whether the server provisionally accepted the payment.
func (o *Outcome) Succeeded() bool {
	return o.State == StateSucceeded
}

// Ambiguous reports whether the submission failed in a way that leaves the
// payment possibly applied. Only then is resubmitting Transaction worth it.
func (o *Outcome) Ambiguous() bool {
	return o.State == StateFailed &&
		o.FailedAt == StateSubmitting &&
		ledger.IsAmbiguous(o.Err)
}
