// Package events notifies the marketplace about the terminal outcome of
// each payment attempt.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the terminal state of a payment attempt.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// PaymentEvent describes one finished payment attempt. It is a notification,
// not a record: nothing reads it back to drive later payments.
type PaymentEvent struct {
	EventID      string          `json:"event_id"`
	ReferenceTag string          `json:"reference_tag"`
	Sender       string          `json:"sender"`
	Destination  string          `json:"destination"`
	Amount       decimal.Decimal `json:"amount"`
	TxHash       string          `json:"tx_hash,omitempty"`
	Sequence     uint32          `json:"sequence,omitempty"`
	EngineResult string          `json:"engine_result,omitempty"`
	Status       Status          `json:"status"`
	FailedAt     string          `json:"failed_at,omitempty"`
	Ambiguous    bool            `json:"ambiguous,omitempty"`
	Error        string          `json:"error,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// NewPaymentEvent stamps a fresh event id and time.
func NewPaymentEvent(referenceTag string, status Status) PaymentEvent {
	return PaymentEvent{
		EventID:      uuid.NewString(),
		ReferenceTag: referenceTag,
		Status:       status,
		OccurredAt:   time.Now().UTC(),
	}
}
