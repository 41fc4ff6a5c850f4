package payment

import "errors"

var (
	// ErrInvalidRequest is returned before any network call when the request
	// lacks a sender or a well formed destination. Resubmit returns it for
	// blobs whose signature does not verify.
	ErrInvalidRequest = errors.New("invalid payment request")

	// ErrDestinationNotFound is returned when the destination account does not
	// exist. Nothing has been signed or submitted at that point.
	ErrDestinationNotFound = errors.New("destination account does not exist")

	// ErrInvalidAmount is returned when the amount cannot be expressed in drops.
	ErrInvalidAmount = errors.New("invalid XRP amount")

	// ErrPaymentPending is returned by VerifyOfferPayment while the
	// transaction is not in a validated ledger yet.
	ErrPaymentPending = errors.New("payment not validated yet")

	// ErrPaymentMismatch is wrapped by *MismatchError.
	ErrPaymentMismatch = errors.New("payment does not settle the offer")
)
