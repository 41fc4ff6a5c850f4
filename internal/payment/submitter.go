// Package payment submits single XRP payments on behalf of a caller-supplied
// keypair, tagged with a marketplace reference.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LeJamon/xrplpay/internal/crypto"
	"github.com/LeJamon/xrplpay/internal/events"
	"github.com/LeJamon/xrplpay/internal/ledger"
)

const (
	// DefaultFeeDrops is the reference transaction cost of the network.
	DefaultFeeDrops = 12

	publishTimeout = 5 * time.Second
)

// Signer holds the sender's keys. Sign receives the signing serialization
// of a transaction and returns a hex signature.
type Signer interface {
	Address() string
	PublicKeyHex() string
	Sign(message []byte) (string, error)
}

// Ledger is the network side of a payment.
type Ledger interface {
	LoadAccount(ctx context.Context, address string) ledger.AccountResolution
	Submit(ctx context.Context, txBlob string) (*ledger.SubmitResult, error)
}

// Request is one payment: Amount XRP from Sender to Destination, with
// ReferenceTag attached as a text memo.
type Request struct {
	Destination  string
	Sender       Signer
	Amount       string
	ReferenceTag string
}

// Config is fixed for the life of a Submitter.
type Config struct {
	// FeeDrops is the Fee of every transaction. Zero means DefaultFeeDrops.
	FeeDrops uint64
	// LedgerOffset sets LastLedgerSequence to the sender's current ledger
	// plus this many ledgers. Zero leaves the transaction without expiry.
	LedgerOffset uint32
	// NetworkID is included in transactions for networks above 1024.
	NetworkID uint32
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithLogger sets the logger. A nil logger keeps the default, which discards.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Submitter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPublisher sets where payment events go. The default publishes nothing.
func WithPublisher(publisher events.Publisher) Option {
	return func(s *Submitter) {
		if publisher != nil {
			s.publisher = publisher
		}
	}
}

// Submitter builds, signs and submits payments. It keeps no state between
// calls and may be used concurrently.
type Submitter struct {
	cfg       Config
	ledger    Ledger
	logger    *slog.Logger
	publisher events.Publisher
}

// NewSubmitter returns a Submitter paying through l.
func NewSubmitter(cfg Config, l Ledger, opts ...Option) *Submitter {
	if cfg.FeeDrops == 0 {
		cfg.FeeDrops = DefaultFeeDrops
	}

	s := &Submitter{
		cfg:       cfg,
		ledger:    l,
		logger:    slog.New(slog.DiscardHandler),
		publisher: events.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("component", "payment"))
	return s
}

// attempt is the per-call state of one payment.
type attempt struct {
	logger       *slog.Logger
	referenceTag string
	sender       string
	destination  string
	amount       string
	outcome      Outcome
}

func (a *attempt) enter(state State) {
	a.outcome.State = state
	a.logger.Debug("payment state", "state", state.String())
}

// Submit pays req.Amount XRP to req.Destination. The steps run strictly in
// order and the transaction is submitted at most once:
//
//  1. the destination must exist, otherwise ErrDestinationNotFound;
//  2. the sender's sequence is read fresh from the current ledger;
//  3. a Payment is built and signed, and its signature verified;
//  4. the signed blob is submitted.
//
// Lookup and submission errors are returned unmodified. The returned Outcome
// is never nil; after a failed submission it carries the signed transaction.
func (s *Submitter) Submit(ctx context.Context, req Request) (*Outcome, error) {
	a := &attempt{
		referenceTag: req.ReferenceTag,
		destination:  req.Destination,
		amount:       req.Amount,
	}
	if req.Sender != nil {
		a.sender = req.Sender.Address()
	}
	a.logger = s.logger.With(
		slog.String("reference", req.ReferenceTag),
		slog.String("sender", a.sender),
		slog.String("destination", req.Destination))

	if req.Destination == "" || req.Sender == nil {
		return s.fail(ctx, a, fmt.Errorf("%w: destination and sender are required", ErrInvalidRequest))
	}
	if !crypto.IsValidAddress(req.Destination) {
		return s.fail(ctx, a, fmt.Errorf("%w: malformed destination address %q", ErrInvalidRequest, req.Destination))
	}

	a.enter(StateCheckingDestination)
	dest := s.ledger.LoadAccount(ctx, req.Destination)
	switch dest.Status {
	case ledger.AccountFound:
	case ledger.AccountNotFound:
		return s.fail(ctx, a, fmt.Errorf("%w: %s", ErrDestinationNotFound, req.Destination))
	default:
		return s.fail(ctx, a, resolutionError(dest, req.Destination))
	}

	a.enter(StateFetchingSenderState)
	sender := s.ledger.LoadAccount(ctx, a.sender)
	if sender.Status != ledger.AccountFound {
		return s.fail(ctx, a, resolutionError(sender, a.sender))
	}

	a.enter(StateBuilding)
	tx, err := s.build(req, sender.State)
	if err != nil {
		return s.fail(ctx, a, err)
	}

	a.enter(StateSigning)
	blob, hash, err := signTransaction(tx, req.Sender)
	if err != nil {
		return s.fail(ctx, a, err)
	}
	a.outcome.Transaction = &SignedTransaction{
		Account:       tx.Account,
		Destination:   tx.Destination,
		Amount:        req.Amount,
		AmountDrops:   tx.Amount,
		Fee:           tx.Fee,
		Sequence:      tx.Sequence,
		ReferenceTag:  req.ReferenceTag,
		SigningPubKey: tx.SigningPubKey,
		TxnSignature:  tx.TxnSignature,
		Blob:          blob,
		Hash:          hash,
	}
	if tx.LastLedgerSequence != nil {
		a.outcome.Transaction.LastLedgerSequence = *tx.LastLedgerSequence
	}
	if tx.NetworkID != nil {
		a.outcome.Transaction.NetworkID = *tx.NetworkID
	}

	return s.submit(ctx, a)
}

// Resubmit submits an already signed transaction once more, unchanged. It is
// meant for outcomes where Ambiguous reports true; the payment cannot apply
// twice because the blob's sequence number is fixed. The blob's signature is
// verified again first.
func (s *Submitter) Resubmit(ctx context.Context, tx *SignedTransaction) (*Outcome, error) {
	a := &attempt{}
	if tx != nil {
		a.referenceTag = tx.ReferenceTag
		a.sender = tx.Account
		a.destination = tx.Destination
		a.amount = tx.Amount
		a.outcome.Transaction = tx
	}
	a.logger = s.logger.With(
		slog.String("reference", a.referenceTag),
		slog.String("sender", a.sender),
		slog.String("destination", a.destination))

	if tx == nil || tx.Blob == "" {
		return s.fail(ctx, a, fmt.Errorf("%w: no signed transaction to resubmit", ErrInvalidRequest))
	}

	a.enter(StateSigning)
	if _, err := ParseSignedBlob(tx.Blob); err != nil {
		return s.fail(ctx, a, err)
	}

	a.logger.Info("resubmitting signed transaction",
		"hash", tx.Hash,
		"sequence", tx.Sequence)
	return s.submit(ctx, a)
}

func (s *Submitter) build(req Request, state *ledger.AccountState) (*paymentTx, error) {
	xrp, err := ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	drops, err := ToDrops(xrp)
	if err != nil {
		return nil, err
	}

	tx := &paymentTx{
		Account:     req.Sender.Address(),
		Destination: req.Destination,
		Amount:      drops,
		Fee:         strconv.FormatUint(s.cfg.FeeDrops, 10),
		Sequence:    state.Sequence,
		Flags:       TfFullyCanonicalSig,
	}
	if req.ReferenceTag != "" {
		tx.Memos = []memo{newTextMemo(req.ReferenceTag)}
	}
	if s.cfg.LedgerOffset > 0 && state.LedgerCurrentIndex > 0 {
		lls := state.LedgerCurrentIndex + s.cfg.LedgerOffset
		tx.LastLedgerSequence = &lls
	}
	if s.cfg.NetworkID > networkIDThreshold {
		id := s.cfg.NetworkID
		tx.NetworkID = &id
	}
	return tx, nil
}

func (s *Submitter) submit(ctx context.Context, a *attempt) (*Outcome, error) {
	a.enter(StateSubmitting)
	result, err := s.ledger.Submit(ctx, a.outcome.Transaction.Blob)
	a.outcome.Result = result
	if err != nil {
		return s.fail(ctx, a, err)
	}

	a.enter(StateSucceeded)
	a.logger.Info("payment submitted",
		"hash", a.outcome.Transaction.Hash,
		"sequence", a.outcome.Transaction.Sequence,
		"engine_result", result.EngineResult)
	s.publish(ctx, a)
	return &a.outcome, nil
}

// fail ends the attempt at its current step. err is returned as is.
func (s *Submitter) fail(ctx context.Context, a *attempt, err error) (*Outcome, error) {
	a.outcome.FailedAt = a.outcome.State
	a.outcome.State = StateFailed
	a.outcome.Err = err

	attrs := []any{
		"step", a.outcome.FailedAt.String(),
		"error", err,
	}
	if a.outcome.Transaction != nil {
		attrs = append(attrs,
			"hash", a.outcome.Transaction.Hash,
			"sequence", a.outcome.Transaction.Sequence)
	}
	if a.outcome.Ambiguous() {
		attrs = append(attrs, "ambiguous", true)
	}
	a.logger.Error("payment failed", attrs...)

	s.publish(ctx, a)
	return &a.outcome, err
}

// publish reports the outcome. Delivery failures are logged and never
// change the outcome.
func (s *Submitter) publish(ctx context.Context, a *attempt) {
	status := events.StatusSucceeded
	if a.outcome.State == StateFailed {
		status = events.StatusFailed
	}

	event := events.NewPaymentEvent(a.referenceTag, status)
	event.Sender = a.sender
	event.Destination = a.destination
	if xrp, err := decimal.NewFromString(a.amount); err == nil {
		event.Amount = xrp
	}
	if tx := a.outcome.Transaction; tx != nil {
		event.TxHash = tx.Hash
		event.Sequence = tx.Sequence
	}
	if a.outcome.Result != nil {
		event.EngineResult = a.outcome.Result.EngineResult
	}
	if a.outcome.Err != nil {
		event.FailedAt = a.outcome.FailedAt.String()
		event.Ambiguous = a.outcome.Ambiguous()
		event.Error = a.outcome.Err.Error()
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, event); err != nil {
		a.logger.Warn("publishing payment event", "event_id", event.EventID, "error", err)
	}
}

// resolutionError returns the cause of a failed lookup unmodified.
func resolutionError(res ledger.AccountResolution, address string) error {
	if res.Err != nil {
		return res.Err
	}
	if res.Status == ledger.AccountNotFound {
		return fmt.Errorf("account %s not found", address)
	}
	return errors.New("account " + address + " unavailable")
}
