package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/LeJamon/xrplpay/internal/events"
	"github.com/LeJamon/xrplpay/internal/ledger"
	"github.com/LeJamon/xrplpay/internal/payment"
)

// newClient connects a ledger client to the configured endpoint.
func newClient() (*ledger.Client, error) {
	transport, err := ledger.Dial(ledger.Config{
		Endpoint: cfg.Endpoint,
		Timeout:  cfg.RequestTimeout,
	})
	if err != nil {
		return nil, err
	}
	return ledger.NewClient(transport, logger), nil
}

// newSubmitter wires a Submitter to the configured endpoint and event sink.
// The returned function releases both.
func newSubmitter() (*payment.Submitter, func(), error) {
	client, err := newClient()
	if err != nil {
		return nil, nil, err
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.Events.Enabled() {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		publisher = kafkaPublisher
	}

	submitter := payment.NewSubmitter(payment.Config{
		FeeDrops:     cfg.FeeDrops,
		LedgerOffset: cfg.LedgerOffset,
		NetworkID:    cfg.NetworkID,
	}, client, payment.WithLogger(logger), payment.WithPublisher(publisher))

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("closing event publisher", "error", err)
		}
		if err := client.Close(); err != nil {
			logger.Warn("closing ledger connection", "error", err)
		}
	}
	return submitter, cleanup, nil
}

type outcomeView struct {
	Status              string                     `json:"status"`
	FailedAt            string                     `json:"failed_at,omitempty"`
	Ambiguous           bool                       `json:"ambiguous,omitempty"`
	EngineResult        string                     `json:"engine_result,omitempty"`
	EngineResultMessage string                     `json:"engine_result_message,omitempty"`
	Transaction         *payment.SignedTransaction `json:"transaction,omitempty"`
	Error               string                     `json:"error,omitempty"`
}

// printOutcome writes the outcome as indented JSON. After an ambiguous
// failure it also prints the command that resubmits the same blob.
func printOutcome(w io.Writer, outcome *payment.Outcome) error {
	view := outcomeView{
		Status:      outcome.State.String(),
		Ambiguous:   outcome.Ambiguous(),
		Transaction: outcome.Transaction,
	}
	if outcome.Err != nil {
		view.FailedAt = outcome.FailedAt.String()
		view.Error = outcome.Err.Error()
	}
	if outcome.Result != nil {
		view.EngineResult = outcome.Result.EngineResult
		view.EngineResultMessage = outcome.Result.EngineResultMessage
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))

	if view.Ambiguous {
		fmt.Fprintf(w, "\nThe payment may or may not have been applied. Check %s before resubmitting with:\n  xrplpay resubmit --blob %s\n",
			outcome.Transaction.Hash, outcome.Transaction.Blob)
	}
	return nil
}
