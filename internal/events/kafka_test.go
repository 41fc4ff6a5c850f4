package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewKafkaPublisher(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "payments")
	assert.ErrorIs(t, err, ErrNoBrokers)

	p, err := NewKafkaPublisher([]string{"localhost:9092"}, "")
	require.NoError(t, err)
	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, DefaultTopic, w.Topic)
	assert.Equal(t, "localhost:9092", w.Addr.String())
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	event := NewPaymentEvent("offer-42", StatusSucceeded)
	event.Sender = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	event.Destination = "rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe"
	event.Amount = decimal.RequireFromString("100.5")
	event.TxHash = "ABCD"
	event.EngineResult = "tesSUCCESS"

	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, w.messages, 1)
	assert.Equal(t, "offer-42", string(w.messages[0].Key))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &decoded))
	assert.Equal(t, event.EventID, decoded["event_id"])
	assert.Equal(t, "100.5", decoded["amount"])
	assert.Equal(t, "succeeded", decoded["status"])
	assert.NotContains(t, decoded, "error")

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteFailure(t *testing.T) {
	cause := errors.New("leader not available")
	p := &KafkaPublisher{writer: &fakeWriter{err: cause}}

	err := p.Publish(context.Background(), NewPaymentEvent("offer-1", StatusFailed))
	assert.ErrorIs(t, err, cause)
}

func TestNewPaymentEvent(t *testing.T) {
	a := NewPaymentEvent("offer-1", StatusFailed)
	b := NewPaymentEvent("offer-1", StatusFailed)
	assert.NotEqual(t, a.EventID, b.EventID)
	assert.False(t, a.OccurredAt.IsZero())

	assert.NoError(t, Nop{}.Publish(context.Background(), a))
	assert.NoError(t, Nop{}.Close())
}
