package payment

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/LeJamon/xrplpay/internal/ledger"
)

// tfPartialPayment lets a Payment deliver less than its Amount.
const tfPartialPayment uint32 = 0x00020000

// TransactionLookup reads a submitted transaction back from the ledger.
type TransactionLookup interface {
	Transaction(ctx context.Context, hash string) (*ledger.TransactionRecord, error)
}

// OfferPayment is the payment an offer expects: Amount XRP to Destination,
// tagged with the offer's reference, made by transaction Hash.
type OfferPayment struct {
	Hash         string
	Destination  string
	Amount       string
	ReferenceTag string
}

// MismatchError names the first field of a transaction that disagrees with
// the offer.
type MismatchError struct {
	Hash  string
	Field string
	Want  string
	Got   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: transaction %s has %s %q, want %q", ErrPaymentMismatch, e.Hash, e.Field, e.Got, e.Want)
}

func (e *MismatchError) Unwrap() error {
	return ErrPaymentMismatch
}

// VerifyOfferPayment reports whether transaction offer.Hash settles the
// offer: a Payment to Destination, validated with tesSUCCESS, that delivered
// exactly Amount XRP and carries ReferenceTag as a text memo.
//
// When it reports false the error says why: ErrPaymentPending, a
// *MismatchError, ledger.ErrTransactionNotFound or the lookup failure itself.
func VerifyOfferPayment(ctx context.Context, l TransactionLookup, offer OfferPayment) (bool, error) {
	if offer.Hash == "" || offer.Destination == "" || offer.ReferenceTag == "" {
		return false, fmt.Errorf("%w: hash, destination and reference are required", ErrInvalidRequest)
	}
	xrp, err := ParseAmount(offer.Amount)
	if err != nil {
		return false, err
	}
	want, err := ToDrops(xrp)
	if err != nil {
		return false, err
	}

	record, err := l.Transaction(ctx, offer.Hash)
	if err != nil {
		return false, err
	}

	mismatch := func(field, want, got string) (bool, error) {
		return false, &MismatchError{Hash: offer.Hash, Field: field, Want: want, Got: got}
	}

	if record.TransactionType != "Payment" {
		return mismatch("TransactionType", "Payment", record.TransactionType)
	}
	if record.Destination != offer.Destination {
		return mismatch("Destination", offer.Destination, record.Destination)
	}
	if !hasTextMemo(record.Memos, offer.ReferenceTag) {
		return mismatch("Memo", offer.ReferenceTag, strings.Join(memoTexts(record.Memos), ","))
	}
	if !record.Validated {
		return false, fmt.Errorf("%w: %s", ErrPaymentPending, offer.Hash)
	}
	if record.Result != ledger.ResultSuccess {
		return mismatch("TransactionResult", ledger.ResultSuccess, record.Result)
	}

	delivered := deliveredAmount(record)
	if delivered == nil {
		return mismatch("delivered_amount", want, "unavailable")
	}
	if !delivered.IsXRP() || !sameDrops(delivered.Drops, want) {
		return mismatch("delivered_amount", want, delivered.String())
	}
	return true, nil
}

// deliveredAmount is what the payment actually delivered. Without metadata
// Amount is only trusted when partial payments were not allowed.
func deliveredAmount(record *ledger.TransactionRecord) *ledger.Amount {
	if d := record.DeliveredAmount; d != nil && d.Drops != "unavailable" {
		return d
	}
	if record.Flags&tfPartialPayment == 0 {
		return record.Amount
	}
	return nil
}

func sameDrops(got, want string) bool {
	g, err := decimal.NewFromString(got)
	if err != nil {
		return false
	}
	w, err := decimal.NewFromString(want)
	if err != nil {
		return false
	}
	return g.Equal(w)
}

var memoFormatTextHex = strings.ToUpper(hex.EncodeToString([]byte(MemoFormatText)))

func hasTextMemo(memos []ledger.Memo, text string) bool {
	for _, m := range memos {
		if m.MemoFormat != "" && !strings.EqualFold(m.MemoFormat, memoFormatTextHex) {
			continue
		}
		if decodeMemo(m.MemoData) == text {
			return true
		}
	}
	return false
}

func memoTexts(memos []ledger.Memo) []string {
	texts := make([]string, 0, len(memos))
	for _, m := range memos {
		texts = append(texts, decodeMemo(m.MemoData))
	}
	return texts
}

func decodeMemo(data string) string {
	text, err := hex.DecodeString(data)
	if err != nil {
		return ""
	}
	return string(text)
}
