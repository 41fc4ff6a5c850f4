package payment

import (
	"encoding/hex"
	"fmt"
	"maps"
	"strconv"
	"strings"

	binarycodec "github.com/Peersyst/xrpl-go/binary-codec"

	"github.com/LeJamon/xrplpay/internal/crypto"
	"github.com/LeJamon/xrplpay/internal/crypto/common"
)

const (
	// TfFullyCanonicalSig requires a low-S signature.
	TfFullyCanonicalSig uint32 = 0x80000000

	// MemoFormatText is the MemoFormat of the reference tag memo.
	MemoFormatText = "text/plain"

	// networkIDThreshold: networks with an id above it must carry NetworkID,
	// the legacy networks (mainnet, testnet, devnet) must not.
	networkIDThreshold = 1024
)

// SignedTransaction is a signed Payment ready to be submitted. The blob is
// final: resubmitting it can never apply the payment twice because its
// Sequence is fixed.
type SignedTransaction struct {
	Account            string `json:"account"`
	Destination        string `json:"destination"`
	Amount             string `json:"amount"` // XRP
	AmountDrops        string `json:"amount_drops"`
	Fee                string `json:"fee"` // drops
	Sequence           uint32 `json:"sequence"`
	LastLedgerSequence uint32 `json:"last_ledger_sequence,omitempty"`
	NetworkID          uint32 `json:"network_id,omitempty"`
	ReferenceTag       string `json:"reference_tag"`
	SigningPubKey      string `json:"signing_pub_key"`
	TxnSignature       string `json:"txn_signature"`
	Blob               string `json:"tx_blob"`
	Hash               string `json:"hash"`
}

// paymentTx holds the fields of an XRP Payment in their wire form.
type paymentTx struct {
	Account            string
	Destination        string
	Amount             string // drops
	Fee                string // drops
	Sequence           uint32
	Flags              uint32
	LastLedgerSequence *uint32
	NetworkID          *uint32
	Memos              []memo
	SigningPubKey      string
	TxnSignature       string
}

type memo struct {
	MemoData   string
	MemoFormat string
}

func newTextMemo(text string) memo {
	return memo{
		MemoData:   strings.ToUpper(hex.EncodeToString([]byte(text))),
		MemoFormat: strings.ToUpper(hex.EncodeToString([]byte(MemoFormatText))),
	}
}

// ToMap converts the transaction to the JSON shape understood by the binary codec.
func (p *paymentTx) ToMap() map[string]any {
	m := map[string]any{
		"TransactionType": "Payment",
		"Account":         p.Account,
		"Destination":     p.Destination,
		"Amount":          p.Amount,
		"Fee":             p.Fee,
		"Sequence":        p.Sequence,
	}

	if p.Flags != 0 {
		m["Flags"] = p.Flags
	}
	if p.LastLedgerSequence != nil {
		m["LastLedgerSequence"] = *p.LastLedgerSequence
	}
	if p.NetworkID != nil {
		m["NetworkID"] = *p.NetworkID
	}
	if len(p.Memos) > 0 {
		memos := make([]any, len(p.Memos))
		for i, mm := range p.Memos {
			memos[i] = map[string]any{
				"Memo": map[string]any{
					"MemoData":   mm.MemoData,
					"MemoFormat": mm.MemoFormat,
				},
			}
		}
		m["Memos"] = memos
	}
	// SigningPubKey is part of the signing serialization, TxnSignature is not.
	m["SigningPubKey"] = p.SigningPubKey
	if p.TxnSignature != "" {
		m["TxnSignature"] = p.TxnSignature
	}

	return m
}

// signTransaction signs tx with signer, checks the signature the way a
// validating server would and serializes the result.
func signTransaction(tx *paymentTx, signer Signer) (blob string, hash string, err error) {
	tx.SigningPubKey = signer.PublicKeyHex()

	signingHex, err := binarycodec.EncodeForSigning(tx.ToMap())
	if err != nil {
		return "", "", fmt.Errorf("encoding for signing: %w", err)
	}
	signingData, err := hex.DecodeString(signingHex)
	if err != nil {
		return "", "", fmt.Errorf("decoding signing data: %w", err)
	}

	signature, err := signer.Sign(signingData)
	if err != nil {
		return "", "", fmt.Errorf("signing transaction: %w", err)
	}
	if err := crypto.VerifySignature(tx.SigningPubKey, signingData, signature); err != nil {
		return "", "", fmt.Errorf("verifying signature of %s: %w", tx.Account, err)
	}
	tx.TxnSignature = strings.ToUpper(signature)

	blob, err = binarycodec.Encode(tx.ToMap())
	if err != nil {
		return "", "", fmt.Errorf("encoding signed transaction: %w", err)
	}
	blob = strings.ToUpper(blob)

	blobBytes, err := hex.DecodeString(blob)
	if err != nil {
		return "", "", fmt.Errorf("decoding signed blob: %w", err)
	}
	id := common.TransactionID(blobBytes)

	return blob, strings.ToUpper(hex.EncodeToString(id[:])), nil
}

// ParseSignedBlob rebuilds a SignedTransaction from a signed Payment blob so
// it can be handed to Resubmit. Only the fields carried by the blob are set.
// A blob whose signature does not verify is rejected with ErrInvalidRequest.
func ParseSignedBlob(blob string) (*SignedTransaction, error) {
	blob = strings.ToUpper(strings.TrimSpace(blob))
	fields, err := binarycodec.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("decoding transaction blob: %w", err)
	}
	if t, _ := fields["TransactionType"].(string); t != "Payment" {
		return nil, fmt.Errorf("%w: blob is a %v, not a Payment", ErrInvalidRequest, fields["TransactionType"])
	}
	if err := verifyBlobSignature(fields); err != nil {
		return nil, err
	}

	blobBytes, err := hex.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("decoding transaction blob: %w", err)
	}
	id := common.TransactionID(blobBytes)

	st := &SignedTransaction{
		Blob: blob,
		Hash: strings.ToUpper(hex.EncodeToString(id[:])),
	}
	st.Account, _ = fields["Account"].(string)
	st.Destination, _ = fields["Destination"].(string)
	st.Fee, _ = fields["Fee"].(string)
	st.SigningPubKey, _ = fields["SigningPubKey"].(string)
	st.TxnSignature, _ = fields["TxnSignature"].(string)
	st.Sequence = uint32Field(fields["Sequence"])
	st.LastLedgerSequence = uint32Field(fields["LastLedgerSequence"])
	st.NetworkID = uint32Field(fields["NetworkID"])

	if drops, ok := fields["Amount"].(string); ok {
		st.AmountDrops = drops
		if xrp, err := FromDrops(drops); err == nil {
			st.Amount = xrp.String()
		}
	}
	if memos, ok := fields["Memos"].([]any); ok && len(memos) > 0 {
		st.ReferenceTag = memoText(memos[0])
	}

	return st, nil
}

// verifyBlobSignature checks that decoded transaction fields carry a valid
// signature by the master key of their Account.
func verifyBlobSignature(fields map[string]any) error {
	account, _ := fields["Account"].(string)
	pubKey, _ := fields["SigningPubKey"].(string)
	signature, _ := fields["TxnSignature"].(string)
	if signature == "" || pubKey == "" {
		return fmt.Errorf("%w: blob is not signed", ErrInvalidRequest)
	}

	owner, err := crypto.ClassicAddress(pubKey)
	if err != nil {
		return fmt.Errorf("%w: signing key: %w", ErrInvalidRequest, err)
	}
	if owner != account {
		return fmt.Errorf("%w: blob for %s is signed by the key of %s", ErrInvalidRequest, account, owner)
	}

	// The codec removes fields from the map it encodes.
	signingHex, err := binarycodec.EncodeForSigning(maps.Clone(fields))
	if err != nil {
		return fmt.Errorf("%w: encoding for signing: %w", ErrInvalidRequest, err)
	}
	signingData, err := hex.DecodeString(signingHex)
	if err != nil {
		return fmt.Errorf("%w: decoding signing data: %w", ErrInvalidRequest, err)
	}
	if err := crypto.VerifySignature(pubKey, signingData, signature); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

// uint32Field reads a UInt32 field from decoded codec output, which may be
// a number or a numeric string depending on the field.
func uint32Field(v any) uint32 {
	switch n := v.(type) {
	case uint32:
		return n
	case int:
		return uint32(n)
	case int64:
		return uint32(n)
	case uint64:
		return uint32(n)
	case float64:
		return uint32(n)
	case string:
		u, _ := strconv.ParseUint(n, 10, 32)
		return uint32(u)
	default:
		return 0
	}
}

func memoText(wrapper any) string {
	w, ok := wrapper.(map[string]any)
	if !ok {
		return ""
	}
	m, ok := w["Memo"].(map[string]any)
	if !ok {
		return ""
	}
	data, _ := m["MemoData"].(string)
	return decodeMemo(data)
}
