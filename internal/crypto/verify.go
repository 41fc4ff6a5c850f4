package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/LeJamon/xrplpay/internal/crypto/common"
)

var (
	// ErrSignatureMismatch is returned when a signature does not verify against the public key.
	ErrSignatureMismatch = errors.New("signature does not match public key")
	// ErrNotFullyCanonical is returned for secp256k1 signatures with a high S value.
	// The network rejects them as malleable.
	ErrNotFullyCanonical = errors.New("signature is not fully canonical")
)

// VerifySignature checks a transaction signature the way a validating server
// would: ed25519 over the raw message, secp256k1 over Sha512Half(message)
// with a strict DER, low-S signature.
func VerifySignature(publicKeyHex string, message []byte, signatureHex string) error {
	pubKey, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	sig, err := hex.DecodeString(signatureHex)
	if err != nil || len(sig) == 0 {
		return ErrInvalidSignature
	}

	switch PublicKeyType(pubKey) {
	case KeyTypeEd25519:
		if len(sig) != ed25519.SignatureSize {
			return ErrInvalidSignature
		}
		if !Ed25519Canonical(sig) {
			return ErrNotFullyCanonical
		}
		if !ed25519.Verify(ed25519.PublicKey(pubKey[1:]), message, sig) {
			return ErrSignatureMismatch
		}
		return nil

	case KeyTypeSecp256k1:
		key, err := btcec.ParsePubKey(pubKey)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
		}
		parsed, err := ecdsa.ParseDERSignature(sig)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		if ECDSACanonicality(sig) != CanonicityFullyCanonical {
			return ErrNotFullyCanonical
		}
		digest := common.Sha512Half(message)
		if !parsed.Verify(digest[:], key) {
			return ErrSignatureMismatch
		}
		return nil

	default:
		return ErrInvalidPublicKey
	}
}
