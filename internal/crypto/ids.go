package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	addresscodec "github.com/Peersyst/xrpl-go/address-codec"
	"github.com/decred/dcrd/crypto/ripemd160"
)

// AccountIDSize is the size of an XRPL account ID in bytes.
const AccountIDSize = 20

// CalcAccountID computes the account ID from a public key.
// The account ID is a 160-bit identifier computed as RIPEMD160(SHA256(publicKey)).
//
// The same computation is used regardless of the cryptographic scheme
// (secp256k1 or Ed25519); the entire public key including any prefix
// is hashed.
func CalcAccountID(publicKey []byte) [AccountIDSize]byte {
	sha256Hash := sha256.Sum256(publicKey)

	ripemd160Hasher := ripemd160.New()
	ripemd160Hasher.Write(sha256Hash[:])
	ripemd160Hash := ripemd160Hasher.Sum(nil)

	var result [AccountIDSize]byte
	copy(result[:], ripemd160Hash)
	return result
}

// ClassicAddress returns the base58 "r..." address owned by a hex encoded public key.
func ClassicAddress(publicKeyHex string) (string, error) {
	pubKey, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return "", fmt.Errorf("decoding public key: %w", err)
	}
	if !IsValidPublicKey(pubKey) {
		return "", ErrInvalidPublicKey
	}

	accountID := CalcAccountID(pubKey)
	address, err := addresscodec.EncodeAccountIDToClassicAddress(accountID[:])
	if err != nil {
		return "", fmt.Errorf("encoding account id: %w", err)
	}
	return address, nil
}

// IsValidAddress reports whether s is a well formed classic address.
func IsValidAddress(s string) bool {
	return addresscodec.IsValidClassicAddress(s)
}
