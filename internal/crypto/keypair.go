// Package crypto provides the key handling needed to sign XRPL transactions.
package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/Peersyst/xrpl-go/keypairs"
)

var (
	// ErrInvalidPublicKey is returned when a public key is not a 33 byte XRPL key.
	ErrInvalidPublicKey = errors.New("invalid public key format")
	// ErrInvalidSignature is returned when a signature cannot be decoded.
	ErrInvalidSignature = errors.New("invalid signature format")
	// ErrInvalidSeed is returned when a family seed cannot be decoded.
	ErrInvalidSeed = errors.New("invalid seed")
)

// KeyType represents the type of cryptographic key used in XRPL.
type KeyType int

const (
	KeyTypeUnknown KeyType = iota
	KeyTypeSecp256k1
	KeyTypeEd25519
)

func (kt KeyType) String() string {
	switch kt {
	case KeyTypeSecp256k1:
		return "secp256k1"
	case KeyTypeEd25519:
		return "ed25519"
	default:
		return "unknown"
	}
}

// PublicKeyType determines the key type from a public key's raw bytes.
//
// Public key formats:
//   - Ed25519: 33 bytes, first byte is 0xED
//   - secp256k1: 33 bytes, first byte is 0x02 or 0x03 (compressed format)
func PublicKeyType(pubKey []byte) KeyType {
	if len(pubKey) != 33 {
		return KeyTypeUnknown
	}
	switch pubKey[0] {
	case 0xED:
		return KeyTypeEd25519
	case 0x02, 0x03:
		return KeyTypeSecp256k1
	default:
		return KeyTypeUnknown
	}
}

// IsValidPublicKey returns true if the public key has a valid format.
func IsValidPublicKey(pubKey []byte) bool {
	return PublicKeyType(pubKey) != KeyTypeUnknown
}

// Keypair is an account keypair derived from a family seed. The private key
// never leaves the value; callers only get signatures.
type Keypair struct {
	keyType    KeyType
	privateKey string
	publicKey  string
	address    string
}

// KeypairFromSeed derives the account keypair for a base58 family seed
// ("s..." for secp256k1, "sEd..." for ed25519).
func KeypairFromSeed(seed string) (*Keypair, error) {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return nil, ErrInvalidSeed
	}

	privateKey, publicKey, err := keypairs.DeriveKeypair(seed, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	publicKey = strings.ToUpper(publicKey)

	pubKey, err := hex.DecodeString(publicKey)
	if err != nil {
		return nil, fmt.Errorf("decoding derived public key: %w", err)
	}

	address, err := ClassicAddress(publicKey)
	if err != nil {
		return nil, err
	}

	return &Keypair{
		keyType:    PublicKeyType(pubKey),
		privateKey: privateKey,
		publicKey:  publicKey,
		address:    address,
	}, nil
}

// Address returns the classic address of the account the keypair controls.
func (k *Keypair) Address() string {
	return k.address
}

// PublicKeyHex returns the upper-case hex public key, as used in SigningPubKey.
func (k *Keypair) PublicKeyHex() string {
	return k.publicKey
}

// KeyType returns the signing algorithm of the keypair.
func (k *Keypair) KeyType() KeyType {
	return k.keyType
}

// Sign signs the raw signing serialization of a transaction and returns the
// hex signature. secp256k1 keys sign Sha512Half(message) with a DER encoded
// signature, ed25519 keys sign the message itself.
func (k *Keypair) Sign(message []byte) (string, error) {
	sig, err := keypairs.Sign(string(message), k.privateKey)
	if err != nil {
		return "", fmt.Errorf("signing with %s key: %w", k.keyType, err)
	}
	return strings.ToUpper(sig), nil
}

// String never prints key material.
func (k *Keypair) String() string {
	return fmt.Sprintf("Keypair{%s %s}", k.keyType, k.address)
}
