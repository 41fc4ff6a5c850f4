package crypto

import (
	"bytes"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Canonicality represents the canonicality status of an ECDSA signature.
type Canonicality int

const (
	// CanonicityNone indicates the signature is not canonical (invalid format or out of range).
	CanonicityNone Canonicality = iota
	// CanonicityCanonical means both (R, S) and (R, N-S) would verify.
	CanonicityCanonical
	// CanonicityFullyCanonical means S <= N/2. This is the only form the
	// network accepts from a tfFullyCanonicalSig transaction.
	CanonicityFullyCanonical
)

var (
	secp256k1Order     = btcec.S256().Params().N
	secp256k1HalfOrder = new(big.Int).Rsh(secp256k1Order, 1)

	// ed25519Order is L, big-endian.
	ed25519Order = []byte{
		0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x14, 0xDE, 0xF9, 0xDE, 0xA2, 0xF7, 0x9C, 0xD6,
		0x58, 0x12, 0x63, 0x1A, 0x5C, 0xF5, 0xD3, 0xED,
	}
)

// ECDSACanonicality classifies a DER-encoded secp256k1 signature:
//
//	0x30 <len> 0x02 <rlen> <r> 0x02 <slen> <s>
//
// R and S must lie in [1, N-1]; a fully canonical signature also has S <= N/2.
// See https://xrpl.org/transaction-malleability.html
func ECDSACanonicality(sig []byte) Canonicality {
	if len(sig) < 8 || len(sig) > 72 {
		return CanonicityNone
	}
	if sig[0] != 0x30 || int(sig[1]) != len(sig)-2 {
		return CanonicityNone
	}

	rBytes, rest, ok := parseDERInteger(sig[2:])
	if !ok {
		return CanonicityNone
	}
	sBytes, rest, ok := parseDERInteger(rest)
	if !ok || len(rest) != 0 {
		return CanonicityNone
	}

	r := new(big.Int).SetBytes(rBytes)
	s := new(big.Int).SetBytes(sBytes)
	if r.Sign() <= 0 || r.Cmp(secp256k1Order) >= 0 {
		return CanonicityNone
	}
	if s.Sign() <= 0 || s.Cmp(secp256k1Order) >= 0 {
		return CanonicityNone
	}

	if s.Cmp(secp256k1HalfOrder) <= 0 {
		return CanonicityFullyCanonical
	}
	return CanonicityCanonical
}

// parseDERInteger reads one minimally encoded, non-negative DER integer
// (0x02 <length> <bytes>) and returns it with the remaining data.
func parseDERInteger(data []byte) ([]byte, []byte, bool) {
	if len(data) < 2 || data[0] != 0x02 {
		return nil, nil, false
	}

	length := int(data[1])
	if length < 1 || length > 33 || len(data) < 2+length {
		return nil, nil, false
	}

	n := data[2 : 2+length]
	if n[0]&0x80 != 0 {
		return nil, nil, false
	}
	if n[0] == 0 && (length == 1 || n[1]&0x80 == 0) {
		return nil, nil, false
	}

	return n, data[2+length:], true
}

// Ed25519Canonical reports whether the S half of a 64 byte ed25519
// signature (little-endian) is below the group order L.
func Ed25519Canonical(sig []byte) bool {
	if len(sig) != 64 {
		return false
	}

	s := make([]byte, 32)
	for i := range s {
		s[i] = sig[63-i]
	}
	return bytes.Compare(s, ed25519Order) < 0
}
