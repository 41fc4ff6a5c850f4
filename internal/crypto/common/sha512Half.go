package common

import "crypto/sha512"

// HashPrefixTransactionID is prepended to a signed transaction blob before
// hashing it into its transaction id ("TXN\0").
var HashPrefixTransactionID = [4]byte{'T', 'X', 'N', 0x00}

// Sha512Half returns the first 32 bytes of a sha512 hash of a message.
func Sha512Half(msg []byte) [32]byte {
	h := sha512.Sum512(msg)
	var result [32]byte
	copy(result[:], h[:32])
	return result
}

// TransactionID hashes a signed transaction blob the way the ledger indexes it.
func TransactionID(blob []byte) [32]byte {
	buf := make([]byte, 0, len(HashPrefixTransactionID)+len(blob))
	buf = append(buf, HashPrefixTransactionID[:]...)
	buf = append(buf, blob...)
	return Sha512Half(buf)
}
