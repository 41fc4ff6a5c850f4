package crypto

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySignature_RoundTrip(t *testing.T) {
	message := []byte("53545800payment signing blob")

	for _, seed := range []string{genesisSeed, "sEdTzRkEgPoxDG1mJ6WkSucHWnMkm1H"} {
		kp, err := KeypairFromSeed(seed)
		require.NoError(t, err)

		t.Run(kp.KeyType().String(), func(t *testing.T) {
			sig, err := kp.Sign(message)
			require.NoError(t, err)

			require.NoError(t, VerifySignature(kp.PublicKeyHex(), message, sig))

			err = VerifySignature(kp.PublicKeyHex(), []byte("tampered"), sig)
			assert.ErrorIs(t, err, ErrSignatureMismatch)
		})
	}
}

func TestVerifySignature_WrongKey(t *testing.T) {
	signer, err := KeypairFromSeed(genesisSeed)
	require.NoError(t, err)
	other, err := KeypairFromSeed("sEdTzRkEgPoxDG1mJ6WkSucHWnMkm1H")
	require.NoError(t, err)

	message := []byte("payment")
	sig, err := other.Sign(message)
	require.NoError(t, err)

	// ed25519 signature against a secp256k1 key is not even DER.
	err = VerifySignature(signer.PublicKeyHex(), message, sig)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifySignature_HighS(t *testing.T) {
	kp, err := KeypairFromSeed(genesisSeed)
	require.NoError(t, err)

	message := []byte("payment")
	sigHex, err := kp.Sign(message)
	require.NoError(t, err)
	sig, err := hex.DecodeString(sigHex)
	require.NoError(t, err)

	// Rebuild the DER signature with S' = N - S, which is the malleated twin.
	rLen := int(sig[3])
	r := sig[4 : 4+rLen]
	s := new(big.Int).SetBytes(sig[4+rLen+2:])
	highS := new(big.Int).Sub(btcec.S256().Params().N, s).Bytes()
	if highS[0]&0x80 != 0 {
		highS = append([]byte{0x00}, highS...)
	}

	der := []byte{0x30, byte(4 + len(r) + len(highS)), 0x02, byte(len(r))}
	der = append(der, r...)
	der = append(der, 0x02, byte(len(highS)))
	der = append(der, highS...)

	err = VerifySignature(kp.PublicKeyHex(), message, hex.EncodeToString(der))
	assert.ErrorIs(t, err, ErrNotFullyCanonical)
}

func TestVerifySignature_BadInputs(t *testing.T) {
	assert.ErrorIs(t, VerifySignature("zz", nil, "00"), ErrInvalidPublicKey)
	assert.ErrorIs(t, VerifySignature(genesisPublicKey, nil, ""), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature("04"+genesisPublicKey[2:], nil, "3000"), ErrInvalidPublicKey)
}
