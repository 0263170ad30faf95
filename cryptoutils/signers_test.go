package cryptoutils

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ruteri/tee-intent-signer/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// RFC 8032 section 7.1, test 1.
func TestEd25519Signer_RFC8032Vector(t *testing.T) {
	seed := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	wantPubkey := "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"
	wantSig := "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b"

	signer, err := NewSigner(interfaces.KeySchemeEd25519, seed)
	require.NoError(t, err)
	assert.Equal(t, wantPubkey, signer.PublicKey().String())

	sig, err := signer.Sign([]byte{})
	require.NoError(t, err)
	assert.Equal(t, wantSig, sig.String())
}

func TestSigners_SignVerify(t *testing.T) {
	for _, scheme := range []interfaces.KeyScheme{interfaces.KeySchemeEd25519, interfaces.KeySchemeSecp256k1} {
		t.Run(string(scheme), func(t *testing.T) {
			signer, err := NewSigner(scheme, nil)
			require.NoError(t, err)
			assert.Equal(t, scheme, signer.Scheme())

			verifier, err := NewVerifier(scheme, signer.PublicKey())
			require.NoError(t, err)

			msg := []byte("attested payload")
			sig, err := signer.Sign(msg)
			require.NoError(t, err)

			require.NoError(t, verifier.Verify(msg, sig))
			assert.ErrorIs(t, verifier.Verify([]byte("other payload"), sig), ErrInvalidSignature)

			tampered := bytes.Clone(sig)
			tampered[0] ^= 0xff
			assert.ErrorIs(t, verifier.Verify(msg, tampered), ErrInvalidSignature)
			assert.ErrorIs(t, verifier.Verify(msg, sig[:10]), ErrInvalidSignature)
		})
	}
}

func TestSigners_WrongKeyRejected(t *testing.T) {
	for _, scheme := range []interfaces.KeyScheme{interfaces.KeySchemeEd25519, interfaces.KeySchemeSecp256k1} {
		t.Run(string(scheme), func(t *testing.T) {
			signer, err := NewSigner(scheme, nil)
			require.NoError(t, err)
			other, err := NewSigner(scheme, nil)
			require.NoError(t, err)

			verifier, err := NewVerifier(scheme, other.PublicKey())
			require.NoError(t, err)

			sig, err := signer.Sign([]byte("msg"))
			require.NoError(t, err)
			assert.ErrorIs(t, verifier.Verify([]byte("msg"), sig), ErrInvalidSignature)
		})
	}
}

func TestSigners_SeedIsDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, SeedSize)

	for _, scheme := range []interfaces.KeyScheme{interfaces.KeySchemeEd25519, interfaces.KeySchemeSecp256k1} {
		t.Run(string(scheme), func(t *testing.T) {
			a, err := NewSigner(scheme, seed)
			require.NoError(t, err)
			b, err := NewSigner(scheme, seed)
			require.NoError(t, err)
			assert.Equal(t, a.PublicKey(), b.PublicKey())
		})
	}
}

func TestNewSigner_InvalidInput(t *testing.T) {
	_, err := NewSigner(interfaces.KeySchemeEd25519, []byte{1, 2, 3})
	require.Error(t, err)

	_, err = NewSigner(interfaces.KeyScheme("rsa"), nil)
	require.Error(t, err)

	// zero is not a valid secp256k1 scalar
	_, err = NewSigner(interfaces.KeySchemeSecp256k1, make([]byte, SeedSize))
	require.Error(t, err)
}

func TestNewVerifier_InvalidKey(t *testing.T) {
	_, err := NewVerifier(interfaces.KeySchemeEd25519, make([]byte, 31))
	require.Error(t, err)

	_, err = NewVerifier(interfaces.KeySchemeSecp256k1, make([]byte, 33))
	require.Error(t, err)

	_, err = NewVerifier(interfaces.KeySchemeSecp256k1, make([]byte, 20))
	require.Error(t, err)
}

func TestSecp256k1Signer_RecoverableSignature(t *testing.T) {
	signer, err := GenerateSecp256k1Signer()
	require.NoError(t, err)

	sig, err := signer.Sign([]byte("msg"))
	require.NoError(t, err)
	assert.Len(t, sig, 65)
	assert.True(t, sig[64] == 0 || sig[64] == 1)
	assert.Len(t, signer.PublicKey(), 33)
	assert.Len(t, signer.Address(), 42)
}

func TestSecp256k1Verifier_ChecksRecoveryID(t *testing.T) {
	signer, err := GenerateSecp256k1Signer()
	require.NoError(t, err)

	msg := []byte("0120b1d110960100000141")
	sig, err := signer.Sign(msg)
	require.NoError(t, err)

	for _, pubkey := range []interfaces.PublicKey{signer.PublicKey(), crypto.FromECDSAPub(&signer.privkey.PublicKey)} {
		verifier, err := NewVerifier(interfaces.KeySchemeSecp256k1, pubkey)
		require.NoError(t, err)
		require.NoError(t, verifier.Verify(msg, sig))

		for _, v := range []byte{sig[64] ^ 1, 27, 28, 0xff} {
			tampered := bytes.Clone(sig)
			tampered[64] = v
			assert.ErrorIs(t, verifier.Verify(msg, tampered), ErrInvalidSignature, "recovery id %d", v)
		}
	}
}

func TestSigner_LogValueOmitsPrivateKey(t *testing.T) {
	seed := bytes.Repeat([]byte{0x07}, SeedSize)
	signer := NewEd25519SignerFromSeed(seed)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("signer ready", "signer", signer)

	out := buf.String()
	assert.Contains(t, out, signer.PublicKey().String())
	assert.NotContains(t, out, hex.EncodeToString(signer.privkey))
	assert.NotContains(t, out, fmt.Sprintf("%x", seed))
}
