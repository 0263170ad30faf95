package cryptoutils

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ruteri/tee-intent-signer/interfaces"
)

// SeedSize is the size of a deterministic key seed for either scheme.
const SeedSize = 32

var ErrInvalidSignature = errors.New("signature verification failed")

// NewSigner creates the process signer for the given scheme.
// If seed is nil a fresh ephemeral key is generated from crypto/rand,
// otherwise the key is derived deterministically from the 32-byte seed.
func NewSigner(scheme interfaces.KeyScheme, seed []byte) (interfaces.Signer, error) {
	if seed != nil && len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}

	switch scheme {
	case interfaces.KeySchemeEd25519:
		if seed == nil {
			return GenerateEd25519Signer()
		}
		return NewEd25519SignerFromSeed(seed), nil
	case interfaces.KeySchemeSecp256k1:
		if seed == nil {
			return GenerateSecp256k1Signer()
		}
		return NewSecp256k1SignerFromSeed(seed)
	default:
		return nil, fmt.Errorf("unsupported key scheme: %q", scheme)
	}
}

// NewVerifier creates a verifier for the encoded public key.
func NewVerifier(scheme interfaces.KeyScheme, pubkey interfaces.PublicKey) (interfaces.Verifier, error) {
	switch scheme {
	case interfaces.KeySchemeEd25519:
		return NewEd25519Verifier(pubkey)
	case interfaces.KeySchemeSecp256k1:
		return NewSecp256k1Verifier(pubkey)
	default:
		return nil, fmt.Errorf("unsupported key scheme: %q", scheme)
	}
}

// Ed25519Signer signs messages with an Ed25519 key.
type Ed25519Signer struct {
	privkey ed25519.PrivateKey
	pubkey  ed25519.PublicKey
}

// GenerateEd25519Signer creates a signer with a random key.
func GenerateEd25519Signer() (*Ed25519Signer, error) {
	pubkey, privkey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("could not generate ed25519 key: %w", err)
	}
	return &Ed25519Signer{privkey: privkey, pubkey: pubkey}, nil
}

// NewEd25519SignerFromSeed derives the signer key from a 32-byte seed.
func NewEd25519SignerFromSeed(seed []byte) *Ed25519Signer {
	privkey := ed25519.NewKeyFromSeed(seed)
	return &Ed25519Signer{privkey: privkey, pubkey: privkey.Public().(ed25519.PublicKey)}
}

func (s *Ed25519Signer) Sign(msg []byte) (interfaces.Signature, error) {
	return ed25519.Sign(s.privkey, msg), nil
}

func (s *Ed25519Signer) PublicKey() interfaces.PublicKey {
	return bytes.Clone(s.pubkey)
}

func (s *Ed25519Signer) Scheme() interfaces.KeyScheme {
	return interfaces.KeySchemeEd25519
}

// LogValue keeps the private key out of structured logs.
func (s *Ed25519Signer) LogValue() slog.Value {
	return signerLogValue(s)
}

// Ed25519Verifier verifies Ed25519 signatures.
type Ed25519Verifier struct {
	pubkey ed25519.PublicKey
}

func NewEd25519Verifier(pubkey interfaces.PublicKey) (*Ed25519Verifier, error) {
	if len(pubkey) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid ed25519 public key length %d", len(pubkey))
	}
	return &Ed25519Verifier{pubkey: ed25519.PublicKey(bytes.Clone(pubkey))}, nil
}

func (v *Ed25519Verifier) Verify(msg []byte, sig interfaces.Signature) error {
	if len(sig) != ed25519.SignatureSize || !ed25519.Verify(v.pubkey, msg, sig) {
		return ErrInvalidSignature
	}
	return nil
}

func (v *Ed25519Verifier) Scheme() interfaces.KeyScheme {
	return interfaces.KeySchemeEd25519
}

// Secp256k1Signer produces 65-byte recoverable signatures [R || S || V]
// over keccak256 of the message, the form EVM contracts ecrecover.
type Secp256k1Signer struct {
	privkey *ecdsa.PrivateKey
}

// GenerateSecp256k1Signer creates a signer with a random key.
func GenerateSecp256k1Signer() (*Secp256k1Signer, error) {
	privkey, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("could not generate secp256k1 key: %w", err)
	}
	return &Secp256k1Signer{privkey: privkey}, nil
}

// NewSecp256k1SignerFromSeed uses the 32-byte seed as the private scalar.
func NewSecp256k1SignerFromSeed(seed []byte) (*Secp256k1Signer, error) {
	privkey, err := crypto.ToECDSA(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid secp256k1 seed: %w", err)
	}
	return &Secp256k1Signer{privkey: privkey}, nil
}

func (s *Secp256k1Signer) Sign(msg []byte) (interfaces.Signature, error) {
	sig, err := crypto.Sign(crypto.Keccak256(msg), s.privkey)
	if err != nil {
		return nil, fmt.Errorf("secp256k1 signing failed: %w", err)
	}
	return sig, nil
}

// PublicKey returns the 33-byte compressed public key.
func (s *Secp256k1Signer) PublicKey() interfaces.PublicKey {
	return crypto.CompressPubkey(&s.privkey.PublicKey)
}

func (s *Secp256k1Signer) Scheme() interfaces.KeyScheme {
	return interfaces.KeySchemeSecp256k1
}

// Address returns the Ethereum address of the signing key.
func (s *Secp256k1Signer) Address() string {
	return crypto.PubkeyToAddress(s.privkey.PublicKey).Hex()
}

func (s *Secp256k1Signer) LogValue() slog.Value {
	return signerLogValue(s)
}

// Secp256k1Verifier verifies signatures made by Secp256k1Signer. The recovery
// byte is checked too, so a signature accepted here also recovers the same key
// through ecrecover.
type Secp256k1Verifier struct {
	// uncompressed 65-byte form, as returned by crypto.Ecrecover
	pubkey []byte
}

// NewSecp256k1Verifier accepts a compressed (33 bytes) or uncompressed (65 bytes) key.
func NewSecp256k1Verifier(pubkey interfaces.PublicKey) (*Secp256k1Verifier, error) {
	var (
		pub *ecdsa.PublicKey
		err error
	)
	switch len(pubkey) {
	case 33:
		pub, err = crypto.DecompressPubkey(pubkey)
	case 65:
		pub, err = crypto.UnmarshalPubkey(pubkey)
	default:
		return nil, fmt.Errorf("invalid secp256k1 public key length %d", len(pubkey))
	}
	if err != nil {
		return nil, fmt.Errorf("invalid secp256k1 public key: %w", err)
	}
	return &Secp256k1Verifier{pubkey: crypto.FromECDSAPub(pub)}, nil
}

func (v *Secp256k1Verifier) Verify(msg []byte, sig interfaces.Signature) error {
	if len(sig) != crypto.SignatureLength || sig[crypto.RecoveryIDOffset] > 1 {
		return ErrInvalidSignature
	}
	hash := crypto.Keccak256(msg)
	if !crypto.VerifySignature(v.pubkey, hash, sig[:crypto.RecoveryIDOffset]) {
		return ErrInvalidSignature
	}
	recovered, err := crypto.Ecrecover(hash, sig)
	if err != nil || !bytes.Equal(recovered, v.pubkey) {
		return ErrInvalidSignature
	}
	return nil
}

func (v *Secp256k1Verifier) Scheme() interfaces.KeyScheme {
	return interfaces.KeySchemeSecp256k1
}

func signerLogValue(s interfaces.Signer) slog.Value {
	return slog.GroupValue(
		slog.String("scheme", string(s.Scheme())),
		slog.String("pubkey", s.PublicKey().String()),
	)
}
