package interfaces

import (
	"fmt"
	"strings"
)

// KeyScheme names the signature algorithm of the process key.
type KeyScheme string

const (
	// KeySchemeEd25519 signs the canonical bytes directly with Ed25519.
	KeySchemeEd25519 KeyScheme = "ed25519"

	// KeySchemeSecp256k1 signs keccak256 of the canonical bytes with a
	// recoverable secp256k1 ECDSA signature.
	KeySchemeSecp256k1 KeyScheme = "secp256k1"
)

// ParseKeyScheme parses a key scheme name, case insensitive.
func ParseKeyScheme(s string) (KeyScheme, error) {
	switch KeyScheme(strings.ToLower(strings.TrimSpace(s))) {
	case KeySchemeEd25519:
		return KeySchemeEd25519, nil
	case KeySchemeSecp256k1:
		return KeySchemeSecp256k1, nil
	default:
		return "", fmt.Errorf("unsupported key scheme: %q", s)
	}
}

// Signer holds the process signing key. Implementations are immutable after
// construction and safe for concurrent use.
type Signer interface {
	// Sign returns a signature over msg.
	Sign(msg []byte) (Signature, error)

	// PublicKey returns the encoded public key matching the signing key.
	PublicKey() PublicKey

	// Scheme returns the signature algorithm.
	Scheme() KeyScheme
}

// Verifier checks signatures against a single known public key.
type Verifier interface {
	// Verify returns nil if sig is a valid signature over msg.
	Verify(msg []byte, sig Signature) error

	// Scheme returns the signature algorithm.
	Scheme() KeyScheme
}
