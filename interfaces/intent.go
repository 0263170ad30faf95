package interfaces

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// IntentScope identifies the purpose a signature is valid for. It is encoded
// as a single byte in front of every signed message, so a signature issued
// under one scope never verifies as a message of another scope.
type IntentScope uint8

const (
	// IntentScopeWeather is the pre-existing weather oracle scope.
	IntentScopeWeather IntentScope = 0

	// IntentScopeVote covers anonymous vote attestations.
	IntentScopeVote IntentScope = 1
)

var intentScopeNames = map[IntentScope]string{
	IntentScopeWeather: "weather",
	IntentScopeVote:    "vote",
}

// Valid reports whether the scope is one of the known scopes.
func (s IntentScope) Valid() bool {
	_, ok := intentScopeNames[s]
	return ok
}

// String returns the human readable scope name.
func (s IntentScope) String() string {
	if name, ok := intentScopeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

// IntentMessage binds a payload to the time it was signed at and the
// purpose it was signed for.
//
// The field order is the canonical encoding order; reordering, adding or
// removing a field is a breaking change for every verifier.
type IntentMessage[T any] struct {
	// Intent is the purpose tag.
	Intent IntentScope `json:"intent"`

	// TimestampMs is the signing time in milliseconds since the Unix epoch.
	TimestampMs uint64 `json:"timestamp_ms"`

	// Data is the application payload.
	Data T `json:"data"`
}

// NewIntentMessage creates an intent message for the payload.
func NewIntentMessage[T any](data T, timestampMs uint64, scope IntentScope) IntentMessage[T] {
	return IntentMessage[T]{
		Intent:      scope,
		TimestampMs: timestampMs,
		Data:        data,
	}
}

// Signature holds raw signature bytes. It is rendered as hex without a 0x prefix.
type Signature []byte

// String returns the hex representation of the signature.
func (s Signature) String() string {
	return hex.EncodeToString(s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Signature) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(s)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. A 0x prefix is accepted.
func (s *Signature) UnmarshalText(text []byte) error {
	decoded, err := decodeHex(string(text))
	if err != nil {
		return fmt.Errorf("invalid signature: %w", err)
	}
	*s = decoded
	return nil
}

// SignedResponse is what a signing endpoint returns: the envelope that was
// signed and the signature over its canonical encoding.
type SignedResponse[T any] struct {
	Response  IntentMessage[T] `json:"response"`
	Signature Signature        `json:"signature"`
}

// PublicKey holds the encoded public key of the process signer.
type PublicKey []byte

// String returns the hex representation of the public key.
func (k PublicKey) String() string {
	return hex.EncodeToString(k)
}

// MarshalText implements encoding.TextMarshaler.
func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(k)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. A 0x prefix is accepted.
func (k *PublicKey) UnmarshalText(text []byte) error {
	decoded, err := decodeHex(string(text))
	if err != nil {
		return fmt.Errorf("invalid public key: %w", err)
	}
	*k = decoded
	return nil
}

// NewPublicKeyFromHex parses a hex encoded public key.
func NewPublicKeyFromHex(s string) (PublicKey, error) {
	var k PublicKey
	if err := k.UnmarshalText([]byte(s)); err != nil {
		return nil, err
	}
	return k, nil
}

func decodeHex(s string) ([]byte, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(s), "0x")
	return hex.DecodeString(clean)
}
