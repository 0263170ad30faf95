package intent

import (
	"errors"
	"fmt"
	"time"

	"github.com/ruteri/tee-intent-signer/cryptoutils"
	"github.com/ruteri/tee-intent-signer/interfaces"
)

// Clock returns the current wall-clock time.
type Clock func() time.Time

var errBeforeEpoch = errors.New("system clock is before the unix epoch")

// Assembler is the single place where intent envelopes are built and signed.
// Handlers hand it a payload and a scope; the timestamp is always taken from
// the assembler's own clock.
//
// An Assembler holds no mutable state and is safe for concurrent use.
type Assembler struct {
	signer interfaces.Signer
	now    Clock
}

// NewAssembler creates an assembler signing with the process signer and the system clock.
func NewAssembler(signer interfaces.Signer) *Assembler {
	return &Assembler{signer: signer, now: time.Now}
}

// WithClock creates a new Assembler reading time from clock.
func (a *Assembler) WithClock(clock Clock) *Assembler {
	return &Assembler{signer: a.signer, now: clock}
}

// PublicKey returns the public key responses are signed with.
func (a *Assembler) PublicKey() interfaces.PublicKey {
	return a.signer.PublicKey()
}

// Scheme returns the signature scheme responses are signed with.
func (a *Assembler) Scheme() interfaces.KeyScheme {
	return a.signer.Scheme()
}

// TimestampMs returns the current time in milliseconds since the Unix epoch.
func (a *Assembler) TimestampMs() (uint64, error) {
	ms := a.now().UnixMilli()
	if ms < 0 {
		return 0, &ClockError{Err: fmt.Errorf("%w: %d ms", errBeforeEpoch, ms)}
	}
	return uint64(ms), nil
}

// Sign timestamps the payload, wraps it in an intent envelope for scope,
// and signs its canonical encoding.
//
// Errors are *ClockError, *EncodingError or *SigningError.
func Sign[T any](a *Assembler, payload T, scope interfaces.IntentScope) (*interfaces.SignedResponse[T], error) {
	timestampMs, err := a.TimestampMs()
	if err != nil {
		return nil, err
	}

	msg := interfaces.NewIntentMessage(payload, timestampMs, scope)
	encoded, err := cryptoutils.EncodeIntent(msg)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}

	sig, err := a.signer.Sign(encoded)
	if err != nil {
		return nil, &SigningError{Err: err}
	}

	return &interfaces.SignedResponse[T]{
		Response:  msg,
		Signature: sig,
	}, nil
}

// Verify re-encodes the returned envelope and checks the signature against verifier.
func Verify[T any](verifier interfaces.Verifier, resp *interfaces.SignedResponse[T]) error {
	if resp == nil {
		return errors.New("nil signed response")
	}

	encoded, err := cryptoutils.EncodeIntent(resp.Response)
	if err != nil {
		return &EncodingError{Err: err}
	}

	return verifier.Verify(encoded, resp.Signature)
}
