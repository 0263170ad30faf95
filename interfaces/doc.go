// Package interfaces defines the core types and contracts of the intent
// signing service, separating them from their implementations.
//
// # Intent Types
//
// IntentScope: the purpose tag signed in front of every payload, giving
// domain separation between endpoints.
//
// IntentMessage: the (scope, timestamp, payload) envelope. Its field order is
// the canonical encoding order.
//
// SignedResponse: an envelope together with the signature over its canonical
// encoding, as returned to callers.
//
// # Key Interfaces
//
// Signer: holds the process signing key; immutable and safe for concurrent use.
//
// Verifier: checks signatures against a known public key.
package interfaces
