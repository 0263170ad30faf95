package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/ruteri/tee-intent-signer/interfaces"
)

// ProcessDataRequest is the inbound body of every signing endpoint.
//
//	{"payload": {...}}
type ProcessDataRequest[T any] struct {
	Payload T `json:"payload"`
}

// PublicKeyResponse describes the process signing key so verifiers can pin
// it out of band.
type PublicKeyResponse struct {
	// Scheme is the signature algorithm, "ed25519" or "secp256k1".
	Scheme interfaces.KeyScheme `json:"scheme"`

	// PublicKey is the hex encoded public key.
	PublicKey interfaces.PublicKey `json:"public_key"`
}

// RouteRegistrar is implemented by handlers that mount their endpoints on the server router.
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}
