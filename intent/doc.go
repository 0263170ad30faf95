// Package intent assembles and verifies signed intent responses.
//
// A signed response wraps an application payload in an IntentMessage
// (scope, timestamp, payload), encodes it canonically with BCS and signs the
// encoding with the process key. A verifier holding only the public key can
// re-encode the returned envelope and check the signature, and because the
// scope is part of the signed bytes a signature issued for one endpoint
// cannot be replayed as valid for another.
//
// Handlers never build or sign envelopes themselves:
//
//	assembler := intent.NewAssembler(signer)
//	resp, err := intent.Sign(assembler, VoteResponse{Vote: "A"}, interfaces.IntentScopeVote)
//
// Error kinds:
//   - *ValidationError: payload rejected by domain rules (client error)
//   - *ClockError: no valid timestamp could be taken
//   - *EncodingError: envelope could not be encoded (server error)
//   - *SigningError: the signer failed (server error)
package intent
