// Package votehandler implements the anonymous vote endpoint of the enclave
// and a client for it.
//
// The handler accepts a vote for one of a fixed set of options, and returns
// it wrapped in a signed intent envelope under interfaces.IntentScopeVote.
// A Move contract or any other verifier holding the enclave public key can
// then check that the vote passed through this enclave at the given time.
//
// Key components:
//   - ValidateVote: pure domain validation of the inbound vote
//   - Handler: HTTP endpoint composing ValidateVote with the signing pipeline
//   - Client: submits votes and fetches the enclave public key
package votehandler
