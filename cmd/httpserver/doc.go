// Package main (cmd/httpserver) implements the enclave signing server.
//
// The server holds a single process-local signing key, generated at start
// unless a development seed is given, and serves endpoints that validate an
// inbound payload and return it wrapped in a signed intent envelope. The
// public key is available at /get_public_key for out of band distribution
// to verifiers.
//
// The server implements graceful shutdown on receiving termination signals
// (SIGINT/SIGTERM) and supports health checks, metrics collection, rate
// limiting of signing endpoints and optional profiling endpoints.
//
// Example usage:
//
//	enclave-server --listen-addr=0.0.0.0:3000 \
//	    --key-scheme=ed25519 \
//	    --metrics-addr=0.0.0.0:8090 \
//	    --rate-limit-rps=50
package main
