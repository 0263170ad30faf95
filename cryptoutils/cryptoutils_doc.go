// Package cryptoutils provides the canonical encoding and the signature
// primitives of the intent signing service.
//
// # Canonical Encoding
//
// EncodeIntent serializes an IntentMessage with BCS (Binary Canonical
// Serialization), the format Move verifiers reconstruct onchain:
//
//	intent: u8 | timestamp_ms: u64 little endian | data: bcs(T)
//
// Strings are a ULEB128 length followed by the UTF-8 bytes, structs are their
// fields in declaration order. Equal messages always encode to equal bytes.
//
// # Signers
//
//   - Ed25519Signer: Ed25519 over the canonical bytes, 64-byte signatures
//   - Secp256k1Signer: recoverable ECDSA over keccak256 of the canonical
//     bytes, 65-byte [R || S || V] signatures
//
// Keys are either generated from crypto/rand at process start or derived
// from a 32-byte development seed. Private keys are never exported and
// signers log only their scheme and public key.
package cryptoutils
