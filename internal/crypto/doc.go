// Package crypto exposes the key-derivation primitives of the mesh
// security model.
//
// Contents
//
//   - The salt function S1 and the derivation functions K1–K4 over
//     AES-128-CMAC (S1, K1, K2, K3, K4)
//   - Sub-key derivations fixed by the model (IdentityKey, BeaconKey)
//   - Short fingerprints of key material for display/logging (Fingerprint)
//
// # Notes
//
// All functions are pure: the same input bytes always derive the same
// identifiers and sub-keys. Results use the fixed-size types defined in
// internal/domain to avoid accidental reallocations. The caller derives
// once per key insertion and stores the result; nothing here caches.
package crypto
