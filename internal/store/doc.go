// Package store provides file-based persistence for the device's security
// materials.
//
// The whole SecurityMaterials aggregate is serialized as JSON, sealed in a
// scrypt + ChaCha20-Poly1305 envelope under the operator's passphrase, and
// written atomically. Methods are concurrency-safe via internal locking.
package store
