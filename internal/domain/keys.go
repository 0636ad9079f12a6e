package domain

import "fmt"

// KeyBytes is the size of every root and derived symmetric key.
const KeyBytes = 16

// Key is the common shape of all 128-bit symmetric key material.
type Key [KeyBytes]byte

// Slice returns the key as a []byte.
func (k Key) Slice() []byte { return k[:] }

// ------------- Root keys -------------

// NetKey is a root network key.
type NetKey Key

// AppKey is a root application key.
type AppKey Key

// DevKey is the device key unique to one provisioned node.
type DevKey Key

func (k NetKey) Slice() []byte { return k[:] }
func (k AppKey) Slice() []byte { return k[:] }
func (k DevKey) Slice() []byte { return k[:] }

// ------------- Keys derived from a NetKey -------------

// EncryptionKey encrypts the Network PDU payload.
type EncryptionKey Key

// PrivacyKey obfuscates the Network PDU header.
type PrivacyKey Key

// IdentityKey authenticates node-identity advertisements.
type IdentityKey Key

// BeaconKey authenticates secure network beacons.
type BeaconKey Key

func (k EncryptionKey) Slice() []byte { return k[:] }
func (k PrivacyKey) Slice() []byte    { return k[:] }
func (k IdentityKey) Slice() []byte   { return k[:] }
func (k BeaconKey) Slice() []byte     { return k[:] }

// NetworkID is the 64-bit public identifier derived from a NetKey.
type NetworkID [8]byte

// Slice returns the identifier as a []byte.
func (n NetworkID) Slice() []byte { return n[:] }

// String returns the identifier in hex.
func (n NetworkID) String() string { return fmt.Sprintf("%x", n[:]) }

func mustKey(kind string, b []byte) Key {
	if len(b) != KeyBytes {
		panic(fmt.Errorf("%s: want %d bytes, got %d", kind, KeyBytes, len(b)))
	}
	var out Key
	copy(out[:], b)
	return out
}

// MustNetKey copies b into a NetKey, panicking on a wrong length.
func MustNetKey(b []byte) NetKey { return NetKey(mustKey("net key", b)) }

// MustAppKey copies b into an AppKey, panicking on a wrong length.
func MustAppKey(b []byte) AppKey { return AppKey(mustKey("app key", b)) }

// MustDevKey copies b into a DevKey, panicking on a wrong length.
func MustDevKey(b []byte) DevKey { return DevKey(mustKey("dev key", b)) }
