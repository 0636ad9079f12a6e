package domain

import "fmt"

// NID is the 7-bit network identifier carried in the cleartext header of a
// Network PDU. With only 128 possible values, unrelated network keys can and
// do share a NID; it narrows the candidate set, it never confirms a key.
type NID uint8

// NIDMax is the largest encodable NID.
const NIDMax NID = 0x7f

// IsValid reports whether the value fits in 7 bits.
func (n NID) IsValid() bool { return n <= NIDMax }

// String returns the NID in hex.
func (n NID) String() string { return fmt.Sprintf("NID(0x%02x)", uint8(n)) }

// AID is the 6-bit application identifier carried in an Access-layer
// payload. Same collision property as NID, with an even smaller space.
type AID uint8

// AIDMax is the largest encodable AID.
const AIDMax AID = 0x3f

// IsValid reports whether the value fits in 6 bits.
func (a AID) IsValid() bool { return a <= AIDMax }

// String returns the AID in hex.
func (a AID) String() string { return fmt.Sprintf("AID(0x%02x)", uint8(a)) }

// KeyIndexMax bounds the 12-bit provisioner-assigned key indexes.
const KeyIndexMax = 0xfff

// NetKeyIndex is the 12-bit slot a provisioner assigned to a network key.
type NetKeyIndex uint16

// IsValid reports whether the index fits in 12 bits.
func (i NetKeyIndex) IsValid() bool { return i <= KeyIndexMax }

// String returns the index in decimal.
func (i NetKeyIndex) String() string { return fmt.Sprintf("NetKeyIndex(%d)", uint16(i)) }

// AppKeyIndex is the 12-bit slot a provisioner assigned to an application key.
type AppKeyIndex uint16

// IsValid reports whether the index fits in 12 bits.
func (i AppKeyIndex) IsValid() bool { return i <= KeyIndexMax }

// String returns the index in decimal.
func (i AppKeyIndex) String() string { return fmt.Sprintf("AppKeyIndex(%d)", uint16(i)) }

// IVIndex is the network-wide 32-bit replay-prevention counter used
// downstream in nonce construction. This layer only stores it.
type IVIndex uint32

// IVUpdateFlag signals that an IV Index update is in progress.
type IVUpdateFlag bool
