package hci

import (
	"errors"
	"fmt"
)

// ErrUnknownOpcode is returned when a raw code is not among the
// standardized set. It is recoverable; an unrecognized command from a
// controller must never abort the node.
var ErrUnknownOpcode = errors.New("hci: unrecognized opcode")

// OGF is the 6-bit opcode group field of an HCI command.
type OGF uint8

// OGFLEController is the LE Controller command group.
const OGFLEController OGF = 0x08

// String names the group.
func (g OGF) String() string {
	if g == OGFLEController {
		return "LEController"
	}
	return fmt.Sprintf("OGF(0x%02x)", uint8(g))
}

// OCF is the 10-bit opcode command field within a group.
type OCF uint16

// ocfMax bounds the 10-bit field.
const ocfMax = 0x3ff

// IsValid reports whether the value fits in 10 bits.
func (c OCF) IsValid() bool { return c <= ocfMax }

// Opcode is the 2-byte HCI command identifier: group in the top 6 bits,
// command in the low 10.
type Opcode uint16

// NewOpcode packs a group and command field.
func NewOpcode(ogf OGF, ocf OCF) Opcode {
	return Opcode(uint16(ogf)<<10 | uint16(ocf)&ocfMax)
}

// OGF extracts the group field.
func (o Opcode) OGF() OGF { return OGF(uint16(o) >> 10) }

// OCF extracts the command field.
func (o Opcode) OCF() OCF { return OCF(uint16(o) & ocfMax) }

// String returns the packed form in hex.
func (o Opcode) String() string { return fmt.Sprintf("Opcode(0x%04x)", uint16(o)) }
