package hci_test

import (
	"errors"
	"testing"

	"meshkeys/internal/hci"
)

func TestLEControllerOpcodeRoundTrip(t *testing.T) {
	for raw := hci.OCF(0x0001); raw <= 0x001f; raw++ {
		op, err := hci.LEControllerOpcodeFromOCF(raw)
		if raw == 0x0004 {
			// The only gap in the standardized range.
			if !errors.Is(err, hci.ErrUnknownOpcode) {
				t.Fatalf("ocf 0x0004: err = %v, want ErrUnknownOpcode", err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ocf %#04x: %v", uint16(raw), err)
		}
		if got := op.OCF(); got != raw {
			t.Fatalf("%v: OCF() = %#04x, want %#04x", op, uint16(got), uint16(raw))
		}
		if got := op.OGF(); got != hci.OGFLEController {
			t.Fatalf("%v: OGF() = %v, want LEController", op, got)
		}
		if got := op.Opcode(); got.OCF() != raw || got.OGF() != hci.OGFLEController {
			t.Fatalf("%v: packed opcode %v does not unpack to (LEController, %#04x)",
				op, got, uint16(raw))
		}
	}
}

func TestLEControllerOpcodeFromOCFRejectsUnknown(t *testing.T) {
	for _, raw := range []hci.OCF{0x0000, 0x0020, 0x00ff, 0x03ff} {
		if _, err := hci.LEControllerOpcodeFromOCF(raw); !errors.Is(err, hci.ErrUnknownOpcode) {
			t.Fatalf("ocf %#04x: err = %v, want ErrUnknownOpcode", uint16(raw), err)
		}
	}
}

func TestOpcodePacking(t *testing.T) {
	op := hci.NewOpcode(hci.OGFLEController, 0x001f)
	if uint16(op) != 0x201f {
		t.Fatalf("packed opcode = %#04x, want 0x201f", uint16(op))
	}
	if op.OGF() != hci.OGFLEController || op.OCF() != 0x001f {
		t.Fatalf("unpacked to (%v, %#04x)", op.OGF(), uint16(op.OCF()))
	}
}
