package domain

import "fmt"

// KeyRefreshPhase is the Key Refresh Procedure phase a network-key slot is
// in. Normal carries a single live key; Phase1 and Phase2 carry an old/new
// pair while the replacement key propagates through the network.
type KeyRefreshPhase uint8

const (
	// PhaseNormal: one key, used for both transmit and receive.
	PhaseNormal KeyRefreshPhase = iota
	// Phase1: new key distributed; still transmitting with the old key.
	Phase1
	// Phase2: propagation confirmed; transmitting with the new key.
	Phase2
)

// String returns the phase name used in the refresh procedure.
func (p KeyRefreshPhase) String() string {
	switch p {
	case PhaseNormal:
		return "normal"
	case Phase1:
		return "phase1"
	case Phase2:
		return "phase2"
	default:
		return fmt.Sprintf("KeyRefreshPhase(%d)", uint8(p))
	}
}
