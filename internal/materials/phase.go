package materials

import (
	"encoding/json"
	"fmt"

	"meshkeys/internal/domain"
)

// KeyPair holds the old and new key bundles of a slot mid-refresh.
type KeyPair[K any] struct {
	Old K `json:"old"`
	New K `json:"new"`
}

// KeyPhase wraps one key slot's bundle in its Key Refresh Procedure state.
// It is a tagged union over Normal(k), Phase1{old,new} and Phase2{old,new};
// a slot is in exactly one phase at any instant. The wrapper has no
// transition triggers of its own: the refresh procedure advances a slot by
// storing the next KeyPhase value into the repository.
type KeyPhase[K any] struct {
	phase domain.KeyRefreshPhase
	key   K          // PhaseNormal
	pair  KeyPair[K] // Phase1, Phase2
}

// Normal wraps a single live key bundle.
func Normal[K any](k K) KeyPhase[K] {
	return KeyPhase[K]{phase: domain.PhaseNormal, key: k}
}

// Phase1 wraps an old/new pair: new key distributed, old key still
// used to transmit.
func Phase1[K any](old, new K) KeyPhase[K] {
	return KeyPhase[K]{phase: domain.Phase1, pair: KeyPair[K]{Old: old, New: new}}
}

// Phase2 wraps an old/new pair: propagation confirmed, new key used
// to transmit.
func Phase2[K any](old, new K) KeyPhase[K] {
	return KeyPhase[K]{phase: domain.Phase2, pair: KeyPair[K]{Old: old, New: new}}
}

// Phase returns the refresh phase tag.
func (p *KeyPhase[K]) Phase() domain.KeyRefreshPhase { return p.phase }

// TxKey returns the bundle used to encrypt outbound PDUs. During Phase1 the
// node keeps transmitting with the old key while the new key propagates;
// Phase2 switches transmission to the new key.
func (p *KeyPhase[K]) TxKey() K {
	switch p.phase {
	case domain.Phase1:
		return p.pair.Old
	case domain.Phase2:
		return p.pair.New
	default:
		return p.key
	}
}

// RxKeys returns the decrypt candidates for inbound PDUs: a primary bundle
// and, mid-refresh, a secondary one. The primary is the current transmit
// preference's counterpart: old first in Phase1, new first in Phase2.
func (p *KeyPhase[K]) RxKeys() (K, *K) {
	switch p.phase {
	case domain.Phase1:
		second := p.pair.New
		return p.pair.Old, &second
	case domain.Phase2:
		second := p.pair.Old
		return p.pair.New, &second
	default:
		return p.key, nil
	}
}

// Pair returns the old/new pair while a refresh is in flight, to let the
// procedure finalize or revert the rotation. ok is false in PhaseNormal.
func (p *KeyPhase[K]) Pair() (KeyPair[K], bool) {
	if p.phase == domain.PhaseNormal {
		return KeyPair[K]{}, false
	}
	return p.pair, true
}

// keyPhaseJSON is the stable serialized form of a KeyPhase.
type keyPhaseJSON[K any] struct {
	Phase string `json:"phase"`
	Key   *K     `json:"key,omitempty"`
	Old   *K     `json:"old,omitempty"`
	New   *K     `json:"new,omitempty"`
}

// MarshalJSON encodes the phase tag plus the payload of that phase only.
func (p KeyPhase[K]) MarshalJSON() ([]byte, error) {
	out := keyPhaseJSON[K]{Phase: p.phase.String()}
	if p.phase == domain.PhaseNormal {
		k := p.key
		out.Key = &k
	} else {
		old, new := p.pair.Old, p.pair.New
		out.Old = &old
		out.New = &new
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the tagged form written by MarshalJSON.
func (p *KeyPhase[K]) UnmarshalJSON(b []byte) error {
	var in keyPhaseJSON[K]
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	switch in.Phase {
	case domain.PhaseNormal.String():
		if in.Key == nil {
			return fmt.Errorf("key phase %q: missing key", in.Phase)
		}
		*p = Normal(*in.Key)
	case domain.Phase1.String(), domain.Phase2.String():
		if in.Old == nil || in.New == nil {
			return fmt.Errorf("key phase %q: missing old/new pair", in.Phase)
		}
		if in.Phase == domain.Phase1.String() {
			*p = Phase1(*in.Old, *in.New)
		} else {
			*p = Phase2(*in.Old, *in.New)
		}
	default:
		return fmt.Errorf("unknown key phase %q", in.Phase)
	}
	return nil
}
