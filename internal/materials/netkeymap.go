package materials

import (
	"encoding/json"
	"maps"
	"slices"

	"meshkeys/internal/domain"
)

// NetKeyMap is the ordered repository of phase-wrapped network security
// materials, keyed by the provisioner-assigned network-key index.
// Enumeration is always ascending by index so candidate order is
// reproducible across runs.
type NetKeyMap struct {
	m map[domain.NetKeyIndex]*KeyPhase[NetworkSecurityMaterials]
}

// NewNetKeyMap returns an empty repository.
func NewNetKeyMap() *NetKeyMap {
	return &NetKeyMap{m: make(map[domain.NetKeyIndex]*KeyPhase[NetworkSecurityMaterials])}
}

// Insert derives the full materials bundle for key, wraps it Normal and
// stores it at index. If the index was occupied the displaced value is
// returned, otherwise nil; overwriting is not an error.
func (m *NetKeyMap) Insert(index domain.NetKeyIndex, key domain.NetKey) *KeyPhase[NetworkSecurityMaterials] {
	return m.Put(index, Normal(NewNetworkSecurityMaterials(key)))
}

// Put stores a phase value directly, returning any displaced value. The
// Key Refresh Procedure advances a slot through here: it reads the current
// phase, builds the successor, and stores it back.
func (m *NetKeyMap) Put(index domain.NetKeyIndex, phase KeyPhase[NetworkSecurityMaterials]) *KeyPhase[NetworkSecurityMaterials] {
	prev := m.m[index]
	m.m[index] = &phase
	return prev
}

// Get returns the phase stored at index for reading or in-place mutation,
// or nil. The caller owns serializing mutation against in-flight matching.
func (m *NetKeyMap) Get(index domain.NetKeyIndex) *KeyPhase[NetworkSecurityMaterials] {
	return m.m[index]
}

// Remove deletes the slot at index, returning the removed value or nil.
// Removing an absent index leaves the repository unchanged.
func (m *NetKeyMap) Remove(index domain.NetKeyIndex) *KeyPhase[NetworkSecurityMaterials] {
	prev := m.m[index]
	delete(m.m, index)
	return prev
}

// Len reports the number of stored slots.
func (m *NetKeyMap) Len() int { return len(m.m) }

// Indices returns the stored indexes in ascending order.
func (m *NetKeyMap) Indices() []domain.NetKeyIndex {
	return slices.Sorted(maps.Keys(m.m))
}

// NetKeyCandidate pairs a slot index with one decrypt candidate drawn from
// that slot.
type NetKeyCandidate struct {
	Index     domain.NetKeyIndex
	Materials NetworkSecurityMaterials
}

// MatchingNID returns every stored candidate whose derived NID equals nid,
// in the order the decrypt pipeline must try them: ascending slot index,
// and within a slot the primary receive key before the secondary. A slot
// mid-refresh contributes up to two candidates; because NID is only 7 bits
// its old and new bundles can independently collide with the query, in
// which case the same index appears twice, adjacent, primary first.
//
// NID equality is a necessary-but-not-sufficient pre-filter: a candidate
// is confirmed only when authenticated decryption succeeds against it. An
// empty result is the normal "no configured key shares this NID" outcome,
// not an error.
func (m *NetKeyMap) MatchingNID(nid domain.NID) []NetKeyCandidate {
	var out []NetKeyCandidate
	for _, index := range m.Indices() {
		primary, secondary := m.m[index].RxKeys()
		if primary.NetworkKeys.NID == nid {
			out = append(out, NetKeyCandidate{Index: index, Materials: primary})
		}
		if secondary != nil && secondary.NetworkKeys.NID == nid {
			out = append(out, NetKeyCandidate{Index: index, Materials: *secondary})
		}
	}
	return out
}

// MarshalJSON serializes the repository keyed by decimal index.
func (m *NetKeyMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.m)
}

// UnmarshalJSON restores the repository written by MarshalJSON.
func (m *NetKeyMap) UnmarshalJSON(b []byte) error {
	m.m = make(map[domain.NetKeyIndex]*KeyPhase[NetworkSecurityMaterials])
	return json.Unmarshal(b, &m.m)
}
