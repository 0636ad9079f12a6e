package materials

import (
	"fmt"

	"meshkeys/internal/crypto"
	"meshkeys/internal/domain"
)

// NetworkKeys is the credential set derived from a root network key with
// the master provider string: the 7-bit NID plus the encryption and privacy
// keys. Immutable once derived.
type NetworkKeys struct {
	NID        domain.NID           `json:"nid"`
	Encryption domain.EncryptionKey `json:"encryption"`
	Privacy    domain.PrivacyKey    `json:"privacy"`
}

// NewNetworkKeys derives the master credentials from a root network key.
func NewNetworkKeys(k domain.NetKey) NetworkKeys {
	nid, encryption, privacy := crypto.K2(k, []byte{0x00})
	return NetworkKeys{NID: nid, Encryption: encryption, Privacy: privacy}
}

// String prints the NID and key fingerprints, never raw key bytes.
func (nk NetworkKeys) String() string {
	return fmt.Sprintf("nid: 0x%02x encryption: %s privacy: %s",
		uint8(nk.NID),
		crypto.Fingerprint(nk.Encryption.Slice()),
		crypto.Fingerprint(nk.Privacy.Slice()))
}

// NetworkSecurityMaterials is the full derived bundle for one network key
// value: the root key itself, the master credentials, and the public and
// beacon-related sub-keys. Immutable once constructed; derivation runs
// exactly once, at insertion.
type NetworkSecurityMaterials struct {
	NetKey      domain.NetKey      `json:"net_key"`
	NetworkKeys NetworkKeys        `json:"network_keys"`
	NetworkID   domain.NetworkID   `json:"network_id"`
	IdentityKey domain.IdentityKey `json:"identity_key"`
	BeaconKey   domain.BeaconKey   `json:"beacon_key"`
}

// NewNetworkSecurityMaterials derives every sub-key of a root network key.
func NewNetworkSecurityMaterials(k domain.NetKey) NetworkSecurityMaterials {
	return NetworkSecurityMaterials{
		NetKey:      k,
		NetworkKeys: NewNetworkKeys(k),
		NetworkID:   crypto.K3(k),
		IdentityKey: crypto.IdentityKey(k),
		BeaconKey:   crypto.BeaconKey(k),
	}
}

// String prints identifiers and fingerprints, never raw key bytes.
func (m NetworkSecurityMaterials) String() string {
	return fmt.Sprintf("net_key: %s %s network_id: %s",
		crypto.Fingerprint(m.NetKey.Slice()), m.NetworkKeys, m.NetworkID)
}

// ApplicationSecurityMaterials binds an application key and its derived AID
// to the network-key slot it was distributed under.
type ApplicationSecurityMaterials struct {
	AppKey      domain.AppKey      `json:"app_key"`
	AID         domain.AID         `json:"aid"`
	NetKeyIndex domain.NetKeyIndex `json:"net_key_index"`
}

// NewApplicationSecurityMaterials derives the AID of an application key.
func NewApplicationSecurityMaterials(k domain.AppKey, netKeyIndex domain.NetKeyIndex) ApplicationSecurityMaterials {
	return ApplicationSecurityMaterials{
		AppKey:      k,
		AID:         crypto.K4(k),
		NetKeyIndex: netKeyIndex,
	}
}

// String prints the AID, parent slot and key fingerprint.
func (m ApplicationSecurityMaterials) String() string {
	return fmt.Sprintf("app_key: %s aid: 0x%02x bound to %v",
		crypto.Fingerprint(m.AppKey.Slice()), uint8(m.AID), m.NetKeyIndex)
}

// SecurityMaterials is the per-device aggregate: IV state, the device key,
// and the two key repositories. One instance lives for the device's whole
// provisioned lifetime. The structure is field-for-field serializable so a
// node can restart without re-provisioning.
//
// The aggregate is a plain synchronous data structure. A receive path
// running matching queries and a provisioning path mutating phase state
// must be serialized by the host, typically behind a single-writer lock.
type SecurityMaterials struct {
	IVUpdateFlag domain.IVUpdateFlag `json:"iv_update_flag"`
	IVIndex      domain.IVIndex      `json:"iv_index"`
	DevKey       domain.DevKey       `json:"dev_key"`
	NetKeys      *NetKeyMap          `json:"net_keys"`
	AppKeys      *AppKeyMap          `json:"app_keys"`
}

// NewSecurityMaterials returns the empty aggregate for a freshly
// provisioned device. Both repositories start empty; keys arrive as the
// provisioner distributes them.
func NewSecurityMaterials(devKey domain.DevKey) *SecurityMaterials {
	return &SecurityMaterials{
		DevKey:  devKey,
		NetKeys: NewNetKeyMap(),
		AppKeys: NewAppKeyMap(),
	}
}
