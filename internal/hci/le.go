package hci

// LEControllerOpcode enumerates the standardized LE Controller commands.
// The separate command-encoding layer uses it as a constant lookup table;
// nothing here sends anything.
type LEControllerOpcode uint16

const (
	SetEventMask                    LEControllerOpcode = 0x0001
	ReadBufferSize                  LEControllerOpcode = 0x0002
	ReadLocalSupportedFeatures      LEControllerOpcode = 0x0003
	SetRandomAddress                LEControllerOpcode = 0x0005
	SetAdvertisingParameters        LEControllerOpcode = 0x0006
	ReadAdvertisingChannelTxPower   LEControllerOpcode = 0x0007
	SetAdvertisingData              LEControllerOpcode = 0x0008
	SetScanResponseData             LEControllerOpcode = 0x0009
	SetAdvertisingEnable            LEControllerOpcode = 0x000a
	SetScanParameters               LEControllerOpcode = 0x000b
	SetScanEnable                   LEControllerOpcode = 0x000c
	CreateConnection                LEControllerOpcode = 0x000d
	CreateConnectionCancel          LEControllerOpcode = 0x000e
	ReadWhitelistSize               LEControllerOpcode = 0x000f
	ClearWhitelist                  LEControllerOpcode = 0x0010
	AddDeviceToWhitelist            LEControllerOpcode = 0x0011
	RemoveDeviceFromWhitelist       LEControllerOpcode = 0x0012
	ConnectionUpdate                LEControllerOpcode = 0x0013
	SetHostChannelClassification    LEControllerOpcode = 0x0014
	ReadChannelMap                  LEControllerOpcode = 0x0015
	ReadRemoteUsedFeatures          LEControllerOpcode = 0x0016
	Encrypt                         LEControllerOpcode = 0x0017
	Rand                            LEControllerOpcode = 0x0018
	StartEncryption                 LEControllerOpcode = 0x0019
	LongTermKeyRequestReply         LEControllerOpcode = 0x001a
	LongTermKeyRequestNegativeReply LEControllerOpcode = 0x001b
	ReadSupportedState              LEControllerOpcode = 0x001c
	ReceiverTest                    LEControllerOpcode = 0x001d
	TransmitterTest                 LEControllerOpcode = 0x001e
	TestEnd                         LEControllerOpcode = 0x001f
)

// leOpcodeNames doubles as the validity set. 0x0004 is intentionally
// absent: the standardized range has a gap there.
var leOpcodeNames = map[LEControllerOpcode]string{
	SetEventMask:                    "SetEventMask",
	ReadBufferSize:                  "ReadBufferSize",
	ReadLocalSupportedFeatures:      "ReadLocalSupportedFeatures",
	SetRandomAddress:                "SetRandomAddress",
	SetAdvertisingParameters:        "SetAdvertisingParameters",
	ReadAdvertisingChannelTxPower:   "ReadAdvertisingChannelTxPower",
	SetAdvertisingData:              "SetAdvertisingData",
	SetScanResponseData:             "SetScanResponseData",
	SetAdvertisingEnable:            "SetAdvertisingEnable",
	SetScanParameters:               "SetScanParameters",
	SetScanEnable:                   "SetScanEnable",
	CreateConnection:                "CreateConnection",
	CreateConnectionCancel:          "CreateConnectionCancel",
	ReadWhitelistSize:               "ReadWhitelistSize",
	ClearWhitelist:                  "ClearWhitelist",
	AddDeviceToWhitelist:            "AddDeviceToWhitelist",
	RemoveDeviceFromWhitelist:       "RemoveDeviceFromWhitelist",
	ConnectionUpdate:                "ConnectionUpdate",
	SetHostChannelClassification:    "SetHostChannelClassification",
	ReadChannelMap:                  "ReadChannelMap",
	ReadRemoteUsedFeatures:          "ReadRemoteUsedFeatures",
	Encrypt:                         "Encrypt",
	Rand:                            "Rand",
	StartEncryption:                 "StartEncryption",
	LongTermKeyRequestReply:         "LongTermKeyRequestReply",
	LongTermKeyRequestNegativeReply: "LongTermKeyRequestNegativeReply",
	ReadSupportedState:              "ReadSupportedState",
	ReceiverTest:                    "ReceiverTest",
	TransmitterTest:                 "TransmitterTest",
	TestEnd:                         "TestEnd",
}

// LEControllerOpcodeFromOCF converts a raw command field into its
// enumerated form, or fails with ErrUnknownOpcode.
func LEControllerOpcodeFromOCF(ocf OCF) (LEControllerOpcode, error) {
	op := LEControllerOpcode(ocf)
	if _, ok := leOpcodeNames[op]; !ok {
		return 0, ErrUnknownOpcode
	}
	return op, nil
}

// OGF returns the group every LE controller command belongs to.
func (LEControllerOpcode) OGF() OGF { return OGFLEController }

// OCF returns the raw command field.
func (op LEControllerOpcode) OCF() OCF { return OCF(op) }

// Opcode returns the packed 2-byte command identifier.
func (op LEControllerOpcode) Opcode() Opcode { return NewOpcode(OGFLEController, op.OCF()) }

// String names the command, or prints the raw value for anything outside
// the standardized set.
func (op LEControllerOpcode) String() string {
	if name, ok := leOpcodeNames[op]; ok {
		return name
	}
	return op.Opcode().String()
}
