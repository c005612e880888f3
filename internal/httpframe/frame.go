// Package httpframe serializes HTTP/3 frame intents into wire bytes. It is
// the generalized, QUIC-varint-framed descendant of the teacher's HTTP/2
// Framer-based frame.Writer (internal/h2/frame/frame.go): where HTTP/2
// frames carry a fixed 9-byte header, HTTP/3 frames are
// `type:varint length:varint payload:bytes[length]` (spec §6), so this
// package builds headers with the varint codec instead of binary.BigEndian
// writes into a fixed-size array, and drops CONTINUATION entirely — HTTP/3
// header blocks are never split across frames.
package httpframe

// Type identifies an HTTP/3 frame's wire type, per RFC 9114 §7.2 plus the
// PRIORITY frame carried over from the draft this core's design predates
// (spec §3 FrameIntent lists it explicitly).
type Type uint64

const (
	TypeData        Type = 0x0
	TypeHeaders     Type = 0x1
	TypePriority    Type = 0x2
	TypeCancelPush  Type = 0x3
	TypeSettings    Type = 0x4
	TypePushPromise Type = 0x5
	TypeGoAway      Type = 0x7
	TypeMaxPushID   Type = 0xd
)

func (t Type) String() string {
	switch t {
	case TypeData:
		return "DATA"
	case TypeHeaders:
		return "HEADERS"
	case TypePriority:
		return "PRIORITY"
	case TypeCancelPush:
		return "CANCEL_PUSH"
	case TypeSettings:
		return "SETTINGS"
	case TypePushPromise:
		return "PUSH_PROMISE"
	case TypeGoAway:
		return "GOAWAY"
	case TypeMaxPushID:
		return "MAX_PUSH_ID"
	default:
		return "UNKNOWN"
	}
}

// SettingID identifies one HTTP/3 SETTINGS parameter (spec §4.5).
type SettingID uint64

const (
	SettingMaxHeaderListSize     SettingID = 0x6
	SettingNumPlaceholders       SettingID = 0x9
	SettingQPACKMaxTableCapacity SettingID = 0x1
	SettingQPACKBlockedStreams   SettingID = 0x7
)
