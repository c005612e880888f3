// Package stream implements the per-stream send/receive pipeline: outbound
// frame-intent queueing and serialization, inbound byte accumulation, ack
// bookkeeping and scheduler glue. It is the generalized, HTTP/3-flavored
// descendant of the teacher's HTTP/2 stream manager
// (internal/h2/stream/stream.go): the state-carrying Stream type and the
// validate-then-transition pattern survive, but frq/outq/inq replace a
// single growable byte buffer, and QUIC varint framing replaces the
// teacher's http2.Framer.
package stream

// RoleTag identifies a unidirectional stream's protocol role, or REQUEST
// for a bidirectional stream (spec §3).
type RoleTag uint8

const (
	RoleRequest RoleTag = iota
	RoleControl
	RolePush
	RoleQPACKEncoder
	RoleQPACKDecoder
)

// IsUni reports whether id names a unidirectional stream.
func IsUni(id uint64) bool { return id&2 != 0 }

// IsClientBidi reports whether id names a client-initiated bidirectional
// stream.
func IsClientBidi(id uint64) bool { return id&3 == 0 }

// IsServerBidi reports whether id names a server-initiated bidirectional
// stream.
func IsServerBidi(id uint64) bool { return id&3 == 1 }

// IsClientUni reports whether id names a client-initiated unidirectional
// stream.
func IsClientUni(id uint64) bool { return id&3 == 2 }

// IsServerUni reports whether id names a server-initiated unidirectional
// stream.
func IsServerUni(id uint64) bool { return id&3 == 3 }

// BidiOrPush reports whether the stream schedules as a regular
// bidirectional participant — i.e. it is not unidirectional, or it carries
// the PUSH role (a unidirectional stream scheduled via its push-promise
// node, spec §4.11, §9 "Priority node sharing").
func BidiOrPush(id uint64, role RoleTag) bool {
	return !IsUni(id) || role == RolePush
}
