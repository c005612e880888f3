package httpframe

import (
	"h3stream/internal/priority"
	"h3stream/internal/qpack"
)

// IntentKind discriminates the FrameIntent tagged union (spec §3).
type IntentKind uint8

const (
	IntentSettings IntentKind = iota
	IntentPriority
	IntentHeaders
	IntentPushPromise
	IntentCancelPush
	IntentData
	IntentMaxPushID
)

// Settings is the local-settings snapshot the SETTINGS serializer reads
// from. Only non-zero fields are ever emitted (spec §4.5).
type Settings struct {
	MaxHeaderListSize     uint64
	NumPlaceholders       uint64
	QPACKMaxTableCapacity uint64
	QPACKBlockedStreams   uint64
}

// PriorityElements carries the protocol fields a PRIORITY frame asserts:
// the target this stream (or push ID) depends on, and the weight of that
// dependency.
type PriorityElements struct {
	Dependent   priority.Key
	Target      priority.Key
	Weight      uint8
	Exclusive   bool
}

// DataFlags are the out-of-band flags read_data reports alongside a slice.
type DataFlags uint8

const (
	// FlagEOF marks that this is the last chunk of application data the
	// stream will ever produce.
	FlagEOF DataFlags = 1 << iota
	// FlagNoEndStream suppresses the WRITE_END_STREAM side effect that
	// FlagEOF would otherwise trigger — used when the caller wants to
	// signal logical end-of-data without yet closing the stream (e.g.
	// trailers are still coming through a different path).
	FlagNoEndStream
)

// ReadDataFunc is the application DATA-read callback (spec §6). A
// would-block condition is reported as an error satisfying
// errors.Is(err, herr.ErrWouldBlock); any other non-nil error is fatal.
type ReadDataFunc func() (data []byte, flags DataFlags, err error)

// FrameIntent is one pending, not-yet-serialized logical frame (spec §3).
// Exactly one of the type-specific fields is meaningful, selected by Kind.
type FrameIntent struct {
	Kind IntentKind

	SettingsSnapshot *Settings // IntentSettings
	Priority         *PriorityElements // IntentPriority
	Headers          []qpack.HeaderField // IntentHeaders, IntentPushPromise
	PushID           uint64              // IntentPushPromise, IntentCancelPush, IntentMaxPushID
	ReadData         ReadDataFunc        // IntentData
}
