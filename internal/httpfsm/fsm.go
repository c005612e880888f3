// Package httpfsm implements the receive-side HTTP message state machine:
// the deterministic FSM that turns framing events (HEADERS_BEGIN/END,
// DATA_BEGIN/END, MSG_END) delivered by a stream's frame parser into a
// validated sequence of request or response phases. It is the generalized
// descendant of the teacher's per-stream state switch in
// internal/h2/stream/stream.go, lifted out into its own type so request and
// response sides share one transition table instead of being hand-rolled
// per call site.
package httpfsm

import "h3stream/internal/herr"

// State is one node of the receive HTTP state machine.
type State uint8

const (
	None State = iota
	ReqInitial
	ReqHeadersBegin
	ReqHeadersEnd
	ReqDataBegin
	ReqDataEnd
	ReqTrailersBegin
	ReqTrailersEnd
	ReqEnd
	RespInitial
	RespHeadersBegin
	RespHeadersEnd
	RespDataBegin
	RespDataEnd
	RespTrailersBegin
	RespTrailersEnd
	RespEnd
)

func (s State) String() string {
	switch s {
	case None:
		return "NONE"
	case ReqInitial:
		return "REQ_INITIAL"
	case ReqHeadersBegin:
		return "REQ_HEADERS_BEGIN"
	case ReqHeadersEnd:
		return "REQ_HEADERS_END"
	case ReqDataBegin:
		return "REQ_DATA_BEGIN"
	case ReqDataEnd:
		return "REQ_DATA_END"
	case ReqTrailersBegin:
		return "REQ_TRAILERS_BEGIN"
	case ReqTrailersEnd:
		return "REQ_TRAILERS_END"
	case ReqEnd:
		return "REQ_END"
	case RespInitial:
		return "RESP_INITIAL"
	case RespHeadersBegin:
		return "RESP_HEADERS_BEGIN"
	case RespHeadersEnd:
		return "RESP_HEADERS_END"
	case RespDataBegin:
		return "RESP_DATA_BEGIN"
	case RespDataEnd:
		return "RESP_DATA_END"
	case RespTrailersBegin:
		return "RESP_TRAILERS_BEGIN"
	case RespTrailersEnd:
		return "RESP_TRAILERS_END"
	case RespEnd:
		return "RESP_END"
	default:
		return "UNKNOWN"
	}
}

// Event is one framing-level notification fed into the machine.
type Event uint8

const (
	HeadersBegin Event = iota
	HeadersEnd
	DataBegin
	DataEnd
	MsgEnd
)

func (e Event) String() string {
	switch e {
	case HeadersBegin:
		return "HEADERS_BEGIN"
	case HeadersEnd:
		return "HEADERS_END"
	case DataBegin:
		return "DATA_BEGIN"
	case DataEnd:
		return "DATA_END"
	case MsgEnd:
		return "MSG_END"
	default:
		return "UNKNOWN"
	}
}

// RemoteEndStreamFunc is invoked whenever the machine transitions into a
// trailers phase, mirroring the remote peer implicitly signalling the end
// of the message body by switching to trailers without a frame-level
// end-stream flag.
type RemoteEndStreamFunc func() error

// Machine is one stream's receive HTTP state. A stream owns two Machines
// conceptually (one per half) but in practice only the applicable side is
// constructed, selected by NewRequestMachine/NewResponseMachine.
type Machine struct {
	state State

	methConnect          bool
	expectFinalResponse  bool
	statusCode           int
	contentLength        int64

	onRemoteEndStream RemoteEndStreamFunc
}

const (
	unsetStatusCode    = -1
	unsetContentLength = -1
)

// NewRequestMachine starts a Machine at REQ_INITIAL.
func NewRequestMachine(onRemoteEndStream RemoteEndStreamFunc) *Machine {
	return &Machine{state: ReqInitial, statusCode: unsetStatusCode, contentLength: unsetContentLength, onRemoteEndStream: onRemoteEndStream}
}

// NewResponseMachine starts a Machine at RESP_INITIAL.
func NewResponseMachine(onRemoteEndStream RemoteEndStreamFunc) *Machine {
	return &Machine{state: RespInitial, statusCode: unsetStatusCode, contentLength: unsetContentLength, onRemoteEndStream: onRemoteEndStream}
}

func (m *Machine) State() State                 { return m.state }
func (m *Machine) StatusCode() int              { return m.statusCode }
func (m *Machine) ExpectFinalResponse() bool    { return m.expectFinalResponse }
func (m *Machine) ContentLength() int64         { return m.contentLength }

// SetMethConnect marks the request method as CONNECT. It must be called
// before the first HEADERS_END on the request side completes, since the
// trailers transitions key off it immediately.
func (m *Machine) SetMethConnect(v bool) { m.methConnect = v }

// SetContentLength records a parsed content-length header for later
// content-length/body-length cross-checks performed by the caller before
// calling HandleDataEnd; the machine itself only stores the value.
func (m *Machine) SetContentLength(n int64) { m.contentLength = n }

func unexpected() error {
	return herr.New(herr.HTTPUnexpectedFrame, "httpfsm: event not valid in current state")
}

func protocolError() error {
	return herr.New(herr.HTTPGeneralProtocolError, "httpfsm: invalid transition")
}

// HandleHeadersBegin processes a HEADERS_BEGIN event.
func (m *Machine) HandleHeadersBegin() error {
	switch m.state {
	case ReqInitial:
		m.state = ReqHeadersBegin
		return nil
	case ReqHeadersEnd:
		if m.methConnect {
			return unexpected()
		}
		m.state = ReqTrailersBegin
		return m.fireRemoteEndStream()
	case ReqDataEnd:
		if m.methConnect {
			return unexpected()
		}
		m.state = ReqTrailersBegin
		return m.fireRemoteEndStream()
	case RespInitial:
		m.state = RespHeadersBegin
		return nil
	case RespHeadersEnd:
		if m.statusCode == unsetStatusCode {
			m.state = RespHeadersBegin
			return nil
		}
		if m.methConnect && is2xx(m.statusCode) {
			return unexpected()
		}
		m.state = RespTrailersBegin
		return m.fireRemoteEndStream()
	case RespDataEnd:
		if m.methConnect && is2xx(m.statusCode) {
			return unexpected()
		}
		m.state = RespTrailersBegin
		return m.fireRemoteEndStream()
	default:
		return m.rejectAny()
	}
}

// HandleHeadersEnd processes a HEADERS_END event. valid reports whether the
// just-parsed header block passed the caller's validation for the current
// context (the empty-header-block rule, pseudo-header placement, and
// similar checks — spec §4.14); when false the transition table's "else"
// clause applies and the state does not change. statusCode is the parsed
// response status code, or unsetStatusCode (-1) when not applicable (the
// request side, or a trailers block).
func (m *Machine) HandleHeadersEnd(valid bool, statusCode int) error {
	if !valid {
		return protocolError()
	}
	switch m.state {
	case ReqHeadersBegin:
		m.state = ReqHeadersEnd
		return nil
	case ReqTrailersBegin:
		m.state = ReqTrailersEnd
		return nil
	case RespHeadersBegin:
		m.state = RespHeadersEnd
		m.applyStatusCode(statusCode)
		return nil
	case RespTrailersBegin:
		m.state = RespTrailersEnd
		return nil
	default:
		return m.rejectAny()
	}
}

func (m *Machine) applyStatusCode(statusCode int) {
	if statusCode >= 100 && statusCode < 200 {
		m.expectFinalResponse = true
		return
	}
	m.expectFinalResponse = false
	m.statusCode = statusCode
}

// HandleDataBegin processes a DATA_BEGIN event.
func (m *Machine) HandleDataBegin() error {
	switch m.state {
	case ReqHeadersEnd:
		m.state = ReqDataBegin
		return nil
	case ReqDataEnd:
		m.state = ReqDataBegin
		return nil
	case RespHeadersEnd:
		if m.expectFinalResponse {
			return unexpected()
		}
		m.state = RespDataBegin
		return nil
	case RespDataEnd:
		m.state = RespDataBegin
		return nil
	default:
		return m.rejectAny()
	}
}

// HandleDataEnd processes a DATA_END event. valid carries the caller's
// content-length cross-check result (spec §4.14); false triggers the
// table's GENERAL_PROTOCOL_ERROR "else" clause without mutating state.
func (m *Machine) HandleDataEnd(valid bool) error {
	if !valid {
		return protocolError()
	}
	switch m.state {
	case ReqDataBegin:
		m.state = ReqDataEnd
		return nil
	case RespDataBegin:
		m.state = RespDataEnd
		return nil
	default:
		return m.rejectAny()
	}
}

// HandleMsgEnd processes a MSG_END event.
func (m *Machine) HandleMsgEnd() error {
	switch m.state {
	case ReqHeadersEnd, ReqDataEnd:
		m.state = ReqEnd
		return nil
	case ReqTrailersEnd:
		m.state = ReqEnd
		return nil
	case RespHeadersEnd, RespDataEnd:
		m.state = RespEnd
		return nil
	case RespTrailersEnd:
		m.state = RespEnd
		return nil
	default:
		return m.rejectAny()
	}
}

// rejectAny implements the table's blanket rows: any event in NONE is an
// HTTP_INTERNAL_ERROR, any event in the terminal REQ_END and RESP_END
// states is a GENERAL_PROTOCOL_ERROR, and every other state/event
// combination the table leaves unlisted falls back to UNEXPECTED_FRAME.
func (m *Machine) rejectAny() error {
	switch m.state {
	case None:
		return herr.New(herr.HTTPInternalError, "httpfsm: event delivered in state NONE")
	case ReqEnd, RespEnd:
		return protocolError()
	default:
		return unexpected()
	}
}

func (m *Machine) fireRemoteEndStream() error {
	if m.onRemoteEndStream == nil {
		return nil
	}
	return m.onRemoteEndStream()
}

func is2xx(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
