package httpframe

import (
	"errors"

	"h3stream/internal/buf"
	"h3stream/internal/herr"
	"h3stream/internal/qpack"
	"h3stream/internal/varint"
)

// Result is what a serializer produced: the typed buffers to append (in
// order) to the stream's outq, plus type-specific side effects the caller
// (the stream's fill_outq driver) must apply.
type Result struct {
	// Entries are appended to the frame-owning stream's outq, in order.
	Entries []*buf.TypedBuf

	// EncoderUpdates, when non-empty, must be appended as a single
	// PRIVATE tbuf to the connection's QPACK-encoder control stream's
	// outq — never to this stream's own outq (spec §4.5 HEADERS).
	EncoderUpdates []byte

	// Blocked is set only by DATA: read_data returned would-block. No
	// frame was written and Entries is empty; the intent must stay at
	// the head of frq for retry.
	Blocked bool

	// DataEOF and SetEndStream are set only by DATA when it did write a
	// frame: DataEOF mirrors the read callback's EOF flag, SetEndStream
	// additionally asks the caller to set WRITE_END_STREAM (DataEOF
	// without NoEndStream).
	DataEOF      bool
	SetEndStream bool
}

func writeFrameHeader(pool *buf.Pool, typ Type, length int) (*buf.TypedBuf, error) {
	hdr := varint.Encode(nil, uint64(typ))
	hdr = varint.Encode(hdr, uint64(length))
	chunk, err := pool.EnsureChunk(len(hdr))
	if err != nil {
		return nil, err
	}
	slice, begin, end := chunk.Reserve(len(hdr))
	copy(slice, hdr)
	return buf.NewShared(chunk, begin, end), nil
}

// SerializeSettings encodes a SETTINGS frame, skipping zero-valued fields,
// per spec §4.5.
func SerializeSettings(pool *buf.Pool, s *Settings) (Result, error) {
	type pair struct {
		id  SettingID
		val uint64
	}
	var pairs []pair
	if s.MaxHeaderListSize != 0 {
		pairs = append(pairs, pair{SettingMaxHeaderListSize, s.MaxHeaderListSize})
	}
	if s.NumPlaceholders != 0 {
		pairs = append(pairs, pair{SettingNumPlaceholders, s.NumPlaceholders})
	}
	if s.QPACKMaxTableCapacity != 0 {
		pairs = append(pairs, pair{SettingQPACKMaxTableCapacity, s.QPACKMaxTableCapacity})
	}
	if s.QPACKBlockedStreams != 0 {
		pairs = append(pairs, pair{SettingQPACKBlockedStreams, s.QPACKBlockedStreams})
	}

	var body []byte
	for _, p := range pairs {
		body = varint.Encode(body, uint64(p.id))
		body = varint.Encode(body, p.val)
	}
	return writeHeaderPlusBody(pool, TypeSettings, body)
}

// SerializePriority encodes a PRIORITY frame asserting a dependency
// relationship for p.Dependent on p.Target (spec §4.5).
func SerializePriority(pool *buf.Pool, p *PriorityElements) (Result, error) {
	var body []byte
	body = varint.Encode(body, uint64(p.Dependent.Type))
	body = varint.Encode(body, p.Dependent.ID)
	body = varint.Encode(body, uint64(p.Target.Type))
	body = varint.Encode(body, p.Target.ID)
	body = append(body, p.Weight)
	if p.Exclusive {
		body = append(body, 1)
	} else {
		body = append(body, 0)
	}
	return writeHeaderPlusBody(pool, TypePriority, body)
}

// SerializeCancelPush encodes a CANCEL_PUSH frame (spec §4.5).
func SerializeCancelPush(pool *buf.Pool, pushID uint64) (Result, error) {
	return writeHeaderPlusBody(pool, TypeCancelPush, varint.Encode(nil, pushID))
}

// SerializeMaxPushID encodes a MAX_PUSH_ID frame (spec §4.5). Connection
// bookkeeping — computing pushID from unsent_max_pushes and clearing the
// queued flag — is the caller's responsibility; this function only
// encodes the given value.
func SerializeMaxPushID(pool *buf.Pool, pushID uint64) (Result, error) {
	return writeHeaderPlusBody(pool, TypeMaxPushID, varint.Encode(nil, pushID))
}

func writeHeaderPlusBody(pool *buf.Pool, typ Type, body []byte) (Result, error) {
	hdrBuf := varint.Encode(nil, uint64(typ))
	hdrBuf = varint.Encode(hdrBuf, uint64(len(body)))
	full := append(hdrBuf, body...)
	chunk, err := pool.EnsureChunk(len(full))
	if err != nil {
		return Result{}, err
	}
	slice, begin, end := chunk.Reserve(len(full))
	copy(slice, full)
	return Result{Entries: []*buf.TypedBuf{buf.NewShared(chunk, begin, end)}}, nil
}

// SerializeHeaders encodes a HEADERS frame by invoking enc to QPACK-encode
// headers, per spec §4.5. On any failure after encoding, the caller must
// not retain prefix/repr/updates — LiteralEncoder allocates fresh slices
// per call, so there is nothing further to free here; encoders that pool
// buffers internally would need their own release path, out of scope for
// the reference implementation.
func SerializeHeaders(pool *buf.Pool, enc qpack.Encoder, streamID uint64, headers []qpack.HeaderField) (Result, error) {
	return serializeHeaderBlock(pool, enc, streamID, headers, TypeHeaders, 0, false)
}

// SerializePushPromise encodes a PUSH_PROMISE frame: a push-id varint
// followed by the QPACK header block, with the push id varint's length
// included in the frame length (spec §4.5, §6).
func SerializePushPromise(pool *buf.Pool, enc qpack.Encoder, streamID uint64, pushID uint64, headers []qpack.HeaderField) (Result, error) {
	return serializeHeaderBlock(pool, enc, streamID, headers, TypePushPromise, pushID, true)
}

func serializeHeaderBlock(pool *buf.Pool, enc qpack.Encoder, streamID uint64, headers []qpack.HeaderField, typ Type, pushID uint64, withPushID bool) (Result, error) {
	prefix, repr, updates, err := enc.Encode(streamID, headers)
	if err != nil {
		return Result{}, herr.Wrap(herr.InvalidArgument, "httpframe: qpack encode failed", err)
	}

	var pushIDBytes []byte
	if withPushID {
		pushIDBytes = varint.Encode(nil, pushID)
	}
	bodyLen := len(pushIDBytes) + len(prefix) + len(repr)

	hdrBuf := varint.Encode(nil, uint64(typ))
	hdrBuf = varint.Encode(hdrBuf, uint64(bodyLen))
	if withPushID {
		hdrBuf = append(hdrBuf, pushIDBytes...)
	}

	chunk, err := pool.EnsureChunk(len(hdrBuf))
	if err != nil {
		return Result{}, err
	}
	slice, begin, end := chunk.Reserve(len(hdrBuf))
	copy(slice, hdrBuf)
	entries := []*buf.TypedBuf{buf.NewShared(chunk, begin, end)}

	entries = append(entries, buf.NewPrivate(prefix))
	if len(repr) > 0 {
		entries = append(entries, buf.NewPrivate(repr))
	}

	return Result{Entries: entries, EncoderUpdates: updates}, nil
}

// SerializeData encodes a DATA frame by invoking read, per spec §4.5.
func SerializeData(pool *buf.Pool, read ReadDataFunc) (Result, error) {
	data, flags, err := read()
	if err != nil {
		if errors.Is(err, herr.ErrWouldBlock) {
			return Result{Blocked: true}, nil
		}
		return Result{}, err
	}

	eof := flags&FlagEOF != 0
	setEnd := eof && flags&FlagNoEndStream == 0

	hdrEntry, err := writeFrameHeader(pool, TypeData, len(data))
	if err != nil {
		return Result{}, err
	}
	entries := []*buf.TypedBuf{hdrEntry}
	if len(data) > 0 {
		entries = append(entries, buf.NewAlien(data))
	}
	return Result{Entries: entries, DataEOF: eof, SetEndStream: setEnd}, nil
}
