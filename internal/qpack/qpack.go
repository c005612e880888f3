// Package qpack provides the QPACK header-compression collaborator the
// HEADERS/PUSH_PROMISE frame serializers call into (spec §6 "To the QPACK
// encoder"). QPACK's compression algorithm is explicitly out of scope as an
// algorithm (spec §1); this package defines the Encoder contract and ships
// one literal-only reference implementation built on
// golang.org/x/net/http2/hpack's field and Huffman primitives, the same
// primitives RFC 9204 borrows from RFC 7541 (grounded on the example pack's
// golang-net__qpack.go reference and the teacher's hpack-based
// HeaderEncoder in internal/h2/frame/frame.go).
package qpack

import (
	"h3stream/internal/herr"

	"golang.org/x/net/http2/hpack"
)

// HeaderField is one owned (name, value) pair of a header or trailer block.
type HeaderField struct {
	Name  string
	Value string
}

// Encoder is the external QPACK collaborator the HEADERS and PUSH_PROMISE
// serializers drive. Encode must be safe to call once per frame; prefix and
// repr together form the frame's QPACK payload, and updates (when non-empty)
// must be routed by the caller to the connection's QPACK-encoder control
// stream, never to the stream the headers themselves belong to.
type Encoder interface {
	Encode(streamID uint64, headers []HeaderField) (prefix, repr, updates []byte, err error)
}

// LiteralEncoder is the reference Encoder. It never inserts into a dynamic
// table, so every field is encoded as an RFC 9204 §4.5.4 "Literal Field
// Line With Literal Name" and no encoder-stream instructions are ever
// produced. See DESIGN.md OQ-1 for why this is an acceptable stand-in for
// the (out-of-scope) full QPACK algorithm.
type LiteralEncoder struct{}

// NewLiteralEncoder constructs the reference QPACK encoder.
func NewLiteralEncoder() *LiteralEncoder { return &LiteralEncoder{} }

// Encode implements Encoder.
func (LiteralEncoder) Encode(_ uint64, headers []HeaderField) (prefix, repr, updates []byte, err error) {
	// RFC 9204 §4.5.1: Required Insert Count (8-bit prefix) then
	// Delta Base (7-bit prefix + sign bit). Both are always zero since
	// this encoder never references the dynamic table.
	prefix = appendPrefixedInt(nil, 0, 8, 0)
	prefix = appendPrefixedInt(prefix, 0, 7, 0)

	for _, h := range headers {
		repr = appendLiteralFieldLine(repr, h.Name, h.Value)
	}
	return prefix, repr, nil, nil
}

// appendLiteralFieldLine encodes one RFC 9204 §4.5.4 literal-name, literal
// value field line: 0b001NHLLL name-string value-string (N = never-index,
// always 0 here; H toggles Huffman for the name and LLL is its 3-bit length
// prefix; the value carries its own H bit and 7-bit length prefix; both H
// bits are set inside appendPrefixedString).
func appendLiteralFieldLine(b []byte, name, value string) []byte {
	b = appendPrefixedString(b, 0x20, 3, name)
	b = appendPrefixedString(b, 0x00, 7, value)
	return b
}

// appendPrefixedInt appends an RFC 7541 §5.1 prefixed integer. firstByte
// carries any non-integer bits already set; the other bits must be zero.
func appendPrefixedInt(b []byte, firstByte byte, prefixLen uint8, v int64) []byte {
	u := uint64(v)
	prefixMask := uint64(1)<<prefixLen - 1
	if u < prefixMask {
		return append(b, firstByte|byte(u))
	}
	b = append(b, firstByte|byte(prefixMask))
	u -= prefixMask
	for u >= 128 {
		b = append(b, 0x80|byte(u&0x7f))
		u >>= 7
	}
	return append(b, byte(u))
}

// appendPrefixedString appends an RFC 7541 §5.2 string literal, Huffman
// coding it whenever that is shorter, exactly as hpack itself chooses.
func appendPrefixedString(b []byte, firstByte byte, prefixLen uint8, s string) []byte {
	huffLen := hpack.HuffmanEncodeLength(s)
	if huffLen < uint64(len(s)) {
		hbit := byte(1) << prefixLen
		b = appendPrefixedInt(b, firstByte|hbit, prefixLen, int64(huffLen))
		return hpack.AppendHuffmanString(b, s)
	}
	b = appendPrefixedInt(b, firstByte, prefixLen, int64(len(s)))
	return append(b, s...)
}

// readPrefixedInt decodes an RFC 7541 §5.1 prefixed integer from the front
// of src, returning the value and bytes consumed.
func readPrefixedInt(src []byte, firstByte byte, prefixLen uint8) (v int64, n int, err error) {
	prefixMask := byte(1)<<prefixLen - 1
	v = int64(firstByte & prefixMask)
	if v != int64(prefixMask) {
		return v, 0, nil
	}
	m := 0
	for i := 0; ; i++ {
		if i >= len(src) {
			return 0, 0, herr.New(herr.InvalidArgument, "qpack: truncated integer")
		}
		b := src[i]
		v += int64(b&0x7f) << m
		m += 7
		n = i + 1
		if b&0x80 == 0 {
			break
		}
	}
	return v, n, nil
}

// DecodeLiteralFieldLines decodes a run of literal field lines encoded by
// LiteralEncoder, for tests that need a round trip. It does not implement
// the full QPACK instruction set (indexed lines, dynamic-table
// instructions) — those are part of the out-of-scope algorithm.
func DecodeLiteralFieldLines(repr []byte) ([]HeaderField, error) {
	var out []HeaderField
	for len(repr) > 0 {
		name, rest, err := readPrefixedString(repr, 3)
		if err != nil {
			return nil, err
		}
		repr = rest
		value, rest, err := readPrefixedString(repr, 7)
		if err != nil {
			return nil, err
		}
		repr = rest
		out = append(out, HeaderField{Name: name, Value: value})
	}
	return out, nil
}

func readPrefixedString(src []byte, prefixLen uint8) (s string, rest []byte, err error) {
	if len(src) == 0 {
		return "", nil, herr.New(herr.InvalidArgument, "qpack: truncated string")
	}
	firstByte := src[0]
	size, n, err := readPrefixedInt(src[1:], firstByte, prefixLen)
	if err != nil {
		return "", nil, err
	}
	data := src[1+n:]
	if int64(len(data)) < size {
		return "", nil, herr.New(herr.InvalidArgument, "qpack: truncated string data")
	}
	raw := data[:size]
	rest = data[size:]
	hbit := byte(1) << prefixLen
	if firstByte&hbit != 0 {
		s, err := hpack.HuffmanDecodeToString(raw)
		if err != nil {
			return "", nil, herr.Wrap(herr.InvalidArgument, "qpack: huffman decode failed", err)
		}
		return s, rest, nil
	}
	return string(raw), rest, nil
}
