package stream

import (
	"testing"

	"h3stream/internal/qpack"
)

func TestValidateRequestHeadersHappyPath(t *testing.T) {
	h := []qpack.HeaderField{
		{Name: ":method", Value: "GET"},
		{Name: ":scheme", Value: "https"},
		{Name: ":path", Value: "/"},
		{Name: ":authority", Value: "example.com"},
		{Name: "accept", Value: "*/*"},
	}
	methConnect, err := ValidateRequestHeaders(h)
	if err != nil {
		t.Fatal(err)
	}
	if methConnect {
		t.Fatal("expected methConnect=false")
	}
}

func TestValidateRequestHeadersConnect(t *testing.T) {
	h := []qpack.HeaderField{
		{Name: ":method", Value: "CONNECT"},
		{Name: ":authority", Value: "example.com:443"},
	}
	methConnect, err := ValidateRequestHeaders(h)
	if err != nil {
		t.Fatal(err)
	}
	if !methConnect {
		t.Fatal("expected methConnect=true")
	}
}

func TestValidateRequestHeadersMissingPath(t *testing.T) {
	h := []qpack.HeaderField{
		{Name: ":method", Value: "GET"},
		{Name: ":scheme", Value: "https"},
	}
	if _, err := ValidateRequestHeaders(h); err == nil {
		t.Fatal("expected an error for missing :path")
	}
}

func TestValidateRequestHeadersRejectsConnectionSpecific(t *testing.T) {
	h := []qpack.HeaderField{
		{Name: ":method", Value: "GET"},
		{Name: ":scheme", Value: "https"},
		{Name: ":path", Value: "/"},
		{Name: "connection", Value: "keep-alive"},
	}
	if _, err := ValidateRequestHeaders(h); err == nil {
		t.Fatal("expected an error for a connection-specific header")
	}
}

func TestValidateResponseHeaders(t *testing.T) {
	h := []qpack.HeaderField{{Name: ":status", Value: "200"}}
	status, err := ValidateResponseHeaders(h)
	if err != nil {
		t.Fatal(err)
	}
	if status != 200 {
		t.Fatalf("status = %d, want 200", status)
	}
}

func TestValidateTrailerHeadersRejectsPseudoHeader(t *testing.T) {
	h := []qpack.HeaderField{{Name: ":status", Value: "200"}}
	if err := ValidateTrailerHeaders(h); err == nil {
		t.Fatal("expected an error for a pseudo-header in trailers")
	}
}

func TestValidateContentLengthMatch(t *testing.T) {
	h := []qpack.HeaderField{{Name: "content-length", Value: "5"}}
	if !ValidateContentLength(h, 5) {
		t.Fatal("expected match")
	}
	if ValidateContentLength(h, 6) {
		t.Fatal("expected mismatch")
	}
}

func TestValidateContentLengthAbsent(t *testing.T) {
	if !ValidateContentLength(nil, 100) {
		t.Fatal("expected no content-length header to be treated as a match")
	}
}
