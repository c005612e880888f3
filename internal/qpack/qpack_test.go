package qpack

import "testing"

func TestLiteralEncoderRoundTrip(t *testing.T) {
	enc := NewLiteralEncoder()
	headers := []HeaderField{
		{Name: ":method", Value: "GET"},
		{Name: ":path", Value: "/"},
		{Name: "x-test", Value: "some value with enough entropy to skip huffman 12345"},
	}
	prefix, repr, updates, err := enc.Encode(4, headers)
	if err != nil {
		t.Fatal(err)
	}
	if len(updates) != 0 {
		t.Fatalf("literal encoder must never emit encoder updates, got %d bytes", len(updates))
	}
	if len(prefix) != 2 {
		t.Fatalf("prefix length = %d, want 2 (RIC=0, DeltaBase=0)", len(prefix))
	}
	if prefix[0] != 0 || prefix[1] != 0 {
		t.Fatalf("prefix = % x, want zeroed RIC/DeltaBase", prefix)
	}

	got, err := DecodeLiteralFieldLines(repr)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(headers) {
		t.Fatalf("got %d fields, want %d", len(got), len(headers))
	}
	for i, h := range headers {
		if got[i] != h {
			t.Errorf("field %d = %+v, want %+v", i, got[i], h)
		}
	}
}

func TestLiteralEncoderEmptyHeaders(t *testing.T) {
	enc := NewLiteralEncoder()
	_, repr, _, err := enc.Encode(0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(repr) != 0 {
		t.Fatalf("expected empty representation for empty header list, got %d bytes", len(repr))
	}
}
