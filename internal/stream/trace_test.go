package stream

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"h3stream/internal/httpframe"
)

func TestFillOutqTraced(t *testing.T) {
	otel.SetTracerProvider(sdktrace.NewTracerProvider())

	s := newTestStream(1)
	s.FrqAdd(&httpframe.FrameIntent{Kind: httpframe.IntentSettings, SettingsSnapshot: &httpframe.Settings{}})

	if err := s.FillOutqTraced(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.Outq.Len() != 1 {
		t.Fatalf("outq len = %d, want 1", s.Outq.Len())
	}
}

func TestWritevTraced(t *testing.T) {
	otel.SetTracerProvider(sdktrace.NewTracerProvider())

	s := newTestStream(1)
	s.FrqAdd(&httpframe.FrameIntent{Kind: httpframe.IntentSettings, SettingsSnapshot: &httpframe.Settings{}})
	if err := s.FillOutq(); err != nil {
		t.Fatal(err)
	}

	vecs, _ := s.WritevTraced(context.Background(), 16)
	if len(vecs) != 1 {
		t.Fatalf("vecs = %d, want 1", len(vecs))
	}
}

func TestAddAckOffsetTraced(t *testing.T) {
	otel.SetTracerProvider(sdktrace.NewTracerProvider())

	s := newTestStream(1)
	s.FrqAdd(&httpframe.FrameIntent{Kind: httpframe.IntentSettings, SettingsSnapshot: &httpframe.Settings{}})
	if err := s.FillOutq(); err != nil {
		t.Fatal(err)
	}
	vecs, _ := s.Writev(16)
	n := 0
	for _, v := range vecs {
		n += v.Len
	}
	s.AddOutqOffset(n)

	if err := s.AddAckOffsetTraced(context.Background(), n); err != nil {
		t.Fatal(err)
	}
	if s.Outq.Len() != 0 {
		t.Fatalf("outq len = %d, want 0 after full ack", s.Outq.Len())
	}
}
