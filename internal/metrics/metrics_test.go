package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestFramesSerializedByLabel(t *testing.T) {
	before := testutil.ToFloat64(FramesSerialized.WithLabelValues("SETTINGS"))
	FramesSerialized.WithLabelValues("SETTINGS").Inc()
	after := testutil.ToFloat64(FramesSerialized.WithLabelValues("SETTINGS"))
	if after != before+1 {
		t.Fatalf("SETTINGS counter = %v, want %v", after, before+1)
	}
}

func TestBytesQueuedAndAcked(t *testing.T) {
	beforeQueued := testutil.ToFloat64(BytesQueued)
	beforeAcked := testutil.ToFloat64(BytesAcked)

	BytesQueued.Add(10)
	BytesAcked.Add(4)

	if got := testutil.ToFloat64(BytesQueued); got != beforeQueued+10 {
		t.Fatalf("BytesQueued = %v, want %v", got, beforeQueued+10)
	}
	if got := testutil.ToFloat64(BytesAcked); got != beforeAcked+4 {
		t.Fatalf("BytesAcked = %v, want %v", got, beforeAcked+4)
	}
}

func TestActiveAndBlockedStreamGauges(t *testing.T) {
	ActiveStreams.Set(3)
	BlockedStreams.Set(1)

	if got := testutil.ToFloat64(ActiveStreams); got != 3 {
		t.Fatalf("ActiveStreams = %v, want 3", got)
	}
	if got := testutil.ToFloat64(BlockedStreams); got != 1 {
		t.Fatalf("BlockedStreams = %v, want 1", got)
	}
}
