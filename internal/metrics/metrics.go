// Package metrics exposes Prometheus counters and gauges for the stream
// engine, in the style of the teacher's middleware-scoped metrics
// (pkg/celeris/metrics.go) but wired directly into the engine's hot paths
// instead of an HTTP middleware chain — there is no request/response cycle
// to wrap here, only frq drains, outq writes and ack offsets.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FramesSerialized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "h3stream_frames_serialized_total",
			Help: "Total number of HTTP/3 frames serialized into outq, by frame type.",
		},
		[]string{"frame_type"},
	)

	BytesQueued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "h3stream_bytes_queued_total",
			Help: "Total bytes appended to any stream's outq.",
		},
	)

	BytesAcked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "h3stream_bytes_acked_total",
			Help: "Total bytes retired from outq by add_ack_offset.",
		},
	)

	ActiveStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "h3stream_active_streams",
			Help: "Current number of streams with pending work that are not blocked.",
		},
	)

	BlockedStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "h3stream_blocked_streams",
			Help: "Current number of streams with FC_BLOCKED or READ_DATA_BLOCKED set.",
		},
	)

	ChunksAllocated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "h3stream_chunks_allocated_total",
			Help: "Total 1KiB chunks allocated by the chunk pool.",
		},
	)

	FillOutqWouldBlock = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "h3stream_fill_outq_wouldblock_total",
			Help: "Total times fill_outq left a DATA intent at the head of frq because read_data would have blocked.",
		},
	)
)
