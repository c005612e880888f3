// Command h3demo drives a single stream's FIFOs over a real UDP socket
// using gnet, the way the teacher's internal/h2/transport wires a TCP
// gnet.EventHandler to its stream processor. It is not a QUIC
// implementation: there is no packet header, no ACK frame, no encryption
// and no congestion control — every UDP datagram received is treated as
// raw inbound stream bytes via BufferData, and whatever the demo stream's
// Writev produces is written back verbatim. Its only purpose is to
// exercise the stream engine's external interfaces (writev,
// add_outq_offset, add_ack_offset, buffer_data) against a live socket
// instead of in-process calls.
package main

import (
	"context"
	"flag"
	"log"
	"sync"

	"github.com/panjf2000/gnet/v2"

	"h3stream/internal/alloc"
	"h3stream/internal/httpframe"
	"h3stream/internal/metrics"
	"h3stream/internal/priority"
	"h3stream/internal/qpack"
	"h3stream/internal/stream"
)

const demoStreamID = 0

// demoServer echoes engine-drained bytes back to whichever peer sent the
// most recent datagram. A real transport would demultiplex by QUIC
// connection ID and stream ID; this harness has exactly one stream.
type demoServer struct {
	gnet.BuiltinEventEngine

	logger *log.Logger
	tree   *priority.Tree

	mu     sync.Mutex
	s      *stream.Stream
	tracker *alloc.Tracker
}

func newDemoServer(logger *log.Logger) *demoServer {
	tracker := &alloc.Tracker{}
	s := stream.NewStream(demoStreamID, stream.RoleRequest, qpack.NewLiteralEncoder(), nil, alloc.Default, tracker)

	s.FrqAdd(&httpframe.FrameIntent{
		Kind: httpframe.IntentSettings,
		SettingsSnapshot: &httpframe.Settings{
			QPACKMaxTableCapacity: 0,
		},
	})

	return &demoServer{
		logger:  logger,
		tree:    priority.NewTree(),
		s:       s,
		tracker: tracker,
	}
}

func (d *demoServer) OnBoot(eng gnet.Engine) gnet.Action {
	d.logger.Println("h3demo listening")
	return gnet.None
}

// OnTraffic feeds the datagram's payload into the demo stream's inbound
// buffer, drains whatever frq work is pending into outq, and writes back
// the vectored readout — a loopback of the engine's own serialized bytes,
// not a protocol response.
func (d *demoServer) OnTraffic(c gnet.Conn) gnet.Action {
	payload, err := c.Next(-1)
	if err != nil {
		d.logger.Printf("read error: %v", err)
		return gnet.Close
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx := context.Background()

	if err := d.s.BufferData(payload); err != nil {
		d.logger.Printf("buffer_data error: %v", err)
		return gnet.None
	}
	d.logger.Printf("buffered %d bytes (total %d)", len(payload), d.s.BufferedDatalen())

	if err := d.s.FillOutqTraced(ctx); err != nil {
		d.logger.Printf("fill_outq error: %v", err)
		return gnet.None
	}

	vecs, fin := d.s.WritevTraced(ctx, 16)
	total := 0
	for _, v := range vecs {
		if _, err := c.Write(v.Base); err != nil {
			d.logger.Printf("write error: %v", err)
			return gnet.Close
		}
		total += v.Len
	}
	if total > 0 {
		d.s.AddOutqOffset(total)
		if err := d.s.AddAckOffsetTraced(ctx, total); err != nil { // loopback demo: writing == acking, there is no real peer RTT
			d.logger.Printf("add_ack_offset error: %v", err)
			return gnet.None
		}
	}
	if d.s.IsBlocked() {
		metrics.BlockedStreams.Set(1)
	} else {
		metrics.BlockedStreams.Set(0)
	}
	if d.s.IsActive() {
		metrics.ActiveStreams.Set(1)
	} else {
		metrics.ActiveStreams.Set(0)
	}
	if fin {
		d.logger.Println("stream reached fin")
	}
	return gnet.None
}

func main() {
	addr := flag.String("addr", ":9443", "UDP address to listen on")
	flag.Parse()

	logger := log.Default()
	srv := newDemoServer(logger)
	if err := gnet.Run(srv, "udp://"+*addr); err != nil {
		log.Fatalf("h3demo: %v", err)
	}
}
