package stream

import (
	"h3stream/internal/herr"
	"h3stream/internal/httpframe"
	"h3stream/internal/metrics"
)

// FrqAdd pushes a frame intent onto the stream's frame-intent queue (spec
// §4.4).
func (s *Stream) FrqAdd(intent *httpframe.FrameIntent) {
	s.FRQ.PushBack(intent)
}

// FillOutq drains frq into outq, dispatching each intent to its
// serializer (spec §4.4, §4.5). It stops, without error, once outq or
// unsent_bytes hits its bound, once a DATA intent would block or has more
// data still coming, or once frq is empty. Any serializer error is
// returned immediately with the offending intent left at the head of frq.
func (s *Stream) FillOutq() error {
	for s.FRQ.Len() > 0 && s.Outq.Len() < MaxOutqLen && s.UnsentBytes < MinUnsentBytes {
		intent := s.FRQ.Front()

		var res httpframe.Result
		var err error
		switch intent.Kind {
		case httpframe.IntentSettings:
			res, err = httpframe.SerializeSettings(s.Chunks, intent.SettingsSnapshot)
		case httpframe.IntentPriority:
			res, err = httpframe.SerializePriority(s.Chunks, intent.Priority)
		case httpframe.IntentCancelPush:
			res, err = httpframe.SerializeCancelPush(s.Chunks, intent.PushID)
		case httpframe.IntentMaxPushID:
			res, err = httpframe.SerializeMaxPushID(s.Chunks, intent.PushID)
		case httpframe.IntentHeaders:
			res, err = httpframe.SerializeHeaders(s.Chunks, s.QPACKEncoder, s.ID, intent.Headers)
		case httpframe.IntentPushPromise:
			res, err = httpframe.SerializePushPromise(s.Chunks, s.QPACKEncoder, s.ID, intent.PushID, intent.Headers)
		case httpframe.IntentData:
			res, err = httpframe.SerializeData(s.Chunks, intent.ReadData)
		default:
			err = herr.New(herr.HTTPInternalError, "stream: unknown frame intent kind")
		}
		if err != nil {
			return err
		}

		if res.Blocked {
			s.Flags |= FlagReadDataBlocked
			metrics.FillOutqWouldBlock.Inc()
			return nil
		}

		queued := 0
		for _, e := range res.Entries {
			s.OutqAdd(e)
			queued += e.Len()
		}
		metrics.BytesQueued.Add(float64(queued))
		metrics.FramesSerialized.WithLabelValues(frameTypeLabel(intent.Kind)).Inc()

		if len(res.EncoderUpdates) > 0 && s.RouteEncoderUpdate != nil {
			if err := s.RouteEncoderUpdate(res.EncoderUpdates); err != nil {
				return err
			}
		}
		if res.SetEndStream {
			s.Flags |= FlagWriteEndStream
		}

		if intent.Kind == httpframe.IntentData && !res.DataEOF {
			return nil
		}

		s.FRQ.PopFront()
	}
	return nil
}

func frameTypeLabel(kind httpframe.IntentKind) string {
	switch kind {
	case httpframe.IntentSettings:
		return "SETTINGS"
	case httpframe.IntentPriority:
		return "PRIORITY"
	case httpframe.IntentHeaders:
		return "HEADERS"
	case httpframe.IntentPushPromise:
		return "PUSH_PROMISE"
	case httpframe.IntentCancelPush:
		return "CANCEL_PUSH"
	case httpframe.IntentData:
		return "DATA"
	case httpframe.IntentMaxPushID:
		return "MAX_PUSH_ID"
	default:
		return "UNKNOWN"
	}
}
