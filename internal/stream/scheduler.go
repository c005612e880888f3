package stream

import "h3stream/internal/priority"

// ClearReadDataBlocked lifts READ_DATA_BLOCKED, letting the next FillOutq
// re-invoke the DATA intent's read callback (spec §4.10, scenario S6). The
// transport calls this once it knows read_data would no longer block.
func (s *Stream) ClearReadDataBlocked() {
	s.Flags &^= FlagReadDataBlocked
}

// IsBlocked reports whether the stream is blocked: FC_BLOCKED or
// READ_DATA_BLOCKED is set (spec §4.10).
func (s *Stream) IsBlocked() bool {
	return s.Flags.has(FlagFCBlocked) || s.Flags.has(FlagReadDataBlocked)
}

// IsActive reports whether the stream still has data in outq to write out,
// or frq is non-empty, and it is not blocked (spec §4.10).
func (s *Stream) IsActive() bool {
	if s.IsBlocked() {
		return false
	}
	hasOutqWork := s.OutqIdx < s.Outq.Len()
	return hasOutqWork || s.FRQ.Len() > 0
}

// RequiresSchedule reports whether the stream needs a turn at the priority
// engine: it is active itself, or it has an active descendant in the tree
// (spec §4.10).
func (s *Stream) RequiresSchedule(tree *priority.Tree) bool {
	if s.IsActive() {
		return true
	}
	return tree.HasActiveDescendant(s.SchedulingKey())
}

// Schedule places the stream's scheduling node into the priority engine,
// weighted by unscheduled_nwrite accumulated since the last schedule; that
// counter resets on schedule (spec §4.10).
func (s *Stream) Schedule(tree *priority.Tree) {
	tree.Schedule(s.SchedulingKey(), s.UnscheduledNwrite)
	s.UnscheduledNwrite = 0
}

// Unschedule delegates to the priority engine.
func (s *Stream) Unschedule(tree *priority.Tree) {
	tree.Unschedule(s.SchedulingKey())
}

// Squash delegates to the priority engine, reparenting any children of the
// stream's node onto its former parent (spec §4.10, §5 teardown).
func (s *Stream) Squash(tree *priority.Tree) {
	tree.Squash(s.SchedulingKey())
}
