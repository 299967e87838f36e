package input

import "sync/atomic"

// stats counts matcher outcomes. Counters are atomic so a snapshot may be
// taken from outside the goroutine driving the matcher.
type stats struct {
	chords       atomic.Uint64
	matched      atomic.Uint64
	pendingExact atomic.Uint64
	partial      atomic.Uint64
	noMatch      atomic.Uint64
	timeouts     atomic.Uint64
	flushed      atomic.Uint64
}

// Stats is a snapshot of matcher counters.
type Stats struct {
	Chords       uint64 // chords processed
	Matched      uint64 // Matched results
	PendingExact uint64 // PendingExact results
	Partial      uint64 // Partial results
	NoMatch      uint64 // NoMatch results
	Timeouts     uint64 // stale prefixes discarded
	Flushed      uint64 // pending exact matches confirmed after the fact
}

func (s *stats) record(kind ResultKind) {
	s.chords.Add(1)
	switch kind {
	case Matched:
		s.matched.Add(1)
	case PendingExact:
		s.pendingExact.Add(1)
	case Partial:
		s.partial.Add(1)
	case NoMatch:
		s.noMatch.Add(1)
	}
}

func (s *stats) snapshot() Stats {
	return Stats{
		Chords:       s.chords.Load(),
		Matched:      s.matched.Load(),
		PendingExact: s.pendingExact.Load(),
		Partial:      s.partial.Load(),
		NoMatch:      s.noMatch.Load(),
		Timeouts:     s.timeouts.Load(),
		Flushed:      s.flushed.Load(),
	}
}

func (s *stats) reset() {
	s.chords.Store(0)
	s.matched.Store(0)
	s.pendingExact.Store(0)
	s.partial.Store(0)
	s.noMatch.Store(0)
	s.timeouts.Store(0)
	s.flushed.Store(0)
}
