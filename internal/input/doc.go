// Package input turns a stream of key chords into actions.
//
// A Matcher holds the chords typed so far and resolves them against a
// keymap.Table. Each call to Process returns one of four results:
//
//   - Matched: the chords form a complete binding that nothing extends.
//   - PendingExact: the chords form a complete binding, but a longer
//     binding also starts with them.
//   - Partial: the chords are a strict prefix of some binding.
//   - NoMatch: the chords extend nothing; the chord is dropped.
//
// A prefix older than the sequence timeout is discarded before the next
// chord is considered. Tick must be called periodically so a pending
// exact match fires once the timeout elapses with no further input:
//
//	m := input.NewMatcher(table, input.WithTimeout(time.Second))
//	res := m.Process(ev, time.Now())
//	if res.Fires() {
//		dispatch(res.Action)
//	}
//	if action, ok := m.Tick(time.Now()); ok {
//		dispatch(action)
//	}
//
// The Matcher is not safe for concurrent use.
package input
