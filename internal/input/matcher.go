package input

import (
	"errors"
	"time"

	"github.com/dshills/termkit/internal/input/key"
	"github.com/dshills/termkit/internal/input/keymap"
)

// DefaultSequenceTimeout is how long a partial sequence waits for its
// next chord.
const DefaultSequenceTimeout = 1000 * time.Millisecond

// Option configures a Matcher.
type Option func(*Matcher)

// WithTimeout sets the sequence timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(m *Matcher) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithPolicy sets the pending exact match policy.
func WithPolicy(p PendingPolicy) Option {
	return func(m *Matcher) {
		m.policy = p
	}
}

// WithContext selects the initial binding context.
func WithContext(name string) Option {
	return func(m *Matcher) {
		m.context = name
	}
}

// Matcher resolves a stream of chords against a binding table.
//
// A Matcher is not safe for concurrent use. It is owned by a single
// goroutine, normally the event loop.
type Matcher struct {
	table      *keymap.Table
	index      *keymap.Index
	context    string
	registered []keymap.Binding

	timeout time.Duration
	policy  PendingPolicy

	prefix  key.Sequence
	last    time.Time
	pending keymap.Action // exact match awaiting confirmation
	fired   bool          // pending was already dispatched eagerly

	stats stats
}

// NewMatcher creates a matcher over table. A nil table matches nothing
// until bindings are registered.
func NewMatcher(table *keymap.Table, opts ...Option) *Matcher {
	if table == nil {
		table = keymap.Empty()
	}
	m := &Matcher{
		table:   table,
		timeout: DefaultSequenceTimeout,
		policy:  PolicyWait,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.index = table.Index(m.context)
	return m
}

// Register adds a binding outside of the table builder. The conflict
// rules are the same as Builder.Build: an empty sequence returns
// keymap.ErrEmptySequence and a sequence already bound to a different
// action returns a *keymap.ConflictError. Registrations survive SetTable
// and SetContext.
func (m *Matcher) Register(seq key.Sequence, action keymap.Action) error {
	b := keymap.Binding{Action: action, Sequence: seq.Clone()}
	if err := m.index.Insert(b); err != nil {
		return err
	}
	m.registered = append(m.registered, b)
	return nil
}

// SetTable replaces the binding table wholesale and resets any pending
// prefix. Registered bindings are re-applied; those that now conflict
// are dropped and reported in the returned error.
func (m *Matcher) SetTable(table *keymap.Table) error {
	if table == nil {
		table = keymap.Empty()
	}
	m.table = table
	return m.rebuild()
}

// SetContext selects the binding context and resets any pending prefix.
// An unknown context resolves against global bindings only.
func (m *Matcher) SetContext(name string) error {
	if name == m.context {
		return nil
	}
	m.context = name
	return m.rebuild()
}

// Context returns the current binding context.
func (m *Matcher) Context() string {
	return m.context
}

// Table returns the current binding table.
func (m *Matcher) Table() *keymap.Table {
	return m.table
}

func (m *Matcher) rebuild() error {
	m.Reset()
	m.index = m.table.Index(m.context)

	var errs []error
	kept := m.registered[:0]
	for _, b := range m.registered {
		if err := m.index.Insert(b); err != nil {
			errs = append(errs, err)
			continue
		}
		kept = append(kept, b)
	}
	m.registered = kept
	return errors.Join(errs...)
}

// Process feeds one chord to the matcher at time now.
func (m *Matcher) Process(ev key.Event, now time.Time) Result {
	var flushed keymap.Action

	// A stale prefix can never complete.
	if !m.prefix.IsEmpty() && now.Sub(m.last) > m.timeout {
		flushed = m.expire()
	}

	candidate := m.prefix.Append(ev)
	match := m.index.Resolve(candidate)

	res := Result{Sequence: candidate}
	switch {
	case match.Exact && !match.Extensible:
		res.Kind = Matched
		res.Action = match.Action
		m.Reset()

	case match.Exact:
		res.Kind = PendingExact
		res.Action = match.Action
		res.Eager = m.policy == PolicyEager
		m.prefix = candidate
		m.last = now
		m.pending = match.Action
		m.fired = res.Eager

	case match.Extensible:
		res.Kind = Partial
		m.prefix = candidate
		m.last = now
		m.pending = ""
		m.fired = false

	default:
		res.Kind = NoMatch
		if a := m.confirmPending(); a != "" {
			flushed = a
		}
		m.Reset()
	}

	res.Flushed = flushed
	m.stats.record(res.Kind)
	return res
}

// Tick checks the pending prefix against the timeout at time now. If the
// prefix is stale it is discarded, and a pending exact match that has not
// yet fired is returned for dispatch.
func (m *Matcher) Tick(now time.Time) (keymap.Action, bool) {
	if m.prefix.IsEmpty() || now.Sub(m.last) <= m.timeout {
		return "", false
	}
	a := m.expire()
	return a, a != ""
}

// Flush confirms a pending exact match immediately, regardless of the
// timeout, and resets the prefix.
func (m *Matcher) Flush() (keymap.Action, bool) {
	a := m.confirmPending()
	m.Reset()
	return a, a != ""
}

func (m *Matcher) expire() keymap.Action {
	m.stats.timeouts.Add(1)
	a := m.confirmPending()
	m.Reset()
	return a
}

func (m *Matcher) confirmPending() keymap.Action {
	if m.pending == "" || m.fired {
		return ""
	}
	m.stats.flushed.Add(1)
	return m.pending
}

// Reset discards the pending prefix without firing anything.
func (m *Matcher) Reset() {
	m.prefix = key.Sequence{}
	m.last = time.Time{}
	m.pending = ""
	m.fired = false
}

// Pending returns a copy of the chords typed so far.
func (m *Matcher) Pending() key.Sequence {
	return m.prefix.Clone()
}

// Deadline returns when the pending prefix goes stale.
func (m *Matcher) Deadline() (time.Time, bool) {
	if m.prefix.IsEmpty() {
		return time.Time{}, false
	}
	return m.last.Add(m.timeout), true
}

// Timeout returns the sequence timeout.
func (m *Matcher) Timeout() time.Duration {
	return m.timeout
}

// SetTimeout changes the sequence timeout. Non-positive values are ignored.
func (m *Matcher) SetTimeout(d time.Duration) {
	if d > 0 {
		m.timeout = d
	}
}

// Policy returns the pending exact match policy.
func (m *Matcher) Policy() PendingPolicy {
	return m.policy
}

// SetPolicy changes the pending exact match policy.
func (m *Matcher) SetPolicy(p PendingPolicy) {
	m.policy = p
}

// Stats returns a snapshot of the matcher counters.
func (m *Matcher) Stats() Stats {
	return m.stats.snapshot()
}

// ResetStats zeroes the matcher counters.
func (m *Matcher) ResetStats() {
	m.stats.reset()
}
