package app

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/termkit/internal/backend"
	"github.com/dshills/termkit/internal/focus"
	"github.com/dshills/termkit/internal/input"
	"github.com/dshills/termkit/internal/input/keymap"
)

// Loop is a single-goroutine event loop. It waits on terminal events,
// ticks, queued commands and shutdown, feeds key chords to the matcher,
// turns reserved actions into focus navigation or shutdown, and hands
// everything else to the application handler.
//
// The matcher and focus manager belong to the loop goroutine. Code
// running elsewhere must reach them through Post.
type Loop struct {
	id      string
	opts    Options
	logger  *slog.Logger
	backend backend.Backend
	matcher *input.Matcher
	focus   *focus.Manager

	state    atomic.Int32
	closing  atomic.Bool
	commands chan command
	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}
}

type command struct {
	fn      func()
	message any
}

// New creates a loop over b. A nil matcher matches nothing; a nil focus
// manager starts with an empty registry.
func New(b backend.Backend, m *input.Matcher, f *focus.Manager, opts Options) *Loop {
	opts = opts.withDefaults()
	if m == nil {
		m = input.NewMatcher(nil)
	}
	if f == nil {
		f = focus.NewManager(nil)
	}

	id := uuid.NewString()
	return &Loop{
		id:       id,
		opts:     opts,
		logger:   opts.Logger.With("loop", id),
		backend:  b,
		matcher:  m,
		focus:    f,
		commands: make(chan command, opts.QueueSize),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// ID returns the loop instance id used in log records.
func (l *Loop) ID() string {
	return l.id
}

// State returns the current lifecycle state.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Done is closed once the loop has stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Matcher returns the input matcher. Use only on the loop goroutine.
func (l *Loop) Matcher() *input.Matcher {
	return l.matcher
}

// Focus returns the focus manager. Use only on the loop goroutine.
func (l *Loop) Focus() *focus.Manager {
	return l.focus
}

// Post queues fn to run on the loop goroutine. Commands posted before
// Run are executed once the loop starts. A focus change made by fn is
// reported to the handler as an EventFocus.
func (l *Loop) Post(fn func()) error {
	return l.enqueue(command{fn: fn})
}

// Send queues msg for delivery to the handler as an EventMessage.
func (l *Loop) Send(msg any) error {
	return l.enqueue(command{message: msg})
}

func (l *Loop) enqueue(cmd command) error {
	if l.closing.Load() {
		return ErrNotRunning
	}
	if s := l.State(); s != Idle && s != Running {
		return ErrNotRunning
	}
	select {
	case l.commands <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown asks the loop to stop. It may be called from any goroutine.
// The event being dispatched finishes, the handler receives
// EventShutdown, and nothing is dispatched after that. Post and Send fail
// from the moment Shutdown is called. Shutdown does not wait; use Done
// for that.
func (l *Loop) Shutdown() {
	l.closing.Store(true)
	l.quitOnce.Do(func() { close(l.quit) })
}

// Run initializes the backend and dispatches events to h until the
// context is canceled, Shutdown is called, the quit action fires, or h
// returns Exit. It returns nil on a clean stop, or the I/O error that h
// chose to exit on.
func (l *Loop) Run(ctx context.Context, h Handler) error {
	if !l.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return ErrAlreadyRunning
	}
	defer close(l.done)
	defer l.state.Store(int32(Stopped))

	if err := l.backend.Init(); err != nil {
		return &OperationError{Op: "init", Err: err}
	}

	l.logger.Info("event loop started",
		"tick", l.opts.TickRate,
		"timeout", l.matcher.Timeout(),
		"policy", l.matcher.Policy().String())

	events := make(chan backend.Event, l.opts.QueueSize)
	stop := make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.pollInput(events, stop)
		return nil
	})
	g.Go(func() error {
		defer func() {
			close(stop)
			l.backend.Shutdown()
		}()
		return l.loop(gctx, events, h)
	})
	err := g.Wait()

	st := l.matcher.Stats()
	l.logger.Info("event loop stopped",
		"chords", st.Chords,
		"matched", st.Matched,
		"timeouts", st.Timeouts,
		"error", err)
	return err
}

// pollInput moves terminal events onto the events channel until the
// backend closes or the loop stops. PollEvent blocks, so the loop shuts
// the backend down to release it.
func (l *Loop) pollInput(events chan<- backend.Event, stop <-chan struct{}) {
	defer close(events)

	for {
		ev := l.backend.PollEvent()
		select {
		case events <- ev:
		case <-stop:
			return
		}
		if ev.Type == backend.EventClosed {
			return
		}
	}
}

func (l *Loop) loop(ctx context.Context, events <-chan backend.Event, h Handler) error {
	ticker := time.NewTicker(l.opts.TickRate)
	defer ticker.Stop()

	d := &dispatcher{loop: l, handler: h}

	for l.State() == Running {
		// Shutdown takes precedence over pending input.
		select {
		case <-ctx.Done():
			l.beginShutdown("context canceled")
			continue
		case <-l.quit:
			l.beginShutdown("shutdown requested")
			continue
		default:
		}

		select {
		case <-ctx.Done():
			l.beginShutdown("context canceled")

		case <-l.quit:
			l.beginShutdown("shutdown requested")

		case ev, ok := <-events:
			if !ok {
				// The input pump has exited; keep ticking.
				events = nil
				continue
			}
			d.terminal(ev)

		case <-ticker.C:
			d.tick()

		case cmd := <-l.commands:
			d.command(cmd)
		}
	}

	h(Event{Kind: EventShutdown, Time: l.opts.Clock()})
	return d.err
}

// beginShutdown moves the loop to ShuttingDown. Only the loop goroutine
// calls it, so an in-flight dispatch is never cut short from outside.
func (l *Loop) beginShutdown(reason string) {
	l.closing.Store(true)
	if l.state.CompareAndSwap(int32(Running), int32(ShuttingDown)) {
		l.logger.Info("event loop shutting down", "reason", reason)
	}
}

// dispatcher holds per-run dispatch state. It is only touched by the
// loop goroutine.
type dispatcher struct {
	loop    *Loop
	handler Handler
	err     error
}

// emit delivers ev and reports whether dispatch may continue.
func (d *dispatcher) emit(ev Event) bool {
	if d.loop.State() != Running {
		return false
	}
	if d.handler(ev) == Exit {
		d.loop.beginShutdown("handler requested exit")
		return false
	}
	return true
}

func (d *dispatcher) terminal(ev backend.Event) {
	l := d.loop
	now := l.opts.Clock()

	switch ev.Type {
	case backend.EventKey:
		res := l.matcher.Process(ev.Key, now)
		l.logger.Debug("key",
			"chord", ev.Key.String(),
			"result", res.Kind.String(),
			"action", string(res.Action),
			"flushed", string(res.Flushed))

		if res.Flushed != "" && !d.fire(res.Flushed, now) {
			return
		}
		if !d.emit(Event{Kind: EventTerminal, Time: now, Terminal: ev, Match: res}) {
			return
		}
		if res.Fires() {
			d.fire(res.Action, now)
		}

	case backend.EventError, backend.EventClosed:
		err := ev.Err
		if ev.Type == backend.EventClosed || err == nil {
			err = ErrSourceClosed
		}
		l.logger.Warn("terminal input failure", "error", err)
		if !d.emit(Event{Kind: EventError, Time: now, Terminal: ev, Err: err}) {
			d.err = &OperationError{Op: "input", Err: err}
		}

	default:
		d.emit(Event{Kind: EventTerminal, Time: now, Terminal: ev})
	}
}

func (d *dispatcher) tick() {
	l := d.loop
	now := l.opts.Clock()

	if action, ok := l.matcher.Tick(now); ok {
		l.logger.Debug("pending sequence confirmed", "action", string(action))
		if !d.fire(action, now) {
			return
		}
	}
	d.emit(Event{Kind: EventTick, Time: now})
}

func (d *dispatcher) command(cmd command) {
	l := d.loop
	now := l.opts.Clock()

	if cmd.fn == nil {
		d.emit(Event{Kind: EventMessage, Time: now, Message: cmd.message})
		return
	}

	before := d.snapshot()
	cmd.fn()
	if change := d.changeFrom(before); change.Moved() {
		d.focusChanged(change, now)
	}
}

// fire dispatches a matched action and reports whether dispatch may
// continue.
func (d *dispatcher) fire(action keymap.Action, now time.Time) bool {
	l := d.loop
	opts := l.opts

	switch {
	case action == "":
		return true
	case opts.QuitAction != "" && action == opts.QuitAction:
		l.beginShutdown("quit action")
		return false
	case opts.FocusNextAction != "" && action == opts.FocusNextAction:
		return d.navigate(focus.Next, now)
	case opts.FocusPrevAction != "" && action == opts.FocusPrevAction:
		return d.navigate(focus.Previous, now)
	}
	return d.emit(Event{Kind: EventAction, Time: now, Action: action})
}

func (d *dispatcher) navigate(dir focus.Direction, now time.Time) bool {
	before := d.snapshot()
	d.loop.focus.Navigate(dir)
	return d.focusChanged(d.changeFrom(before), now)
}

func (d *dispatcher) focusChanged(change FocusChange, now time.Time) bool {
	l := d.loop
	if change.Moved() && l.opts.ScopeBindingsToFocus {
		ctxName := ""
		if change.HasTo && l.matcher.Table().HasContext(string(change.To)) {
			ctxName = string(change.To)
		}
		if err := l.matcher.SetContext(ctxName); err != nil {
			l.logger.Warn("registered bindings dropped on context switch", "context", ctxName, "error", err)
		}
	}
	return d.emit(Event{Kind: EventFocus, Time: now, Focus: change})
}

func (d *dispatcher) snapshot() FocusChange {
	id, ok := d.loop.focus.Current()
	return FocusChange{From: id, HasFrom: ok}
}

func (d *dispatcher) changeFrom(before FocusChange) FocusChange {
	id, ok := d.loop.focus.Current()
	before.To, before.HasTo = id, ok
	return before
}
