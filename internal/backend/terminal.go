package backend

import (
	"errors"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termkit/internal/input/key"
)

// Terminal implements Backend using tcell.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a terminal backend on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, e.g. a simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnablePaste()
	t.screen.EnableFocus()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, r rune, style Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, r, nil, convertStyle(style))
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// PollEvent blocks for the next event. It does not hold the lock so
// drawing can proceed while waiting for input.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		// tcell returns nil once the screen is finalized.
		return Event{Type: EventClosed, When: time.Now()}
	}
	return convertEvent(ev)
}

// PostEvent posts a synthetic key event, or an interrupt carrying
// event.Data for any other type.
func (t *Terminal) PostEvent(event Event) error {
	var tev tcell.Event
	if event.Type == EventKey {
		tev = toTcellKey(event.Key)
	} else {
		tev = tcell.NewEventInterrupt(event.Data)
	}
	if err := t.screen.PostEvent(tev); err != nil {
		if errors.Is(err, tcell.ErrEventQFull) {
			return ErrQueueFull
		}
		return err
	}
	return nil
}

func convertStyle(s Style) tcell.Style {
	ts := tcell.StyleDefault
	if s.Bold {
		ts = ts.Bold(true)
	}
	if s.Dim {
		ts = ts.Dim(true)
	}
	if s.Reverse {
		ts = ts.Reverse(true)
	}
	if s.Underline {
		ts = ts.Underline(true)
	}
	return ts
}

func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			When: e.When(),
			Key:  convertKey(e.Key(), e.Rune(), e.Modifiers()),
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:        EventMouse,
			When:        e.When(),
			MouseX:      x,
			MouseY:      y,
			MouseButton: convertMouseButton(e.Buttons()),
			Mod:         convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, When: e.When(), Width: w, Height: h}

	case *tcell.EventPaste:
		return Event{Type: EventPaste, When: e.When(), Focused: e.Start()}

	case *tcell.EventFocus:
		return Event{Type: EventFocus, When: e.When(), Focused: e.Focused}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, When: e.When(), Data: e.Data()}

	case *tcell.EventError:
		return Event{Type: EventError, When: e.When(), Err: e}

	default:
		return Event{Type: EventNone, When: ev.When()}
	}
}

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
}

// convertKey turns a tcell key into a normalized chord. tcell reports
// control letters as dedicated keys and Shift+Tab as Backtab; both are
// mapped back to a base key plus modifiers.
func convertKey(k tcell.Key, r rune, m tcell.ModMask) key.Event {
	mods := convertMod(m)

	switch {
	case k == tcell.KeyRune:
		return key.NewRuneEvent(r, mods).Normalize()
	case k == tcell.KeyBacktab:
		return key.NewSpecialEvent(key.KeyTab, mods.With(key.ModShift))
	case k == tcell.KeyCtrlSpace:
		return key.NewSpecialEvent(key.KeySpace, mods.With(key.ModCtrl))
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl)).Normalize()
	case k >= tcell.KeyF1 && k <= tcell.KeyF24:
		return key.NewSpecialEvent(key.FunctionKey(int(k-tcell.KeyF1)+1), mods)
	}

	if sk, ok := specialKeys[k]; ok {
		return key.NewSpecialEvent(sk, mods)
	}
	return key.Event{Key: key.KeyNone, Modifiers: mods}
}

func toTcellKey(ev key.Event) *tcell.EventKey {
	var mods tcell.ModMask
	if ev.Modifiers.Has(key.ModShift) {
		mods |= tcell.ModShift
	}
	if ev.Modifiers.Has(key.ModCtrl) {
		mods |= tcell.ModCtrl
	}
	if ev.Modifiers.Has(key.ModAlt) {
		mods |= tcell.ModAlt
	}
	if ev.Modifiers.Has(key.ModSuper) {
		mods |= tcell.ModMeta
	}

	if ev.Key == key.KeyRune {
		return tcell.NewEventKey(tcell.KeyRune, ev.Rune, mods)
	}
	if ev.Key == key.KeySpace {
		return tcell.NewEventKey(tcell.KeyRune, ' ', mods)
	}
	if ev.Key.IsFunctionKey() {
		return tcell.NewEventKey(tcell.KeyF1+tcell.Key(ev.Key.FunctionNumber()-1), 0, mods)
	}
	for tk, k := range specialKeys {
		if k == ev.Key && tk != tcell.KeyBackspace2 {
			return tcell.NewEventKey(tk, 0, mods)
		}
	}
	return tcell.NewEventKey(tcell.KeyRune, 0, mods)
}

func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModSuper
	}
	return result
}

func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button3 != 0:
		return MouseMiddle
	case b&tcell.Button2 != 0:
		return MouseRight
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	}
	return MouseNone
}
