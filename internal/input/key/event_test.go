package key

import "testing"

func TestEventNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Event
		want Event
	}{
		{"plain rune", NewRuneEvent('a', ModNone), NewRuneEvent('a', ModNone)},
		{"shift folds into rune", NewRuneEvent('a', ModShift), NewRuneEvent('A', ModNone)},
		{"ctrl lowercases", NewRuneEvent('Q', ModCtrl), NewRuneEvent('q', ModCtrl)},
		{"ctrl shift keeps shift", NewRuneEvent('Q', ModCtrl|ModShift), NewRuneEvent('q', ModCtrl|ModShift)},
		{"alt uppercase", NewRuneEvent('X', ModAlt), NewRuneEvent('x', ModAlt)},
		{"space rune", NewRuneEvent(' ', ModNone), NewSpecialEvent(KeySpace, ModNone)},
		{"special keeps shift", NewSpecialEvent(KeyTab, ModShift), NewSpecialEvent(KeyTab, ModShift)},
		{"special drops rune", Event{Key: KeyEnter, Rune: 'x'}, NewSpecialEvent(KeyEnter, ModNone)},
	}

	for _, tt := range tests {
		got := tt.in.Normalize()
		if got != tt.want {
			t.Errorf("%s: Normalize() = %+v, want %+v", tt.name, got, tt.want)
		}
		if again := got.Normalize(); again != got {
			t.Errorf("%s: Normalize() not idempotent: %+v then %+v", tt.name, got, again)
		}
	}
}

func TestEventEquals(t *testing.T) {
	if !NewRuneEvent('Q', ModCtrl).Equals(NewRuneEvent('q', ModCtrl)) {
		t.Error("Ctrl+Q should equal Ctrl+q")
	}
	if NewRuneEvent('q', ModNone).Equals(NewRuneEvent('q', ModCtrl)) {
		t.Error("q should not equal Ctrl+q")
	}
	if NewSpecialEvent(KeyTab, ModNone).Equals(NewSpecialEvent(KeyTab, ModShift)) {
		t.Error("Tab should not equal Shift+Tab")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NewRuneEvent('q', ModCtrl), "Ctrl+q"},
		{NewRuneEvent('a', ModShift), "A"},
		{NewSpecialEvent(KeyTab, ModShift), "Shift+Tab"},
		{NewSpecialEvent(KeyDelete, ModAlt|ModCtrl), "Ctrl+Alt+Delete"},
		{NewSpecialEvent(KeyF7, ModSuper), "Super+F7"},
		{NewRuneEvent('+', ModCtrl), "Ctrl++"},
		{NewRuneEvent('S', ModCtrl|ModShift), "Ctrl+Shift+s"},
		{NewSpecialEvent(KeyEscape, ModNone), "Esc"},
	}

	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
