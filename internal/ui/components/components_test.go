package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMenuSkipsDisabled(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B", Action: func() tea.Cmd { called = "B"; return nil }},
		{Label: "C", Disabled: true},
		{Label: "D", Action: func() tea.Cmd { called = "D"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if called != "D" {
		t.Errorf("called = %q, want D", called)
	}

	m, _ = m.Update(keyPress('k'))
	if m.Selected != 1 {
		t.Errorf("after k = %d, want 1", m.Selected)
	}
}

func TestMultiChoiceNumberKeySubmits(t *testing.T) {
	mc := NewMultiChoice("Q?", []string{"a", "b", "c"}, 2)

	mc, cmd := mc.Update(keyPress('3'))
	if !mc.Submitted || mc.ChosenIndex != 2 {
		t.Fatalf("submitted=%v chosen=%d, want true/2", mc.Submitted, mc.ChosenIndex)
	}
	if cmd == nil {
		t.Fatal("expected ChoiceMsg command")
	}
	if msg, ok := cmd().(ChoiceMsg); !ok || msg.Index != 2 {
		t.Errorf("msg = %#v, want ChoiceMsg{2}", cmd())
	}
	if !mc.IsCorrect() {
		t.Error("expected correct answer")
	}

	// Further input is ignored once submitted.
	mc, cmd = mc.Update(keyPress('1'))
	if cmd != nil || mc.ChosenIndex != 2 {
		t.Error("expected submitted component to ignore input")
	}
}

func TestMultiChoiceOutOfRangeNumberIgnored(t *testing.T) {
	mc := NewMultiChoice("Q?", []string{"a", "b"}, 0)
	mc, cmd := mc.Update(keyPress('3'))
	if mc.Submitted || cmd != nil {
		t.Error("expected key 3 to be ignored with two options")
	}
}

func TestMultiChoiceArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice("", []string{"a", "b", "c"}, 0)
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if mc.Selected != 2 {
		t.Fatalf("selected = %d, want 2", mc.Selected)
	}
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if mc.IsCorrect() {
		t.Error("expected wrong answer")
	}
	if !strings.Contains(mc.View(), "3) c") {
		t.Errorf("view missing numbered option:\n%s", mc.View())
	}
}

func TestProgressBarClamps(t *testing.T) {
	if p := NewProgressBar("", 5, 4, 20).Percent(); p != 1 {
		t.Errorf("percent = %v, want 1", p)
	}
	if p := NewProgressBar("", 1, 0, 20).Percent(); p != 0 {
		t.Errorf("percent = %v, want 0", p)
	}
	if !strings.Contains(NewProgressBar("XP", 3, 10, 40).View(), "3/10") {
		t.Error("expected count suffix")
	}
}

func TestHintsSkipDisabled(t *testing.T) {
	km := DefaultKeyMap()
	km.Back.SetEnabled(false)
	hints := Hints(km.Select, km.Back)
	if len(hints) != 1 || hints[0].Key != "Enter" {
		t.Errorf("hints = %+v, want only Enter", hints)
	}
}
