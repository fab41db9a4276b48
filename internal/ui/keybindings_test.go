package ui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestActionForKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyPressMsg
		want Action
	}{
		{name: "ctrl+c", msg: tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}, want: ActionQuit},
		{name: "esc", msg: tea.KeyPressMsg{Code: tea.KeyEscape}, want: ActionReset},
		{name: "up", msg: tea.KeyPressMsg{Code: tea.KeyUp}, want: ActionUp},
		{name: "pgdown", msg: tea.KeyPressMsg{Code: tea.KeyPgDown}, want: ActionPageDown},
		{name: "letter", msg: tea.KeyPressMsg{Code: 'j', Text: "j"}, want: ActionNone},
		{name: "backspace", msg: tea.KeyPressMsg{Code: tea.KeyBackspace}, want: ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActionForKey(tt.msg); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
