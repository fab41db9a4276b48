package ui

import (
	tea "charm.land/bubbletea/v2"
)

// Action is a viewer command bound to a key. Keys without an action edit the
// query.
type Action string

const (
	ActionNone     Action = ""
	ActionQuit     Action = "quit"
	ActionReset    Action = "reset"
	ActionUp       Action = "up"
	ActionDown     Action = "down"
	ActionPageUp   Action = "page_up"
	ActionPageDown Action = "page_down"
)

// keyActions maps key strings, as reported by tea.KeyPressMsg.String, to
// actions. Printable keys are never bound since they belong to the query.
var keyActions = map[string]Action{
	"ctrl+c": ActionQuit,
	"esc":    ActionReset,
	"up":     ActionUp,
	"down":   ActionDown,
	"pgup":   ActionPageUp,
	"pgdown": ActionPageDown,
}

// ActionForKey returns the action bound to msg, or ActionNone.
func ActionForKey(msg tea.KeyPressMsg) Action {
	return keyActions[msg.String()]
}
