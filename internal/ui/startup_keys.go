package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys feeds simulated keypresses to m. Each entry may mix literal
// text with <Key> tokens, e.g. "column=name<BS>" or "<Down><Down>". A leading
// backslash makes the whole entry literal.
func ApplyStartupKeys(m *Model, keys []string) {
	if m == nil {
		return
	}
	for _, raw := range keys {
		if raw == "" {
			continue
		}
		if literal, ok := strings.CutPrefix(raw, `\`); ok {
			typeText(m, literal)
			continue
		}
		for _, seg := range parseTokenSegments(raw) {
			if !seg.isKey {
				typeText(m, seg.text)
				continue
			}
			msgs, ok := keyMsgsFromToken(seg.text)
			if !ok {
				typeText(m, seg.text)
				continue
			}
			for _, msg := range msgs {
				m.Update(msg)
			}
		}
	}
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

type tokenSegment struct {
	text  string
	isKey bool
}

// parseTokenSegments splits "<F1>rwo" into [<F1>, rwo]. An unclosed '<' is
// literal text.
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token

	for len(remaining) > 0 {
		startIdx := strings.Index(remaining, "<")
		if startIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if startIdx > 0 {
			segments = append(segments, tokenSegment{text: remaining[:startIdx]})
		}

		endIdx := strings.Index(remaining[startIdx:], ">")
		if endIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining[startIdx:]})
			break
		}

		segments = append(segments, tokenSegment{text: remaining[startIdx : startIdx+endIdx+1], isKey: true})
		remaining = remaining[startIdx+endIdx+1:]
	}

	return segments
}

// keyMsgsFromToken maps a <Key> token to key messages.
func keyMsgsFromToken(token string) ([]tea.KeyPressMsg, bool) {
	inner := strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">")
	switch strings.ToLower(inner) {
	case "esc", "c-[", "escape":
		return []tea.KeyPressMsg{{Code: tea.KeyEscape}}, true
	case "cr", "enter", "return":
		return []tea.KeyPressMsg{{Code: tea.KeyEnter}}, true
	case "tab":
		return []tea.KeyPressMsg{{Code: tea.KeyTab}}, true
	case "space":
		return []tea.KeyPressMsg{{Code: ' ', Text: " "}}, true
	case "bs", "backspace":
		return []tea.KeyPressMsg{{Code: tea.KeyBackspace}}, true
	case "left":
		return []tea.KeyPressMsg{{Code: tea.KeyLeft}}, true
	case "right":
		return []tea.KeyPressMsg{{Code: tea.KeyRight}}, true
	case "up":
		return []tea.KeyPressMsg{{Code: tea.KeyUp}}, true
	case "down":
		return []tea.KeyPressMsg{{Code: tea.KeyDown}}, true
	case "pgup", "pageup":
		return []tea.KeyPressMsg{{Code: tea.KeyPgUp}}, true
	case "pgdown", "pagedown":
		return []tea.KeyPressMsg{{Code: tea.KeyPgDown}}, true
	case "home":
		return []tea.KeyPressMsg{{Code: tea.KeyHome}}, true
	case "end":
		return []tea.KeyPressMsg{{Code: tea.KeyEnd}}, true
	case "lt":
		return []tea.KeyPressMsg{{Code: '<', Text: "<"}}, true
	case "c-c":
		return []tea.KeyPressMsg{{Code: 'c', Mod: tea.ModCtrl}}, true
	}
	return nil, false
}
