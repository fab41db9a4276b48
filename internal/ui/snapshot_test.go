package ui

import (
	"strings"
	"testing"
)

func TestRenderSnapshotWithQuery(t *testing.T) {
	rendered := RenderSnapshot(sampleTable(), SnapshotConfig{
		Width:   40,
		Height:  10,
		Query:   "column=name",
		Options: Options{NoColor: true, Prompt: "> "},
	})
	lines := strings.Split(rendered, "\n")
	if !strings.HasPrefix(lines[0], "> ") || !strings.Contains(lines[0], "column=name") {
		t.Fatalf("expected query line, got %q", lines[0])
	}
	want := []string{"name", "Alice", "Bob", "Carol"}
	for i, w := range want {
		if lines[i+1] != w {
			t.Fatalf("line %d: expected %q, got %q\n%s", i+1, w, lines[i+1], rendered)
		}
	}
}

func TestRenderSnapshotStartKeys(t *testing.T) {
	rendered := RenderSnapshot(sampleTable(), SnapshotConfig{
		Width:     40,
		Height:    4,
		StartKeys: []string{"column=id,age", "<Down>"},
		Options:   Options{NoColor: true},
	})
	if !strings.Contains(rendered, "2    | 4") {
		t.Fatalf("expected scrolled row, got:\n%s", rendered)
	}
	if strings.Contains(rendered, "Alice") {
		t.Fatalf("expected name column hidden, got:\n%s", rendered)
	}
}

func TestRenderSnapshotDefaults(t *testing.T) {
	rendered := RenderSnapshot(sampleTable(), SnapshotConfig{Options: Options{NoColor: true}})
	if !strings.Contains(rendered, "id   | name | age") {
		t.Fatalf("expected full header, got:\n%s", rendered)
	}
}
