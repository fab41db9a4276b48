package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/csvx/internal/table"
	"github.com/oakwood-commons/csvx/internal/ui"
)

func TestTTYDevices(t *testing.T) {
	tests := map[string][2]string{
		"windows": {"CONIN$", "CONOUT$"},
		"linux":   {"/dev/tty", "/dev/tty"},
		"darwin":  {"/dev/tty", "/dev/tty"},
	}
	for goos, want := range tests {
		t.Run(goos, func(t *testing.T) {
			in, out := ttyDevices(goos)
			assert.Equal(t, want[0], in)
			assert.Equal(t, want[1], out)
		})
	}
}

// fakeTTY swaps the controlling terminal for two temp files.
func fakeTTY(t *testing.T) ttyPair {
	t.Helper()
	dir := t.TempDir()
	in, err := os.Create(filepath.Join(dir, "tty-in"))
	require.NoError(t, err)
	out, err := os.Create(filepath.Join(dir, "tty-out"))
	require.NoError(t, err)

	orig := openControllingTTY
	openControllingTTY = func() (ttyPair, error) { return ttyPair{in: in, out: out}, nil }
	t.Cleanup(func() { openControllingTTY = orig })
	return ttyPair{in: in, out: out}
}

func stubStdinIsPiped(t *testing.T, piped bool) {
	t.Helper()
	orig := stdinIsPiped
	stdinIsPiped = func() bool { return piped }
	t.Cleanup(func() { stdinIsPiped = orig })
}

func TestViewerProgramOptions_TerminalStdin(t *testing.T) {
	stubStdinIsPiped(t, false)
	orig := openControllingTTY
	openControllingTTY = func() (ttyPair, error) {
		t.Fatal("terminal opened although stdin is a terminal")
		return ttyPair{}, nil
	}
	defer func() { openControllingTTY = orig }()

	opts, stop := viewerProgramOptions(logr.Discard())
	assert.Nil(t, opts)
	assert.NotPanics(t, stop)
}

func TestViewerProgramOptions_PipedStdinReadsTTY(t *testing.T) {
	stubStdinIsPiped(t, true)
	tty := fakeTTY(t)

	opts, stop := viewerProgramOptions(logr.Discard())
	assert.Len(t, opts, 4)

	stop()
	assert.Error(t, tty.in.Close(), "stop should close the keyboard")
	assert.Error(t, tty.out.Close(), "stop should close the screen")
}

func TestViewerProgramOptions_NoTTY(t *testing.T) {
	stubStdinIsPiped(t, true)
	orig := openControllingTTY
	openControllingTTY = func() (ttyPair, error) { return ttyPair{}, errors.New("no tty") }
	defer func() { openControllingTTY = orig }()

	opts, stop := viewerProgramOptions(logr.Discard())
	assert.Nil(t, opts)
	assert.NotPanics(t, stop)
}

func TestResizeWatcherPoll(t *testing.T) {
	sizes := [][2]int{{80, 24}, {80, 24}, {100, 30}}
	calls := 0
	w := &resizeWatcher{fd: 3, size: func(fd int) (int, int, error) {
		assert.Equal(t, 3, fd)
		s := sizes[calls]
		calls++
		return s[0], s[1], nil
	}}

	msg, ok := w.poll()
	require.True(t, ok)
	assert.Equal(t, tea.WindowSizeMsg{Width: 80, Height: 24}, msg)

	_, ok = w.poll()
	assert.False(t, ok, "unchanged size is not reported")

	msg, ok = w.poll()
	require.True(t, ok)
	assert.Equal(t, tea.WindowSizeMsg{Width: 100, Height: 30}, msg)
}

func TestResizeWatcherPollIgnoresErrors(t *testing.T) {
	w := &resizeWatcher{size: func(int) (int, int, error) { return 0, 0, os.ErrInvalid }}
	_, ok := w.poll()
	assert.False(t, ok)
}

func TestResizeWatcherRunStopsOnCancel(t *testing.T) {
	w := &resizeWatcher{size: func(int) (int, int, error) { return 120, 40, nil }}
	tick := make(chan time.Time, 1)
	sent := make(chan tea.Msg, 1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.run(ctx, tick, func(msg tea.Msg) { sent <- msg })
		close(done)
	}()

	tick <- time.Now()
	select {
	case msg := <-sent:
		assert.Equal(t, tea.WindowSizeMsg{Width: 120, Height: 40}, msg)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for resize message")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestCLI_InteractiveWithPipedCSV(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(peopleCSV)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	origStdin := os.Stdin
	os.Stdin = r
	defer func() {
		os.Stdin = origStdin
		_ = r.Close()
	}()

	stubStdinIsPiped(t, true)
	tty := fakeTTY(t)

	var gotOpts int
	var gotQuery string
	var gotHeaders []string
	origRun := runViewer
	runViewer = func(tbl *table.Table, cfg ui.RunConfig, opts ...tea.ProgramOption) (*ui.Model, error) {
		gotOpts = len(opts)
		gotQuery = cfg.Query
		m := ui.NewModel(tbl, cfg.Options)
		m.SetQuery(cfg.Query)
		gotHeaders, _ = tbl.Project()
		return m, nil
	}
	defer func() { runViewer = origRun }()

	out := runCLI(t, "-i", "-q", "column=name")
	assert.Empty(t, out)
	assert.Equal(t, 4, gotOpts, "viewer should read keys from the terminal")
	assert.Equal(t, "column=name", gotQuery)
	assert.Equal(t, []string{"name"}, gotHeaders)
	assert.Error(t, tty.in.Close(), "terminal should be released after the viewer exits")
}
