package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"golang.org/x/term"

	"github.com/oakwood-commons/csvx/internal/ui"
)

const resizePollInterval = 250 * time.Millisecond

var (
	stdinIsPiped = func() bool {
		stat, err := os.Stdin.Stat()
		return err == nil && stat.Mode()&os.ModeCharDevice == 0
	}
	openControllingTTY = openTTY
	termGetSize        = term.GetSize
	runViewer          = ui.Run
)

// ttyPair is the keyboard and screen of the controlling terminal.
type ttyPair struct {
	in  *os.File
	out *os.File
}

func (p ttyPair) Close() {
	_ = p.in.Close()
	if p.out != p.in {
		_ = p.out.Close()
	}
}

func ttyDevices(goos string) (in, out string) {
	if goos == "windows" {
		return "CONIN$", "CONOUT$"
	}
	return "/dev/tty", "/dev/tty"
}

func openTTY() (ttyPair, error) {
	inName, outName := ttyDevices(runtime.GOOS)
	in, err := os.OpenFile(inName, os.O_RDWR, 0)
	if err != nil {
		return ttyPair{}, fmt.Errorf("open %s: %w", inName, err)
	}
	if outName == inName {
		return ttyPair{in: in, out: in}, nil
	}
	out, err := os.OpenFile(outName, os.O_RDWR, 0)
	if err != nil {
		_ = in.Close()
		return ttyPair{}, fmt.Errorf("open %s: %w", outName, err)
	}
	return ttyPair{in: in, out: out}, nil
}

// viewerProgramOptions returns extra program options for the viewer. When the
// CSV was piped in, stdin is spent, so keys are read from the controlling
// terminal instead. stop must be called once the viewer exits.
func viewerProgramOptions(lgr logr.Logger) (opts []tea.ProgramOption, stop func()) {
	if !stdinIsPiped() {
		return nil, func() {}
	}
	tty, err := openControllingTTY()
	if err != nil {
		lgr.Info("no controlling terminal, keys will not reach the viewer", "error", err.Error())
		return nil, func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	watcher := &resizeWatcher{fd: int(tty.out.Fd()), size: termGetSize}
	opts = []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(tty.in),
		tea.WithOutput(tty.out),
		func(p *tea.Program) {
			go func() {
				ticker := time.NewTicker(resizePollInterval)
				defer ticker.Stop()
				watcher.run(ctx, ticker.C, p.Send)
			}()
		},
	}
	return opts, func() {
		cancel()
		tty.Close()
	}
}

// resizeWatcher polls the size of a terminal that is not stdin.
type resizeWatcher struct {
	fd   int
	size func(fd int) (width, height int, err error)

	width, height int
}

// poll reports the terminal size when it differs from the last one seen.
func (r *resizeWatcher) poll() (tea.WindowSizeMsg, bool) {
	w, h, err := r.size(r.fd)
	if err != nil || (w == r.width && h == r.height) {
		return tea.WindowSizeMsg{}, false
	}
	r.width, r.height = w, h
	return tea.WindowSizeMsg{Width: w, Height: h}, true
}

func (r *resizeWatcher) run(ctx context.Context, tick <-chan time.Time, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			if msg, ok := r.poll(); ok {
				send(msg)
			}
		}
	}
}
