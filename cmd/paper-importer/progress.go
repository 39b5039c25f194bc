// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/pdiddy/paper-importer/internal/session"
)

// renderer prints session entries and, on a terminal, a progress bar.
// Error entries are skipped; the command's returned error reports them.
type renderer struct {
	mu  sync.Mutex
	out io.Writer
	bar *progressbar.ProgressBar
}

func newRenderer(out io.Writer) *renderer {
	r := &renderer{out: out}
	if isTerminal(out) {
		r.bar = progressbar.NewOptions(100,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription(session.StateIdle.String()),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
		)
	}
	return r
}

func (r *renderer) ProgressChanged(percent float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		_ = r.bar.Set(int(percent))
	}
}

func (r *renderer) Logged(e session.Entry) {
	if e.Level == session.LevelError {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		_ = r.bar.Clear()
	}
	fmt.Fprintf(r.out, "%s %s\n", levelMark(e.Level), e.Message)
}

func (r *renderer) StateChanged(s session.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		r.bar.Describe(s.String())
	}
}

// done removes the bar from the terminal.
func (r *renderer) done() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		_ = r.bar.Clear()
	}
}

func levelMark(l session.Level) string {
	switch l {
	case session.LevelSuccess:
		return "[ok]"
	case session.LevelWarning:
		return "[warn]"
	case session.LevelError:
		return "[error]"
	default:
		return "[info]"
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
