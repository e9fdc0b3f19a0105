// Package alert runs the due-task scheduler in the foreground and announces
// due tasks on the terminal.
package alert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"tableflip.dev/planner/pkg/notify"
	"tableflip.dev/planner/pkg/task"
)

// Terminal is a notify.Sink that prints a due task and rings the bell.
// When In is an interactive terminal the alert stays pending until the
// user presses enter; otherwise it is acknowledged right away.
//
// One goroutine reads lines from In for the life of the Terminal. Closing
// Done releases any alert still waiting for enter. The reader exits after
// the next line it reads.
type Terminal struct {
	Out  io.Writer
	In   *os.File
	Done <-chan struct{}

	once    sync.Once
	lines   chan struct{}
	pending atomic.Int32
	waiting sync.WaitGroup
}

func (t *Terminal) out() io.Writer {
	if t.Out != nil {
		return t.Out
	}
	return color.Output
}

func (t *Terminal) interactive() bool {
	return t.In != nil && isatty.IsTerminal(t.In.Fd())
}

// Due implements notify.Sink.
func (t *Terminal) Due(tk task.Task, ack func()) {
	w := t.out()
	head := color.New(color.FgRed, color.Bold)
	faint := color.New(color.Faint)

	_, _ = fmt.Fprint(w, "\a")
	_, _ = head.Fprintf(w, "Task Due: %s\n", tk.Title)
	if tk.Description != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", tk.Description)
	}
	if tk.DueDate.Set() {
		_, _ = faint.Fprintf(w, "  due %s\n", tk.DueDate.Local().Format("Jan 2, 2006 15:04"))
	}

	if !t.interactive() {
		ack()
		return
	}
	_, _ = faint.Fprintln(w, "  press enter to dismiss")
	t.awaitEnter(t.In, ack)
}

// awaitEnter calls ack on the next line read from r, unless Done closes
// first. Lines read while no alert is waiting are dropped.
func (t *Terminal) awaitEnter(r io.Reader, ack func()) {
	t.once.Do(func() {
		t.lines = make(chan struct{})
		go t.readLines(r)
	})
	t.pending.Add(1)
	t.waiting.Add(1)
	go func() {
		defer t.waiting.Done()
		defer t.pending.Add(-1)
		select {
		case <-t.lines:
			ack()
		case <-t.Done:
		}
	}()
}

// readLines closes lines on EOF so waiting alerts are acknowledged.
func (t *Terminal) readLines(r io.Reader) {
	br := bufio.NewReader(r)
	for {
		if _, err := br.ReadString('\n'); err != nil {
			close(t.lines)
			return
		}
		select {
		case <-t.Done:
			return
		default:
		}
		if t.pending.Load() == 0 {
			continue
		}
		select {
		case t.lines <- struct{}{}:
		case <-t.Done:
			return
		}
	}
}

// Watch polls until ctx is done.
type Watch struct {
	Scheduler *notify.Scheduler
	Source    notify.Source
	Sink      notify.Sink
	Interval  time.Duration
}

// Do starts the runner and blocks until ctx is cancelled.
func (w *Watch) Do(ctx context.Context) error {
	if term, ok := w.Sink.(*Terminal); ok && term.Done == nil {
		term.Done = ctx.Done()
	}
	r := &notify.Runner{
		Scheduler: w.Scheduler,
		Source:    w.Source,
		Sink:      w.Sink,
		Interval:  w.Interval,
	}
	if err := r.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	r.Stop()
	return nil
}
