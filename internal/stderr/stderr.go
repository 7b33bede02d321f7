//go:build !windows

// Package stderr captures output that audio backends (ALSA through oto)
// write straight to file descriptor 2 and sends it to the log instead, so
// it cannot tear the TUI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Capture is an active redirection of fd 2.
type Capture struct {
	orig int
	r, w *os.File
	done chan struct{}
	once sync.Once
}

// Redirect points fd 2 at a pipe whose lines are logged at warn level.
// Call it before the audio backend initializes.
func Redirect(log *zap.Logger) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	orig, err := unix.Dup(unix.Stderr)
	if err != nil {
		_ = r.Close()
		_ = w.Close()
		return nil, err
	}
	if err := unix.Dup2(int(w.Fd()), unix.Stderr); err != nil {
		_ = unix.Close(orig)
		_ = r.Close()
		_ = w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, r: r, w: w, done: make(chan struct{})}
	go c.drain(log.Named("stderr"))
	return c, nil
}

func (c *Capture) drain(log *zap.Logger) {
	defer close(c.done)
	sc := bufio.NewScanner(c.r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			log.Warn(line)
		}
	}
}

// Restore puts the original stderr back and waits until everything
// captured so far is logged. Safe to call more than once.
func (c *Capture) Restore() {
	c.once.Do(func() {
		_ = unix.Dup2(c.orig, unix.Stderr)
		_ = unix.Close(c.orig)
		_ = c.w.Close()
		<-c.done
		_ = c.r.Close()
	})
}
