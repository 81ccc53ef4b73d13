// Package ssh serves scene viewers over SSH. Every session is drawn on its
// own tcell screen, backed by a Tty that reads keys from the session channel
// and writes frames back to it.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// Tty is the tcell.Tty of one SSH session. The reported size follows the
// client's window-change requests, and every change fires the callback tcell
// registered so the viewer redraws at the new size.
type Tty struct {
	s gossh.Session

	mu       sync.Mutex
	size     tcell.WindowSize
	onResize func()
}

var _ tcell.Tty = (*Tty)(nil)

// NewTty wraps s, which must have requested a PTY. The Tty tracks window
// changes until the session's window channel closes.
func NewTty(s gossh.Session) (*Tty, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPTY
	}
	t := &Tty{s: s, size: sizeOf(pty.Window)}
	go t.follow(winCh)
	return t, nil
}

// sizeOf converts a client window, treating zero dimensions as one cell.
func sizeOf(w gossh.Window) tcell.WindowSize {
	return tcell.WindowSize{Width: max(w.Width, 1), Height: max(w.Height, 1)}
}

func (t *Tty) follow(winCh <-chan gossh.Window) {
	for w := range winCh {
		t.resize(w)
	}
}

func (t *Tty) resize(w gossh.Window) {
	t.mu.Lock()
	t.size = sizeOf(w)
	cb := t.onResize
	t.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// Read returns the client's keystrokes.
func (t *Tty) Read(b []byte) (int, error) { return t.s.Read(b) }

// Write sends frame output to the client.
func (t *Tty) Write(b []byte) (int, error) { return t.s.Write(b) }

// Close is a no-op: the server handler closes the channel once the viewer
// returns, after the screen has restored the client's terminal.
func (t *Tty) Close() error { return nil }

// Start, Stop and Drain have nothing to switch: the client's terminal is
// already raw and the channel has no read deadline.
func (t *Tty) Start() error { return nil }
func (t *Tty) Stop() error  { return nil }
func (t *Tty) Drain() error { return nil }

// WindowSize returns the client's last reported size in cells.
func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size, nil
}

// NotifyResize sets the callback run after each window change. A nil cb
// unregisters it.
func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	t.mu.Unlock()
}
