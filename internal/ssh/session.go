package ssh

import (
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/rotisserie/eris"
)

// DefaultTerm is used when the client sends no TERM or one outside
// AllowedTerms.
const DefaultTerm = "xterm-256color"

// maxNameBytes bounds player names shown in the HUD.
const maxNameBytes = 16

// ErrNoPTY is returned for sessions opened without a terminal.
var ErrNoPTY = eris.New("session has no pty")

// AllowedTerms lists the terminal types whose terminfo is trusted. TERM is
// copied into the process environment, so anything else falls back to
// DefaultTerm.
var AllowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

// TermFor picks the terminal type from a session environment.
func TermFor(env []string) string {
	for _, kv := range env {
		if term, ok := strings.CutPrefix(kv, "TERM="); ok {
			if AllowedTerms[term] {
				return term
			}
			break
		}
	}
	return DefaultTerm
}

// SanitizeName strips control characters from an SSH user name and
// truncates it to 16 bytes without splitting a rune.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			continue
		}
		if b.Len()+len(string(r)) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// termMu protects os.Setenv("TERM") around screen creation: tcell reads
// terminfo through the process environment.
var termMu sync.Mutex

// NewScreen creates and initializes a tcell screen for session s.
func NewScreen(s gossh.Session) (tcell.Screen, error) {
	tty, err := NewTty(s)
	if err != nil {
		return nil, err
	}

	termMu.Lock()
	_ = os.Setenv("TERM", TermFor(s.Environ()))
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, eris.Wrap(err, "terminal setup")
	}
	if err := screen.Init(); err != nil {
		return nil, eris.Wrap(err, "screen init")
	}
	return screen, nil
}
