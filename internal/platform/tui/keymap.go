package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// DefaultKeyHold is how long a key counts as held after its last press.
// Terminals report presses and auto-repeats but never releases, so a held
// key is one that keeps repeating within this window.
const DefaultKeyHold = 120 * time.Millisecond

// GameKeyMap defines the key bindings while playing.
type GameKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Launch  key.Binding
	Confirm key.Binding
	Runs    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Launch, k.Confirm, k.Runs, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Launch},
		{k.Up, k.Down, k.Confirm},
		{k.Runs, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("a", "left", "h"),
			key.WithHelp("a/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right", "l"),
			key.WithHelp("d/→", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("w", "up", "k"),
			key.WithHelp("w/↑", "next level"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down", "j"),
			key.WithHelp("s/↓", "prev level"),
		),
		Launch: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "launch"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Runs: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "runs"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a game key.
// Returns false for keys the game does not use.
func (k GameKeyMap) MapKey(msg tea.KeyMsg) (core.Key, bool) {
	switch {
	case key.Matches(msg, k.Left):
		return core.KeyLeft, true
	case key.Matches(msg, k.Right):
		return core.KeyRight, true
	case key.Matches(msg, k.Up):
		return core.KeyUp, true
	case key.Matches(msg, k.Down):
		return core.KeyDown, true
	case key.Matches(msg, k.Launch):
		return core.KeyLaunch, true
	case key.Matches(msg, k.Confirm):
		return core.KeyConfirm, true
	}
	return 0, false
}

// KeyLatch turns a stream of key presses into held/released key state.
// A key stays held until no press for it arrives within the hold window.
type KeyLatch struct {
	hold  time.Duration
	last  [core.KeyCount]time.Time
	state core.KeyState
}

// NewKeyLatch creates a latch with the given hold window.
func NewKeyLatch(hold time.Duration) *KeyLatch {
	if hold <= 0 {
		hold = DefaultKeyHold
	}
	return &KeyLatch{hold: hold}
}

// Press records a press (or auto-repeat) of k at now.
func (l *KeyLatch) Press(k core.Key, now time.Time) {
	if k < 0 || k >= core.KeyCount {
		return
	}
	l.last[k] = now
	l.state.Press(k)
}

// Expire releases every key whose last press is older than the hold window.
func (l *KeyLatch) Expire(now time.Time) {
	for k := range core.KeyCount {
		if l.state.Held(k) && now.Sub(l.last[k]) >= l.hold {
			l.state.Release(k)
		}
	}
}

// State returns the key state to hand to the game.
func (l *KeyLatch) State() *core.KeyState {
	return &l.state
}

// Reset releases every key.
func (l *KeyLatch) Reset() {
	l.state.Reset()
	l.last = [core.KeyCount]time.Time{}
}
