package core

// Key is a semantic game key, abstracted from physical key presses.
type Key int

const (
	KeyConfirm Key = iota // Enter - start level, leave win screen
	KeyUp                 // W, Up arrow - next level in menu
	KeyDown               // S, Down arrow - previous level in menu
	KeyLeft               // A, Left arrow - move paddle left
	KeyRight              // D, Right arrow - move paddle right
	KeyLaunch             // Space - release the ball
	KeyCount              // Sentinel for array sizing
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyConfirm:
		return "Confirm"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyLaunch:
		return "Launch"
	default:
		return "Unknown"
	}
}

// KeyState is the per-frame keyboard state consumed by the game.
//
// Down holds level-triggered state (is the key held right now). Processed
// marks presses already acted upon, so edge-triggered actions such as menu
// navigation fire once per press. Processed is cleared when the key is
// released.
type KeyState struct {
	Down      [KeyCount]bool
	Processed [KeyCount]bool
}

// Press marks a key as held.
func (s *KeyState) Press(k Key) {
	if k < 0 || k >= KeyCount {
		return
	}
	s.Down[k] = true
}

// Release marks a key as no longer held and re-arms its edge trigger.
func (s *KeyState) Release(k Key) {
	if k < 0 || k >= KeyCount {
		return
	}
	s.Down[k] = false
	s.Processed[k] = false
}

// Held reports whether a key is currently held.
func (s *KeyState) Held(k Key) bool {
	if k < 0 || k >= KeyCount {
		return false
	}
	return s.Down[k]
}

// Consume reports whether a key is held and not yet processed, marking it
// processed if so.
func (s *KeyState) Consume(k Key) bool {
	if !s.Held(k) || s.Processed[k] {
		return false
	}
	s.Processed[k] = true
	return true
}

// Reset releases every key.
func (s *KeyState) Reset() {
	*s = KeyState{}
}
