package core

import "fmt"

// Color is an RGB tint with components in [0, 1].
// The zero value means "no tint" and renders with the terminal default.
type Color struct {
	R, G, B float64
}

// RGB is shorthand for constructing a Color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Predefined tints for game elements.
var (
	ColorDefault = Color{}
	ColorWhite   = RGB(1, 1, 1)
	ColorGray    = RGB(0.55, 0.55, 0.55)
)

// IsDefault reports whether c is the zero "no tint" value.
func (c Color) IsDefault() bool {
	return c == Color{}
}

// Hex returns the color as a "#rrggbb" string suitable for lipgloss.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

// Rotate returns the color with its channels shifted by n places (R->G->B).
// Used for the chaos post-processing effect.
func (c Color) Rotate(n int) Color {
	switch ((n % 3) + 3) % 3 {
	case 1:
		return Color{R: c.B, G: c.R, B: c.G}
	case 2:
		return Color{R: c.G, G: c.B, B: c.R}
	default:
		return c
	}
}

func channel(v float64) int {
	return int(ClampF(v, 0, 1)*255 + 0.5)
}
