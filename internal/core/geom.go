// Package core provides fundamental types and utilities for the breakout platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector in the direction of v.
// The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Rect is an axis-aligned bounding box. Pos is the top-left corner.
type Rect struct {
	Pos  Vec2
	Size Vec2
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Pos: Vec2{X: x, Y: y}, Size: Vec2{X: w, Y: h}}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.Pos.X + r.Size.X
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Pos.Y + r.Size.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.Pos.X + r.Size.X/2, Y: r.Pos.Y + r.Size.Y/2}
}

// Circle is a circular body. Pos is the top-left of its bounding box,
// so the center sits at Pos + Radius on both axes.
type Circle struct {
	Pos    Vec2
	Radius float64
}

// Center returns the circle center.
func (c Circle) Center() Vec2 {
	return Vec2{X: c.Pos.X + c.Radius, Y: c.Pos.Y + c.Radius}
}

// Bounds returns the circle's bounding box.
func (c Circle) Bounds() Rect {
	return Rect{Pos: c.Pos, Size: Vec2{X: c.Radius * 2, Y: c.Radius * 2}}
}

// Direction is the cardinal side a collision vector points at.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return "Unknown"
	}
}

// compass holds the unit vector of each Direction, in enumeration order.
var compass = [...]Vec2{
	Up:    {X: 0, Y: 1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: -1},
	Left:  {X: -1, Y: 0},
}

// ClassifyDirection returns the cardinal direction closest to v.
// Ties go to the lower-enumerated direction; the zero vector yields Up.
func ClassifyDirection(v Vec2) Direction {
	if v.X == 0 && v.Y == 0 {
		return Up
	}
	n := v.Normalize()
	best := Up
	bestDot := math.Inf(-1)
	for d, unit := range compass {
		if dot := n.Dot(unit); dot > bestDot {
			bestDot = dot
			best = Direction(d)
		}
	}
	return best
}

// Collision describes a circle-vs-rectangle contact.
type Collision struct {
	Direction   Direction
	Penetration Vec2 // closest point on the rect minus the circle center
}

// RectOverlap reports whether a and b overlap on both axes (edges inclusive).
func RectOverlap(a, b Rect) bool {
	overlapX := a.Right() >= b.Pos.X && b.Right() >= a.Pos.X
	overlapY := a.Bottom() >= b.Pos.Y && b.Bottom() >= a.Pos.Y
	return overlapX && overlapY
}

// CircleRectCollide tests a circle against a rectangle using the closest
// point on the rectangle to the circle center. The second return value is
// false when they do not touch, in which case the Collision is zero-valued.
func CircleRectCollide(c Circle, r Rect) (Collision, bool) {
	center := c.Center()
	half := r.Size.Scale(0.5)
	rectCenter := r.Pos.Add(half)

	diff := center.Sub(rectCenter)
	clamped := Vec2{
		X: ClampF(diff.X, -half.X, half.X),
		Y: ClampF(diff.Y, -half.Y, half.Y),
	}
	closest := rectCenter.Add(clamped)
	penetration := closest.Sub(center)

	if penetration.Len() > c.Radius {
		return Collision{Direction: Up}, false
	}
	return Collision{
		Direction:   ClassifyDirection(penetration),
		Penetration: penetration,
	}, true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
