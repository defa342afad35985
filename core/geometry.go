package core

import "math"

// Vec2 is a play-field position, velocity or size in logical units
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the euclidean length
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between two points
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

// Normalize returns the unit vector, zero vector stays zero
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rect is an axis-aligned box anchored at its top-left corner
type Rect struct {
	Pos  Vec2
	Size Vec2
}

// RectAround builds a box of the given size centered on c
func RectAround(c Vec2, size Vec2) Rect {
	return Rect{Pos: Vec2{c.X - size.X/2, c.Y - size.Y/2}, Size: size}
}

func (r Rect) Left() float64   { return r.Pos.X }
func (r Rect) Right() float64  { return r.Pos.X + r.Size.X }
func (r Rect) Top() float64    { return r.Pos.Y }
func (r Rect) Bottom() float64 { return r.Pos.Y + r.Size.Y }

// Center returns the box midpoint
func (r Rect) Center() Vec2 {
	return Vec2{r.Pos.X + r.Size.X/2, r.Pos.Y + r.Size.Y/2}
}

// Overlaps reports strict AABB intersection, touching edges do not count
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() < o.Right() && o.Left() < r.Right() &&
		r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// Scaled shrinks or grows the box around its center
func (r Rect) Scaled(s float64) Rect {
	return RectAround(r.Center(), r.Size.Scale(s))
}

// CirclesOverlap is the combined-radius distance test
func CirclesOverlap(a Vec2, ra float64, b Vec2, rb float64) bool {
	return a.Dist(b) <= ra+rb
}

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
