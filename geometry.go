package main

// Box is an axis-aligned bounding box in world coordinates.
type Box struct {
	X, Y float64
	W, H float64
}

// Overlaps reports whether two boxes overlap with non-zero area.
// Boxes that only share an edge or a corner do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.X+o.W && b.X+b.W > o.X &&
		b.Y < o.Y+o.H && b.Y+b.H > o.Y
}
