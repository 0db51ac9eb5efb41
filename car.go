package main

const (
	CarWidth     = 60.0
	CarHeight    = 100.0
	CarSmoothing = 0.15 // lane-change easing factor per tick
)

// Car is one vehicle on the road: either the player, easing toward its
// lane target, or a traffic car moving straight down at fixed speed
type Car struct {
	X, Y    float64
	TargetX float64
	TargetY float64
	Speed   float64
	Lane    int
	Player  bool
}

// Update advances the car one tick. speedMult scales traffic speed
// (slow-motion); the player is unaffected by it.
func (c *Car) Update(speedMult float64) {
	if c.Player {
		c.X += (c.TargetX - c.X) * CarSmoothing
		c.Y += (c.TargetY - c.Y) * CarSmoothing
		return
	}
	c.Y += c.Speed * speedMult
}

// SetLaneTarget points the player car at the center of a lane
func (c *Car) SetLaneTarget(lane int) {
	c.Lane = lane
	c.TargetX = LaneCenterX(lane)
}

// Box returns the car's bounding box, centered on its position
func (c Car) Box() Box {
	return Box{X: c.X - CarWidth/2, Y: c.Y - CarHeight/2, W: CarWidth, H: CarHeight}
}

// ToState converts to protocol state
func (c Car) ToState() CarState {
	return CarState{
		X:    round1(c.X),
		Y:    round1(c.Y),
		Lane: c.Lane,
	}
}
