package main

// World and road layout. The road is centered horizontally with five
// lanes of equal width.
const (
	ScreenWidth  = 1000.0
	ScreenHeight = 650.0
	RoadWidth    = 600.0
	RoadX        = (ScreenWidth - RoadWidth) / 2
	LaneWidth    = 120.0
	NumLanes     = 5
)

// Progression
const (
	MaxLevel           = 100
	TopKScores         = 10
	LevelScoreInterval = 150 // points per level
)

// Spatial index tuning
const (
	QuadCapacity = 8
	QuadMaxDepth = 8
)

// Run state
const (
	StartLives      = 3
	StartLane       = 2
	InvincibleTicks = 80
)

// LaneCenterX returns the x coordinate of the center of a lane (0-based)
func LaneCenterX(lane int) float64 {
	return RoadX + LaneWidth/2 + float64(lane)*LaneWidth
}
