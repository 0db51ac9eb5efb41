package main

import "math"

const (
	TrafficBaseSpeed    = 2.2
	TrafficSpawnY       = -120.0
	TrafficDespawnY     = ScreenHeight + 150
	TrafficSpawnNearY   = 200.0 // a car above this blocks its own lane
	TrafficSpawnExtendY = 330.0 // a car above this blocks adjacent lanes
)

// TrafficManager owns the oncoming traffic cars and the difficulty level
type TrafficManager struct {
	cars  []Car
	level int
}

// NewTrafficManager creates a manager at level 1
func NewTrafficManager() *TrafficManager {
	return &TrafficManager{level: 1}
}

// Cars returns the live traffic slice
func (m *TrafficManager) Cars() []Car {
	return m.cars
}

// At returns the car at index i, or nil if out of range
func (m *TrafficManager) At(i int) *Car {
	if i < 0 || i >= len(m.cars) {
		return nil
	}
	return &m.cars[i]
}

// Level returns the current difficulty level
func (m *TrafficManager) Level() int {
	return m.level
}

// SetLevel sets the difficulty level, clamped to [1, MaxLevel]
func (m *TrafficManager) SetLevel(level int) {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	m.level = level
}

// Reset drops all cars and returns to level 1
func (m *TrafficManager) Reset() {
	m.cars = m.cars[:0]
	m.level = 1
}

// SpawnAtLane adds a traffic car at the top of a lane with level-scaled
// speed plus jitter. Invalid lanes are a no-op.
func (m *TrafficManager) SpawnAtLane(lane int) {
	if lane < 0 || lane >= NumLanes {
		return
	}
	speed := TrafficBaseSpeed + math.Pow(float64(m.level), 1.15)*0.16 + randFloat()
	m.cars = append(m.cars, Car{
		X:     LaneCenterX(lane),
		Y:     TrafficSpawnY,
		Speed: speed,
		Lane:  lane,
	})
}

// ChooseSafeLane picks a spawn lane that keeps the traffic dodgeable: a
// candidate lane has no car near the top, and a safe lane additionally
// has no near-top car in an adjacent lane. Prefers safe lanes, falls
// back to candidates, returns -1 when everything is congested.
func (m *TrafficManager) ChooseSafeLane() int {
	var nearTop [NumLanes]bool
	var extended [NumLanes]bool
	for _, c := range m.cars {
		if c.Y < TrafficSpawnNearY {
			nearTop[c.Lane] = true
		}
		if c.Y < TrafficSpawnExtendY {
			extended[c.Lane] = true
		}
	}

	var candidates, safe []int
	for lane := 0; lane < NumLanes; lane++ {
		if nearTop[lane] {
			continue
		}
		candidates = append(candidates, lane)
		clear := true
		for adj := lane - 1; adj <= lane+1; adj++ {
			if adj < 0 || adj >= NumLanes || adj == lane {
				continue
			}
			if extended[adj] {
				clear = false
				break
			}
		}
		if clear {
			safe = append(safe, lane)
		}
	}

	if len(safe) > 0 {
		return safe[randInt(len(safe))]
	}
	if len(candidates) > 0 {
		return candidates[randInt(len(candidates))]
	}
	return -1
}

// Update advances all cars and despawns the ones past the bottom edge.
// slowMotion halves traffic speed.
func (m *TrafficManager) Update(slowMotion bool) {
	mult := 1.0
	if slowMotion {
		mult = 0.5
	}
	kept := m.cars[:0]
	for i := range m.cars {
		c := &m.cars[i]
		c.Update(mult)
		if c.Y > TrafficDespawnY {
			continue
		}
		kept = append(kept, *c)
	}
	m.cars = kept
}
