package main

import (
	"math"
	"testing"
)

func TestTrafficSpawnInvalidLaneNoOp(t *testing.T) {
	m := NewTrafficManager()
	m.SpawnAtLane(-1)
	m.SpawnAtLane(NumLanes)
	if len(m.Cars()) != 0 {
		t.Errorf("invalid lanes should spawn nothing, got %d cars", len(m.Cars()))
	}
}

func TestTrafficSpawnSpeedScalesWithLevel(t *testing.T) {
	for _, level := range []int{1, 25, 100} {
		m := NewTrafficManager()
		m.SetLevel(level)
		m.SpawnAtLane(0)

		base := TrafficBaseSpeed + math.Pow(float64(level), 1.15)*0.16
		speed := m.Cars()[0].Speed
		if speed < base || speed >= base+1 {
			t.Errorf("level %d speed = %f, want [%f, %f)", level, speed, base, base+1)
		}
	}
}

func TestTrafficSpawnPosition(t *testing.T) {
	m := NewTrafficManager()
	m.SpawnAtLane(3)
	c := m.Cars()[0]
	if c.X != LaneCenterX(3) {
		t.Errorf("spawn X = %f, want lane center %f", c.X, LaneCenterX(3))
	}
	if c.Y >= 0 {
		t.Errorf("spawn Y = %f, want above the screen", c.Y)
	}
}

func TestTrafficSetLevelClamp(t *testing.T) {
	m := NewTrafficManager()
	m.SetLevel(0)
	if m.Level() != 1 {
		t.Errorf("level clamped low = %d, want 1", m.Level())
	}
	m.SetLevel(MaxLevel + 50)
	if m.Level() != MaxLevel {
		t.Errorf("level clamped high = %d, want %d", m.Level(), MaxLevel)
	}
}

func TestTrafficChooseSafeLane(t *testing.T) {
	m := NewTrafficManager()
	// Lanes 0-3 have cars near the top; only lane 4 is a candidate
	for lane := 0; lane < 4; lane++ {
		m.cars = append(m.cars, Car{X: LaneCenterX(lane), Y: 100, Lane: lane})
	}
	for i := 0; i < 10; i++ {
		if got := m.ChooseSafeLane(); got != 4 {
			t.Fatalf("ChooseSafeLane = %d, want 4", got)
		}
	}
}

func TestTrafficChooseSafeLaneAllBlocked(t *testing.T) {
	m := NewTrafficManager()
	for lane := 0; lane < NumLanes; lane++ {
		m.cars = append(m.cars, Car{X: LaneCenterX(lane), Y: 50, Lane: lane})
	}
	if got := m.ChooseSafeLane(); got != -1 {
		t.Errorf("ChooseSafeLane with all lanes blocked = %d, want -1", got)
	}
}

func TestTrafficChooseSafeLanePrefersNonAdjacent(t *testing.T) {
	m := NewTrafficManager()
	// A car deep in lane 1 (past near-top but within the extended zone)
	// makes lanes 0 and 2 unsafe but still candidates; lane 4 is safe
	m.cars = append(m.cars, Car{X: LaneCenterX(1), Y: 250, Lane: 1})
	m.cars = append(m.cars, Car{X: LaneCenterX(3), Y: 250, Lane: 3})
	for i := 0; i < 20; i++ {
		got := m.ChooseSafeLane()
		if got == -1 {
			t.Fatal("expected a lane, got -1")
		}
		// Lanes 0, 2 and 4 border an extended-zone car, so only the
		// occupied lanes themselves are safe (the cars are past the
		// near-top window)
		if got != 1 && got != 3 {
			t.Fatalf("expected a safe lane (1 or 3), got %d", got)
		}
	}
}

func TestTrafficDespawn(t *testing.T) {
	m := NewTrafficManager()
	m.cars = append(m.cars, Car{X: LaneCenterX(0), Y: TrafficDespawnY + 1, Lane: 0})
	m.cars = append(m.cars, Car{X: LaneCenterX(1), Y: 100, Speed: 2, Lane: 1})

	m.Update(false)
	if len(m.Cars()) != 1 {
		t.Fatalf("expected off-screen car despawned, got %d cars", len(m.Cars()))
	}
	if m.Cars()[0].Lane != 1 {
		t.Error("wrong car despawned")
	}
}

func TestTrafficSlowMotionHalvesSpeed(t *testing.T) {
	m := NewTrafficManager()
	m.cars = append(m.cars, Car{Y: 100, Speed: 4, Lane: 0})

	m.Update(true)
	if got := m.Cars()[0].Y; got != 102 {
		t.Errorf("slow-motion Y = %f, want 102", got)
	}
	m.Update(false)
	if got := m.Cars()[0].Y; got != 106 {
		t.Errorf("normal Y = %f, want 106", got)
	}
}

func TestPowerUpSpawnInvalidLaneNoOp(t *testing.T) {
	m := NewPowerUpManager()
	m.SpawnAtLane(-1)
	m.SpawnAtLane(NumLanes)
	if len(m.PowerUps()) != 0 {
		t.Errorf("invalid lanes should spawn nothing, got %d", len(m.PowerUps()))
	}
}

func TestPowerUpFallAndDespawn(t *testing.T) {
	m := NewPowerUpManager()
	m.SpawnAtLane(2)
	y0 := m.PowerUps()[0].Y

	m.Update()
	if got := m.PowerUps()[0].Y; got != y0+PowerUpFallSpeed {
		t.Errorf("Y after update = %f, want %f", got, y0+PowerUpFallSpeed)
	}

	m.powerUps[0].Y = PowerUpDespawnY + 1
	m.Update()
	if len(m.PowerUps()) != 0 {
		t.Error("off-screen pickup should despawn")
	}
}

func TestPowerUpCollectedRemoved(t *testing.T) {
	m := NewPowerUpManager()
	m.SpawnAtLane(1)
	m.powerUps[0].Collected = true
	m.Update()
	if len(m.PowerUps()) != 0 {
		t.Error("collected pickup should be removed on update")
	}
}

func TestPowerUpChooseFreeLane(t *testing.T) {
	traffic := NewTrafficManager()
	// Block every lane but 2
	for _, lane := range []int{0, 1, 3, 4} {
		traffic.cars = append(traffic.cars, Car{X: LaneCenterX(lane), Y: 100, Lane: lane})
	}

	m := NewPowerUpManager()
	for i := 0; i < 10; i++ {
		if got := m.ChooseFreeLane(traffic); got != 2 {
			t.Fatalf("ChooseFreeLane = %d, want 2", got)
		}
	}

	traffic.cars = append(traffic.cars, Car{X: LaneCenterX(2), Y: 100, Lane: 2})
	if got := m.ChooseFreeLane(traffic); got != -1 {
		t.Errorf("all lanes blocked, ChooseFreeLane = %d, want -1", got)
	}
}
