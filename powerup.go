package main

// PowerUpType identifies a power-up kind
type PowerUpType int

const (
	PowerShield PowerUpType = iota
	PowerSlowMotion
	PowerScoreBoost
	PowerExtraLife
)

const (
	PowerUpSize      = 40.0
	PowerUpFallSpeed = 2.5
	PowerUpSpawnY    = -80.0
	PowerUpDespawnY  = ScreenHeight + 120
	PowerUpSafeY     = 320.0 // a lane with a car above this is not free
	ExtraLifeBonus   = 50
	BoostMultiplier  = 2
)

// PowerUpDef describes one catalog entry
type PowerUpDef struct {
	Type     PowerUpType
	Name     string
	Duration uint64 // effect ticks; 0 = instant
}

// PowerUpCatalog lists every power-up the game can spawn
var PowerUpCatalog = []PowerUpDef{
	{Type: PowerShield, Name: "shield", Duration: 350},
	{Type: PowerSlowMotion, Name: "slowmo", Duration: 250},
	{Type: PowerScoreBoost, Name: "boost", Duration: 300},
	{Type: PowerExtraLife, Name: "life", Duration: 0},
}

// PowerUpCatalogMap indexes the catalog by type
var PowerUpCatalogMap map[PowerUpType]PowerUpDef

func init() {
	PowerUpCatalogMap = make(map[PowerUpType]PowerUpDef, len(PowerUpCatalog))
	for _, def := range PowerUpCatalog {
		PowerUpCatalogMap[def.Type] = def
	}
}

// PowerUp is a falling pickup
type PowerUp struct {
	X, Y      float64
	Type      PowerUpType
	Collected bool
}

// Update advances the pickup one tick
func (p *PowerUp) Update() {
	p.Y += PowerUpFallSpeed
}

// Box returns the pickup's bounding box, centered on its position
func (p PowerUp) Box() Box {
	return Box{X: p.X - PowerUpSize/2, Y: p.Y - PowerUpSize/2, W: PowerUpSize, H: PowerUpSize}
}

// ActiveEffect is a running timed power-up effect
type ActiveEffect struct {
	Type      PowerUpType
	TicksLeft uint64
}

// PowerUpManager owns the falling pickups
type PowerUpManager struct {
	powerUps []PowerUp
}

// NewPowerUpManager creates an empty manager
func NewPowerUpManager() *PowerUpManager {
	return &PowerUpManager{}
}

// Reset drops all pickups
func (m *PowerUpManager) Reset() {
	m.powerUps = m.powerUps[:0]
}

// PowerUps returns the live pickup slice
func (m *PowerUpManager) PowerUps() []PowerUp {
	return m.powerUps
}

// At returns the pickup at index i, or nil if out of range
func (m *PowerUpManager) At(i int) *PowerUp {
	if i < 0 || i >= len(m.powerUps) {
		return nil
	}
	return &m.powerUps[i]
}

// SpawnAtLane drops a random pickup at the top of a lane. Invalid lanes
// are a no-op.
func (m *PowerUpManager) SpawnAtLane(lane int) {
	if lane < 0 || lane >= NumLanes {
		return
	}
	def := PowerUpCatalog[randInt(len(PowerUpCatalog))]
	m.powerUps = append(m.powerUps, PowerUp{
		X:    LaneCenterX(lane),
		Y:    PowerUpSpawnY,
		Type: def.Type,
	})
}

// ChooseFreeLane picks a random lane with no traffic near the top, or
// -1 when every lane is blocked
func (m *PowerUpManager) ChooseFreeLane(traffic *TrafficManager) int {
	var free []int
	for lane := 0; lane < NumLanes; lane++ {
		blocked := false
		for _, c := range traffic.Cars() {
			if c.Lane == lane && c.Y < PowerUpSafeY {
				blocked = true
				break
			}
		}
		if !blocked {
			free = append(free, lane)
		}
	}
	if len(free) == 0 {
		return -1
	}
	return free[randInt(len(free))]
}

// Update advances all pickups and drops collected or off-screen ones
func (m *PowerUpManager) Update() {
	kept := m.powerUps[:0]
	for i := range m.powerUps {
		p := &m.powerUps[i]
		p.Update()
		if p.Collected || p.Y > PowerUpDespawnY {
			continue
		}
		kept = append(kept, *p)
	}
	m.powerUps = kept
}
