package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	TickRate       = 60 // simulation ticks per second
	TickDuration   = time.Second / TickRate
	BroadcastEvery = 2 // state frames every Nth tick
)

// GamePhase is the run lifecycle state
type GamePhase int

const (
	PhaseMenu GamePhase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

func (p GamePhase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}

// Broadcaster interface for sending messages to the client
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// Game is the composition root for one run of the racer: it owns the
// traffic and power-up managers, the spatial index, the tick scheduler,
// the score manager and the persistence job queue.
type Game struct {
	mu        sync.RWMutex
	client    Broadcaster
	analytics *Analytics

	phase           GamePhase
	tick            uint64 // simulation ticks, advances only while playing
	frames          uint64 // loop iterations, drives broadcast cadence
	lives           int
	lane            int
	invincibleTicks int
	player          Car
	effects         []ActiveEffect

	traffic   *TrafficManager
	powerUps  *PowerUpManager
	index     *Quadtree
	scheduler *Scheduler
	jobs      *JobQueue
	scores    *ScoreManager

	queryBuf []SpatialEntry

	running bool
	stop    chan struct{}
}

// NewGame creates a Game persisting scores to scorePath. analytics may
// be nil.
func NewGame(scorePath string, analytics *Analytics) *Game {
	return &Game{
		analytics: analytics,
		phase:     PhaseMenu,
		traffic:   NewTrafficManager(),
		powerUps:  NewPowerUpManager(),
		index:     NewQuadtree(Box{0, 0, ScreenWidth, ScreenHeight}, QuadCapacity),
		scheduler: NewScheduler(),
		jobs:      NewJobQueue(),
		scores:    NewScoreManager(scorePath),
		stop:      make(chan struct{}),
	}
}

// Run starts the game loop
func (g *Game) Run() {
	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.update()
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the game loop and drains the persistence queue
func (g *Game) Stop() {
	g.mu.Lock()
	if g.running {
		g.running = false
		close(g.stop)
	}
	g.mu.Unlock()
	g.jobs.Shutdown()
}

// SetClient attaches (or detaches, with nil) the broadcaster
func (g *Game) SetClient(client Broadcaster) {
	g.mu.Lock()
	g.client = client
	g.mu.Unlock()
}

// StartRun begins a fresh run
func (g *Game) StartRun() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.startRunLocked()
}

func (g *Game) startRunLocked() {
	g.phase = PhasePlaying
	g.lives = StartLives
	g.lane = StartLane
	g.invincibleTicks = 0
	g.effects = g.effects[:0]
	g.player = Car{
		X:      LaneCenterX(StartLane),
		Y:      ScreenHeight - 150,
		Lane:   StartLane,
		Player: true,
	}
	g.player.TargetX = g.player.X
	g.player.TargetY = g.player.Y

	g.traffic.Reset()
	g.powerUps.Reset()
	g.scores.ResetRun()
	g.scheduler.Clear()
	g.index.Clear()

	g.scheduleCarSpawn(g.tick + 20)
	g.schedulePowerUpSpawn(g.tick + 350)

	g.analytics.Track(EvtRunStart, "")
}

// scheduleCarSpawn registers the next traffic spawn. The callback runs
// inside update with g.mu held, so it touches game state directly and
// must not lock. It reschedules itself while the run lasts.
func (g *Game) scheduleCarSpawn(at uint64) {
	g.scheduler.ScheduleAt(at, func() {
		if g.phase != PhasePlaying {
			return
		}
		if lane := g.traffic.ChooseSafeLane(); lane >= 0 {
			g.traffic.SpawnAtLane(lane)
		}
		gap := 85 - float64(g.traffic.Level())*0.65 + float64(randInt(20)-10)
		if gap < 7 {
			gap = 7
		}
		g.scheduleCarSpawn(g.tick + uint64(gap))
	})
}

// schedulePowerUpSpawn registers the next pickup spawn; same locking
// contract as scheduleCarSpawn
func (g *Game) schedulePowerUpSpawn(at uint64) {
	g.scheduler.ScheduleAt(at, func() {
		if g.phase != PhasePlaying {
			return
		}
		if lane := g.powerUps.ChooseFreeLane(g.traffic); lane >= 0 {
			g.powerUps.SpawnAtLane(lane)
		}
		g.schedulePowerUpSpawn(g.tick + uint64(500+randInt(300)))
	})
}

// HandleInput steers the player one lane left or right
func (g *Game) HandleInput(input ClientInput) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying {
		return
	}
	lane := g.lane
	if input.Left {
		lane--
	}
	if input.Right {
		lane++
	}
	if lane < 0 {
		lane = 0
	}
	if lane >= NumLanes {
		lane = NumLanes - 1
	}
	g.lane = lane
	g.player.SetLaneTarget(lane)
}

// Pause suspends the run
func (g *Game) Pause() {
	g.mu.Lock()
	if g.phase == PhasePlaying {
		g.phase = PhasePaused
	}
	g.mu.Unlock()
}

// Resume continues a paused run
func (g *Game) Resume() {
	g.mu.Lock()
	if g.phase == PhasePaused {
		g.phase = PhasePlaying
	}
	g.mu.Unlock()
}

// Menu abandons the run, committing its score first
func (g *Game) Menu() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhasePlaying || g.phase == PhasePaused {
		g.scores.CommitAsync(g.jobs)
	}
	g.phase = PhaseMenu
}

// update runs one loop iteration
func (g *Game) update() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.frames++

	if g.phase == PhasePlaying {
		g.tick++
		g.scheduler.Process(g.tick)
		g.stepLocked()
	}

	if g.frames%BroadcastEvery == 0 {
		g.broadcastStateLocked()
	}
}

// stepLocked advances the simulation one tick; caller holds g.mu
func (g *Game) stepLocked() {
	if g.invincibleTicks > 0 {
		g.invincibleTicks--
	}

	g.player.Update(1)
	g.traffic.Update(g.hasEffect(PowerSlowMotion))
	g.powerUps.Update()
	g.tickEffectsLocked()

	g.rebuildIndexLocked()
	g.resolveCollisionsLocked()
	if g.phase != PhasePlaying {
		return // run ended during collision resolution
	}

	// Passive score accrual
	if g.tick%25 == 0 {
		g.scores.AddScore(10)
	}
	if g.tick%350 == 0 {
		g.scores.AddScore(150)
	}

	level := 1 + g.scores.Current()/LevelScoreInterval
	if level > MaxLevel {
		level = MaxLevel
	}
	if level != g.traffic.Level() {
		g.traffic.SetLevel(level)
		g.analytics.Track(EvtLevelUp, fmt.Sprintf(`{"level":%d}`, level))
	}
}

// rebuildIndexLocked repopulates the quadtree from the live entities.
// Handles are indexes into the managers' slices and are resolved within
// this same tick.
func (g *Game) rebuildIndexLocked() {
	g.index.Clear()
	for i, c := range g.traffic.Cars() {
		g.index.Insert(SpatialEntry{Box: c.Box(), Kind: KindCar, Handle: i})
	}
	for i, p := range g.powerUps.PowerUps() {
		if p.Collected {
			continue
		}
		g.index.Insert(SpatialEntry{Box: p.Box(), Kind: KindPowerUp, Handle: i})
	}
}

// resolveCollisionsLocked queries the index around the player and
// applies hits and pickups. Query results can repeat a handle, so each
// kind is de-duplicated before resolution.
func (g *Game) resolveCollisionsLocked() {
	pbox := g.player.Box()
	g.queryBuf = g.index.QueryBuf(pbox, g.queryBuf[:0])

	seenCars := make(map[int]bool)
	seenPowerUps := make(map[int]bool)

	for _, e := range g.queryBuf {
		switch e.Kind {
		case KindCar:
			if g.invincibleTicks > 0 || seenCars[e.Handle] {
				continue
			}
			seenCars[e.Handle] = true
			car := g.traffic.At(e.Handle)
			if car == nil || !pbox.Overlaps(car.Box()) {
				continue
			}
			if g.consumeEffect(PowerShield) {
				g.invincibleTicks = InvincibleTicks
				continue
			}
			g.lives--
			g.scores.ResetStreak()
			g.invincibleTicks = InvincibleTicks
			if g.lives <= 0 {
				g.endRunLocked()
				return
			}

		case KindPowerUp:
			if seenPowerUps[e.Handle] {
				continue
			}
			seenPowerUps[e.Handle] = true
			p := g.powerUps.At(e.Handle)
			if p == nil || p.Collected || !pbox.Overlaps(p.Box()) {
				continue
			}
			p.Collected = true
			g.applyPowerUpLocked(p.Type)
		}
	}
}

// applyPowerUpLocked applies a collected pickup's effect
func (g *Game) applyPowerUpLocked(t PowerUpType) {
	def := PowerUpCatalogMap[t]
	switch t {
	case PowerExtraLife:
		if g.lives < StartLives {
			g.lives++
		}
		g.scores.AddScore(ExtraLifeBonus)
	case PowerScoreBoost:
		g.scores.SetMultiplier(BoostMultiplier)
		g.effects = append(g.effects, ActiveEffect{Type: t, TicksLeft: def.Duration})
	default:
		g.effects = append(g.effects, ActiveEffect{Type: t, TicksLeft: def.Duration})
	}
	g.analytics.Track(EvtPowerUp, fmt.Sprintf(`{"type":%q}`, def.Name))
}

// tickEffectsLocked counts down active effects and expires them
func (g *Game) tickEffectsLocked() {
	kept := g.effects[:0]
	for _, e := range g.effects {
		e.TicksLeft--
		if e.TicksLeft == 0 {
			if e.Type == PowerScoreBoost {
				g.scores.SetMultiplier(1)
			}
			continue
		}
		kept = append(kept, e)
	}
	g.effects = kept
}

// hasEffect reports whether an effect of type t is running
func (g *Game) hasEffect(t PowerUpType) bool {
	for _, e := range g.effects {
		if e.Type == t {
			return true
		}
	}
	return false
}

// consumeEffect removes one effect of type t, reporting whether one was
// present
func (g *Game) consumeEffect(t PowerUpType) bool {
	for i, e := range g.effects {
		if e.Type == t {
			g.effects = append(g.effects[:i], g.effects[i+1:]...)
			return true
		}
	}
	return false
}

// endRunLocked finishes the run: the score goes on the board and the
// board is saved asynchronously
func (g *Game) endRunLocked() {
	g.phase = PhaseGameOver
	score := g.scores.Current()
	prevBest := g.scores.High()
	g.scores.CommitAsync(g.jobs)

	g.analytics.Track(EvtGameOver, fmt.Sprintf(`{"score":%d,"level":%d}`, score, g.traffic.Level()))
	if score > prevBest {
		g.analytics.Track(EvtHighScore, fmt.Sprintf(`{"score":%d}`, score))
	}

	if g.client != nil {
		g.client.SendJSON(Envelope{T: MsgGameOver, Data: GameOverMsg{
			Score:     score,
			Best:      g.scores.High(),
			MaxStreak: g.scores.MaxStreak(),
			Level:     g.traffic.Level(),
			Top:       g.scores.TopScores(),
		}})
	}
}

// broadcastStateLocked streams a msgpack state frame to the client
func (g *Game) broadcastStateLocked() {
	if g.client == nil {
		return
	}

	traffic := g.traffic.Cars()
	powerUps := g.powerUps.PowerUps()
	state := GameState{
		Tick:       g.tick,
		Phase:      g.phase.String(),
		Player:     g.player.ToState(),
		Traffic:    make([]CarState, 0, len(traffic)),
		PowerUps:   make([]PowerUpState, 0, len(powerUps)),
		Effects:    make([]EffectState, 0, len(g.effects)),
		Score:      g.scores.Current(),
		Best:       g.scores.High(),
		Lives:      g.lives,
		Level:      g.traffic.Level(),
		Streak:     g.scores.Streak(),
		Invincible: g.invincibleTicks > 0,
	}
	for _, c := range traffic {
		state.Traffic = append(state.Traffic, c.ToState())
	}
	for _, p := range powerUps {
		if p.Collected {
			continue
		}
		state.PowerUps = append(state.PowerUps, PowerUpState{
			X:    round1(p.X),
			Y:    round1(p.Y),
			Type: int(p.Type),
		})
	}
	for _, e := range g.effects {
		state.Effects = append(state.Effects, EffectState{Type: int(e.Type), TicksLeft: e.TicksLeft})
	}

	data, err := msgpack.Marshal(state)
	if err != nil {
		log.Printf("state marshal error: %v", err)
		return
	}
	g.client.SendBinary(data)
}

// Phase returns the current run phase
func (g *Game) Phase() GamePhase {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.phase
}

// Tick returns the current simulation tick
func (g *Game) Tick() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tick
}

// Lives returns the remaining lives
func (g *Game) Lives() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.lives
}

// Best returns the best score on the board
func (g *Game) Best() int {
	return g.scores.High()
}

// TopScores returns the board in descending order
func (g *Game) TopScores() []int {
	return g.scores.TopScores()
}
