package main

import (
	"sync"
	"time"
)

const maxGames = 100

// SessionIdleTimeout is how long a detached game survives before it is
// stopped. Variable so tests can shrink it.
var SessionIdleTimeout = 30 * time.Second

type gameSlot struct {
	game     *Game
	attached bool
}

// GameManager owns one Game per connected player
type GameManager struct {
	mu        sync.RWMutex
	games     map[string]*gameSlot
	scorePath string
	analytics *Analytics
}

// NewGameManager creates a manager whose games persist scores to scorePath
func NewGameManager(scorePath string, analytics *Analytics) *GameManager {
	return &GameManager{
		games:     make(map[string]*gameSlot),
		scorePath: scorePath,
		analytics: analytics,
	}
}

// CreateGame starts a game attached to client. Returns "" and nil if
// the server is full.
func (gm *GameManager) CreateGame(client Broadcaster) (string, *Game) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if len(gm.games) >= maxGames {
		return "", nil
	}

	id := GenerateUUID()
	game := NewGame(gm.scorePath, gm.analytics)
	game.SetClient(client)
	gm.games[id] = &gameSlot{game: game, attached: true}
	go game.Run()
	return id, game
}

// GetGame returns a game by ID
func (gm *GameManager) GetGame(id string) *Game {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	slot := gm.games[id]
	if slot == nil {
		return nil
	}
	return slot.game
}

// Release detaches the client from a game and stops the game after the
// idle timeout if nothing reattached
func (gm *GameManager) Release(id string) {
	gm.mu.Lock()
	slot, ok := gm.games[id]
	if !ok {
		gm.mu.Unlock()
		return
	}
	slot.attached = false
	slot.game.SetClient(nil)
	gm.mu.Unlock()

	time.AfterFunc(SessionIdleTimeout, func() {
		gm.mu.Lock()
		slot, ok := gm.games[id]
		if !ok || slot.attached {
			gm.mu.Unlock()
			return
		}
		delete(gm.games, id)
		gm.mu.Unlock()
		slot.game.Stop()
	})
}

// Count returns the number of live games
func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

// StopAll stops every game; used at shutdown
func (gm *GameManager) StopAll() {
	gm.mu.Lock()
	slots := make([]*gameSlot, 0, len(gm.games))
	for id, slot := range gm.games {
		slots = append(slots, slot)
		delete(gm.games, id)
	}
	gm.mu.Unlock()

	for _, slot := range slots {
		slot.game.Stop()
	}
}
